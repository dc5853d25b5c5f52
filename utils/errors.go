package utils

// Taksonomi error bersama untuk seluruh controller/service.
// RespondWithError menerjemahkan tipe error menjadi status HTTP.

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

type DatabaseError struct {
	Message string
}

func (e *DatabaseError) Error() string {
	return e.Message
}

func NewDatabaseError(message string) *DatabaseError {
	return &DatabaseError{Message: message}
}

type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

func NewAuthError(message string) *AuthError {
	return &AuthError{Message: message}
}

// ValidationError dipakai untuk input yang tidak valid (QR code salah,
// session code salah, cart duplikat) dan dipetakan ke HTTP 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}
