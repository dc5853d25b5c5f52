package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// RespondWithError memetakan tipe error dari taksonomi bersama ke status HTTP.
// Error yang tidak dikenal dianggap kesalahan server (500).
func RespondWithError(c *gin.Context, err error) {
	var (
		notFound   *NotFoundError
		database   *DatabaseError
		auth       *AuthError
		validation *ValidationError
	)

	switch {
	case errors.As(err, &validation):
		RespondError(c, http.StatusBadRequest, err)
	case errors.As(err, &notFound):
		RespondError(c, http.StatusNotFound, err)
	case errors.As(err, &auth):
		RespondError(c, http.StatusUnauthorized, err)
	case errors.As(err, &database):
		RespondError(c, http.StatusInternalServerError, err)
	default:
		RespondError(c, http.StatusInternalServerError, err)
	}
}
