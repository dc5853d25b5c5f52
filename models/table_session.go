package models

import "time"

const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
	SessionStatusCancelled = "cancelled"
)

type TableSession struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	TableID       uint       `gorm:"not null;index" json:"table_id"`
	Table         Table      `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"table,omitempty"`
	Status        string     `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	TmpCode       string     `gorm:"type:varchar(10);not null;index" json:"tmp_code"`
	SessionToken  string     `gorm:"type:varchar(64);unique;not null" json:"session_token"`
	Cart          *string    `gorm:"type:text" json:"cart,omitempty"`
	CustomerCount int        `gorm:"not null;default:1" json:"customer_count"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	CreatedAt     time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null" json:"updated_at"`
}

// IsExpired melaporkan apakah sesi sudah melewati batas waktunya.
func (s *TableSession) IsExpired(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}
