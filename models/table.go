package models

import "time"

type Table struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	StoreID    uint      `gorm:"not null;index" json:"store_id"`
	Store      Store     `gorm:"foreignKey:StoreID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"store,omitempty"`
	Identifier string    `gorm:"type:varchar(50);not null" json:"identifier"`
	Capacity   int       `gorm:"not null;default:4" json:"capacity"`
	IsActive   bool      `gorm:"not null;default:true" json:"is_active"`
	IsDeleted  bool      `gorm:"not null;default:false" json:"is_deleted"`
	DeviceID   *string   `gorm:"type:varchar(255)" json:"device_id,omitempty"`
	QRCode     string    `gorm:"type:text" json:"qr_code"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

// QRPayload adalah isi token QR yang terenkripsi pada kolom qr_code.
// Token bukan capability: setelah didekripsi tetap harus dicocokkan
// kembali dengan baris Table yang hidup.
type QRPayload struct {
	TableID    uint   `json:"table_id"`
	Identifier string `json:"identifier"`
	StoreID    uint   `json:"store_id"`
}
