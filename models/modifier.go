package models

import "time"

// Modifier adalah grup pilihan pada sebuah produk (mis. "Level pedas"),
// dengan ModifierOption sebagai pilihannya.
type Modifier struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	ProductID uint             `gorm:"not null;index" json:"product_id"`
	Name      string           `gorm:"type:varchar(100);not null" json:"name"`
	Required  bool             `gorm:"not null;default:false" json:"required"`
	MaxSelect int              `gorm:"not null;default:1" json:"max_select"`
	Options   []ModifierOption `gorm:"foreignKey:ModifierID" json:"options,omitempty"`
	CreatedAt time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time        `gorm:"not null" json:"updated_at"`
}

type ModifierOption struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ModifierID uint      `gorm:"not null;index" json:"modifier_id"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	PriceDelta float64   `gorm:"type:decimal(10,2);not null;default:0" json:"price_delta"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}
