package models

import "time"

type Product struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	StoreID     uint       `gorm:"not null;index" json:"store_id"`
	CategoryID  uint       `gorm:"not null;index" json:"category_id"`
	Category    Category   `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category,omitempty"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Price       float64    `gorm:"type:decimal(10,2);not null" json:"price"`
	IsAvailable bool       `gorm:"not null;default:true" json:"is_available"`
	Modifiers   []Modifier `gorm:"foreignKey:ProductID" json:"modifiers,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}
