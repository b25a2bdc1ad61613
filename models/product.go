package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string   `gorm:"not null" json:"name"`
	Price       float64  `gorm:"not null;check:price >= 0" json:"price"`
	Stock       int      `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	CategoryID  uint     `gorm:"index" json:"category_id"`
	Category    Category `gorm:"foreignKey:CategoryID" json:"category"`
	BrandID     uint     `gorm:"index" json:"brand_id"`
	Brand       Brand    `gorm:"foreignKey:BrandID" json:"brand"`
	Description string   `json:"description"`
	ImageURLs   []string `gorm:"serializer:json" json:"image_urls"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
