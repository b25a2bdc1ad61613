package models

import "time"

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	UserID    uint       `gorm:"uniqueIndex" json:"user_id"` // one cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CartID    uint      `gorm:"index" json:"cart_id"`
	ProductID uint      `gorm:"index" json:"product_id"`
	Quantity  int       `gorm:"not null;check:quantity >= 1" json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}
