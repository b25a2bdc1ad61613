package models

import "time"

type Wishlist struct {
	WishlistID uint           `gorm:"primaryKey" json:"wishlist_id"`
	UserID     uint           `gorm:"uniqueIndex" json:"user_id"`
	Items      []WishlistItem `gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

type WishlistItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	WishlistID uint      `gorm:"index" json:"wishlist_id"`
	ProductID  uint      `gorm:"index" json:"product_id"`
	AddedAt    time.Time `json:"added_at"`
}
