package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"type:VARCHAR(20);default:'user'" json:"role"`
	Cart         Cart      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Wishlist     Wishlist  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Orders       []Order   `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
