package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	// Order statuses (typical e-commerce flow)
	OrderStatusPending   OrderStatus = "pending"   // Order placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // Confirmed by admin, stock reserved
	OrderStatusShipped   OrderStatus = "shipped"   // Out for delivery
	OrderStatusDelivered OrderStatus = "delivered" // Customer received the item
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled by admin

	// Payment statuses
	PaymentStatusPending    PaymentStatus = "pending"    // Payment not completed yet
	PaymentStatusAuthorized PaymentStatus = "authorized" // Funds authorized by the gateway
	PaymentStatusPaid       PaymentStatus = "paid"       // Payment completed successfully
	PaymentStatusFailed     PaymentStatus = "failed"     // Payment attempt failed
	PaymentStatusRefunded   PaymentStatus = "refunded"   // Money returned to customer
)

// ShippingInfo is embedded on Order.
type ShippingInfo struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	OrderRef      string        `gorm:"uniqueIndex" json:"order_ref"`
	UserID        uint          `gorm:"not null;index" json:"user_id"`
	User          User          `gorm:"foreignKey:UserID" json:"user"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total         float64       `json:"total"`
	Shipping      ShippingInfo  `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_info"`
	Status        OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentMethod string        `json:"payment_method"` // e.g. "card", "cod"
	PaymentStatus PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	PaymentRef    string        `json:"payment_ref"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// OrderItem carries the price captured at purchase time; it is never
// recomputed from the live product.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `gorm:"index" json:"order_id"`
	ProductID   uint    `json:"product_id"`
	Product     Product `gorm:"foreignKey:ProductID" json:"product"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}
