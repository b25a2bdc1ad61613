package orderControllers

import (
	"context"
	"errors"
	"log"
	"math"
	"net/http"
	"os"
	"strings"
	"time"

	cartControllers "github.com/eco-pj/storefront-api/controllers/cart"
	"github.com/eco-pj/storefront-api/middleware"
	"github.com/eco-pj/storefront-api/models"
	"github.com/eco-pj/storefront-api/payment"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// -------- Request Structs --------

type PlaceOrderRequest struct {
	Shipping      models.ShippingInfo `json:"shipping_info"`
	PaymentMethod string              `json:"payment_method"`
	PaymentRef    string              `json:"payment_ref"`
}

// -------- Helpers --------

// Generate unique order reference
func generateOrderRef() string {
	// Example: 20250908130500-<uuid4>
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// minorUnits converts a price into the gateway's integer representation.
func minorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func defaultCurrency() string {
	if c := os.Getenv("CURRENCY"); c != "" {
		return c
	}
	return "USD"
}

// -------- Core Logic --------

// PlaceOrder converts the user's cart into a pending order. Line items
// capture the price at purchase time; the order row and the cart clearing
// are committed as one transaction. Stock is not touched here — it is
// deducted when an admin confirms the order.
//
// When a payment adapter is configured and the method is not "cod", funds
// are authorized for the cart total before anything is persisted; a
// declined or failed authorization aborts placement entirely.
func PlaceOrder(ctx context.Context, db *gorm.DB, adapter payment.Adapter, userID uint, req PlaceOrderRequest) (*models.Order, error) {
	if req.PaymentMethod == "" {
		req.PaymentMethod = "cod"
	}

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"address", req.Shipping.Address},
		{"city", req.Shipping.City},
		{"postalCode", req.Shipping.PostalCode},
		{"country", req.Shipping.Country},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	cart, snapshot, err := cartControllers.LoadCartSnapshot(db, userID)
	if err != nil {
		return nil, err
	}
	if len(snapshot) == 0 {
		return nil, ErrEmptyCart
	}

	var total float64
	orderItems := make([]models.OrderItem, 0, len(snapshot))
	for _, line := range snapshot {
		total += line.Product.Price * float64(line.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			Price:       line.Product.Price,
			Quantity:    line.Quantity,
		})
	}

	paymentStatus := models.PaymentStatusPending
	paymentRef := ""
	if adapter != nil && req.PaymentMethod != "cod" {
		result, err := adapter.Authorize(ctx, minorUnits(total), defaultCurrency(), req.PaymentRef)
		if err != nil {
			return nil, err
		}
		paymentStatus = models.PaymentStatus(result.Status)
		paymentRef = result.Reference
	}

	order := models.Order{
		OrderRef:      generateOrderRef(),
		UserID:        userID,
		Items:         orderItems,
		Total:         total,
		Shipping:      req.Shipping,
		Status:        models.OrderStatusPending,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: paymentStatus,
		PaymentRef:    paymentRef,
		CreatedAt:     time.Now(),
	}

	// Creating the order and emptying the cart are one logical unit.
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if paymentRef != "" {
			log.Printf("⚠️ payment %s authorized but order persistence failed: %v", paymentRef, err)
		}
		return nil, err
	}

	return &order, nil
}

// -------- Handlers --------

// POST /orders
func PlaceOrderHandler(db *gorm.DB, adapter payment.Adapter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := PlaceOrder(c.Request.Context(), db, adapter, userID, req)
		if err != nil {
			var vErr *ValidationError
			switch {
			case errors.As(err, &vErr):
				c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			case errors.Is(err, ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			case errors.Is(err, payment.ErrDeclined):
				c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
			case errors.Is(err, payment.ErrProvider):
				c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			}
			return
		}

		broadcastOrderEvent("order_placed", *order)
		c.JSON(http.StatusCreated, order)
	}
}

// GET /orders — the caller's orders with resolved line-item products.
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Preload("Items.Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Preload("Items.Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}
