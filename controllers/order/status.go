package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/eco-pj/storefront-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Map string to OrderStatus
func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusConfirmed):
		return models.OrderStatusConfirmed, nil
	case string(models.OrderStatusShipped):
		return models.OrderStatusShipped, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", ErrInvalidStatus
	}
}

// allowedTransitions lists the reachable next states. delivered and
// cancelled are terminal; confirmed may be reverted to pending.
var allowedTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:   {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed: {models.OrderStatusPending, models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:   {models.OrderStatusDelivered, models.OrderStatusCancelled},
	models.OrderStatusDelivered: {},
	models.OrderStatusCancelled: {},
}

func transitionAllowed(from, to models.OrderStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// releasesStock reports whether a transition gives stock back. Stock is
// deducted on entering confirmed and stays deducted through shipped and
// delivered; it is restored only when the order leaves confirmed back to
// pending or to cancelled.
func releasesStock(from, to models.OrderStatus) bool {
	return from == models.OrderStatusConfirmed &&
		(to == models.OrderStatusPending || to == models.OrderStatusCancelled)
}

// TransitionOrderStatus moves an order through the status state machine and
// applies the matching stock mutation in the same transaction. A repeated
// transition to the current status is a no-op returning the order as-is,
// so concurrent confirms cannot double-deduct: the status write is a
// compare-and-swap on the previous status, and the loser gets ErrConflict.
func TransitionOrderStatus(db *gorm.DB, orderID uint, newStatus models.OrderStatus) (*models.Order, error) {
	var result *models.Order

	run := func() error {
		return db.Transaction(func(tx *gorm.DB) error {
			var order models.Order
			if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrOrderNotFound
				}
				return err
			}

			from := order.Status
			if from == newStatus {
				result = &order
				return nil
			}
			if !transitionAllowed(from, newStatus) {
				return &InvalidTransitionError{From: from, To: newStatus}
			}

			if newStatus == models.OrderStatusConfirmed {
				if err := decrementStock(tx, order.Items); err != nil {
					return err
				}
			}
			if releasesStock(from, newStatus) {
				if err := restoreStock(tx, order.Items); err != nil {
					return err
				}
			}

			res := tx.Model(&models.Order{}).
				Where("id = ? AND status = ?", order.ID, from).
				Update("status", newStatus)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrConflict
			}

			order.Status = newStatus
			result = &order
			return nil
		})
	}

	err := run()
	if err != nil && isTransient(err) {
		// one retry for lock/serialization hiccups, then surface a conflict
		if err = run(); err != nil && isTransient(err) {
			err = ErrConflict
		}
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// decrementStock applies stock = stock - qty guarded by stock >= qty for
// every line item. Any line that cannot be satisfied aborts the enclosing
// transaction, so partial decrements never commit.
func decrementStock(tx *gorm.DB, items []models.OrderItem) error {
	for _, item := range items {
		res := tx.Model(&models.Product{}).
			Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return err
			}
			return &InsufficientStockError{ProductName: product.Name}
		}
	}
	return nil
}

// restoreStock gives each line item's quantity back to its product.
// Unscoped so products removed from the catalog after confirmation still
// get their quantity back.
func restoreStock(tx *gorm.DB, items []models.OrderItem) error {
	for _, item := range items {
		if err := tx.Unscoped().Model(&models.Product{}).
			Where("id = ?", item.ProductID).
			UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
			return err
		}
	}
	return nil
}

func isTransient(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "could not serialize") ||
		strings.Contains(msg, "lock timeout")
}

// -------- Handlers --------

// PUT /orders/:id (admin)
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}

		order, err := TransitionOrderStatus(db, uint(orderID), newStatus)
		if err != nil {
			var stockErr *InsufficientStockError
			var transErr *InvalidTransitionError
			switch {
			case errors.Is(err, ErrOrderNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			case errors.Is(err, ErrProductNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			case errors.As(err, &stockErr):
				c.JSON(http.StatusBadRequest, gin.H{"error": stockErr.Error()})
			case errors.As(err, &transErr):
				c.JSON(http.StatusBadRequest, gin.H{"error": transErr.Error()})
			case errors.Is(err, ErrConflict):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			}
			return
		}

		broadcastOrderEvent("status_changed", *order)
		c.JSON(http.StatusOK, order)
	}
}
