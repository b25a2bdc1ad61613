package cartControllers

import (
	"errors"

	"github.com/eco-pj/storefront-api/models"
	"gorm.io/gorm"
)

// SnapshotItem is a cart line resolved against the live product row.
type SnapshotItem struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// LoadCartSnapshot resolves the user's cart items with live product data.
// Lines whose product no longer exists are pruned and the pruned cart
// persisted. A missing or empty cart yields an empty snapshot, not an
// error; callers must treat that as a normal checkable state.
func LoadCartSnapshot(db *gorm.DB, userID uint) (*models.Cart, []SnapshotItem, error) {
	var cart models.Cart
	if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	snapshot := make([]SnapshotItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		var product models.Product
		err := db.First(&product, item.ProductID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Product was deleted after the item was added; drop the line.
			if err := db.Delete(&models.CartItem{}, item.ID).Error; err != nil {
				return nil, nil, err
			}
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		snapshot = append(snapshot, SnapshotItem{Product: product, Quantity: item.Quantity})
	}

	return &cart, snapshot, nil
}
