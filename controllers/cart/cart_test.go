package cartControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eco-pj/storefront-api/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Brand{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()
	category := models.Category{Name: "cat-" + name}
	require.NoError(t, db.Create(&category).Error)
	brand := models.Brand{Name: "brand-" + name, Slug: "brand-" + name}
	require.NoError(t, db.Create(&brand).Error)

	product := models.Product{
		Name:       name,
		Price:      price,
		Stock:      stock,
		CategoryID: category.ID,
		BrandID:    brand.ID,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestLoadCartSnapshotMissingCart(t *testing.T) {
	db := openTestDB(t)

	cart, items, err := LoadCartSnapshot(db, 42)
	require.NoError(t, err)
	assert.Nil(t, cart)
	assert.Empty(t, items)
}

func TestLoadCartSnapshotResolvesProducts(t *testing.T) {
	db := openTestDB(t)
	p1 := seedProduct(t, db, "P1", 10, 5)

	cart := models.Cart{UserID: 1}
	require.NoError(t, db.Create(&cart).Error)
	require.NoError(t, db.Create(&models.CartItem{CartID: cart.CartID, ProductID: p1.ID, Quantity: 3, AddedAt: time.Now()}).Error)

	got, items, err := LoadCartSnapshot(db, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, items, 1)
	assert.Equal(t, "P1", items[0].Product.Name)
	assert.Equal(t, 10.0, items[0].Product.Price)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestLoadCartSnapshotPrunesDeletedProducts(t *testing.T) {
	db := openTestDB(t)
	p1 := seedProduct(t, db, "P1", 10, 5)
	p2 := seedProduct(t, db, "P2", 4, 3)

	cart := models.Cart{UserID: 1}
	require.NoError(t, db.Create(&cart).Error)
	require.NoError(t, db.Create(&models.CartItem{CartID: cart.CartID, ProductID: p1.ID, Quantity: 1, AddedAt: time.Now()}).Error)
	require.NoError(t, db.Create(&models.CartItem{CartID: cart.CartID, ProductID: p2.ID, Quantity: 2, AddedAt: time.Now()}).Error)

	require.NoError(t, db.Delete(&models.Product{}, p1.ID).Error)

	_, items, err := LoadCartSnapshot(db, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, p2.ID, items[0].Product.ID)

	// the pruned line is gone from storage too
	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", cart.CartID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

// -------- Handlers --------

func cartRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	asUser := func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", "user")
	}
	r.GET("/cart", asUser, GetUserCart(db))
	r.POST("/cart", asUser, AddCartItem(db))
	r.PUT("/cart", asUser, UpdateCartItem(db))
	r.DELETE("/cart/:product_id", asUser, DeleteCartItem(db))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddCartItemCreatesLazilyAndMerges(t *testing.T) {
	db := openTestDB(t)
	p1 := seedProduct(t, db, "P1", 10, 5)
	r := cartRouter(db, 1)

	// first add creates the cart row
	w := doJSON(t, r, http.MethodPost, "/cart", gin.H{"product_id": p1.ID, "quantity": 2})
	assert.Equal(t, http.StatusCreated, w.Code)

	var carts int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&carts).Error)
	assert.EqualValues(t, 1, carts)

	// second add merges quantities onto the same line
	w = doJSON(t, r, http.MethodPost, "/cart", gin.H{"product_id": p1.ID, "quantity": 3})
	assert.Equal(t, http.StatusOK, w.Code)

	var item models.CartItem
	require.NoError(t, db.Where("product_id = ?", p1.ID).First(&item).Error)
	assert.Equal(t, 5, item.Quantity)
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	db := openTestDB(t)
	r := cartRouter(db, 1)

	w := doJSON(t, r, http.MethodPost, "/cart", gin.H{"product_id": 999, "quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateCartItemSetsQuantity(t *testing.T) {
	db := openTestDB(t)
	p1 := seedProduct(t, db, "P1", 10, 5)
	r := cartRouter(db, 1)

	doJSON(t, r, http.MethodPost, "/cart", gin.H{"product_id": p1.ID, "quantity": 2})

	w := doJSON(t, r, http.MethodPut, "/cart", gin.H{"product_id": p1.ID, "quantity": 4})
	assert.Equal(t, http.StatusOK, w.Code)

	var item models.CartItem
	require.NoError(t, db.Where("product_id = ?", p1.ID).First(&item).Error)
	assert.Equal(t, 4, item.Quantity)

	// updating a line that was never added is a 404, not an upsert
	p2 := seedProduct(t, db, "P2", 4, 3)
	w = doJSON(t, r, http.MethodPut, "/cart", gin.H{"product_id": p2.ID, "quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCartItem(t *testing.T) {
	db := openTestDB(t)
	p1 := seedProduct(t, db, "P1", 10, 5)
	r := cartRouter(db, 1)

	doJSON(t, r, http.MethodPost, "/cart", gin.H{"product_id": p1.ID, "quantity": 2})

	w := doJSON(t, r, http.MethodDelete, "/cart/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/cart/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
