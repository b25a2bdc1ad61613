package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

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

	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func authRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/register", RegisterHandler(db))
	r.POST("/auth/login", LoginHandler(db))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload gin.H) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := openTestDB(t)
	r := authRouter(db)

	w := postJSON(t, r, "/auth/register", gin.H{
		"name":     "Jamie",
		"email":    "jamie@example.com",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "token")

	// password is stored hashed, never verbatim
	var user models.User
	require.NoError(t, db.Where("email = ?", "jamie@example.com").First(&user).Error)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	assert.Equal(t, "user", user.Role)

	w = postJSON(t, r, "/auth/login", gin.H{
		"email":    "jamie@example.com",
		"password": "hunter22",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := openTestDB(t)
	r := authRouter(db)

	payload := gin.H{"name": "Jamie", "email": "jamie@example.com", "password": "hunter22"}
	require.Equal(t, http.StatusCreated, postJSON(t, r, "/auth/register", payload).Code)

	w := postJSON(t, r, "/auth/register", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email already exists")
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	db := openTestDB(t)
	r := authRouter(db)

	w := postJSON(t, r, "/auth/register", gin.H{
		"name":     "Jamie",
		"email":    "jamie@example.com",
		"password": "abc",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := openTestDB(t)
	r := authRouter(db)

	postJSON(t, r, "/auth/register", gin.H{"name": "Jamie", "email": "jamie@example.com", "password": "hunter22"})

	w := postJSON(t, r, "/auth/login", gin.H{"email": "jamie@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestLoginUnknownEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := openTestDB(t)
	r := authRouter(db)

	w := postJSON(t, r, "/auth/login", gin.H{"email": "ghost@example.com", "password": "whatever"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
