package authControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hoopkicks/hoopkicks-api/middleware"
	"github.com/hoopkicks/hoopkicks-api/models"
)

func setupAuthTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	r := gin.New()
	r.POST("/auth/register", Register(db))
	r.POST("/auth/login", Login(db))
	r.POST("/auth/logout", Logout())
	return r, db
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	return nil
}

func TestRegisterCreatesCustomerAndSetsCookie(t *testing.T) {
	r, db := setupAuthTest(t)

	w := postJSON(t, r, "/auth/register", gin.H{
		"name":     "Jordan",
		"email":    "jordan@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	var user models.User
	require.NoError(t, db.Where("email = ?", "jordan@example.com").First(&user).Error)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotEqual(t, "secret123", user.PasswordHash) // hashed at rest

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	_, leaked := body["PasswordHash"]
	assert.False(t, leaked)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, _ := setupAuthTest(t)

	payload := gin.H{"name": "A", "email": "dup@example.com", "password": "secret123"}
	w := postJSON(t, r, "/auth/register", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, r, "/auth/register", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already registered")
}

func TestLoginSuccess(t *testing.T) {
	r, _ := setupAuthTest(t)

	postJSON(t, r, "/auth/register", gin.H{
		"name": "Jo", "email": "jo@example.com", "password": "secret123",
	})

	w := postJSON(t, r, "/auth/login", gin.H{
		"email": "jo@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, sessionCookie(w))
}

func TestLoginWrongPasswordSetsNoCookie(t *testing.T) {
	r, _ := setupAuthTest(t)

	postJSON(t, r, "/auth/register", gin.H{
		"name": "Jo", "email": "jo@example.com", "password": "secret123",
	})

	w := postJSON(t, r, "/auth/login", gin.H{
		"email": "jo@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, sessionCookie(w))
}

func TestLoginUnknownEmail(t *testing.T) {
	r, _ := setupAuthTest(t)

	w := postJSON(t, r, "/auth/login", gin.H{
		"email": "ghost@example.com", "password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, sessionCookie(w))
}

func TestLogoutClearsCookie(t *testing.T) {
	r, _ := setupAuthTest(t)

	w := postJSON(t, r, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}
