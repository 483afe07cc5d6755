package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"planner/internal/middleware"
	"planner/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()

	jwtSecret := "test-secret-key"

	protected := r.Group("/protected")
	protected.Use(middleware.JWTAuthMiddleware(jwtSecret))

	protected.GET("/resource", func(c *gin.Context) {
		userID, exists := c.Get(middleware.UserIDKey)
		if !exists {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "User ID not found in context"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Access granted",
			"user_id": userID,
		})
	})

	return r
}

func generateTestToken(userID uuid.UUID, jwtSecret string) string {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"purpose": "access",
		"exp":     jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(jwtSecret))

	return tokenString
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	// Arrange
	router := setupRouter()
	userID := uuid.New()
	token := generateTestToken(userID, "test-secret-key")

	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Access granted")
	assert.Contains(t, resp.Body.String(), userID.String())
}

func TestJWTAuthMiddleware_NoAuthHeader(t *testing.T) {
	// Arrange
	router := setupRouter()

	req, _ := http.NewRequest("GET", "/protected/resource", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Authorization header is required")
}

func TestJWTAuthMiddleware_InvalidAuthFormat(t *testing.T) {
	// Arrange
	router := setupRouter()

	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	req.Header.Set("Authorization", "InvalidFormat token123")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Authorization header format must be Bearer {token}")
}

func TestJWTAuthMiddleware_InvalidToken(t *testing.T) {
	// Arrange
	router := setupRouter()

	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid or expired token")
}

// Stub user getter for the verified-email gate.
type stubUserGetter struct {
	user *model.User
	err  error
}

func (s *stubUserGetter) GetByID(_ context.Context, _ uuid.UUID) (*model.User, error) {
	return s.user, s.err
}

func setupVerifiedRouter(users middleware.UserGetter, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()

	protected := r.Group("/data")
	protected.Use(middleware.JWTAuthMiddleware("test-secret-key"))
	protected.Use(middleware.RequireVerifiedEmail(users))
	protected.GET("/resource", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Access granted"})
	})

	return r
}

func TestRequireVerifiedEmail_Verified(t *testing.T) {
	// Arrange
	userID := uuid.New()
	users := &stubUserGetter{user: &model.User{ID: userID, Email: "a@example.com", EmailVerified: true}}
	router := setupVerifiedRouter(users, userID)

	req, _ := http.NewRequest("GET", "/data/resource", nil)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(userID, "test-secret-key"))

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestRequireVerifiedEmail_Unverified(t *testing.T) {
	// Arrange
	userID := uuid.New()
	users := &stubUserGetter{user: &model.User{ID: userID, Email: "a@example.com", EmailVerified: false}}
	router := setupVerifiedRouter(users, userID)

	req, _ := http.NewRequest("GET", "/data/resource", nil)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(userID, "test-secret-key"))

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Contains(t, resp.Body.String(), "Email not verified")
}

func TestRequireVerifiedEmail_UnknownUser(t *testing.T) {
	// Arrange
	userID := uuid.New()
	users := &stubUserGetter{user: nil}
	router := setupVerifiedRouter(users, userID)

	req, _ := http.NewRequest("GET", "/data/resource", nil)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(userID, "test-secret-key"))

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
