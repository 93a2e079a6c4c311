package middleware

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"library_system/internal/domain"
	"library_system/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "library.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Book{}, &domain.Membership{}, &domain.Transaction{}))
	return db
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(JWTAuthMiddleware(testSecret))
	r.GET("/protected", func(c *gin.Context) {
		userID, _ := c.Get("userID")
		role, _ := c.Get("role")
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role})
	})

	// No Authorization header
	w := get(r, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Malformed token
	w = get(r, "/protected", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Token signed with another secret
	badToken, err := utils.GenerateJWT(1, "User", "other-secret", 30)
	require.NoError(t, err)
	w = get(r, "/protected", badToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token passes and the claims land in the context
	token, err := utils.GenerateJWT(7, "User", testSecret, 30)
	require.NoError(t, err)
	w = get(r, "/protected", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestAdminOnlyMiddleware(t *testing.T) {
	db := newTestDB(t)
	admin := domain.User{Username: "admin", Password: "x", Role: "Admin"}
	require.NoError(t, db.Create(&admin).Error)
	member := domain.User{Username: "member", Password: "x", Role: "User"}
	require.NoError(t, db.Create(&member).Error)

	r := gin.New()
	r.Use(JWTAuthMiddleware(testSecret), AdminOnlyMiddleware(db))
	r.GET("/admin", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	// The role check reads the user row, so the decisive role is the stored one
	adminToken, err := utils.GenerateJWT(admin.ID, admin.Role, testSecret, 30)
	require.NoError(t, err)
	w := get(r, "/admin", adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	memberToken, err := utils.GenerateJWT(member.ID, member.Role, testSecret, 30)
	require.NoError(t, err)
	w = get(r, "/admin", memberToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// A token for a deleted user is rejected too
	ghostToken, err := utils.GenerateJWT(99, "Admin", testSecret, 30)
	require.NoError(t, err)
	w = get(r, "/admin", ghostToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
