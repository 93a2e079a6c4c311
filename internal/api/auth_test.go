package api

import (
	"net/http"
	"testing"

	"library_system/internal/domain"
	"library_system/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func newAuthRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.POST("/signup", SignupHandler(db))
	r.POST("/login", LoginHandler(db, testSecret, 30))
	return r
}

func TestSignupAndLogin(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db)

	w := performJSON(t, r, http.MethodPost, "/signup", gin.H{
		"username": "alice", "password": "wonderland", "role": "User",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// The stored credential is a hash, never the plain password
	var user domain.User
	require.NoError(t, db.Where("username = ?", "alice").First(&user).Error)
	assert.NotEqual(t, "wonderland", user.Password)

	w = performJSON(t, r, http.MethodPost, "/login", gin.H{
		"username": "alice", "password": "wonderland",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var resp AuthResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "User", resp.Role)

	// The issued token carries the user's identity and role
	claims, err := utils.ParseJWT(resp.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "User", claims.Role)
}

func TestSignupDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db)

	w := performJSON(t, r, http.MethodPost, "/signup", gin.H{
		"username": "bob", "password": "builder1", "role": "User",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// A second signup with the same username fails and creates no row
	w = performJSON(t, r, http.MethodPost, "/signup", gin.H{
		"username": "bob", "password": "different", "role": "Admin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, db.Model(&domain.User{}).Where("username = ?", "bob").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLoginInvalidCredentials(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db)

	w := performJSON(t, r, http.MethodPost, "/signup", gin.H{
		"username": "carol", "password": "secret123", "role": "User",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Wrong password
	w = performJSON(t, r, http.MethodPost, "/login", gin.H{
		"username": "carol", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Unknown username
	w = performJSON(t, r, http.MethodPost, "/login", gin.H{
		"username": "nobody", "password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
