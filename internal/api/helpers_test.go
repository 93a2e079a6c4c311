package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"library_system/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestDB opens a throwaway SQLite store with the full schema migrated
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "library.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Book{}, &domain.Membership{}, &domain.Transaction{}))
	return db
}

// performJSON runs a JSON request through the router and records the response
func performJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a recorded JSON response body into dest
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}

// seedBook inserts a book row directly
func seedBook(t *testing.T, db *gorm.DB, title, author string, available bool) domain.Book {
	t.Helper()
	book := domain.Book{Title: title, Author: author, Available: available}
	require.NoError(t, db.Create(&book).Error)
	return book
}

// seedUser inserts a user row directly; the password hash is not used by
// these helpers' callers
func seedUser(t *testing.T, db *gorm.DB, username, role string) domain.User {
	t.Helper()
	user := domain.User{Username: username, Password: "x", Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}
