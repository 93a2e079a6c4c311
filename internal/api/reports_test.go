package api

import (
	"net/http"
	"testing"
	"time"

	"library_system/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReportRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.POST("/issue_book", IssueBookHandler(db))
	r.POST("/return_book", ReturnBookHandler(db))
	r.GET("/dashboard_data", DashboardHandler(db, nil))
	r.GET("/memberships", ListMembershipsHandler(db, nil))
	return r
}

func getDashboard(t *testing.T, r *gin.Engine) DashboardResponse {
	t.Helper()
	w := performJSON(t, r, http.MethodGet, "/dashboard_data", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp DashboardResponse
	decodeBody(t, w, &resp)
	return resp
}

func TestDashboardCountsFollowCirculation(t *testing.T) {
	db := newTestDB(t)
	r := newReportRouter(db)
	user := seedUser(t, db, "reader", "User")
	for i := 0; i < 10; i++ {
		seedBook(t, db, "Sample", "Author", true)
	}

	resp := getDashboard(t, r)
	assert.Equal(t, DashboardResponse{IssuedBooks: 0, TotalBooks: 10}, resp)

	// Issue one book: issued count tracks the availability flags
	w := performJSON(t, r, http.MethodPost, "/issue_book", gin.H{
		"user_id": user.ID, "book_id": 3,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var issued struct {
		TransactionID uint `json:"transaction_id"`
	}
	decodeBody(t, w, &issued)

	resp = getDashboard(t, r)
	assert.Equal(t, DashboardResponse{IssuedBooks: 1, TotalBooks: 10}, resp)

	// Return it: the count drops back to zero
	w = performJSON(t, r, http.MethodPost, "/return_book", gin.H{
		"transaction_id": issued.TransactionID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp = getDashboard(t, r)
	assert.Equal(t, DashboardResponse{IssuedBooks: 0, TotalBooks: 10}, resp)
}

func TestListMemberships(t *testing.T) {
	db := newTestDB(t)
	r := newReportRouter(db)
	user := seedUser(t, db, "member", "User")
	other := seedUser(t, db, "other", "User")

	expiry := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&domain.Membership{UserID: user.ID, ExpiryDate: expiry}).Error)
	require.NoError(t, db.Create(&domain.Membership{UserID: other.ID, ExpiryDate: expiry.AddDate(0, 0, 365)}).Error)

	w := performJSON(t, r, http.MethodGet, "/memberships", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp []MembershipResponse
	decodeBody(t, w, &resp)
	require.Len(t, resp, 2)
	assert.Equal(t, user.ID, resp[0].UserID)
	assert.Equal(t, "2027-03-01", resp[0].ExpiryDate)
	assert.Equal(t, other.ID, resp[1].UserID)
	assert.Equal(t, "2028-02-29", resp[1].ExpiryDate)
}
