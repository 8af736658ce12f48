package controllers_test

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/geprek-app/controllers"
	"github.com/yeremiapane/geprek-app/database"
	"github.com/yeremiapane/geprek-app/models"
	"github.com/yeremiapane/geprek-app/services"
		"gorm.io/gorm"
)

func setupRecapRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	require.NoError(t, database.SeedAdmin(db, "admin@geprek.id", "secret123", "Admin", models.RoleAdmin))
	require.NoError(t, database.SeedAdmin(db, "manager@geprek.id", "secret123", "Manager", models.RoleManager))

	router := gin.New()
	recapCtrl := controllers.NewRecapController(services.NewRecapService(db, services.NopPublisher{}, time.Local), time.Local)

	admin := router.Group("/admin", asUser(1, models.RoleAdmin))
	admin.POST("/recaps", recapCtrl.RequestRecap)
	admin.GET("/recaps", recapCtrl.GetAllRecaps)
	admin.GET("/recaps/:id", recapCtrl.GetRecapDetail)
	admin.GET("/recaps/:id/export", recapCtrl.ExportRecap)

	manager := router.Group("/manager", asUser(2, models.RoleManager))
	manager.POST("/recaps/:id/approve", recapCtrl.ApproveRecap)
	manager.POST("/recaps/:id/reject", recapCtrl.RejectRecap)
	manager.DELETE("/recaps/:id", recapCtrl.DeleteRecap)
	return router
}

func seedCompletedOrder(t *testing.T, db *gorm.DB, total int64, at time.Time) {
	t.Helper()
	o := models.Order{
		CustomerName:  "Budi",
		CustomerPhone: "0812",
		OrderType:     models.OrderTypeOnline,
		PaymentMethod: models.PaymentCash,
		TotalAmount:   total,
		Status:        models.OrderCompleted,
		CreatedAt:     at,
	}
	require.NoError(t, db.Create(&o).Error)
}

func requestRecap(t *testing.T, router *gin.Engine, payload map[string]interface{}) string {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/admin/recaps", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return strconv.Itoa(int(decodeBody(t, w)["data"].(map[string]interface{})["id"].(float64)))
}

func TestRequestRecapValidation(t *testing.T) {
	db := setupTestDB(t)
	router := setupRecapRouter(t, db)

	cases := []struct {
		name    string
		payload map[string]interface{}
	}{
		{"missing period", map[string]interface{}{}},
		{"unknown period", map[string]interface{}{"period": "year"}},
		{"custom without dates", map[string]interface{}{"period": "custom"}},
		{"custom reversed", map[string]interface{}{"period": "custom", "start_date": "2024-05-10", "end_date": "2024-05-01"}},
		{"custom bad format", map[string]interface{}{"period": "custom", "start_date": "10/05/2024", "end_date": "2024-05-11"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/admin/recaps", tc.payload)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestRecapReviewFlow(t *testing.T) {
	db := setupTestDB(t)
	router := setupRecapRouter(t, db)
	seedCompletedOrder(t, db, 35000, time.Now())

	w := doJSON(router, http.MethodPost, "/admin/recaps", map[string]interface{}{"period": "today"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	recap := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(35000), recap["total_revenue"])
	assert.Equal(t, float64(1), recap["total_orders"])
	assert.Equal(t, "pending", recap["status"])
	assert.Equal(t, "Rekap today", recap["notes"])
	id := strconv.Itoa(int(recap["id"].(float64)))

	// belum disetujui -> tidak bisa diekspor
	w = doJSON(router, http.MethodGet, "/admin/recaps/"+id+"/export", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(router, http.MethodPost, "/manager/recaps/"+id+"/approve", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	approved := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "approved", approved["status"])
	assert.Equal(t, float64(2), approved["approved_by"])

	w = doJSON(router, http.MethodPost, "/manager/recaps/"+id+"/reject", map[string]interface{}{"reason": "telat"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(router, http.MethodGet, "/admin/recaps/"+id+"/export?format=pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".pdf")

	w = doJSON(router, http.MethodGet, "/admin/recaps/"+id+"/export?format=csv", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodGet, "/admin/recaps/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Len(t, detail["orders"].([]interface{}), 1)
	assert.Equal(t, float64(35000), detail["live_revenue"])
}

func TestRejectRecapWithReason(t *testing.T) {
	db := setupTestDB(t)
	router := setupRecapRouter(t, db)
	id := requestRecap(t, router, map[string]interface{}{"period": "custom", "start_date": "2024-05-01", "end_date": "2024-05-31"})

	w := doJSON(router, http.MethodPost, "/manager/recaps/"+id+"/reject", map[string]interface{}{"reason": "angka tidak cocok"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	rejected := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "rejected", rejected["status"])
	assert.Equal(t, "angka tidak cocok", rejected["rejection_reason"])

	w = doJSON(router, http.MethodGet, "/admin/recaps/"+id+"/export", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteRecap(t *testing.T) {
	db := setupTestDB(t)
	router := setupRecapRouter(t, db)
	seedCompletedOrder(t, db, 15000, time.Now())
	id := requestRecap(t, router, map[string]interface{}{"period": "all"})

	w := doJSON(router, http.MethodDelete, "/manager/recaps/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodDelete, "/manager/recaps/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, http.MethodPost, "/manager/recaps/"+id+"/approve", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, http.MethodGet, "/admin/recaps", nil)
	assert.Empty(t, decodeBody(t, w)["data"])

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.Equal(t, int64(1), orders)
}
