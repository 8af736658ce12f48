package controllers

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/geprek-app/services"
	"github.com/yeremiapane/geprek-app/utils"
)

const defaultSeriesDays = 7

type DashboardController struct {
	Orders   *services.OrderService
	Location *time.Location
}

func NewDashboardController(orders *services.OrderService, loc *time.Location) *DashboardController {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardController{Orders: orders, Location: loc}
}

func (dc *DashboardController) now() time.Time {
	return time.Now().In(dc.Location)
}

// GetStats dihitung ulang dari seluruh pesanan setiap dipanggil
func (dc *DashboardController) GetStats(c *gin.Context) {
	orders, err := dc.Orders.Snapshot(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", services.ComputeStats(orders, dc.now()))
}

func (dc *DashboardController) series(c *gin.Context) ([]services.RevenuePoint, bool) {
	days, err := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(defaultSeriesDays)))
	if err != nil || days < 1 || days > 31 {
		days = defaultSeriesDays
	}
	orders, err := dc.Orders.Snapshot(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return nil, false
	}
	return services.RevenueSeries(orders, dc.now(), days), true
}

func (dc *DashboardController) GetRevenueSeries(c *gin.Context) {
	points, ok := dc.series(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Revenue series", points)
}

// GetRevenueChart -> PNG grafik pendapatan
func (dc *DashboardController) GetRevenueChart(c *gin.Context) {
	points, ok := dc.series(c)
	if !ok {
		return
	}
	png, err := services.RenderRevenueChart(points)
	if err != nil {
		utils.ErrorLogger.Errorf("Failed to render revenue chart: %v", err)
		respondServiceError(c, err)
		return
	}
	c.DataFromReader(http.StatusOK, int64(len(png)), "image/png", bytes.NewReader(png), nil)
}
