package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/geprek-app/models"
)

func order(total int64, status models.OrderStatus, at time.Time) models.Order {
	return models.Order{TotalAmount: total, Status: status, CreatedAt: at}
}

func TestComputeStatsWindows(t *testing.T) {
	// Jumat 10 Mei 2024, 15:00 WIB
	now := time.Date(2024, 5, 10, 15, 0, 0, 0, wib)

	orders := []models.Order{
		order(20000, models.OrderCompleted, now.Add(-2*time.Hour)),                 // hari ini
		order(15000, models.OrderCompleted, time.Date(2024, 5, 10, 0, 5, 0, 0, wib)), // hari ini, dini hari
		order(10000, models.OrderPending, now.Add(-time.Hour)),                     // hari ini, pending
		order(30000, models.OrderCompleted, now.Add(-3*24*time.Hour)),              // minggu & bulan
		order(40000, models.OrderCompleted, now.Add(-8*24*time.Hour)),              // bulan saja (2 Mei)
		order(50000, models.OrderCompleted, time.Date(2024, 4, 30, 12, 0, 0, 0, wib)), // total saja
		order(5000, models.OrderCancelled, now.Add(-30*time.Minute)),               // hari ini, batal
	}

	st := ComputeStats(orders, now)
	assert.Equal(t, int64(155000), st.TotalRevenue)
	assert.Equal(t, int64(35000), st.TodayRevenue)
	assert.Equal(t, int64(65000), st.WeeklyRevenue)
	assert.Equal(t, int64(105000), st.MonthlyRevenue)

	assert.Equal(t, 7, st.TotalOrders)
	assert.Equal(t, 4, st.TodayOrders, "order counts include every status")
	assert.Equal(t, 5, st.WeeklyOrders)
	assert.Equal(t, 6, st.MonthlyOrders)
	assert.Equal(t, 1, st.PendingOrders)
	assert.Equal(t, 5, st.CompletedOrders)
	assert.Equal(t, int64(31000), st.AvgOrderValue)
}

func TestComputeStatsWithoutCompletedOrders(t *testing.T) {
	now := time.Date(2024, 5, 10, 15, 0, 0, 0, wib)
	st := ComputeStats([]models.Order{order(10000, models.OrderPending, now)}, now)
	assert.Zero(t, st.AvgOrderValue)
	assert.Zero(t, st.TotalRevenue)
	assert.Equal(t, 1, st.PendingOrders)

	empty := ComputeStats(nil, now)
	assert.Zero(t, empty.AvgOrderValue)
}

func TestComputeStatsUsesUTCStoredTimes(t *testing.T) {
	now := time.Date(2024, 5, 10, 6, 0, 0, 0, wib)
	// 9 Mei 22:30 UTC = 10 Mei 05:30 WIB
	stored := time.Date(2024, 5, 9, 22, 30, 0, 0, time.UTC)
	st := ComputeStats([]models.Order{order(12000, models.OrderCompleted, stored)}, now)
	assert.Equal(t, int64(12000), st.TodayRevenue)
}

func TestRevenueSeries(t *testing.T) {
	now := time.Date(2024, 5, 10, 15, 0, 0, 0, wib)
	orders := []models.Order{
		order(20000, models.OrderCompleted, now.Add(-time.Hour)),
		order(10000, models.OrderPending, now.Add(-2*time.Hour)),
		order(99000, models.OrderCancelled, now.Add(-3*time.Hour)),
		order(7000, models.OrderCompleted, time.Date(2024, 5, 4, 9, 0, 0, 0, wib)),
		order(8000, models.OrderCompleted, time.Date(2024, 5, 3, 9, 0, 0, 0, wib)), // di luar 7 hari
	}

	series := RevenueSeries(orders, now, 7)
	require.Len(t, series, 7)
	assert.Equal(t, "2024-05-04", series[0].Date)
	assert.Equal(t, "4 Mei", series[0].Label)
	assert.Equal(t, int64(7000), series[0].Revenue)
	assert.Equal(t, "2024-05-10", series[6].Date)
	assert.Equal(t, int64(30000), series[6].Revenue)
	for _, p := range series[1:6] {
		assert.Zero(t, p.Revenue)
	}

	assert.Nil(t, RevenueSeries(orders, now, 0))
}
