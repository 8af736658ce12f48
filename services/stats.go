package services

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/geprek-app/models"
)

type DashboardStats struct {
	TotalRevenue    int64 `json:"totalRevenue"`
	TodayRevenue    int64 `json:"todayRevenue"`
	WeeklyRevenue   int64 `json:"weeklyRevenue"`
	MonthlyRevenue  int64 `json:"monthlyRevenue"`
	TotalOrders     int   `json:"totalOrders"`
	TodayOrders     int   `json:"todayOrders"`
	WeeklyOrders    int   `json:"weeklyOrders"`
	MonthlyOrders   int   `json:"monthlyOrders"`
	PendingOrders   int   `json:"pendingOrders"`
	CompletedOrders int   `json:"completedOrders"`
	AvgOrderValue   int64 `json:"avgOrderValue"`
}

// Windows berisi batas awal periode relatif terhadap now (lokasi now dipakai apa adanya)
type Windows struct {
	DayStart   time.Time
	WeekStart  time.Time
	MonthStart time.Time
	Now        time.Time
}

// WindowsAt: hari = hari kalender, minggu = 7x24 jam bergulir, bulan = bulan kalender berjalan
func WindowsAt(now time.Time) Windows {
	y, m, _ := now.Date()
	return Windows{
		DayStart:   models.StartOfDay(now),
		WeekStart:  now.Add(-7 * 24 * time.Hour),
		MonthStart: time.Date(y, m, 1, 0, 0, 0, 0, now.Location()),
		Now:        now,
	}
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// ComputeStats menghitung ulang statistik dashboard dari seluruh pesanan
func ComputeStats(orders []models.Order, now time.Time) DashboardStats {
	w := WindowsAt(now)
	var st DashboardStats
	st.TotalOrders = len(orders)

	for _, o := range orders {
		created := o.CreatedAt.In(now.Location())
		inDay := within(created, w.DayStart, now)
		inWeek := within(created, w.WeekStart, now)
		inMonth := within(created, w.MonthStart, now)

		if inDay {
			st.TodayOrders++
		}
		if inWeek {
			st.WeeklyOrders++
		}
		if inMonth {
			st.MonthlyOrders++
		}

		switch o.Status {
		case models.OrderPending:
			st.PendingOrders++
		case models.OrderCompleted:
			st.CompletedOrders++
			st.TotalRevenue += o.TotalAmount
			if inDay {
				st.TodayRevenue += o.TotalAmount
			}
			if inWeek {
				st.WeeklyRevenue += o.TotalAmount
			}
			if inMonth {
				st.MonthlyRevenue += o.TotalAmount
			}
		}
	}

	if st.CompletedOrders > 0 {
		st.AvgOrderValue = decimal.NewFromInt(st.TotalRevenue).
			Div(decimal.NewFromInt(int64(st.CompletedOrders))).
			Round(0).IntPart()
	}
	return st
}

type RevenuePoint struct {
	Date    string `json:"date"`
	Label   string `json:"label"`
	Revenue int64  `json:"revenue"`
}

var shortMonths = [...]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}

// RevenueSeries: total harian untuk `days` hari terakhir (terlama dulu), pesanan batal tidak dihitung
func RevenueSeries(orders []models.Order, now time.Time, days int) []RevenuePoint {
	if days <= 0 {
		return nil
	}
	loc := now.Location()
	points := make([]RevenuePoint, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		d := models.StartOfDay(now).AddDate(0, 0, i-days+1)
		key := d.Format(models.DateLayout)
		points[i] = RevenuePoint{
			Date:  key,
			Label: d.Format("2") + " " + shortMonths[d.Month()-1],
		}
		index[key] = i
	}

	for _, o := range orders {
		if o.Status == models.OrderCancelled {
			continue
		}
		key := o.CreatedAt.In(loc).Format(models.DateLayout)
		if i, ok := index[key]; ok {
			points[i].Revenue += o.TotalAmount
		}
	}
	return points
}
