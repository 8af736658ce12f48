package models

import "time"

const DateLayout = "2006-01-02"

type Recap struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	PeriodStart     string      `gorm:"type:varchar(10);not null" json:"period_start"`
	PeriodEnd       string      `gorm:"type:varchar(10);not null" json:"period_end"`
	TotalRevenue    int64       `gorm:"not null;default:0" json:"total_revenue"`
	TotalOrders     int         `gorm:"not null;default:0" json:"total_orders"`
	Status          RecapStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes           string      `gorm:"type:text" json:"notes"`
	RejectionReason *string     `gorm:"type:text" json:"rejection_reason,omitempty"`
	CreatedBy       uint        `gorm:"not null" json:"created_by"`
	Creator         *AdminUser  `gorm:"foreignKey:CreatedBy" json:"created_by_user,omitempty"`
	ApprovedBy      *uint       `json:"approved_by,omitempty"`
	CreatedAt       time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"not null" json:"updated_at"`
}

// Bounds mengembalikan [awal hari period_start, akhir hari period_end] di lokasi loc
func (r *Recap) Bounds(loc *time.Location) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(DateLayout, r.PeriodStart, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.ParseInLocation(DateLayout, r.PeriodEnd, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, EndOfDay(end), nil
}

// EndOfDay -> 23:59:59.999 pada tanggal t
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// StartOfDay -> 00:00 pada tanggal t
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
