package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/yeremiapane/geprek-app/hub"
	"github.com/yeremiapane/geprek-app/models"
	"github.com/yeremiapane/geprek-app/utils"
	"gorm.io/gorm"
)

// Pilihan periode rekap
const (
	PeriodToday  = "today"
	PeriodWeek   = "week"
	PeriodMonth  = "month"
	PeriodAll    = "all"
	PeriodCustom = "custom"
)

// AllTimeStart adalah tanggal awal rekap "all"
const AllTimeStart = "2020-01-01"

type RecapRequest struct {
	Period    string `json:"period" binding:"required"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Window adalah rentang waktu rekap beserta label tanggalnya
type Window struct {
	Start       time.Time
	End         time.Time
	PeriodStart string
	PeriodEnd   string
}

func (w Window) Contains(t time.Time) bool {
	return within(t, w.Start, w.End)
}

type RecapDetail struct {
	Recap       *models.Recap  `json:"recap"`
	Orders      []models.Order `json:"orders"`
	LiveRevenue int64          `json:"live_revenue"`
	LiveOrders  int            `json:"live_orders"`
}

// RecapService menjalankan alur rekap: admin meminta, manager meninjau
type RecapService struct {
	db     *gorm.DB
	events Publisher
	loc    *time.Location
}

func NewRecapService(db *gorm.DB, events Publisher, loc *time.Location) *RecapService {
	if events == nil {
		events = NopPublisher{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &RecapService{db: db, events: events, loc: loc}
}

// ResolveWindow menerjemahkan pilihan periode menjadi rentang waktu
func ResolveWindow(req RecapRequest, now time.Time) (Window, error) {
	loc := now.Location()
	today := now.Format(models.DateLayout)
	w := WindowsAt(now)

	switch strings.ToLower(strings.TrimSpace(req.Period)) {
	case PeriodToday:
		return Window{Start: w.DayStart, End: now, PeriodStart: today, PeriodEnd: today}, nil
	case PeriodWeek:
		return Window{Start: w.WeekStart, End: now, PeriodStart: w.WeekStart.Format(models.DateLayout), PeriodEnd: today}, nil
	case PeriodMonth:
		return Window{Start: w.MonthStart, End: now, PeriodStart: w.MonthStart.Format(models.DateLayout), PeriodEnd: today}, nil
	case PeriodAll:
		start, _ := time.ParseInLocation(models.DateLayout, AllTimeStart, loc)
		return Window{Start: start, End: now, PeriodStart: AllTimeStart, PeriodEnd: today}, nil
	case PeriodCustom:
		if req.StartDate == "" || req.EndDate == "" {
			return Window{}, newValidationError("start_date", "tanggal awal dan akhir wajib diisi untuk periode custom")
		}
		start, err := time.ParseInLocation(models.DateLayout, req.StartDate, loc)
		if err != nil {
			return Window{}, newValidationError("start_date", "format tanggal harus YYYY-MM-DD")
		}
		end, err := time.ParseInLocation(models.DateLayout, req.EndDate, loc)
		if err != nil {
			return Window{}, newValidationError("end_date", "format tanggal harus YYYY-MM-DD")
		}
		if start.After(end) {
			return Window{}, newValidationError("end_date", "tanggal akhir tidak boleh sebelum tanggal awal")
		}
		return Window{Start: start, End: models.EndOfDay(end), PeriodStart: req.StartDate, PeriodEnd: req.EndDate}, nil
	}
	return Window{}, newValidationError("period", "periode harus today, week, month, all, atau custom")
}

func (s *RecapService) completedIn(ctx context.Context, w Window) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Where("status = ?", models.OrderCompleted).
		Order("created_at ASC, id ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	kept := orders[:0]
	for _, o := range orders {
		if w.Contains(o.CreatedAt.In(s.loc)) {
			kept = append(kept, o)
		}
	}
	return kept, nil
}

func sumRevenue(orders []models.Order) int64 {
	var total int64
	for _, o := range orders {
		total += o.TotalAmount
	}
	return total
}

// Request membekukan total pendapatan periode ke rekap baru berstatus pending
func (s *RecapService) Request(ctx context.Context, req RecapRequest, adminID uint, now time.Time) (*models.Recap, error) {
	period := strings.ToLower(strings.TrimSpace(req.Period))
	w, err := ResolveWindow(req, now.In(s.loc))
	if err != nil {
		return nil, err
	}

	orders, err := s.completedIn(ctx, w)
	if err != nil {
		utils.ErrorLogger.Errorf("Failed to load orders for recap: %v", err)
		return nil, persistenceError("load orders", err)
	}

	recap := &models.Recap{
		PeriodStart:  w.PeriodStart,
		PeriodEnd:    w.PeriodEnd,
		TotalRevenue: sumRevenue(orders),
		TotalOrders:  len(orders),
		Status:       models.RecapPending,
		Notes:        "Rekap " + period,
		CreatedBy:    adminID,
	}
	if err := s.db.WithContext(ctx).Create(recap).Error; err != nil {
		utils.ErrorLogger.Errorf("Failed to create recap: %v", err)
		return nil, persistenceError("create recap", err)
	}

	utils.InfoLogger.Infof("Recap #%d requested (%s..%s, %d orders, %s)",
		recap.ID, recap.PeriodStart, recap.PeriodEnd, recap.TotalOrders, utils.FormatRupiah(recap.TotalRevenue))
	s.events.Publish(ctx, NewEvent(hub.EventRecapRequested, recap.ID, recap))
	return recap, nil
}

func (s *RecapService) List(ctx context.Context) ([]models.Recap, error) {
	var recaps []models.Recap
	err := s.db.WithContext(ctx).Preload("Creator").Order("created_at DESC, id DESC").Find(&recaps).Error
	if err != nil {
		utils.ErrorLogger.Errorf("Failed to list recaps: %v", err)
		return nil, persistenceError("list recaps", err)
	}
	return recaps, nil
}

func (s *RecapService) Get(ctx context.Context, id uint) (*models.Recap, error) {
	var recap models.Recap
	err := s.db.WithContext(ctx).Preload("Creator").First(&recap, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		utils.ErrorLogger.Errorf("Failed to get recap #%d: %v", id, err)
		return nil, persistenceError("get recap", err)
	}
	return &recap, nil
}

// Review menyetujui/menolak rekap pending. Update bersyarat status=pending
// membuat review kedua gagal dengan ErrRecapNotPending.
func (s *RecapService) Review(ctx context.Context, id uint, approve bool, reason string, managerID uint) (*models.Recap, error) {
	to := models.RecapRejected
	event := hub.EventRecapRejected
	if approve {
		to = models.RecapApproved
		event = hub.EventRecapApproved
	}

	updates := map[string]interface{}{
		"status":      to,
		"approved_by": managerID,
		"updated_at":  time.Now(),
	}
	if reason = strings.TrimSpace(reason); !approve && reason != "" {
		updates["rejection_reason"] = reason
	}

	res := s.db.WithContext(ctx).Model(&models.Recap{}).
		Where("id = ? AND status = ?", id, models.RecapPending).
		Updates(updates)
	if res.Error != nil {
		utils.ErrorLogger.Errorf("Failed to review recap #%d: %v", id, res.Error)
		return nil, persistenceError("review recap", res.Error)
	}
	if res.RowsAffected == 0 {
		// tidak ada baris pending: bedakan "tidak ada" dengan "sudah diproses"
		if _, err := s.Get(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrRecapNotPending
	}

	recap, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	utils.InfoLogger.Infof("Recap #%d %s by user #%d", id, to, managerID)
	s.events.Publish(ctx, NewEvent(event, recap.ID, recap))
	return recap, nil
}

// Detail mengambil ulang pesanan selesai dalam periode rekap, hanya untuk tampilan
func (s *RecapService) Detail(ctx context.Context, id uint) (*RecapDetail, error) {
	recap, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	w, err := s.recapWindow(recap)
	if err != nil {
		return nil, err
	}
	orders, err := s.completedIn(ctx, w)
	if err != nil {
		utils.ErrorLogger.Errorf("Failed to load orders for recap #%d: %v", id, err)
		return nil, persistenceError("load orders", err)
	}
	return &RecapDetail{
		Recap:       recap,
		Orders:      orders,
		LiveRevenue: sumRevenue(orders),
		LiveOrders:  len(orders),
	}, nil
}

func (s *RecapService) recapWindow(recap *models.Recap) (Window, error) {
	start, end, err := recap.Bounds(s.loc)
	if err != nil {
		utils.ErrorLogger.Errorf("Recap #%d has malformed period: %v", recap.ID, err)
		return Window{}, persistenceError("parse recap period", err)
	}
	return Window{Start: start, End: end, PeriodStart: recap.PeriodStart, PeriodEnd: recap.PeriodEnd}, nil
}

// Export menyusun laporan penjualan, hanya untuk rekap yang sudah disetujui
func (s *RecapService) Export(ctx context.Context, id uint) (*ExportReport, error) {
	recap, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if recap.Status != models.RecapApproved {
		return nil, ErrRecapNotApproved
	}
	w, err := s.recapWindow(recap)
	if err != nil {
		return nil, err
	}
	orders, err := s.completedIn(ctx, w)
	if err != nil {
		utils.ErrorLogger.Errorf("Failed to load orders for export of recap #%d: %v", id, err)
		return nil, persistenceError("load orders", err)
	}
	return BuildReport(recap, orders, s.loc), nil
}

// Delete boleh di status apa pun, pesanan tidak tersentuh
func (s *RecapService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Recap{}, id)
	if res.Error != nil {
		utils.ErrorLogger.Errorf("Failed to delete recap #%d: %v", id, res.Error)
		return persistenceError("delete recap", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.events.Publish(ctx, NewEvent(hub.EventRecapDeleted, id, map[string]uint{"id": id}))
	return nil
}
