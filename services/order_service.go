package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/yeremiapane/geprek-app/cart"
	"github.com/yeremiapane/geprek-app/hub"
	"github.com/yeremiapane/geprek-app/models"
	"github.com/yeremiapane/geprek-app/utils"
	"gorm.io/gorm"
)

type CustomerInfo struct {
	Name          string
	Phone         string
	Notes         string
	PaymentMethod string
}

const MaxLineQuantity = 99

// LineRequest dipakai klien API yang mengirim item langsung tanpa session keranjang
type LineRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required"`
	SpicyLevel int  `json:"spicy_level"`
}

// OrderService menangani pembuatan dan pengelolaan pesanan
type OrderService struct {
	db     *gorm.DB
	events Publisher
}

func NewOrderService(db *gorm.DB, events Publisher) *OrderService {
	if events == nil {
		events = NopPublisher{}
	}
	return &OrderService{db: db, events: events}
}

// SubmitOnline: pesanan pelanggan, status awal pending
func (s *OrderService) SubmitOnline(ctx context.Context, c *cart.Cart, info CustomerInfo) (*models.Order, error) {
	return s.submit(ctx, c, info, models.OrderTypeOnline, models.OrderPending, nil)
}

// SubmitOffline: pesanan yang diinput kasir dianggap sudah selesai
func (s *OrderService) SubmitOffline(ctx context.Context, c *cart.Cart, info CustomerInfo, staffID uint) (*models.Order, error) {
	var createdBy *uint
	if staffID != 0 {
		createdBy = &staffID
	}
	return s.submit(ctx, c, info, models.OrderTypeOffline, models.OrderCompleted, createdBy)
}

func (s *OrderService) submit(ctx context.Context, c *cart.Cart, info CustomerInfo, orderType string, status models.OrderStatus, createdBy *uint) (*models.Order, error) {
	if c == nil || c.IsEmpty() {
		return nil, validationFrom("items", ErrEmptyCart)
	}
	name := strings.TrimSpace(info.Name)
	if name == "" {
		return nil, newValidationError("customer_name", "nama pelanggan wajib diisi")
	}
	phone := strings.TrimSpace(info.Phone)
	if phone == "" {
		return nil, newValidationError("customer_phone", "nomor telepon wajib diisi")
	}
	method, ok := models.NormalizePaymentMethod(strings.ToLower(strings.TrimSpace(info.PaymentMethod)))
	if !ok {
		return nil, newValidationError("payment_method", "metode pembayaran harus cash, qris, atau transfer")
	}

	order := &models.Order{
		CustomerName:  name,
		CustomerPhone: phone,
		OrderType:     orderType,
		PaymentMethod: method,
		TotalAmount:   c.TotalPrice(),
		Status:        status,
		CreatedBy:     createdBy,
	}
	if notes := strings.TrimSpace(info.Notes); notes != "" {
		order.Notes = &notes
	}

	lines := c.Lines()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("OrderItems").Create(order).Error; err != nil {
			return err
		}
		items := make([]models.OrderItem, 0, len(lines))
		for _, l := range lines {
			items = append(items, models.OrderItem{
				OrderID:    order.ID,
				MenuItemID: l.MenuItem.ID,
				Quantity:   l.Quantity,
				Price:      l.MenuItem.Price,
				SpicyLevel: l.SpicyLevel,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		order.OrderItems = items
		return nil
	})
	if err != nil {
		utils.ErrorLogger.Errorf("Failed to submit %s order for %s: %v", orderType, name, err)
		return nil, persistenceError("submit order", err)
	}

	c.Clear()
	utils.InfoLogger.Infof("Order #%d created (%s, total %s)", order.ID, orderType, utils.FormatRupiah(order.TotalAmount))
	s.events.Publish(ctx, NewEvent(hub.EventOrderCreated, order.ID, order))
	return order, nil
}

// BuildCart menyusun keranjang dari harga katalog saat ini
func (s *OrderService) BuildCart(ctx context.Context, reqs []LineRequest) (*cart.Cart, error) {
	if len(reqs) == 0 {
		return nil, validationFrom("items", ErrEmptyCart)
	}

	ids := make([]uint, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.MenuItemID)
	}
	var menus []models.MenuItem
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&menus).Error; err != nil {
		utils.ErrorLogger.Errorf("Failed to load menu items for cart: %v", err)
		return nil, persistenceError("load menu items", err)
	}
	byID := make(map[uint]models.MenuItem, len(menus))
	for _, m := range menus {
		byID[m.ID] = m
	}

	c := cart.New()
	for _, r := range reqs {
		m, ok := byID[r.MenuItemID]
		if !ok {
			return nil, newValidationError("menu_item_id", "menu #"+uintString(r.MenuItemID)+" tidak ditemukan")
		}
		if r.Quantity <= 0 || r.Quantity > MaxLineQuantity {
			return nil, newValidationError("quantity", "jumlah harus di antara 1 dan 99")
		}
		for i := 0; i < r.Quantity; i++ {
			if err := c.AddMenuItem(m, r.SpicyLevel); err != nil {
				if errors.Is(err, cart.ErrInvalidSpicy) {
					return nil, validationFrom("spicy_level", err)
				}
				return nil, validationFrom("menu_item_id", err)
			}
		}
	}
	return c, nil
}

// List: terbaru dulu, lengkap dengan item dan menu
func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("OrderItems.MenuItem").
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		utils.ErrorLogger.Errorf("Failed to list orders: %v", err)
		return nil, persistenceError("list orders", err)
	}
	return orders, nil
}

// Snapshot semua pesanan tanpa relasi, untuk statistik
func (s *OrderService) Snapshot(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&orders).Error; err != nil {
		utils.ErrorLogger.Errorf("Failed to load orders for stats: %v", err)
		return nil, persistenceError("load orders", err)
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("OrderItems.MenuItem").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		utils.ErrorLogger.Errorf("Failed to get order #%d: %v", id, err)
		return nil, persistenceError("get order", err)
	}
	return &order, nil
}

// UpdateStatus mengizinkan perpindahan ke status valid mana pun
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	to, ok := models.ParseOrderStatus(status)
	if !ok {
		return nil, validationFrom("status", ErrInvalidTransition)
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.Status.CanTransition(to); err != nil {
		return nil, validationFrom("status", err)
	}

	err = s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": to, "updated_at": time.Now()}).Error
	if err != nil {
		utils.ErrorLogger.Errorf("Failed to update order #%d status: %v", id, err)
		return nil, persistenceError("update order status", err)
	}
	order.Status = to

	utils.InfoLogger.Infof("Order #%d status -> %s", id, to)
	s.events.Publish(ctx, NewEvent(hub.EventOrderUpdated, order.ID, order))
	return order, nil
}

// Delete menghapus pesanan beserta item-itemnya
func (s *OrderService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Order{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		utils.ErrorLogger.Errorf("Failed to delete order #%d: %v", id, err)
		return persistenceError("delete order", err)
	}
	s.events.Publish(ctx, NewEvent(hub.EventOrderDeleted, id, map[string]uint{"id": id}))
	return nil
}
