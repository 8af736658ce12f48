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

// MenuInput adalah record lengkap untuk create/update
type MenuInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Category    string `json:"category" binding:"required"`
	ImageURL    string `json:"image_url"`
	IsAvailable *bool  `json:"is_available"`
	SpicyLevel  int    `json:"spicy_level"`
}

func (in MenuInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return newValidationError("name", "nama menu wajib diisi")
	}
	if in.Price < 0 {
		return newValidationError("price", "harga tidak boleh negatif")
	}
	if !models.IsValidCategory(in.Category) {
		return newValidationError("category", "kategori harus main, drink, atau side")
	}
	if in.SpicyLevel < 0 || in.SpicyLevel > models.MaxSpicyLevel {
		return newValidationError("spicy_level", "level pedas harus di antara 0 dan 5")
	}
	return nil
}

func (in MenuInput) available() bool {
	return in.IsAvailable == nil || *in.IsAvailable
}

type MenuService struct {
	db     *gorm.DB
	cache  *MenuCache
	events Publisher
}

func NewMenuService(db *gorm.DB, cache *MenuCache, events Publisher) *MenuService {
	if events == nil {
		events = NopPublisher{}
	}
	return &MenuService{db: db, cache: cache, events: events}
}

// List semua menu untuk admin, urut kategori lalu nama
func (s *MenuService) List(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := s.db.WithContext(ctx).Order("category ASC, name ASC").Find(&items).Error; err != nil {
		utils.ErrorLogger.Errorf("Failed to list menu: %v", err)
		return nil, persistenceError("list menu", err)
	}
	return items, nil
}

// ListAvailable untuk pelanggan, hanya menu is_available
func (s *MenuService) ListAvailable(ctx context.Context) ([]models.MenuItem, error) {
	if items, ok := s.cache.Get(ctx); ok {
		return items, nil
	}
	var items []models.MenuItem
	err := s.db.WithContext(ctx).
		Where("is_available = ?", true).
		Order("category ASC, name ASC").
		Find(&items).Error
	if err != nil {
		utils.ErrorLogger.Errorf("Failed to list available menu: %v", err)
		return nil, persistenceError("list menu", err)
	}
	s.cache.Set(ctx, items)
	return items, nil
}

func (s *MenuService) Get(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		utils.ErrorLogger.Errorf("Failed to get menu #%d: %v", id, err)
		return nil, persistenceError("get menu", err)
	}
	return &item, nil
}

func (s *MenuService) Create(ctx context.Context, in MenuInput) (*models.MenuItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	item := &models.MenuItem{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		IsAvailable: in.available(),
		SpicyLevel:  in.SpicyLevel,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		// false tertimpa default kolom saat insert
		if !item.IsAvailable {
			return tx.Model(item).Update("is_available", false).Error
		}
		return nil
	})
	if err != nil {
		utils.ErrorLogger.Errorf("Failed to create menu %q: %v", item.Name, err)
		return nil, persistenceError("create menu", err)
	}
	item.IsAvailable = in.available()
	s.changed(ctx, item)
	return item, nil
}

// Update mengganti seluruh field menu
func (s *MenuService) Update(ctx context.Context, id uint, in MenuInput) (*models.MenuItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Model(item).Updates(map[string]interface{}{
		"name":         strings.TrimSpace(in.Name),
		"description":  in.Description,
		"price":        in.Price,
		"category":     in.Category,
		"image_url":    in.ImageURL,
		"is_available": in.available(),
		"spicy_level":  in.SpicyLevel,
		"updated_at":   time.Now(),
	}).Error
	if err != nil {
		utils.ErrorLogger.Errorf("Failed to update menu #%d: %v", id, err)
		return nil, persistenceError("update menu", err)
	}
	item, err = s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.changed(ctx, item)
	return item, nil
}

func (s *MenuService) SetAvailability(ctx context.Context, id uint, available bool) (*models.MenuItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(item).Update("is_available", available).Error; err != nil {
		utils.ErrorLogger.Errorf("Failed to toggle menu #%d availability: %v", id, err)
		return nil, persistenceError("update menu", err)
	}
	item.IsAvailable = available
	s.changed(ctx, item)
	return item, nil
}

// Delete tanpa proteksi: item pesanan lama tetap menyimpan snapshot harga
func (s *MenuService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.MenuItem{}, id)
	if res.Error != nil {
		utils.ErrorLogger.Errorf("Failed to delete menu #%d: %v", id, res.Error)
		return persistenceError("delete menu", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.changed(ctx, &models.MenuItem{ID: id})
	return nil
}

func (s *MenuService) changed(ctx context.Context, item *models.MenuItem) {
	s.cache.Invalidate(ctx)
	s.events.Publish(ctx, NewEvent(hub.EventMenuUpdated, item.ID, item))
}
