package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yeremiapane/geprek-app/cart"
	"github.com/yeremiapane/geprek-app/models"
	"github.com/yeremiapane/geprek-app/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const cartKeyPrefix = "geprek:cart:"

// CartStore menyimpan baris keranjang per ID session.
// ID yang belum pernah disimpan menghasilkan keranjang kosong.
type CartStore interface {
	Load(ctx context.Context, id string) ([]cart.Line, error)
	Save(ctx context.Context, id string, lines []cart.Line) error
	Delete(ctx context.Context, id string) error
}

// NewCartStore memakai Redis jika tersedia, selain itu tabel cart_sessions
func NewCartStore(db *gorm.DB, rdb *redis.Client, ttl time.Duration) CartStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if rdb != nil {
		return &RedisCartStore{rdb: rdb, ttl: ttl}
	}
	return &DBCartStore{db: db}
}

type RedisCartStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCartStore(rdb *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{rdb: rdb, ttl: ttl}
}

func (s *RedisCartStore) Load(ctx context.Context, id string) ([]cart.Line, error) {
	raw, err := s.rdb.Get(ctx, cartKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		utils.ErrorLogger.Errorf("Failed to read cart %s: %v", id, err)
		return nil, persistenceError("load cart", err)
	}
	return decodeLines(id, raw), nil
}

// Save memperpanjang TTL setiap kali keranjang berubah
func (s *RedisCartStore) Save(ctx context.Context, id string, lines []cart.Line) error {
	if len(lines) == 0 {
		return s.Delete(ctx, id)
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, cartKeyPrefix+id, raw, s.ttl).Err(); err != nil {
		utils.ErrorLogger.Errorf("Failed to save cart %s: %v", id, err)
		return persistenceError("save cart", err)
	}
	return nil
}

func (s *RedisCartStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, cartKeyPrefix+id).Err(); err != nil {
		utils.ErrorLogger.Errorf("Failed to delete cart %s: %v", id, err)
		return persistenceError("delete cart", err)
	}
	return nil
}

type DBCartStore struct {
	db *gorm.DB
}

func NewDBCartStore(db *gorm.DB) *DBCartStore {
	return &DBCartStore{db: db}
}

func (s *DBCartStore) Load(ctx context.Context, id string) ([]cart.Line, error) {
	var row models.CartSession
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		utils.ErrorLogger.Errorf("Failed to read cart %s: %v", id, err)
		return nil, persistenceError("load cart", err)
	}
	return decodeLines(id, []byte(row.Lines)), nil
}

func (s *DBCartStore) Save(ctx context.Context, id string, lines []cart.Line) error {
	if len(lines) == 0 {
		return s.Delete(ctx, id)
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	row := models.CartSession{ID: id, Lines: string(raw), UpdatedAt: time.Now()}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"lines", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		utils.ErrorLogger.Errorf("Failed to save cart %s: %v", id, err)
		return persistenceError("save cart", err)
	}
	return nil
}

func (s *DBCartStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&models.CartSession{}, "id = ?", id).Error; err != nil {
		utils.ErrorLogger.Errorf("Failed to delete cart %s: %v", id, err)
		return persistenceError("delete cart", err)
	}
	return nil
}

// Purge menghapus keranjang yang tidak disentuh sejak before
func (s *DBCartStore) Purge(ctx context.Context, before time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("updated_at < ?", before).Delete(&models.CartSession{})
	if res.Error != nil {
		utils.ErrorLogger.Errorf("Failed to purge carts: %v", res.Error)
		return 0, persistenceError("purge carts", res.Error)
	}
	return res.RowsAffected, nil
}

// payload rusak dianggap keranjang kosong
func decodeLines(id string, raw []byte) []cart.Line {
	var lines []cart.Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		utils.ErrorLogger.Errorf("Cart %s holds invalid payload: %v", id, err)
		return nil
	}
	return lines
}
