package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/geprek-app/cart"
	"github.com/yeremiapane/geprek-app/models"
)

func manyLines(n int) []cart.Line {
	lines := make([]cart.Line, 0, n)
	for i := 0; i < n; i++ {
		lines = append(lines, cart.Line{
			MenuItem:   cart.MenuItemRef{ID: uint(i/6 + 1), Name: fmt.Sprintf("Ayam Geprek Varian %d", i/6+1), Price: 15000, Category: models.CategoryMain},
			Quantity:   1,
			SpicyLevel: i % 6,
		})
	}
	return lines
}

func exerciseCartStore(t *testing.T, store CartStore) {
	ctx := context.Background()

	lines, err := store.Load(ctx, "tidak-ada")
	require.NoError(t, err)
	assert.Empty(t, lines)

	require.NoError(t, store.Save(ctx, "cart-1", manyLines(40)))
	lines, err = store.Load(ctx, "cart-1")
	require.NoError(t, err)
	require.Len(t, lines, 40)
	assert.Equal(t, 5, lines[35].SpicyLevel)

	require.NoError(t, store.Save(ctx, "cart-1", manyLines(2)))
	lines, err = store.Load(ctx, "cart-1")
	require.NoError(t, err)
	assert.Len(t, lines, 2)

	// keranjang kosong menghapus entri
	require.NoError(t, store.Save(ctx, "cart-1", nil))
	lines, err = store.Load(ctx, "cart-1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestDBCartStore(t *testing.T) {
	db := newTestDB(t)
	store := NewDBCartStore(db)
	exerciseCartStore(t, store)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "lama", manyLines(1)))
	require.NoError(t, store.Save(ctx, "baru", manyLines(1)))
	require.NoError(t, db.Model(&models.CartSession{}).Where("id = ?", "lama").
		Update("updated_at", time.Now().Add(-48*time.Hour)).Error)

	removed, err := store.Purge(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	lines, err := store.Load(ctx, "baru")
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestRedisCartStore(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	store := NewRedisCartStore(rdb, time.Hour)
	exerciseCartStore(t, store)

	require.NoError(t, store.Save(context.Background(), "cart-2", manyLines(3)))
	assert.Equal(t, time.Hour, mr.TTL(cartKeyPrefix+"cart-2"))
	mr.FastForward(2 * time.Hour)
	lines, err := store.Load(context.Background(), "cart-2")
	require.NoError(t, err)
	assert.Empty(t, lines)

	mr.Close()
	_, err = store.Load(context.Background(), "cart-2")
	assert.True(t, IsPersistence(err))
}

func TestNewCartStorePicksBackend(t *testing.T) {
	db := newTestDB(t)
	assert.IsType(t, &DBCartStore{}, NewCartStore(db, nil, 0))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	assert.IsType(t, &RedisCartStore{}, NewCartStore(db, rdb, 0))
}
