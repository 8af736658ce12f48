package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/geprek-app/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, Migrate(db))
	return db
}

func TestSeedMenuOnlyOnce(t *testing.T) {
	db := setupDB(t)

	n, err := SeedMenu(db)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultMenu), n)

	n, err = SeedMenu(db)
	require.NoError(t, err)
	assert.Zero(t, n)

	var original models.MenuItem
	require.NoError(t, db.Where("name = ?", "Ayam Geprek Original").First(&original).Error)
	assert.Equal(t, int64(15000), original.Price)
	assert.Equal(t, models.CategoryMain, original.Category)
	assert.Zero(t, DefaultMenu[0].ID, "defaults are copied before insert")
}

func TestSeedAdmin(t *testing.T) {
	db := setupDB(t)

	require.NoError(t, SeedAdmin(db, "", "", "", models.RoleAdmin))
	require.NoError(t, SeedAdmin(db, "owner@geprek.id", "rahasia", "Owner", models.RoleManager))
	require.NoError(t, SeedAdmin(db, "owner@geprek.id", "lain", "Owner", models.RoleManager))

	var users []models.AdminUser
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, models.RoleManager, users[0].Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].Password), []byte("rahasia")))
}
