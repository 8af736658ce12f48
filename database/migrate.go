package database

import (
	"github.com/yeremiapane/geprek-app/models"
	"github.com/yeremiapane/geprek-app/utils"
	"gorm.io/gorm"
)

// Models yang dimigrasi saat start
var Models = []interface{}{
	&models.AdminUser{},
	&models.MenuItem{},
	&models.Order{},
	&models.OrderItem{},
	&models.Recap{},
	&models.CartSession{},
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return err
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}
