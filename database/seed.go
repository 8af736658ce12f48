package database

import (
	"github.com/yeremiapane/geprek-app/models"
	"github.com/yeremiapane/geprek-app/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultMenu untuk instalasi baru
var DefaultMenu = []models.MenuItem{
	{Name: "Ayam Geprek Original", Description: "Ayam goreng tepung digeprek dengan sambal bawang", Price: 15000, Category: models.CategoryMain, IsAvailable: true},
	{Name: "Ayam Geprek Keju", Description: "Ayam geprek dengan lelehan keju mozarella", Price: 20000, Category: models.CategoryMain, IsAvailable: true},
	{Name: "Ayam Geprek Sambal Matah", Description: "Ayam geprek dengan sambal matah khas Bali", Price: 18000, Category: models.CategoryMain, IsAvailable: true},
	{Name: "Nasi Putih", Price: 4000, Category: models.CategorySide, IsAvailable: true},
	{Name: "Tahu Tempe Goreng", Price: 5000, Category: models.CategorySide, IsAvailable: true},
	{Name: "Es Teh Manis", Price: 5000, Category: models.CategoryDrink, IsAvailable: true},
	{Name: "Es Jeruk", Price: 7000, Category: models.CategoryDrink, IsAvailable: true},
}

// SeedMenu mengisi menu default hanya jika tabel masih kosong
func SeedMenu(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Model(&models.MenuItem{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	items := make([]models.MenuItem, len(DefaultMenu))
	copy(items, DefaultMenu)
	if err := db.Create(&items).Error; err != nil {
		return 0, err
	}
	utils.InfoLogger.Printf("Seeded %d menu items", len(items))
	return len(items), nil
}

// SeedAdmin membuat akun awal jika email belum terdaftar
func SeedAdmin(db *gorm.DB, email, password, fullName string, role models.Role) error {
	if email == "" || password == "" {
		return nil
	}
	var count int64
	if err := db.Model(&models.AdminUser{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := models.AdminUser{Email: email, Password: string(hashed), FullName: fullName, Role: role}
	if err := db.Create(&user).Error; err != nil {
		return err
	}
	utils.InfoLogger.Printf("Seeded %s account %s", role, email)
	return nil
}
