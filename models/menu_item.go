package models

import "time"

// Kategori menu
const (
	CategoryMain  = "main"
	CategoryDrink = "drink"
	CategorySide  = "side"
)

const MaxSpicyLevel = 5

type MenuItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       int64     `gorm:"not null" json:"price"`
	Category    string    `gorm:"type:varchar(10);not null;index:idx_menu_category_name" json:"category"`
	ImageURL    string    `gorm:"type:varchar(255)" json:"image_url"`
	IsAvailable bool      `gorm:"not null;default:true" json:"is_available"`
	SpicyLevel  int       `gorm:"not null;default:0" json:"spicy_level"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// IsValidCategory cek kategori yang dikenal
func IsValidCategory(category string) bool {
	switch category {
	case CategoryMain, CategoryDrink, CategorySide:
		return true
	}
	return false
}

// SpicyApplies: level pedas hanya berarti untuk menu utama
func (m MenuItem) SpicyApplies() bool {
	return m.Category == CategoryMain
}
