package models

import (
	"time"
)

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	// Referensi lemah: menu boleh dihapus,
	// item pesanan tetap menyimpan harga & level pedas snapshot.
	MenuItemID uint      `gorm:"not null;index" json:"menu_item_id"`
	MenuItem   *MenuItem `gorm:"foreignKey:MenuItemID;references:ID" json:"menu_item,omitempty"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	Price      int64     `gorm:"not null" json:"price"`
	SpicyLevel int       `gorm:"not null;default:0" json:"spicy_level"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (oi OrderItem) Subtotal() int64 {
	return oi.Price * int64(oi.Quantity)
}

// DisplayName fallback ke ID jika menu sudah tidak ada
func (oi OrderItem) DisplayName() string {
	if oi.MenuItem != nil && oi.MenuItem.ID != 0 {
		return oi.MenuItem.Name
	}
	return "Menu #" + uintToString(oi.MenuItemID)
}
