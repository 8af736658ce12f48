package models

import "time"

// CartSession menyimpan isi keranjang pelanggan di server.
// Cookie hanya membawa ID-nya.
type CartSession struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Lines     string    `gorm:"type:text;not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null;index" json:"updated_at"`
}
