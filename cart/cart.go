// Package cart menyimpan keranjang belanja pelanggan di memori.
//
// Identitas baris adalah pasangan (menu item, level pedas): menu yang sama
// dengan level pedas berbeda menjadi dua baris. Remove dan UpdateQuantity
// bekerja per menu item sehingga menyentuh semua level pedas sekaligus.
package cart

import (
	"errors"

	"github.com/yeremiapane/geprek-app/models"
)

var (
	ErrItemUnavailable = errors.New("menu sedang tidak tersedia")
	ErrInvalidSpicy    = errors.New("level pedas harus di antara 0 dan 5")
)

// MenuItemRef adalah snapshot menu saat dimasukkan ke keranjang
type MenuItemRef struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Category string `json:"category"`
}

func RefFromMenu(m models.MenuItem) MenuItemRef {
	return MenuItemRef{ID: m.ID, Name: m.Name, Price: m.Price, Category: m.Category}
}

type Line struct {
	MenuItem   MenuItemRef `json:"menu_item"`
	Quantity   int         `json:"quantity"`
	SpicyLevel int         `json:"spicy_level"`
}

func (l Line) Subtotal() int64 {
	return l.MenuItem.Price * int64(l.Quantity)
}

type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// FromLines membangun ulang keranjang, mis. dari session
func FromLines(lines []Line) *Cart {
	c := &Cart{}
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		c.lines = append(c.lines, l)
	}
	return c
}

// Lines mengembalikan salinan baris keranjang
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Add menambah qty 1 pada baris (item, spicyLevel) atau membuat baris baru
func (c *Cart) Add(item MenuItemRef, spicyLevel int) {
	for i := range c.lines {
		if c.lines[i].MenuItem.ID == item.ID && c.lines[i].SpicyLevel == spicyLevel {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, Line{MenuItem: item, Quantity: 1, SpicyLevel: spicyLevel})
}

// Remove menghapus semua baris untuk menu ini, apa pun level pedasnya
func (c *Cart) Remove(menuItemID uint) {
	kept := c.lines[:0]
	for _, l := range c.lines {
		if l.MenuItem.ID != menuItemID {
			kept = append(kept, l)
		}
	}
	c.lines = kept
}

// UpdateQuantity: qty <= 0 sama dengan Remove
func (c *Cart) UpdateQuantity(menuItemID uint, quantity int) {
	if quantity <= 0 {
		c.Remove(menuItemID)
		return
	}
	for i := range c.lines {
		if c.lines[i].MenuItem.ID == menuItemID {
			c.lines[i].Quantity = quantity
		}
	}
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

func (c *Cart) TotalItems() int {
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

func ValidSpicyLevel(level int) bool {
	return level >= 0 && level <= models.MaxSpicyLevel
}

// AddMenuItem memeriksa ketersediaan dan level pedas sebelum Add.
// Menu selain kategori main selalu masuk dengan level 0.
func (c *Cart) AddMenuItem(m models.MenuItem, spicyLevel int) error {
	if !m.IsAvailable {
		return ErrItemUnavailable
	}
	if !ValidSpicyLevel(spicyLevel) {
		return ErrInvalidSpicy
	}
	if !m.SpicyApplies() {
		spicyLevel = 0
	}
	c.Add(RefFromMenu(m), spicyLevel)
	return nil
}
