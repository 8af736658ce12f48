package models

import (
	"fmt"
	"time"
)

// Tipe pesanan
const (
	OrderTypeOnline  = "online"
	OrderTypeOffline = "offline"
)

// Metode pembayaran
const (
	PaymentCash     = "cash"
	PaymentQRIS     = "qris"
	PaymentTransfer = "transfer"
)

type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	CustomerName  string      `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone string      `gorm:"type:varchar(30);not null" json:"customer_phone"`
	OrderType     string      `gorm:"type:varchar(10);not null" json:"order_type"`
	PaymentMethod string      `gorm:"type:varchar(10);not null;default:'cash'" json:"payment_method"`
	TotalAmount   int64       `gorm:"not null;default:0" json:"total_amount"`
	Status        OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes         *string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy     *uint       `gorm:"index" json:"created_by,omitempty"`
	CreatedAt     time.Time   `gorm:"not null;index" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null" json:"updated_at"`
	OrderItems    []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
}

// NormalizePaymentMethod: kolom lama tanpa nilai dianggap cash
func NormalizePaymentMethod(method string) (string, bool) {
	switch method {
	case "":
		return PaymentCash, true
	case PaymentCash, PaymentQRIS, PaymentTransfer:
		return method, true
	}
	return "", false
}

// NotesOrDash dipakai di laporan
func (o *Order) NotesOrDash() string {
	if o.Notes == nil || *o.Notes == "" {
		return "-"
	}
	return *o.Notes
}

// OrderTypeLabel -> "Online" / "Offline"
func (o *Order) OrderTypeLabel() string {
	if o.OrderType == OrderTypeOnline {
		return "Online"
	}
	return "Offline"
}

// ItemsTotal menjumlahkan harga snapshot x qty
func (o *Order) ItemsTotal() int64 {
	var total int64
	for _, item := range o.OrderItems {
		total += item.Subtotal()
	}
	return total
}

func (o *Order) String() string {
	return fmt.Sprintf("Order #%d (%s, %s)", o.ID, o.CustomerName, o.Status)
}
