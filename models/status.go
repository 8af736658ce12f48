package models

import (
	"errors"
	"strconv"
)

var ErrInvalidTransition = errors.New("transisi status tidak diizinkan")

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderPending, OrderCompleted, OrderCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// CanTransition untuk order sengaja longgar: staff boleh memindah status
// ke mana saja, termasuk completed -> pending.
func (s OrderStatus) CanTransition(to OrderStatus) error {
	if _, ok := ParseOrderStatus(string(to)); !ok {
		return ErrInvalidTransition
	}
	return nil
}

type RecapStatus string

const (
	RecapPending  RecapStatus = "pending"
	RecapApproved RecapStatus = "approved"
	RecapRejected RecapStatus = "rejected"
)

func (s RecapStatus) IsTerminal() bool {
	return s == RecapApproved || s == RecapRejected
}

// CanTransition: pending -> approved | rejected, selain itu ditolak
func (s RecapStatus) CanTransition(to RecapStatus) error {
	if s != RecapPending {
		return ErrInvalidTransition
	}
	if to != RecapApproved && to != RecapRejected {
		return ErrInvalidTransition
	}
	return nil
}

func uintToString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
