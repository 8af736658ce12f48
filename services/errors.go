package services

import (
	"errors"
	"fmt"

	"github.com/yeremiapane/geprek-app/cart"
	"github.com/yeremiapane/geprek-app/models"
)

// Pesan umum untuk kegagalan penyimpanan; detail asli hanya masuk log
const GenericPersistenceMessage = "Terjadi kesalahan pada server, silakan coba lagi"

var (
	ErrNotFound           = errors.New("data tidak ditemukan")
	ErrEmptyCart          = errors.New("keranjang masih kosong")
	ErrRecapNotPending    = errors.New("rekap sudah diproses")
	ErrRecapNotApproved   = errors.New("rekap belum disetujui manager")
	ErrInvalidCredentials = errors.New("email atau password salah")
	ErrEmailTaken         = errors.New("email sudah terdaftar")
	ErrInvalidTransition  = models.ErrInvalidTransition
	ErrItemUnavailable    = cart.ErrItemUnavailable
)

// ValidationError: input ditolak sebelum menyentuh database
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// validationFrom memakai pesan sentinel agar errors.Is tetap jalan
func validationFrom(field string, err error) error {
	return &ValidationError{Field: field, Message: err.Error(), Err: err}
}

// PersistenceError membungkus kegagalan store
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistenceError(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

func uintString(v uint) string {
	return fmt.Sprintf("%d", v)
}
