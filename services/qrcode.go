package services

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const qrSize = 256

// OrderTrackingURL adalah alamat yang di-encode pada QR konfirmasi
func OrderTrackingURL(baseURL string, orderID uint) string {
	return fmt.Sprintf("%s/orders/%d", baseURL, orderID)
}

// OrderQRCode menghasilkan PNG QR untuk pesanan
func OrderQRCode(baseURL string, orderID uint) ([]byte, error) {
	return qrcode.Encode(OrderTrackingURL(baseURL, orderID), qrcode.Medium, qrSize)
}
