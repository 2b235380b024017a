package service

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(orderID int) ([]byte, error)
}

// DefaultQRGenerator encodes the public receipt URL of an order as a PNG.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) ReceiptURL(orderID int) string {
	return fmt.Sprintf("%s/api/orders/%d", strings.TrimRight(g.BaseURL, "/"), orderID)
}

func (g DefaultQRGenerator) Generate(orderID int) ([]byte, error) {
	return qrcode.Encode(g.ReceiptURL(orderID), qrcode.Medium, 256)
}
