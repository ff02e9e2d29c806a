package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(table string) ([]byte, error)
	MenuLink(table string) string
	StatusLink(orderID, table string) string
}

// TableQRGenerator renders the QR code glued on each table. Scanning it
// opens the menu with the table number prefilled.
type TableQRGenerator struct {
	BaseURL string
}

func (g TableQRGenerator) MenuLink(table string) string {
	return fmt.Sprintf("%s/menu?table=%s", strings.TrimRight(g.BaseURL, "/"), url.QueryEscape(table))
}

func (g TableQRGenerator) StatusLink(orderID, table string) string {
	return fmt.Sprintf("%s/order-status/%s?table=%s", strings.TrimRight(g.BaseURL, "/"), orderID, url.QueryEscape(table))
}

func (g TableQRGenerator) Generate(table string) ([]byte, error) {
	return qrcode.Encode(g.MenuLink(table), qrcode.Medium, 256)
}

var _ QRGenerator = TableQRGenerator{}
