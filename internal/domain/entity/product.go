package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de stock para la vista de productos.
const (
	StockOut     = "out"
	StockLow     = "low"
	StockWarning = "warning"
	StockNormal  = "normal"
)

// Product representa un producto del catálogo tal como lo entrega get_products.
type Product struct {
	ID                string          `json:"product_id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"product_name"`
	Category          string          `json:"category"`
	CurrentStock      int             `json:"current_stock"`
	MinStock          int             `json:"min_stock"`
	BuyPrice          decimal.Decimal `json:"buy_price"`
	SellPrice         decimal.Decimal `json:"sell_price"`
	BatchNumber       string          `json:"batch_number,omitempty"`
	WarehouseLocation string          `json:"warehouse_location,omitempty"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
}

// StockStatus clasifica el nivel de stock: agotado, bajo el mínimo,
// cerca del mínimo (2x) o normal.
func (p Product) StockStatus() string {
	switch {
	case p.CurrentStock == 0:
		return StockOut
	case p.CurrentStock <= p.MinStock:
		return StockLow
	case p.CurrentStock <= p.MinStock*2:
		return StockWarning
	default:
		return StockNormal
	}
}

// DaysToExpiry días de calendario hasta la fecha de expiración.
// Segundo retorno false si el producto no expira.
func (p Product) DaysToExpiry(now time.Time) (int, bool) {
	if p.ExpiryDate == nil {
		return 0, false
	}
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	expDay := time.Date(p.ExpiryDate.Year(), p.ExpiryDate.Month(), p.ExpiryDate.Day(), 0, 0, 0, 0, time.UTC)
	return int(expDay.Sub(nowDay).Hours() / 24), true
}
