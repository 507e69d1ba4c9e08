package mockapi

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/youzi-corp/pos-client/internal/domain/entity"
)

func seedAdmin() entity.User {
	return entity.User{
		ID:               "u-001",
		Email:            "admin@youzi.co.id",
		FullName:         "Admin Youzi",
		Role:             entity.RoleAdmin,
		Department:       "Management",
		TransactionLimit: decimal.NewFromInt(50_000_000),
		Permissions:      map[string]bool{},
	}
}

// seedProducts catálogo canned del modo offline.
func seedProducts() []entity.Product {
	exp1 := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)
	exp2 := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	return []entity.Product{
		{
			ID:           "p-001",
			SKU:          "MKN-NAS-251224-001",
			Name:         "Nasi Goreng Spesial",
			Category:     "Makanan",
			CurrentStock: 45,
			MinStock:     10,
			BuyPrice:     decimal.NewFromInt(15_000),
			SellPrice:    decimal.NewFromInt(20_000),
			ExpiryDate:   &exp1,
		},
		{
			ID:           "p-002",
			SKU:          "MNM-COP-150125-001",
			Name:         "Coca Cola 330ml",
			Category:     "Minuman",
			CurrentStock: 8,
			MinStock:     12,
			BuyPrice:     decimal.NewFromInt(5_000),
			SellPrice:    decimal.NewFromInt(7_500),
			ExpiryDate:   &exp2,
		},
		{
			ID:           "p-003",
			SKU:          "MKN-MIE-010625-002",
			Name:         "Mie Instan Goreng",
			Category:     "Makanan",
			CurrentStock: 0,
			MinStock:     24,
			BuyPrice:     decimal.NewFromInt(2_500),
			SellPrice:    decimal.NewFromInt(3_500),
		},
	}
}

func filterProducts(search, category string) []entity.Product {
	out := make([]entity.Product, 0)
	for _, p := range seedProducts() {
		if category != "" && p.Category != category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) &&
			!strings.Contains(strings.ToLower(p.SKU), strings.ToLower(search)) {
			continue
		}
		out = append(out, p)
	}
	return out
}
