package pages

import (
	"github.com/youzi-corp/pos-client/internal/ui"
)

// Títulos visibles del set de navegación.
var titles = map[string]string{
	"dashboard": "Dashboard",
	"products":  "Manajemen Produk",
	"inventory": "Inventory",
	"sales":     "Penjualan",
	"reports":   "Laporan",
	"users":     "Manajemen User",
	"settings":  "Pengaturan",
}

// Title título visible de una página; el nombre crudo si no es conocida.
func Title(name string) string {
	if t, ok := titles[name]; ok {
		return t
	}
	return name
}

// RegisterAll registra el set de navegación completo en el router. Se llama
// una sola vez en el arranque; las páginas sin rutina de carga propia todavía
// (inventory, sales, reports, users, settings) navegan sin fetch.
func RegisterAll(router *ui.Router, dashboard *DashboardPage, products *ProductsPage) error {
	if err := router.Register("dashboard", titles["dashboard"], dashboard.Load); err != nil {
		return err
	}
	if err := router.Register("products", titles["products"], products.Load); err != nil {
		return err
	}
	for _, name := range []string{"inventory", "sales", "reports", "users", "settings"} {
		if err := router.Register(name, titles[name], nil); err != nil {
			return err
		}
	}
	return nil
}
