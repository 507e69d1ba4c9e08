package pages

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/youzi-corp/pos-client/internal/ui"
	"github.com/youzi-corp/pos-client/pkg/format"
	"github.com/youzi-corp/pos-client/pkg/logger"
)

// DashboardStats métricas del panel principal.
type DashboardStats struct {
	TotalProducts int             `json:"total_products"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	LowStock      int             `json:"low_stock"`
	ExpiringSoon  int             `json:"expiring_soon"`
}

// DashboardView datos formateados para render.
type DashboardView struct {
	TotalProducts int
	TotalSales    string // "Rp 12.450.000"
	LowStock      int
	ExpiringSoon  int
}

// DashboardPage rutina de carga del dashboard (get_dashboard_stats).
type DashboardPage struct {
	api      API
	notifier *ui.Notifier
	log      *logger.Logger

	mu   sync.Mutex
	view DashboardView
}

// NewDashboardPage construye la página.
func NewDashboardPage(api API, notifier *ui.Notifier, log *logger.Logger) *DashboardPage {
	return &DashboardPage{api: api, notifier: notifier, log: log}
}

// Load trae las métricas y las deja formateadas en la vista.
func (d *DashboardPage) Load(ctx context.Context) error {
	d.notifier.ShowLoading("Memuat dashboard...")
	defer d.notifier.HideLoading()

	resp := d.api.Send(ctx, "get_dashboard_stats", nil)
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "Gagal memuat dashboard"
		}
		d.notifier.Notify(msg, ui.SeverityError, 5*time.Second)
		return nil
	}

	var stats DashboardStats
	if err := resp.Decode(&stats); err != nil {
		d.notifier.Notify("Gagal memuat dashboard", ui.SeverityError, 5*time.Second)
		return nil
	}

	d.mu.Lock()
	d.view = DashboardView{
		TotalProducts: stats.TotalProducts,
		TotalSales:    format.Rupiah(stats.TotalSales),
		LowStock:      stats.LowStock,
		ExpiringSoon:  stats.ExpiringSoon,
	}
	d.mu.Unlock()
	return nil
}

// View última vista aplicada.
func (d *DashboardPage) View() DashboardView {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.view
}
