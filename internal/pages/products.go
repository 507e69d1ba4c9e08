package pages

import (
	"context"
	"sync"
	"time"

	"github.com/youzi-corp/pos-client/internal/domain/entity"
	"github.com/youzi-corp/pos-client/internal/transport"
	"github.com/youzi-corp/pos-client/internal/ui"
	"github.com/youzi-corp/pos-client/pkg/logger"
)

// API lo que una página necesita de Transport.
type API interface {
	Send(ctx context.Context, action string, params map[string]any) transport.Response
}

// ProductQuery filtros de la página de productos.
type ProductQuery struct {
	Search       string
	Category     string
	LowStock     bool
	ExpiringSoon bool
	SortBy       string // name, stock, expiry
	SortOrder    string // asc, desc
}

// ProductsView datos listos para render de la tabla de productos.
type ProductsView struct {
	Products []entity.Product
	Count    int
	Query    ProductQuery
}

// ProductsPage rutina de carga de la página de productos. Las búsquedas
// solapadas se resuelven con un token de secuencia: una respuesta obsoleta
// (emitida antes que la última búsqueda) se descarta y nunca pisa la vista.
type ProductsPage struct {
	api      API
	notifier *ui.Notifier
	log      *logger.Logger

	seq ui.Sequence

	mu   sync.Mutex
	view ProductsView
}

// NewProductsPage construye la página.
func NewProductsPage(api API, notifier *ui.Notifier, log *logger.Logger) *ProductsPage {
	return &ProductsPage{api: api, notifier: notifier, log: log}
}

// Load rutina registrada en el View Router: carga sin filtros.
func (p *ProductsPage) Load(ctx context.Context) error {
	return p.Search(ctx, ProductQuery{})
}

// Search ejecuta get_products con los filtros dados y actualiza la vista,
// salvo que una búsqueda más reciente ya haya tomado el turno.
func (p *ProductsPage) Search(ctx context.Context, q ProductQuery) error {
	token := p.seq.Next()

	p.notifier.ShowLoading("Memuat data produk...")
	defer p.notifier.HideLoading()

	resp := p.api.Send(ctx, "get_products", queryParams(q))

	if !p.seq.Current(token) {
		// Una búsqueda más nueva ya corrió: este resultado es obsoleto.
		p.log.Debug().Uint64("seq", token).Msg("resultado de búsqueda descartado por obsoleto")
		return nil
	}

	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "Gagal memuat data produk"
		}
		p.notifier.Notify(msg, ui.SeverityError, 5*time.Second)
		return nil
	}

	var payload struct {
		Products []entity.Product `json:"products"`
		Count    int              `json:"count"`
	}
	if err := resp.Decode(&payload); err != nil {
		p.notifier.Notify("Gagal memuat data produk", ui.SeverityError, 5*time.Second)
		return nil
	}

	p.mu.Lock()
	p.view = ProductsView{Products: payload.Products, Count: payload.Count, Query: q}
	p.mu.Unlock()
	return nil
}

// View última vista aplicada.
func (p *ProductsPage) View() ProductsView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view
}

// queryParams construye los parámetros omitiendo valores vacíos/false,
// como exige el contrato de Request.
func queryParams(q ProductQuery) map[string]any {
	params := map[string]any{}
	if q.Search != "" {
		params["search"] = q.Search
	}
	if q.Category != "" {
		params["category"] = q.Category
	}
	if q.LowStock {
		params["lowStock"] = true
	}
	if q.ExpiringSoon {
		params["expiringSoon"] = true
	}
	if q.SortBy != "" {
		params["sortBy"] = q.SortBy
		if q.SortOrder != "" {
			params["sortOrder"] = q.SortOrder
		}
	}
	return params
}
