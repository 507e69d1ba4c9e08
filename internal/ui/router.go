package ui

import (
	"context"
	"sync"
	"time"

	"github.com/youzi-corp/pos-client/internal/domain"
	"github.com/youzi-corp/pos-client/pkg/logger"
)

// PageLogin página implícita a la que se redirige todo acceso sin sesión.
const PageLogin = "login"

// debounceWindow ventana en la que un segundo clic al mismo destino no
// re-dispara la rutina de carga.
const debounceWindow = 500 * time.Millisecond

// LoadFunc rutina de carga de una página (colaborador externo al router).
type LoadFunc func(ctx context.Context) error

// Gate guarda de acceso: la implementa el Auth Controller.
type Gate interface {
	LoggedIn() bool
}

// PageListener recibe el cambio de página activa (push hacia la presentación).
type PageListener interface {
	PageChanged(name, title string)
}

type page struct {
	title string
	load  LoadFunc
}

// Router mapea nombres de página a rutinas de carga, protege el acceso sin
// sesión y mantiene exactamente una página activa.
type Router struct {
	mu       sync.Mutex
	pages    map[string]page
	active   string
	lastNav  time.Time
	gate     Gate
	listener PageListener
	log      *logger.Logger
	now      func() time.Time
}

// NewRouter crea el router. listener puede ser nil.
func NewRouter(gate Gate, listener PageListener, log *logger.Logger) *Router {
	return &Router{
		pages:    make(map[string]page),
		gate:     gate,
		listener: listener,
		log:      log,
		now:      time.Now,
	}
}

// Register registra una página una sola vez durante la vida del componente.
// Un segundo registro del mismo nombre es un defecto de cableado y se rechaza,
// nunca se reemplaza el handler.
func (r *Router) Register(name, title string, load LoadFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.pages[name]; exists {
		return domain.ErrPageRegistered
	}
	r.pages[name] = page{title: title, load: load}
	return nil
}

// Active nombre de la página activa ("" si ninguna).
func (r *Router) Active() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// GoTo navega a la página. Sin sesión activa cualquier destino distinto de la
// página de login se rechaza y redirige a login. La rutina de carga corre
// exactamente una vez por navegación: un segundo clic al mismo destino dentro
// de la ventana de debounce no vuelve a cargar.
func (r *Router) GoTo(ctx context.Context, name string) error {
	if !r.gate.LoggedIn() {
		r.mu.Lock()
		r.active = PageLogin
		r.mu.Unlock()
		r.emit(PageLogin, "Login")
		if name == PageLogin {
			return nil
		}
		r.log.Debug().Str("page", name).Msg("navegación rechazada: sin sesión")
		return domain.ErrNotLoggedIn
	}

	r.mu.Lock()
	p, ok := r.pages[name]
	if !ok {
		r.mu.Unlock()
		return domain.ErrPageUnknown
	}
	now := r.now()
	if r.active == name && now.Sub(r.lastNav) < debounceWindow {
		r.mu.Unlock()
		return nil
	}
	r.active = name
	r.lastNav = now
	r.mu.Unlock()

	r.emit(name, p.title)
	if p.load == nil {
		return nil
	}
	if err := p.load(ctx); err != nil {
		r.log.Warn().Err(err).Str("page", name).Msg("carga de página falló")
		return err
	}
	return nil
}

func (r *Router) emit(name, title string) {
	if r.listener != nil {
		r.listener.PageChanged(name, title)
	}
}
