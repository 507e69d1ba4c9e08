package ui

import (
	"sync"
	"time"

	"github.com/youzi-corp/pos-client/pkg/logger"
)

// Severity nivel de una notificación.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Listener superficie de UI abstracta: la implementa la capa de presentación
// (terminal, web) y los fakes de test. El Notifier empuja datos explícitos;
// nunca lee estado de presentación.
type Listener interface {
	ShowLoading(message string)
	HideLoading()
	ShowNotification(message string, severity Severity)
	ClearNotification()
}

// Notifier serializa el feedback visible: a lo sumo un overlay de carga y una
// notificación a la vez. Operaciones async solapadas nunca producen UI
// contradictoria: la última gana.
type Notifier struct {
	mu       sync.Mutex
	listener Listener
	log      *logger.Logger

	loadingVisible bool
	loadingMessage string

	notifGen   uint64 // generación: invalida timers de auto-descarte obsoletos
	notifShown bool
	timer      *time.Timer
}

// NewNotifier crea el coordinador sobre un listener.
func NewNotifier(listener Listener, log *logger.Logger) *Notifier {
	return &Notifier{listener: listener, log: log}
}

// ShowLoading muestra el overlay de carga. Una llamada con overlay visible lo
// reemplaza, no lo apila.
func (n *Notifier) ShowLoading(message string) {
	n.mu.Lock()
	n.loadingVisible = true
	n.loadingMessage = message
	n.mu.Unlock()
	n.listener.ShowLoading(message)
}

// HideLoading oculta el overlay. Idempotente: sin overlay visible no hace nada.
func (n *Notifier) HideLoading() {
	n.mu.Lock()
	if !n.loadingVisible {
		n.mu.Unlock()
		return
	}
	n.loadingVisible = false
	n.loadingMessage = ""
	n.mu.Unlock()
	n.listener.HideLoading()
}

// LoadingVisible indica si hay un overlay activo (y su mensaje).
func (n *Notifier) LoadingVisible() (bool, string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.loadingVisible, n.loadingMessage
}

// Notify muestra una notificación. Reemplaza de inmediato la anterior si la
// había; se auto-descarta tras duration salvo descarte explícito previo.
func (n *Notifier) Notify(message string, severity Severity, duration time.Duration) {
	n.mu.Lock()
	n.notifGen++
	gen := n.notifGen
	n.notifShown = true
	if n.timer != nil {
		n.timer.Stop()
	}
	n.timer = time.AfterFunc(duration, func() { n.dismiss(gen) })
	n.mu.Unlock()

	n.log.Debug().Str("severity", string(severity)).Str("message", message).Msg("notificación")
	n.listener.ShowNotification(message, severity)
}

// Dismiss descarte explícito por el usuario.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	gen := n.notifGen
	n.mu.Unlock()
	n.dismiss(gen)
}

// dismiss limpia la notificación solo si sigue siendo la de la generación gen:
// un timer viejo no debe borrar una notificación más nueva.
func (n *Notifier) dismiss(gen uint64) {
	n.mu.Lock()
	if !n.notifShown || gen != n.notifGen {
		n.mu.Unlock()
		return
	}
	n.notifShown = false
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.mu.Unlock()
	n.listener.ClearNotification()
}

// NotificationVisible indica si hay una notificación activa.
func (n *Notifier) NotificationVisible() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.notifShown
}
