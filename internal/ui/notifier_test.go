package ui

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youzi-corp/pos-client/pkg/logger"
)

// recorder listener de prueba: registra cada evento de UI en orden.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) ShowLoading(msg string) { r.add("loading:" + msg) }

func (r *recorder) HideLoading() { r.add("hide") }

func (r *recorder) ShowNotification(msg string, _ Severity) { r.add("notify:" + msg) }

func (r *recorder) ClearNotification() { r.add("clear") }

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// ──────────────────────────────────────────────────────────────────────────────
// Overlay de carga
// ──────────────────────────────────────────────────────────────────────────────

// showLoading("A") y luego showLoading("B") sin ocultar: queda exactamente un
// overlay visible mostrando "B"; hideLoading lo quita y es idempotente.
func TestNotifier_LoadingReemplazaNoApila(t *testing.T) {
	rec := &recorder{}
	n := NewNotifier(rec, logger.Nop())

	n.ShowLoading("A")
	n.ShowLoading("B")

	visible, msg := n.LoadingVisible()
	assert.True(t, visible)
	assert.Equal(t, "B", msg)

	n.HideLoading()
	visible, _ = n.LoadingVisible()
	assert.False(t, visible)

	// Segundo hide: no-op, el listener no recibe otro evento.
	before := len(rec.all())
	n.HideLoading()
	assert.Len(t, rec.all(), before)
}

// ──────────────────────────────────────────────────────────────────────────────
// Notificaciones
// ──────────────────────────────────────────────────────────────────────────────

// Una notificación nueva reemplaza a la anterior de inmediato, sin cola.
func TestNotifier_NotificacionReemplaza(t *testing.T) {
	rec := &recorder{}
	n := NewNotifier(rec, logger.Nop())

	n.Notify("primera", SeverityInfo, time.Minute)
	n.Notify("segunda", SeverityError, time.Minute)

	assert.True(t, n.NotificationVisible())
	events := rec.all()
	assert.Equal(t, []string{"notify:primera", "notify:segunda"}, events)
}

// La notificación se auto-descarta al vencer su duración.
func TestNotifier_AutoDescarte(t *testing.T) {
	rec := &recorder{}
	n := NewNotifier(rec, logger.Nop())

	n.Notify("efímera", SeverityInfo, 20*time.Millisecond)
	require.True(t, n.NotificationVisible())

	assert.Eventually(t, func() bool {
		return !n.NotificationVisible()
	}, time.Second, 5*time.Millisecond)
	assert.Contains(t, rec.all(), "clear")
}

// El timer de una notificación vieja no borra una más nueva.
func TestNotifier_TimerViejoNoBorraNueva(t *testing.T) {
	rec := &recorder{}
	n := NewNotifier(rec, logger.Nop())

	n.Notify("vieja", SeverityInfo, 15*time.Millisecond)
	n.Notify("nueva", SeverityInfo, time.Minute)

	// Dejar pasar holgadamente la duración de la vieja.
	time.Sleep(60 * time.Millisecond)
	assert.True(t, n.NotificationVisible(), "la notificación nueva debe seguir visible")
}

// Descarte explícito por el usuario antes del vencimiento.
func TestNotifier_DescarteExplicito(t *testing.T) {
	rec := &recorder{}
	n := NewNotifier(rec, logger.Nop())

	n.Notify("mensaje", SeverityInfo, time.Minute)
	n.Dismiss()

	assert.False(t, n.NotificationVisible())

	// Dismiss repetido: no-op.
	before := len(rec.all())
	n.Dismiss()
	assert.Len(t, rec.all(), before)
}
