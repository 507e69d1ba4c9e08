package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/youzi-corp/pos-client/internal/domain"
	"github.com/youzi-corp/pos-client/internal/domain/entity"
	"github.com/youzi-corp/pos-client/internal/session"
	"github.com/youzi-corp/pos-client/internal/transport"
	"github.com/youzi-corp/pos-client/internal/ui"
	"github.com/youzi-corp/pos-client/pkg/logger"
)

// State estado de autenticación de la UI. Exactamente uno a la vez.
type State int

const (
	StateLoggedOut State = iota
	StateAuthenticating
	StateLoggedIn
	StateSessionExpired // transitorio: limpieza pendiente, decae a LoggedOut
)

func (s State) String() string {
	switch s {
	case StateLoggedOut:
		return "logged_out"
	case StateAuthenticating:
		return "authenticating"
	case StateLoggedIn:
		return "logged_in"
	case StateSessionExpired:
		return "session_expired"
	default:
		return "unknown"
	}
}

// emailShape validación mínima local@dominio.tld; el backend hace la definitiva.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// faultMarkers señales heurísticas de que el mensaje de error del backend es
// un fallo interno (stack trace, nombre de excepción) y no texto para el usuario.
var faultMarkers = []string{
	"ReferenceError", "TypeError", "SyntaxError", "RangeError",
	"Exception", "Traceback", "at Object.", "stack:",
}

// Mensajes visibles.
const (
	msgServerFault    = "Terjadi kesalahan pada server. Silakan coba lagi nanti."
	msgSessionExpired = "Sesi Anda telah berakhir. Silakan login kembali."
	msgLogoutPrompt   = "Apakah Anda yakin ingin keluar?"
	msgLoggedOut      = "Anda telah keluar."
)

// API es lo que el controlador necesita de Transport.
type API interface {
	Send(ctx context.Context, action string, params map[string]any) transport.Response
}

// Confirmer decide confirmaciones sí/no del usuario (logout). La implementa
// la capa de presentación.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc adaptador función → Confirmer.
type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }

// Options comportamiento configurable del controlador.
type Options struct {
	// ValidateOnRestore exige validar el token contra el backend al restaurar.
	// false = restauración optimista (modo más débil, para backends sin validate).
	ValidateOnRestore bool
	// OnLogin hook posterior a la transición a LoggedIn (inicializa el dashboard).
	OnLogin func()
	// Now inyectable en tests.
	Now func() time.Time
}

// Controller orquesta login/logout/restauración y posee la máquina de estados
// {LoggedOut, Authenticating, LoggedIn, SessionExpired}. Es el único mutador
// del Session Store.
type Controller struct {
	mu    sync.Mutex
	state State

	store    *session.Store
	api      API
	notifier *ui.Notifier
	confirm  Confirmer
	log      *logger.Logger
	opts     Options
}

// NewController construye el controlador en estado LoggedOut.
func NewController(store *session.Store, api API, notifier *ui.Notifier, confirm Confirmer, log *logger.Logger, opts Options) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Controller{
		state:    StateLoggedOut,
		store:    store,
		api:      api,
		notifier: notifier,
		confirm:  confirm,
		log:      log,
		opts:     opts,
	}
}

// State estado actual.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LoggedIn implementa la guarda que consume el View Router.
func (c *Controller) LoggedIn() bool {
	return c.State() == StateLoggedIn
}

// Login autentica email/password. Valida localmente antes de tocar la red;
// cada rechazo local tiene su propio mensaje. Solo un intento puede estar en
// vuelo: un segundo Login durante Authenticating se rechaza en el acto.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)

	if err := validateCredentials(email, password); err != nil {
		c.notifier.Notify(err.Error(), ui.SeverityWarning, 5*time.Second)
		return err
	}

	c.mu.Lock()
	if c.state == StateAuthenticating {
		c.mu.Unlock()
		c.notifier.Notify("Login sedang diproses, mohon tunggu", ui.SeverityWarning, 3*time.Second)
		return domain.ErrLoginInProgress
	}
	c.state = StateAuthenticating
	c.mu.Unlock()

	c.notifier.ShowLoading("Memuat...")
	defer c.notifier.HideLoading()

	resp := c.api.Send(ctx, "login", map[string]any{
		"email":    email,
		"password": password,
	})

	if !resp.Success {
		c.mu.Lock()
		c.state = StateLoggedOut
		c.mu.Unlock()
		return c.failLogin(resp)
	}

	var payload struct {
		Token string      `json:"token"`
		User  entity.User `json:"user"`
	}
	if err := resp.Decode(&payload); err != nil || payload.Token == "" {
		c.mu.Lock()
		c.state = StateLoggedOut
		c.mu.Unlock()
		c.log.Error().Err(err).Msg("payload de login inesperado")
		c.notifier.Notify(msgServerFault, ui.SeverityError, 5*time.Second)
		return domain.ErrServerFault
	}

	sess := entity.Session{Token: payload.Token, User: payload.User}
	if err := c.store.Save(sess); err != nil {
		c.mu.Lock()
		c.state = StateLoggedOut
		c.mu.Unlock()
		c.log.Error().Err(err).Msg("persistir sesión")
		c.notifier.Notify(msgServerFault, ui.SeverityError, 5*time.Second)
		return err
	}

	c.mu.Lock()
	c.state = StateLoggedIn
	c.mu.Unlock()

	c.log.Info().Str("user_id", payload.User.ID).Str("role", payload.User.Role).Msg("login exitoso")
	c.notifier.Notify(fmt.Sprintf("Selamat datang, %s!", payload.User.FullName), ui.SeveritySuccess, 5*time.Second)

	if c.opts.OnLogin != nil {
		c.opts.OnLogin()
	}
	return nil
}

// failLogin clasifica el fallo de login y lo notifica. El mensaje del backend
// se muestra tal cual, salvo que huela a fallo interno: entonces se registra
// en el log y la UI recibe un mensaje genérico.
func (c *Controller) failLogin(resp transport.Response) error {
	switch resp.Code {
	case transport.CodeNetworkError:
		c.notifier.Notify("Koneksi gagal. Periksa internet Anda.", ui.SeverityError, 5*time.Second)
		return fmt.Errorf("%w: %s", domain.ErrAuthFailed, resp.Error)
	case transport.CodeParseError:
		c.notifier.Notify(msgServerFault, ui.SeverityError, 5*time.Second)
		return domain.ErrServerFault
	}

	if looksLikeServerFault(resp.Error) {
		c.log.Error().Str("backend_error", resp.Error).Msg("fallo interno del backend en login")
		c.notifier.Notify(msgServerFault, ui.SeverityError, 5*time.Second)
		return domain.ErrServerFault
	}

	msg := resp.Error
	if msg == "" {
		msg = "Login gagal"
	}
	c.notifier.Notify(msg, ui.SeverityError, 5*time.Second)
	return fmt.Errorf("%w: %s", domain.ErrAuthFailed, msg)
}

// Logout pide confirmación explícita; una vez confirmado limpia la sesión y
// pasa a LoggedOut incondicionalmente.
func (c *Controller) Logout() error {
	c.mu.Lock()
	if c.state != StateLoggedIn {
		c.mu.Unlock()
		return domain.ErrNotLoggedIn
	}
	c.mu.Unlock()

	if !c.confirm.Confirm(msgLogoutPrompt) {
		return nil
	}

	c.store.Clear()
	c.mu.Lock()
	c.state = StateLoggedOut
	c.mu.Unlock()

	c.log.Info().Msg("logout")
	c.notifier.Notify(msgLoggedOut, ui.SeverityInfo, 3*time.Second)
	return nil
}

// RestoreSession implementa la transición de arranque: restaura la sesión
// persistida. Si el token es un JWT ya vencido se descarta sin tocar la red;
// con ValidateOnRestore se confirma contra el backend (acción validate), y
// solo entonces se pasa a LoggedIn. Sin validate, restauración optimista.
func (c *Controller) RestoreSession(ctx context.Context) State {
	sess := c.store.Load()
	if !sess.Valid() {
		c.store.Clear()
		c.setState(StateLoggedOut)
		return StateLoggedOut
	}

	if expired, ok := tokenExpired(sess.Token, c.opts.Now()); ok && expired {
		c.log.Info().Msg("token persistido vencido: se descarta la sesión")
		c.store.Clear()
		c.setState(StateLoggedOut)
		return StateLoggedOut
	}

	if !c.opts.ValidateOnRestore {
		c.setState(StateLoggedIn)
		c.log.Info().Str("user_id", sess.User.ID).Msg("sesión restaurada (optimista)")
		if c.opts.OnLogin != nil {
			c.opts.OnLogin()
		}
		return StateLoggedIn
	}

	resp := c.api.Send(ctx, "validate", nil)
	switch {
	case resp.Success:
		c.setState(StateLoggedIn)
		c.log.Info().Str("user_id", sess.User.ID).Msg("sesión restaurada y validada")
		if c.opts.OnLogin != nil {
			c.opts.OnLogin()
		}
		return StateLoggedIn
	case resp.Code == transport.CodeNetworkError:
		// Backend inalcanzable: la sesión local sigue siendo la mejor evidencia.
		c.setState(StateLoggedIn)
		c.log.Warn().Str("error", resp.Error).Msg("validate inalcanzable: restauración optimista")
		if c.opts.OnLogin != nil {
			c.opts.OnLogin()
		}
		return StateLoggedIn
	default:
		// Rechazo explícito (401 ya pasó por el embudo; cualquier otro fallo
		// también invalida). Garantizamos la limpieza aunque el embudo no corriera.
		c.store.Clear()
		c.setState(StateLoggedOut)
		return StateLoggedOut
	}
}

// HandleUnauthorized es el manejador global que Transport invoca ante un 401
// en cualquier petición en vuelo, sin importar qué componente la emitió.
// LoggedIn → SessionExpired → LoggedOut, sesión limpiada, usuario avisado.
func (c *Controller) HandleUnauthorized() {
	c.mu.Lock()
	if c.state != StateLoggedIn {
		c.mu.Unlock()
		return
	}
	c.state = StateSessionExpired
	c.mu.Unlock()

	c.log.Warn().Msg("sesión expirada por 401 del backend")
	c.store.Clear()

	c.mu.Lock()
	c.state = StateLoggedOut
	c.mu.Unlock()

	c.notifier.Notify(msgSessionExpired, ui.SeverityWarning, 5*time.Second)
}

// HasPermission false si no hay sesión activa; admin siempre true; en otro
// caso el mapa de permisos, con ausente = false.
func (c *Controller) HasPermission(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateLoggedIn {
		return false
	}
	sess := c.store.Current()
	if sess == nil {
		return false
	}
	return sess.User.Can(name)
}

// CurrentUser perfil de la sesión activa, nil si no hay.
func (c *Controller) CurrentUser() *entity.User {
	if c.State() != StateLoggedIn {
		return nil
	}
	sess := c.store.Current()
	if sess == nil {
		return nil
	}
	u := sess.User
	return &u
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func validateCredentials(email, password string) error {
	if email == "" {
		return domain.ErrEmailRequired
	}
	if password == "" {
		return domain.ErrPasswordRequired
	}
	if !emailShape.MatchString(email) {
		return domain.ErrEmailInvalid
	}
	return nil
}

func looksLikeServerFault(msg string) bool {
	for _, marker := range faultMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// tokenExpired inspecciona el claim exp sin verificar firma. ok=false cuando
// el token no es un JWT (token opaco): en ese caso no hay veredicto local.
func tokenExpired(token string, now time.Time) (expired, ok bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false, false
	}
	return exp.Before(now), true
}
