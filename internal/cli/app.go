package cli

import (
	"os"
	"time"

	"github.com/youzi-corp/pos-client/internal/auth"
	"github.com/youzi-corp/pos-client/internal/mockapi"
	"github.com/youzi-corp/pos-client/internal/pages"
	"github.com/youzi-corp/pos-client/internal/session"
	"github.com/youzi-corp/pos-client/internal/transport"
	"github.com/youzi-corp/pos-client/internal/ui"
	"github.com/youzi-corp/pos-client/pkg/config"
	"github.com/youzi-corp/pos-client/pkg/logger"
)

// offlineAddr dirección local del backend mock en modo offline.
const offlineAddr = "127.0.0.1:8787"

// App cableado completo del cliente: config, logger, store, transport,
// coordinadores y páginas. Se construye una sola vez por proceso, lo que
// garantiza registro único de handlers y un solo embudo de 401.
type App struct {
	Cfg       *config.Config
	Log       *logger.Logger
	Store     *session.Store
	Client    *transport.Client
	Notifier  *ui.Notifier
	Auth      *auth.Controller
	Router    *ui.Router
	Dashboard *pages.DashboardPage
	Products  *pages.ProductsPage
	Term      *terminalUI

	mock *mockapi.Server
}

// buildApp construye y cablea la aplicación según la configuración.
func buildApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	store, err := session.NewStore(cfg.App.StateDir, log)
	if err != nil {
		return nil, err
	}

	term := newTerminalUI(os.Stdout, os.Stdin)
	notifier := ui.NewNotifier(term, log)

	baseURL := cfg.API.BaseURL
	var mock *mockapi.Server
	if cfg.API.Offline {
		// Modo offline explícito: backend mock local, jamás sustituido en
		// silencio por un fallo de red real.
		mock = mockapi.New(mockapi.Config{JWTSecret: "offline-secret", Logger: log})
		go func() {
			if err := mock.Listen(offlineAddr); err != nil {
				log.Error().Err(err).Msg("backend mock terminó")
			}
		}()
		baseURL = "http://" + offlineAddr
		notifier.Notify("Mode offline aktif: data tidak tersambung ke server", ui.SeverityWarning, 5*time.Second)
	}

	client := transport.NewClient(baseURL, store.Token, log,
		transport.WithRetryReads(cfg.API.RetryReads),
	)

	app := &App{
		Cfg:      cfg,
		Log:      log,
		Store:    store,
		Client:   client,
		Notifier: notifier,
		Term:     term,
		mock:     mock,
	}

	app.Dashboard = pages.NewDashboardPage(client, notifier, log)
	app.Products = pages.NewProductsPage(client, notifier, log)

	app.Auth = auth.NewController(store, client, notifier, term, log, auth.Options{
		ValidateOnRestore: cfg.Auth.ValidateOnRestore,
		OnLogin:           app.greetDaily,
	})

	// Embudo global de 401: registrado una sola vez, antes de toda petición.
	client.OnUnauthorized(app.Auth.HandleUnauthorized)

	app.Router = ui.NewRouter(app.Auth, term, log)
	if err := pages.RegisterAll(app.Router, app.Dashboard, app.Products); err != nil {
		return nil, err
	}

	return app, nil
}

// greetDaily saludo de bienvenida una vez por día, registrado en prefs.
// Las prefs sobreviven al ciclo de sesión.
func (a *App) greetDaily() {
	today := time.Now().Format("2006-01-02")
	prefs := a.Store.LoadPrefs()
	if prefs.LastVisit == today {
		return
	}
	prefs.LastVisit = today
	if err := a.Store.SavePrefs(prefs); err != nil {
		a.Log.Warn().Err(err).Msg("persistir preferencias")
	}
	a.Notifier.Notify("Selamat datang di Sistem Inventory Youzi Corp!", ui.SeverityInfo, 5*time.Second)
}
