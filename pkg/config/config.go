package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del cliente (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App  AppConfig
	API  APIConfig
	Auth AuthConfig
	UI   UIConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	StateDir string // directorio donde se persiste la sesión
}

// APIConfig configuración del backend remoto.
type APIConfig struct {
	BaseURL    string        // endpoint único de acciones
	Timeout    time.Duration // timeout por petición
	RetryReads bool          // reintento único para lecturas idempotentes
	Offline    bool          // modo offline explícito: backend mock local
}

// AuthConfig comportamiento de la restauración de sesión.
type AuthConfig struct {
	ValidateOnRestore bool // false = restauración optimista (backend sin acción validate)
}

// UIConfig preferencias de presentación.
type UIConfig struct {
	DarkMode bool // valor por defecto; la preferencia persistida manda
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: POS_API_URL, POS_OFFLINE, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "POS_ENV", "development"),
			Name:     getString(v, "POS_APP_NAME", "youzi-pos"),
			LogLevel: getString(v, "POS_LOG_LEVEL", "info"),
			StateDir: getString(v, "POS_STATE_DIR", defaultStateDir()),
		},
		API: APIConfig{
			BaseURL:    getString(v, "POS_API_URL", ""),
			Timeout:    time.Duration(getInt(v, "POS_API_TIMEOUT_SECONDS", 15)) * time.Second,
			RetryReads: getBool(v, "POS_RETRY_READS", true),
			Offline:    getBool(v, "POS_OFFLINE", false),
		},
		Auth: AuthConfig{
			ValidateOnRestore: getBool(v, "POS_VALIDATE_ON_RESTORE", true),
		},
		UI: UIConfig{
			DarkMode: getBool(v, "POS_DARK_MODE", false),
		},
	}

	return cfg, nil
}

// defaultStateDir resuelve el directorio de estado del usuario (~/.config/youzi-pos).
func defaultStateDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".youzi-pos"
	}
	return filepath.Join(base, "youzi-pos")
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		return v.GetInt(key)
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
