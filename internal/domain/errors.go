package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los mensajes de validación
// son texto visible para el usuario y se mantienen en el idioma del producto.
var (
	ErrEmailRequired    = errors.New("Email harus diisi")
	ErrPasswordRequired = errors.New("Password harus diisi")
	ErrEmailInvalid     = errors.New("Format email tidak valid")

	ErrLoginInProgress = errors.New("login sedang diproses")
	ErrNotLoggedIn     = errors.New("no hay sesión activa")
	ErrSessionExpired  = errors.New("la sesión fue invalidada por el backend")
	ErrAuthFailed      = errors.New("credenciales rechazadas")
	ErrServerFault     = errors.New("fallo interno del backend")

	ErrPageUnknown    = errors.New("página no registrada")
	ErrPageRegistered = errors.New("página ya registrada")
)

// IsValidation indica si err es un error de validación local
// (nunca debe llegar a Transport).
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmailRequired) ||
		errors.Is(err, ErrPasswordRequired) ||
		errors.Is(err, ErrEmailInvalid)
}
