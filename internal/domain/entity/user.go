package entity

import "github.com/shopspring/decimal"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleGudang   = "gudang"
	RoleSales    = "sales"
	RoleKeuangan = "keuangan"
)

// roleTitles títulos visibles por rol (los roles vienen del backend en minúscula).
var roleTitles = map[string]string{
	RoleAdmin:    "Administrator",
	RoleManager:  "Manager",
	RoleGudang:   "Staff Gudang",
	RoleSales:    "Sales",
	RoleKeuangan: "Staff Keuangan",
}

// User perfil del usuario autenticado tal como lo entrega el backend.
type User struct {
	ID               string          `json:"id"`
	Email            string          `json:"email"`
	FullName         string          `json:"full_name"`
	Role             string          `json:"role"` // admin, manager, gudang, sales, keuangan
	Department       string          `json:"department"`
	TransactionLimit decimal.Decimal `json:"transaction_limit"`
	Permissions      map[string]bool `json:"permissions"`
}

// RoleTitle devuelve el título visible del rol; el rol crudo si no es conocido.
func (u User) RoleTitle() string {
	if t, ok := roleTitles[u.Role]; ok {
		return t
	}
	return u.Role
}

// Can evalúa un permiso por nombre. Admin tiene todos los permisos;
// un permiso ausente del mapa cuenta como denegado.
func (u User) Can(permission string) bool {
	if u.Role == RoleAdmin {
		return true
	}
	return u.Permissions[permission]
}
