package entity

// Session empareja el token opaco del backend con el perfil del usuario.
// Invariante: ambos presentes o ninguno; una sesión a medias es corrupción
// y el Store la descarta completa.
type Session struct {
	Token string
	User  User
}

// Valid indica si la sesión está completa.
func (s *Session) Valid() bool {
	return s != nil && s.Token != "" && s.User.ID != ""
}
