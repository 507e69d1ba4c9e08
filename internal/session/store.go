package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/youzi-corp/pos-client/internal/domain/entity"
	"github.com/youzi-corp/pos-client/pkg/logger"
)

// Claves persistidas. Token y user se escriben/leen/borran juntos;
// prefs es una entrada de UI fuera del contrato de sesión y sobrevive a Clear.
const (
	keyToken = "youzi_token"
	keyUser  = "youzi_user"
	keyPrefs = "youzi_prefs"
)

// Prefs preferencia de UI persistida junto a la sesión pero con ciclo de vida propio.
type Prefs struct {
	DarkMode  bool   `json:"dark_mode"`
	LastVisit string `json:"last_visit"` // fecha (yyyy-mm-dd) del último saludo de bienvenida
}

// Store es el único dueño del estado de sesión: token + perfil en memoria,
// con persistencia confinada a Load/Save/Clear. Sin llamadas de red.
type Store struct {
	mu  sync.Mutex
	dir string
	cur *entity.Session
	log *logger.Logger
}

// NewStore crea el store sobre dir (se crea si no existe).
func NewStore(dir string, log *logger.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &Store{dir: dir, log: log}, nil
}

// Load lee la sesión persistida. Si falta token o user, o el perfil no
// parsea, se trata como corrupción: borra lo que hubiera y devuelve nil.
// Nunca expone una sesión a medias.
func (s *Store) Load() *entity.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokenRaw, tokenErr := os.ReadFile(s.path(keyToken))
	userRaw, userErr := os.ReadFile(s.path(keyUser))

	if tokenErr != nil && userErr != nil {
		s.cur = nil
		return nil
	}
	if tokenErr != nil || userErr != nil || len(tokenRaw) == 0 {
		s.log.Warn().Msg("sesión persistida incompleta: se descarta")
		s.removeSessionLocked()
		return nil
	}

	var user entity.User
	if err := json.Unmarshal(userRaw, &user); err != nil {
		s.log.Warn().Err(err).Msg("perfil persistido corrupto: se descarta la sesión")
		s.removeSessionLocked()
		return nil
	}

	s.cur = &entity.Session{Token: string(tokenRaw), User: user}
	return s.cur
}

// Save persiste token y perfil. Escribe a archivo temporal y renombra para
// que un lector nunca observe solo una de las dos entradas actualizada a medias.
func (s *Store) Save(sess entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userRaw, err := json.Marshal(sess.User)
	if err != nil {
		return err
	}
	if err := writeAtomic(s.path(keyToken), []byte(sess.Token)); err != nil {
		return err
	}
	if err := writeAtomic(s.path(keyUser), userRaw); err != nil {
		// Dejar solo el token violaría el invariante; revertimos.
		_ = os.Remove(s.path(keyToken))
		return err
	}
	s.cur = &sess
	return nil
}

// Clear elimina token y perfil, en memoria y en disco. Las preferencias de UI
// no se tocan.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeSessionLocked()
}

// Current devuelve la sesión en memoria (espejo del último Load/Save/Clear).
func (s *Store) Current() *entity.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Token accesor cómodo para Transport. Vacío = sin sesión.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return ""
	}
	return s.cur.Token
}

// LoadPrefs lee la preferencia de UI; valores cero si no existe o no parsea.
func (s *Store) LoadPrefs() Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := os.ReadFile(s.path(keyPrefs))
	if err != nil {
		return Prefs{}
	}
	var p Prefs
	if err := json.Unmarshal(raw, &p); err != nil {
		return Prefs{}
	}
	return p
}

// SavePrefs persiste la preferencia de UI.
func (s *Store) SavePrefs(p Prefs) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return writeAtomic(s.path(keyPrefs), raw)
}

func (s *Store) removeSessionLocked() {
	_ = os.Remove(s.path(keyToken))
	_ = os.Remove(s.path(keyUser))
	s.cur = nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key)
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
