package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youzi-corp/pos-client/internal/domain/entity"
	"github.com/youzi-corp/pos-client/pkg/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), logger.Nop())
	require.NoError(t, err)
	return s
}

func sampleSession() entity.Session {
	return entity.Session{
		Token: "tok-123",
		User: entity.User{
			ID:               "u-001",
			Email:            "admin@youzi.co.id",
			FullName:         "Admin Youzi",
			Role:             entity.RoleAdmin,
			TransactionLimit: decimal.NewFromInt(50_000_000),
			Permissions:      map[string]bool{"products.write": true},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Round-trip Save/Load/Clear
// ──────────────────────────────────────────────────────────────────────────────

// Save seguido de Load devuelve la misma sesión; Current la refleja.
func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(sampleSession()))

	got := s.Load()
	require.NotNil(t, got)
	assert.Equal(t, "tok-123", got.Token)
	assert.Equal(t, "admin@youzi.co.id", got.User.Email)
	assert.True(t, got.User.Permissions["products.write"])
	assert.Equal(t, got, s.Current())
}

// Sin nada persistido, Load devuelve nil y Current queda nil.
func TestStore_LoadVacio(t *testing.T) {
	s := newTestStore(t)
	assert.Nil(t, s.Load())
	assert.Nil(t, s.Current())
	assert.Empty(t, s.Token())
}

// Clear elimina token y perfil, en memoria y en disco.
func TestStore_Clear(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(sampleSession()))

	s.Clear()
	assert.Nil(t, s.Current())
	assert.Nil(t, s.Load())
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante: nunca una sesión a medias
// ──────────────────────────────────────────────────────────────────────────────

// Solo token presente (perfil borrado fuera del proceso) → corrupción: Load
// devuelve nil y limpia el resto.
func TestStore_SoloToken_SeDescarta(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Save(sampleSession()))
	require.NoError(t, os.Remove(filepath.Join(dir, "youzi_user")))

	assert.Nil(t, s.Load())
	// El token huérfano también debe desaparecer.
	_, statErr := os.Stat(filepath.Join(dir, "youzi_token"))
	assert.True(t, os.IsNotExist(statErr))
}

// Perfil que no parsea como JSON → corrupción: sesión completa descartada.
func TestStore_PerfilCorrupto_SeDescarta(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Save(sampleSession()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "youzi_user"), []byte("{no es json"), 0o600))

	assert.Nil(t, s.Load())
	_, statErr := os.Stat(filepath.Join(dir, "youzi_token"))
	assert.True(t, os.IsNotExist(statErr))
}

// Para toda secuencia de operaciones, nunca se observa exactamente una de las
// dos entradas.
func TestStore_NuncaMediaSesion(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir, logger.Nop())
	require.NoError(t, err)

	ops := []func(){
		func() { _ = s.Save(sampleSession()) },
		func() { s.Load() },
		func() { s.Clear() },
		func() { _ = s.Save(sampleSession()) },
		func() { s.Load() },
	}
	for _, op := range ops {
		op()
		_, tokenErr := os.Stat(filepath.Join(dir, "youzi_token"))
		_, userErr := os.Stat(filepath.Join(dir, "youzi_user"))
		assert.Equal(t, os.IsNotExist(tokenErr), os.IsNotExist(userErr),
			"token y perfil deben existir juntos o no existir")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Preferencias de UI
// ──────────────────────────────────────────────────────────────────────────────

// Las prefs sobreviven a Clear: están fuera del contrato de sesión.
func TestStore_PrefsSobrevivenClear(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(sampleSession()))
	require.NoError(t, s.SavePrefs(Prefs{DarkMode: true, LastVisit: "2026-08-31"}))

	s.Clear()

	prefs := s.LoadPrefs()
	assert.True(t, prefs.DarkMode)
	assert.Equal(t, "2026-08-31", prefs.LastVisit)
}
