package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youzi-corp/pos-client/pkg/logger"
)

func staticToken(tok string) TokenFunc {
	return func() string { return tok }
}

// capture guarda lo recibido por el backend de prueba.
type capture struct {
	calls   atomic.Int64
	lastReq map[string]any
	auth    string
}

func newBackend(t *testing.T, c *capture, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.calls.Add(1)
		c.auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&c.lastReq)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Serialización de la petición
// ──────────────────────────────────────────────────────────────────────────────

// La acción viaja en el payload y los valores nil se omiten antes de transmitir.
func TestSend_OmiteParamsNil(t *testing.T) {
	var c capture
	srv := newBackend(t, &c, http.StatusOK, `{"success":true}`)
	defer srv.Close()

	cl := NewClient(srv.URL, staticToken("tok"), logger.Nop())
	resp := cl.Send(context.Background(), "get_products", map[string]any{
		"search":   "nasi",
		"category": nil,
	})

	require.True(t, resp.Success)
	assert.Equal(t, "get_products", c.lastReq["action"])
	assert.Equal(t, "nasi", c.lastReq["search"])
	_, hasCategory := c.lastReq["category"]
	assert.False(t, hasCategory, "un valor nil no debe transmitirse")
}

// Acciones protegidas llevan Bearer token; las de la lista pública no.
func TestSend_TokenSegunAllowList(t *testing.T) {
	var c capture
	srv := newBackend(t, &c, http.StatusOK, `{"success":true}`)
	defer srv.Close()

	cl := NewClient(srv.URL, staticToken("tok-abc"), logger.Nop())

	cl.Send(context.Background(), "get_products", nil)
	assert.Equal(t, "Bearer tok-abc", c.auth)

	cl.Send(context.Background(), "login", map[string]any{"email": "a@b.co"})
	assert.Empty(t, c.auth, "login es pública: no debe llevar token")
}

// Acción protegida sin token vigente: falla antes de tocar la red.
func TestSend_SinToken_NoSaleALaRed(t *testing.T) {
	var c capture
	srv := newBackend(t, &c, http.StatusOK, `{"success":true}`)
	defer srv.Close()

	cl := NewClient(srv.URL, staticToken(""), logger.Nop())
	resp := cl.Send(context.Background(), "get_products", nil)

	assert.False(t, resp.Success)
	assert.Equal(t, CodeMissingToken, resp.Code)
	assert.Zero(t, c.calls.Load(), "no debe haberse emitido ninguna petición")
}

// ──────────────────────────────────────────────────────────────────────────────
// Normalización de fallos: Send nunca devuelve error
// ──────────────────────────────────────────────────────────────────────────────

// Cuerpo que no es JSON → variante de fallo PARSE_ERROR.
func TestSend_RespuestaNoJSON(t *testing.T) {
	var c capture
	srv := newBackend(t, &c, http.StatusOK, `<html>mantenimiento</html>`)
	defer srv.Close()

	cl := NewClient(srv.URL, staticToken("tok"), logger.Nop())
	resp := cl.Send(context.Background(), "get_products", nil)

	assert.False(t, resp.Success)
	assert.Equal(t, CodeParseError, resp.Code)
	assert.Equal(t, "invalid response", resp.Error)
}

// Backend inalcanzable → variante de fallo NETWORK_ERROR.
func TestSend_FalloDeRed(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close() // nadie escucha ya

	cl := NewClient(url, staticToken("tok"), logger.Nop())
	resp := cl.Send(context.Background(), "login", map[string]any{"email": "a@b.co"})

	assert.False(t, resp.Success)
	assert.Equal(t, CodeNetworkError, resp.Code)
	assert.NotEmpty(t, resp.Error)
}

// 401 dispara el embudo global exactamente una vez por respuesta y se
// normaliza como UNAUTHORIZED.
func TestSend_401InvocaEmbudo(t *testing.T) {
	var c capture
	srv := newBackend(t, &c, http.StatusUnauthorized, `{"success":false,"error":"sesi tidak valid"}`)
	defer srv.Close()

	var funnel atomic.Int64
	cl := NewClient(srv.URL, staticToken("tok-viejo"), logger.Nop())
	cl.OnUnauthorized(func() { funnel.Add(1) })

	resp := cl.Send(context.Background(), "get_products", nil)

	assert.False(t, resp.Success)
	assert.Equal(t, CodeUnauthorized, resp.Code)
	assert.Equal(t, int64(1), funnel.Load())
}

// ──────────────────────────────────────────────────────────────────────────────
// Reintento de lecturas idempotentes
// ──────────────────────────────────────────────────────────────────────────────

// flakyBackend corta la conexión en los primeros fails intentos y luego responde.
func flakyBackend(t *testing.T, fails int, body string) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= int64(fails) {
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			_ = conn.Close()
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	return srv, &calls
}

// Una lectura idempotente que falla por red se reintenta una única vez.
func TestSend_ReintentaLecturaIdempotente(t *testing.T) {
	old := retryBackoff
	retryBackoff = 5 * time.Millisecond
	defer func() { retryBackoff = old }()

	srv, calls := flakyBackend(t, 1, `{"success":true}`)
	defer srv.Close()

	cl := NewClient(srv.URL, staticToken("tok"), logger.Nop(), WithRetryReads(true))
	resp := cl.Send(context.Background(), "get_products", nil)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(2), calls.Load())
}

// login jamás se reintenta, ni con el reintento habilitado.
func TestSend_LoginNoSeReintenta(t *testing.T) {
	old := retryBackoff
	retryBackoff = 5 * time.Millisecond
	defer func() { retryBackoff = old }()

	srv, calls := flakyBackend(t, 5, `{"success":true}`)
	defer srv.Close()

	cl := NewClient(srv.URL, staticToken(""), logger.Nop(), WithRetryReads(true))
	resp := cl.Send(context.Background(), "login", map[string]any{"email": "a@b.co", "password": "x"})

	assert.False(t, resp.Success)
	assert.Equal(t, CodeNetworkError, resp.Code)
	assert.Equal(t, int64(1), calls.Load())
}

// ──────────────────────────────────────────────────────────────────────────────
// Decode del payload
// ──────────────────────────────────────────────────────────────────────────────

func TestResponse_Decode(t *testing.T) {
	var c capture
	srv := newBackend(t, &c, http.StatusOK, `{"success":true,"token":"t1","user":{"id":"u-1"}}`)
	defer srv.Close()

	cl := NewClient(srv.URL, staticToken(""), logger.Nop())
	resp := cl.Send(context.Background(), "login", map[string]any{"email": "a@b.co", "password": "x"})
	require.True(t, resp.Success)

	var payload struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, resp.Decode(&payload))
	assert.Equal(t, "t1", payload.Token)
	assert.Equal(t, "u-1", payload.User.ID)
}
