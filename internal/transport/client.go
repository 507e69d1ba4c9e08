package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/youzi-corp/pos-client/pkg/logger"
)

// Códigos de fallo normalizados en Response.Code.
const (
	CodeNetworkError = "NETWORK_ERROR"
	CodeParseError   = "PARSE_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeMissingToken = "MISSING_TOKEN"
)

// publicActions acciones que no requieren token.
var publicActions = map[string]bool{
	"login":    true,
	"register": true,
	"test":     true,
	"health":   true,
}

// retryBackoff espera antes del reintento único de lecturas idempotentes.
var retryBackoff = 300 * time.Millisecond

// Response es la unión etiquetada que devuelve toda llamada al backend:
// {success:true, ...payload} o {success:false, error, code?}. Send nunca
// devuelve error: fallos de red y de parseo se normalizan a esta forma.
type Response struct {
	Success bool
	Error   string
	Code    string

	raw json.RawMessage // cuerpo completo, para decodificar el payload tipado
}

// Decode deserializa el payload de una respuesta exitosa en out.
func (r Response) Decode(out any) error {
	if len(r.raw) == 0 {
		return io.ErrUnexpectedEOF
	}
	return json.Unmarshal(r.raw, out)
}

// TokenFunc entrega el token vigente (vacío = sin sesión).
// La posee el Session Store; Transport nunca lee almacenamiento persistido.
type TokenFunc func() string

// Client emite peticiones al endpoint único de acciones del backend.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenFunc
	log     *logger.Logger

	// onUnauthorized es el embudo global para 401: se registra una sola vez
	// y lo invoca cualquier petición en vuelo que observe la invalidación,
	// sin importar qué componente la originó.
	onUnauthorized func()

	retryReads bool
}

// Option configura el Client.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client (timeouts, tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithRetryReads habilita un reintento único con backoff para acciones de
// lectura idempotentes que fallen por red. Nunca aplica a login.
func WithRetryReads(enabled bool) Option {
	return func(c *Client) { c.retryReads = enabled }
}

// NewClient construye el cliente del protocolo de acciones.
func NewClient(baseURL string, token TokenFunc, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		token:   token,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnUnauthorized registra el manejador global de 401. Debe llamarse una sola
// vez durante el arranque, antes de emitir peticiones.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// Send emite la acción con sus parámetros y devuelve siempre una Response
// normalizada. Valores nil en params se omiten antes de transmitir.
func (c *Client) Send(ctx context.Context, action string, params map[string]any) Response {
	resp := c.sendOnce(ctx, action, params)
	if resp.Code == CodeNetworkError && c.retryReads && idempotentRead(action) {
		select {
		case <-ctx.Done():
			return resp
		case <-time.After(retryBackoff):
		}
		c.log.Debug().Str("action", action).Msg("reintentando lectura idempotente")
		resp = c.sendOnce(ctx, action, params)
	}
	return resp
}

func (c *Client) sendOnce(ctx context.Context, action string, params map[string]any) Response {
	requestID := uuid.NewString()
	log := c.log.With().Str("action", action).Str("request_id", requestID).Logger()

	payload := map[string]any{"action": action}
	for k, v := range params {
		if v == nil {
			continue
		}
		payload[k] = v
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("serializar petición")
		return Response{Success: false, Error: err.Error(), Code: CodeNetworkError}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return Response{Success: false, Error: err.Error(), Code: CodeNetworkError}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	if !publicActions[action] {
		tok := ""
		if c.token != nil {
			tok = c.token()
		}
		if tok == "" {
			// No hay sesión: la petición ni siquiera sale a la red.
			return Response{Success: false, Error: "Token tidak ditemukan", Code: CodeMissingToken}
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	httpResp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("fallo de red")
		return Response{Success: false, Error: err.Error(), Code: CodeNetworkError}
	}
	defer httpResp.Body.Close()

	// 401 es señal fuera de banda de sesión invalidada, independiente del cuerpo.
	if httpResp.StatusCode == http.StatusUnauthorized {
		log.Warn().Msg("backend respondió 401: sesión invalidada")
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return Response{Success: false, Error: "sesi tidak valid", Code: CodeUnauthorized}
	}

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return Response{Success: false, Error: err.Error(), Code: CodeNetworkError}
	}

	resp := ParseBody(raw)
	if resp.Code == CodeParseError {
		log.Warn().Int("status", httpResp.StatusCode).Msg("respuesta no es JSON válido")
	}
	return resp
}

// ParseBody normaliza un cuerpo del protocolo a Response. Un cuerpo que no es
// JSON válido se convierte en el fallo PARSE_ERROR, nunca en un error.
func ParseBody(raw []byte) Response {
	var envelope struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		Code    string `json:"code"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return Response{Success: false, Error: "invalid response", Code: CodeParseError}
	}
	return Response{
		Success: envelope.Success,
		Error:   envelope.Error,
		Code:    envelope.Code,
		raw:     raw,
	}
}

// idempotentRead marca las acciones seguras de reintentar.
func idempotentRead(action string) bool {
	return action == "validate" || action == "test" || action == "health" ||
		strings.HasPrefix(action, "get_")
}
