package mockapi

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/youzi-corp/pos-client/internal/domain/entity"
	"github.com/youzi-corp/pos-client/pkg/logger"
)

// Server backend mock del protocolo de acciones, para el modo offline
// explícito y para desarrollo local. Nunca se sustituye en silencio por el
// backend real: solo arranca cuando la configuración lo pide y el usuario
// queda avisado.
type Server struct {
	app    *fiber.App
	secret string
	users  []seedUser
	log    *logger.Logger
}

type seedUser struct {
	user         entity.User
	passwordHash []byte
}

// Config del servidor mock.
type Config struct {
	JWTSecret string
	TokenTTL  time.Duration // por defecto 1h
	Logger    *logger.Logger
}

// New construye el servidor con el usuario semilla admin@youzi.co.id / rahasia123.
func New(cfg Config) *Server {
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = time.Hour
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.DefaultCost)
	s := &Server{
		secret: cfg.JWTSecret,
		log:    cfg.Logger,
		users: []seedUser{
			{user: seedAdmin(), passwordHash: hash},
		},
	}

	app := fiber.New(fiber.Config{
		AppName:               "youzi-pos-mock",
		DisableStartupMessage: true,
	})
	app.Post("/", s.handleAction(cfg.TokenTTL))
	s.app = app
	return s
}

// App expone la aplicación Fiber (tests usan app.Test).
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen sirve en addr hasta que el proceso termine.
func (s *Server) Listen(addr string) error {
	s.log.Info().Str("addr", addr).Msg("backend mock escuchando")
	return s.app.Listen(addr)
}

// Shutdown apaga el servidor.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

type actionRequest struct {
	Action   string `json:"action"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Search   string `json:"search"`
	Category string `json:"category"`
}

func (s *Server) handleAction(ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req actionRequest
		if err := c.BodyParser(&req); err != nil {
			return c.JSON(fiber.Map{"success": false, "error": "request tidak valid"})
		}

		switch req.Action {
		case "health", "test":
			return c.JSON(fiber.Map{"success": true, "status": "ok"})
		case "login":
			return s.login(c, req, ttl)
		case "validate":
			if _, ok := s.authorize(c); !ok {
				return unauthorized(c)
			}
			return c.JSON(fiber.Map{"success": true})
		case "get_products":
			if _, ok := s.authorize(c); !ok {
				return unauthorized(c)
			}
			products := filterProducts(req.Search, req.Category)
			return c.JSON(fiber.Map{"success": true, "products": products, "count": len(products)})
		case "get_dashboard_stats":
			if _, ok := s.authorize(c); !ok {
				return unauthorized(c)
			}
			return c.JSON(fiber.Map{"success": true,
				"total_products": 156,
				"total_sales":    "12450000",
				"low_stock":      8,
				"expiring_soon":  15,
			})
		default:
			return c.JSON(fiber.Map{"success": false, "error": "aksi tidak dikenal: " + req.Action})
		}
	}
}

func (s *Server) login(c *fiber.Ctx, req actionRequest, ttl time.Duration) error {
	for _, su := range s.users {
		if !strings.EqualFold(su.user.Email, req.Email) {
			continue
		}
		if bcrypt.CompareHashAndPassword(su.passwordHash, []byte(req.Password)) != nil {
			break
		}
		token, err := s.issueToken(su.user, ttl)
		if err != nil {
			return c.JSON(fiber.Map{"success": false, "error": "gagal membuat token"})
		}
		return c.JSON(fiber.Map{"success": true, "token": token, "user": su.user})
	}
	return c.JSON(fiber.Map{"success": false, "error": "Email atau password salah"})
}

// authorize valida el Bearer token de las acciones protegidas.
func (s *Server) authorize(c *fiber.Ctx) (string, bool) {
	header := c.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token, err := jwt.Parse(strings.TrimSpace(parts[1]), func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return "", false
	}
	sub, _ := token.Claims.GetSubject()
	return sub, true
}

func (s *Server) issueToken(u entity.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    "youzi-pos-mock",
		Subject:   u.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"success": false, "error": "sesi tidak valid", "code": "INVALID_TOKEN"})
}
