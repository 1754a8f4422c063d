package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
)

// CookieName cookie HTTP-only que transporta el token de sesión.
const CookieName = "token"

// LocalUser clave de c.Locals con el *entity.User autenticado.
const LocalUser = "user"

// Authenticator valida un token de sesión y devuelve el usuario vigente.
// Lo implementa *auth.AuthUseCase.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// AuthMiddleware exige un token de sesión válido (cookie "token" o Bearer) y deja el usuario,
// leído de la DB en esta misma petición, en c.Locals. Sin token o con token inválido: 401.
func AuthMiddleware(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromRequest(c)
		if token == "" {
			return domain.ErrUnauthenticated
		}
		user, err := auth.Authenticate(c.UserContext(), token)
		if err != nil {
			return err
		}
		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// RequireRole permite el paso solo si el rol del usuario autenticado está en roles (403 si no).
// Debe usarse DESPUÉS de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			return domain.ErrUnauthenticated
		}
		if !user.HasRole(roles...) {
			return domain.ErrForbidden
		}
		return c.Next()
	}
}

// GetUser devuelve el usuario autenticado (después del middleware de auth) o nil.
func GetUser(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(LocalUser).(*entity.User)
	return u
}

// GetUserID devuelve el ID del usuario autenticado o "".
func GetUserID(c *fiber.Ctx) string {
	if u := GetUser(c); u != nil {
		return u.ID
	}
	return ""
}

// tokenFromRequest prioriza la cookie; si no existe usa "Authorization: Bearer <token>".
func tokenFromRequest(c *fiber.Ctx) string {
	if tok := strings.TrimSpace(c.Cookies(CookieName)); tok != "" {
		return tok
	}
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
