package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecommerce-api/internal/application/auth"
	"github.com/jhoicas/ecommerce-api/internal/application/dto"
)

// AuthHandler maneja registro, login, logout y recuperación de contraseña.
type AuthHandler struct {
	uc           *auth.AuthUseCase
	cookieSecure bool
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookieSecure bool) *AuthHandler {
	return &AuthHandler{uc: uc, cookieSecure: cookieSecure}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "name, email, password"
// @Success      201   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody()
	}
	session, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return err
	}
	return h.sendSession(c, fiber.StatusCreated, session)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/v1/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody()
	}
	session, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return err
	}
	return h.sendSession(c, fiber.StatusOK, session)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/v1/logout [get]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.UserContext(), tokenFromRequest(c)); err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Expires:  time.Now(),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(dto.MessageResponse{Success: true, Message: "sesión cerrada"})
}

// ForgotPassword godoc
// @Summary      Solicitar recuperación de contraseña
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ForgotPasswordRequest  true  "email"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/v1/password/forgot [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.ForgotPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody()
	}
	email, err := h.uc.ForgotPassword(c.UserContext(), in, c.BaseURL())
	if err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "correo enviado a " + email})
}

// ResetPassword godoc
// @Summary      Restablecer contraseña con el token recibido por correo
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token  path  string                    true  "token de recuperación"
// @Param        body   body  dto.ResetPasswordRequest  true  "password, confirmPassword"
// @Success      200    {object}  dto.SessionResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/v1/password/reset/{token} [put]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody()
	}
	session, err := h.uc.ResetPassword(c.UserContext(), c.Params("token"), in)
	if err != nil {
		return err
	}
	return h.sendSession(c, fiber.StatusOK, session)
}

// UpdatePassword godoc
// @Summary      Cambiar contraseña
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdatePasswordRequest  true  "oldPassword, newPassword, confirmPassword"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/v1/password/update [put]
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	var in dto.UpdatePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody()
	}
	session, err := h.uc.UpdatePassword(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return h.sendSession(c, fiber.StatusOK, session)
}

// sendSession fija la cookie con la misma expiración del token y lo devuelve también en el cuerpo.
func (h *AuthHandler) sendSession(c *fiber.Ctx, status int, s *auth.Session) error {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    s.Token,
		Expires:  s.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Status(status).JSON(dto.SessionResponse{
		Success: true,
		User:    dto.ToUserResponse(s.User),
		Token:   s.Token,
	})
}
