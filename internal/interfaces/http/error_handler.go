package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/pkg/logger"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// errorTable se recorre en orden; el primer errors.Is que coincida define la respuesta.
var errorTable = []errorMapping{
	{domain.ErrInvalidID, fiber.StatusBadRequest, "INVALID_ID"},
	{domain.ErrPasswordMismatch, fiber.StatusBadRequest, "PASSWORD_MISMATCH"},
	{domain.ErrWrongOldPassword, fiber.StatusBadRequest, "WRONG_OLD_PASSWORD"},
	{domain.ErrInvalidResetToken, fiber.StatusBadRequest, "INVALID_RESET_TOKEN"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "INVALID_INPUT"},
	{domain.ErrUnauthenticated, fiber.StatusUnauthorized, "UNAUTHENTICATED"},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrProductNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrMailDelivery, fiber.StatusInternalServerError, "MAIL_DELIVERY"},
}

// ErrorHandler traduce cualquier error devuelto por un handler o middleware a la respuesta
// {success:false, code, message}. Los handlers solo hacen return err.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := resolveError(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error atendiendo la petición")
		}
		return c.Status(status).JSON(body)
	}
}

func resolveError(err error) (int, dto.ErrorResponse) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		fields := make([]dto.FieldError, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			fields = append(fields, dto.FieldError{Field: f.Field, Rule: f.Rule, Message: f.Message})
		}
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: verr.Error(), Fields: fields}
	}
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			return m.status, dto.ErrorResponse{Code: m.code, Message: m.target.Error()}
		}
	}
	if errors.Is(err, jwtlib.ErrTokenExpired) || errors.Is(err, jwtlib.ErrTokenMalformed) ||
		errors.Is(err, jwtlib.ErrTokenSignatureInvalid) || errors.Is(err, jwtlib.ErrTokenUnverifiable) {
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: domain.ErrUnauthenticated.Error()}
	}
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		return ferr.Code, dto.ErrorResponse{Code: fiberCode(ferr.Code), Message: ferr.Message}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"}
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusUnprocessableEntity:
		return "UNPROCESSABLE_ENTITY"
	default:
		if status >= fiber.StatusInternalServerError {
			return "INTERNAL"
		}
		return "ERROR"
	}
}

// badBody error estándar para cuerpos que no se pueden decodificar.
func badBody() error {
	return fiber.NewError(fiber.StatusBadRequest, "cuerpo inválido")
}
