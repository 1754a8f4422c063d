package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/application/ports"
	"github.com/jhoicas/ecommerce-api/internal/application/validation"
	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
	"github.com/jhoicas/ecommerce-api/pkg/jwt"
	"github.com/jhoicas/ecommerce-api/pkg/password"
	"github.com/jhoicas/ecommerce-api/pkg/resettoken"
)

// ResetPath ruta pública que recibe el token de recuperación.
const ResetPath = "/api/v1/password/reset/"

// resetSubject asunto del correo de recuperación.
const resetSubject = "Ecommerce Password Recovery"

// defaultAvatar se asigna cuando el registro no trae avatar.
var defaultAvatar = entity.Image{PublicID: "avatars/default", URL: "profilepicurl"}

// Config parámetros de sesión y recuperación de contraseña.
type Config struct {
	Secret        string
	Issuer        string
	TokenTTL      time.Duration
	ResetTokenTTL time.Duration
	PublicURL     string // si no está vacío reemplaza la URL base derivada del request
}

// Session token emitido junto al usuario dueño.
type Session struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// AuthUseCase casos de uso de autenticación: registro, login, logout y recuperación de contraseña.
type AuthUseCase struct {
	users    repository.UserRepository
	mailer   ports.Mailer
	denylist ports.TokenDenylist
	cfg      Config
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, mailer ports.Mailer, denylist ports.TokenDenylist, cfg Config) *AuthUseCase {
	return &AuthUseCase{users: users, mailer: mailer, denylist: denylist, cfg: cfg, now: time.Now}
}

// Register crea el usuario con rol user, hashea la contraseña una sola vez y abre sesión.
// Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	user := &entity.User{
		Name:      in.Name,
		Email:     in.Email,
		Role:      entity.RoleUser,
		Avatar:    defaultAvatar,
		CreatedAt: uc.now().UTC(),
	}
	if in.Avatar != nil {
		user.Avatar = entity.Image{PublicID: in.Avatar.PublicID, URL: in.Avatar.URL}
	}
	if err := user.SetPassword(in.Password); err != nil {
		return nil, err
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return uc.issue(user)
}

// Login verifica email/password y abre sesión. Email desconocido y contraseña incorrecta
// devuelven el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*Session, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.users.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		password.CompareDummy(in.Password)
		return nil, domain.ErrInvalidCredentials
	}
	if !user.CheckPassword(in.Password) {
		return nil, domain.ErrInvalidCredentials
	}
	return uc.issue(user)
}

// Logout revoca el token en la denylist por lo que le queda de vida.
// Un token ausente o ya inválido no es error: el logout solo tiene que dejarlo inutilizable.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := jwt.Parse(uc.cfg.Secret, token)
	if err != nil {
		return nil
	}
	ttl := claims.ExpiresAt.Time.Sub(uc.now())
	if err := uc.denylist.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revocar token: %w", err)
	}
	return nil
}

// Authenticate valida el token de sesión y devuelve el usuario vigente leído de la DB.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}
	claims, err := jwt.Parse(uc.cfg.Secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	revoked, err := uc.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrUnauthenticated
	}
	user, err := uc.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidID) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

// ForgotPassword guarda un token de recuperación y lo envía por correo como URL.
// baseURL es esquema y host del request; Config.PublicURL tiene prioridad.
// Si el envío falla, el token se elimina antes de devolver ErrMailDelivery.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, in dto.ForgotPasswordRequest, baseURL string) (string, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validation.Struct(in); err != nil {
		return "", err
	}
	user, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrUserNotFound
	}

	raw, hashed, expiresAt, err := resettoken.Generate(uc.cfg.ResetTokenTTL)
	if err != nil {
		return "", err
	}
	if err := uc.users.SetResetToken(ctx, user.ID, &hashed, &expiresAt); err != nil {
		return "", err
	}

	if uc.cfg.PublicURL != "" {
		baseURL = uc.cfg.PublicURL
	}
	resetURL := strings.TrimRight(baseURL, "/") + ResetPath + raw
	msg := ports.Message{
		To:      user.Email,
		Subject: resetSubject,
		Body: fmt.Sprintf("Your password reset token is :- \n\n %s \n\n"+
			"If you have not requested this email then, please ignore it", resetURL),
	}
	if err := uc.mailer.Send(ctx, msg); err != nil {
		if clearErr := uc.users.SetResetToken(ctx, user.ID, nil, nil); clearErr != nil {
			return "", errors.Join(fmt.Errorf("%w: %v", domain.ErrMailDelivery, err), clearErr)
		}
		return "", fmt.Errorf("%w: %v", domain.ErrMailDelivery, err)
	}
	return user.Email, nil
}

// ResetPassword consume el token de recuperación y abre sesión con la nueva contraseña.
// El token se invalida en la misma escritura que guarda la contraseña.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, rawToken string, in dto.ResetPasswordRequest) (*Session, error) {
	hashed := resettoken.Hash(rawToken)
	now := uc.now()
	user, err := uc.users.GetByResetToken(ctx, hashed, now)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidResetToken
	}
	if in.Password != in.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := user.SetPassword(in.Password); err != nil {
		return nil, err
	}
	updated, err := uc.users.ConsumeResetToken(ctx, hashed, now, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	return uc.issue(updated)
}

// UpdatePassword cambia la contraseña del usuario autenticado tras verificar la actual.
func (uc *AuthUseCase) UpdatePassword(ctx context.Context, userID string, in dto.UpdatePasswordRequest) (*Session, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !user.CheckPassword(in.OldPassword) {
		return nil, domain.ErrWrongOldPassword
	}
	if in.NewPassword != in.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}
	if err := user.SetPassword(in.NewPassword); err != nil {
		return nil, err
	}
	if err := uc.users.UpdatePassword(ctx, user.ID, user.PasswordHash); err != nil {
		return nil, err
	}
	return uc.issue(user)
}

func (uc *AuthUseCase) issue(user *entity.User) (*Session, error) {
	token, _, expiresAt, err := jwt.Generate(uc.cfg.Secret, user.ID, uc.cfg.Issuer, uc.cfg.TokenTTL)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
