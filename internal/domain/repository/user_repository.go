package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos de búsqueda devuelven (nil, nil) si no existe y domain.ErrInvalidID si el id no
// tiene el formato del backend.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByResetToken busca por el hash del token cuya expiración sea posterior a now.
	GetByResetToken(ctx context.Context, hashedToken string, now time.Time) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	// UpdateProfile persiste name, email, role y avatar. No toca password ni el token de reset.
	UpdateProfile(ctx context.Context, user *entity.User) error
	// UpdatePassword persiste solo el hash de la contraseña.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// SetResetToken guarda o limpia (nil, nil) el par token/expiración.
	SetResetToken(ctx context.Context, id string, hashedToken *string, expiresAt *time.Time) error
	// ConsumeResetToken cambia la contraseña y limpia el token en una sola escritura atómica,
	// solo si el token sigue vigente. Devuelve domain.ErrInvalidResetToken si no aplica.
	ConsumeResetToken(ctx context.Context, hashedToken string, now time.Time, passwordHash string) (*entity.User, error)
	// Delete borra el usuario; devuelve domain.ErrUserNotFound si no existía.
	Delete(ctx context.Context, id string) error
}
