package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/pkg/password"
)

// Roles válidos para User.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Image referencia opaca a una imagen almacenada externamente.
type Image struct {
	PublicID string `json:"public_id" bson:"public_id"`
	URL      string `json:"url" bson:"url"`
}

// User representa una cuenta de la tienda.
// ResetPasswordToken y ResetPasswordExpire van siempre juntos: ambos nil o ambos con valor.
type User struct {
	ID                  string
	Name                string
	Email               string
	PasswordHash        string // bcrypt; nunca texto plano
	Role                string
	Avatar              Image
	ResetPasswordToken  *string // sha256 hex del token entregado por email
	ResetPasswordExpire *time.Time
	CreatedAt           time.Time
}

// SetPassword hashea plain y lo asigna. Es el único camino para cambiar la contraseña,
// por lo que un hash nunca se vuelve a hashear.
func (u *User) SetPassword(plain string) error {
	h, err := password.Hash(plain)
	if errors.Is(err, password.ErrTooLong) {
		return domain.NewValidationError("password", "pwbytes",
			fmt.Sprintf("password no puede exceder %d bytes", password.MaxBytes))
	}
	if err != nil {
		return err
	}
	u.PasswordHash = h
	return nil
}

// CheckPassword compara plain con el hash almacenado.
func (u *User) CheckPassword(plain string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return password.Compare(plain, u.PasswordHash)
}

// SetResetToken asigna el par token/expiración de recuperación.
func (u *User) SetResetToken(hashed string, expiresAt time.Time) {
	u.ResetPasswordToken = &hashed
	u.ResetPasswordExpire = &expiresAt
}

// ClearResetToken elimina el par token/expiración.
func (u *User) ClearResetToken() {
	u.ResetPasswordToken = nil
	u.ResetPasswordExpire = nil
}

// HasRole indica si el rol del usuario está entre roles.
func (u *User) HasRole(roles ...string) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
