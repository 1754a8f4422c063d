// Package memory implementa los puertos de persistencia en memoria del proceso
// (DB_DRIVER=memory): desarrollo local y tests de casos de uso/HTTP.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo almacén de usuarios protegido por un RWMutex. Guarda copias para que el caller
// no pueda mutar el estado sin pasar por el repositorio.
type UserRepo struct {
	mu    sync.RWMutex
	users map[string]*entity.User
}

// NewUserRepository construye un almacén vacío.
func NewUserRepository() *UserRepo {
	return &UserRepo{users: make(map[string]*entity.User)}
}

// Create persiste un nuevo usuario; el email es único sin distinguir mayúsculas.
// Si user.ID está vacío se le asigna un UUID.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if _, err := uuid.Parse(user.ID); err != nil {
		return domain.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTaken(user.Email, user.ID) {
		return domain.ErrEmailAlreadyExists
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidID
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

// GetByResetToken busca un token de recuperación vigente.
func (r *UserRepo) GetByResetToken(_ context.Context, hashedToken string, now time.Time) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u := r.findResetToken(hashedToken, now); u != nil {
		return cloneUser(u), nil
	}
	return nil, nil
}

// List devuelve todos los usuarios, más recientes primero.
func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		list = append(list, cloneUser(u))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

// UpdateProfile persiste name, email, role y avatar.
func (r *UserRepo) UpdateProfile(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if r.emailTaken(user.Email, user.ID) {
		return domain.ErrEmailAlreadyExists
	}
	u.Name = user.Name
	u.Email = user.Email
	u.Role = user.Role
	u.Avatar = user.Avatar
	return nil
}

// UpdatePassword persiste el hash de la contraseña.
func (r *UserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

// SetResetToken guarda o limpia el par token/expiración.
func (r *UserRepo) SetResetToken(_ context.Context, id string, hashedToken *string, expiresAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if hashedToken == nil || expiresAt == nil {
		u.ClearResetToken()
		return nil
	}
	u.SetResetToken(*hashedToken, *expiresAt)
	return nil
}

// ConsumeResetToken cambia la contraseña y limpia el token bajo el mismo lock.
func (r *UserRepo) ConsumeResetToken(_ context.Context, hashedToken string, now time.Time, passwordHash string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.findResetToken(hashedToken, now)
	if u == nil {
		return nil, domain.ErrInvalidResetToken
	}
	u.PasswordHash = passwordHash
	u.ClearResetToken()
	return cloneUser(u), nil
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(_ context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *UserRepo) emailTaken(email, exceptID string) bool {
	for id, u := range r.users {
		if id != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (r *UserRepo) findResetToken(hashedToken string, now time.Time) *entity.User {
	for _, u := range r.users {
		if u.ResetPasswordToken != nil && *u.ResetPasswordToken == hashedToken &&
			u.ResetPasswordExpire != nil && u.ResetPasswordExpire.After(now) {
			return u
		}
	}
	return nil
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	if u.ResetPasswordToken != nil {
		tok := *u.ResetPasswordToken
		c.ResetPasswordToken = &tok
	}
	if u.ResetPasswordExpire != nil {
		exp := *u.ResetPasswordExpire
		c.ResetPasswordExpire = &exp
	}
	return &c
}
