package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, name, email, password_hash, role, avatar_public_id, avatar_url,
	reset_password_token, reset_password_expire, created_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. Si user.ID está vacío se le asigna un UUID.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if err := checkID(user.ID); err != nil {
		return err
	}
	query := `
		INSERT INTO users (id, name, email, password_hash, role, avatar_public_id, avatar_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role,
		user.Avatar.PublicID, user.Avatar.URL, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email (sin distinguir mayúsculas, igual que el índice único).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// GetByResetToken obtiene el usuario con ese token de recuperación aún vigente.
func (r *UserRepo) GetByResetToken(ctx context.Context, hashedToken string, now time.Time) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE reset_password_token = $1 AND reset_password_expire > $2`,
		hashedToken, now))
	if err != nil {
		return nil, fmt.Errorf("get user by reset token: %w", err)
	}
	return u, nil
}

// List lista todos los usuarios.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	list := []*entity.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// UpdateProfile actualiza name, email, role y avatar.
func (r *UserRepo) UpdateProfile(ctx context.Context, user *entity.User) error {
	if err := checkID(user.ID); err != nil {
		return err
	}
	query := `
		UPDATE users SET name = $2, email = $3, role = $4, avatar_public_id = $5, avatar_url = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.Role, user.Avatar.PublicID, user.Avatar.URL,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdatePassword actualiza solo el hash de la contraseña.
func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if err := checkID(id); err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SetResetToken guarda o limpia el par token/expiración en la misma sentencia.
func (r *UserRepo) SetResetToken(ctx context.Context, id string, hashedToken *string, expiresAt *time.Time) error {
	if err := checkID(id); err != nil {
		return err
	}
	if hashedToken == nil || expiresAt == nil {
		hashedToken, expiresAt = nil, nil
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE users SET reset_password_token = $2, reset_password_expire = $3 WHERE id = $1`,
		id, hashedToken, expiresAt)
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ConsumeResetToken aplica la nueva contraseña y limpia el token con un UPDATE condicional:
// dos consumos concurrentes del mismo token no pueden tener éxito ambos.
func (r *UserRepo) ConsumeResetToken(ctx context.Context, hashedToken string, now time.Time, passwordHash string) (*entity.User, error) {
	query := `
		UPDATE users SET password_hash = $3, reset_password_token = NULL, reset_password_expire = NULL
		WHERE reset_password_token = $1 AND reset_password_expire > $2
		RETURNING ` + userColumns
	u, err := scanUser(r.q.QueryRow(ctx, query, hashedToken, now, passwordHash))
	if err != nil {
		return nil, fmt.Errorf("consume reset token: %w", err)
	}
	if u == nil {
		return nil, domain.ErrInvalidResetToken
	}
	return u, nil
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// scanUser lee una fila de userColumns. Devuelve (nil, nil) si no hay filas.
func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Avatar.PublicID, &u.Avatar.URL,
		&u.ResetPasswordToken, &u.ResetPasswordExpire, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
