package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/memory"
)

func newUser(email string) *entity.User {
	return &entity.User{
		ID:           uuid.NewString(),
		Name:         "Cliente",
		Email:        email,
		PasswordHash: "hash",
		Role:         entity.RoleUser,
		CreatedAt:    time.Now(),
	}
}

func TestCreate_EmailDuplicado(t *testing.T) {
	repo := memory.NewUserRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newUser("a@shop.com")))

	err := repo.Create(ctx, newUser("A@shop.com"))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestConsumeResetToken_UnSoloUso(t *testing.T) {
	repo := memory.NewUserRepository()
	ctx := context.Background()
	u := newUser("a@shop.com")
	require.NoError(t, repo.Create(ctx, u))

	tok := "hashed"
	exp := time.Now().Add(time.Hour)
	require.NoError(t, repo.SetResetToken(ctx, u.ID, &tok, &exp))

	got, err := repo.ConsumeResetToken(ctx, tok, time.Now(), "nuevo-hash")
	require.NoError(t, err)
	assert.Equal(t, "nuevo-hash", got.PasswordHash)
	assert.Nil(t, got.ResetPasswordToken)
	assert.Nil(t, got.ResetPasswordExpire)

	_, err = repo.ConsumeResetToken(ctx, tok, time.Now(), "otro-hash")
	assert.ErrorIs(t, err, domain.ErrInvalidResetToken)
}

func TestGetByResetToken_Expirado(t *testing.T) {
	repo := memory.NewUserRepository()
	ctx := context.Background()
	u := newUser("a@shop.com")
	require.NoError(t, repo.Create(ctx, u))

	tok := "hashed"
	exp := time.Now().Add(-time.Second)
	require.NoError(t, repo.SetResetToken(ctx, u.ID, &tok, &exp))

	got, err := repo.GetByResetToken(ctx, tok, time.Now())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetByID_DevuelveCopia(t *testing.T) {
	repo := memory.NewUserRepository()
	ctx := context.Background()
	u := newUser("a@shop.com")
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	got.Role = entity.RoleAdmin

	again, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, again.Role)
}
