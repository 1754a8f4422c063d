package auth

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/application/ports"
	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/memory"
	"github.com/jhoicas/ecommerce-api/pkg/jwt"
)

const testSecret = "test-secret"

type fakeMailer struct {
	sent []ports.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg ports.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type fakeDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func (d *fakeDenylist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.revoked == nil {
		d.revoked = map[string]time.Duration{}
	}
	d.revoked[jti] = ttl
	return nil
}

func (d *fakeDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.revoked[jti]
	return ok, nil
}

type fixture struct {
	uc       *AuthUseCase
	users    *memory.UserRepo
	mailer   *fakeMailer
	denylist *fakeDenylist
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{users: memory.NewUserRepository(), mailer: &fakeMailer{}, denylist: &fakeDenylist{}}
	f.uc = NewAuthUseCase(f.users, f.mailer, f.denylist, Config{
		Secret:        testSecret,
		Issuer:        "test",
		TokenTTL:      time.Hour,
		ResetTokenTTL: 15 * time.Hour,
	})
	return f
}

func (f *fixture) register(t *testing.T, email, pass string) *Session {
	t.Helper()
	s, err := f.uc.Register(context.Background(), dto.RegisterRequest{Name: "Alice Doe", Email: email, Password: pass})
	require.NoError(t, err)
	return s
}

// rawTokenFromMail extrae el token crudo de la URL enviada en el último correo.
func rawTokenFromMail(t *testing.T, m *fakeMailer) string {
	t.Helper()
	require.NotEmpty(t, m.sent)
	body := m.sent[len(m.sent)-1].Body
	i := strings.Index(body, ResetPath)
	require.GreaterOrEqual(t, i, 0)
	rest := body[i+len(ResetPath):]
	return strings.Fields(rest)[0]
}

func TestRegister_HasheaYLoginFunciona(t *testing.T) {
	f := newFixture(t)
	s := f.register(t, "alice@example.com", "secret123")

	assert.NotEmpty(t, s.Token)
	assert.Equal(t, "user", s.User.Role)
	assert.NotEqual(t, "secret123", s.User.PasswordHash)
	assert.True(t, strings.HasPrefix(s.User.PasswordHash, "$2"))

	stored, err := f.users.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.PasswordHash)

	login, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, s.User.ID, login.User.ID)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice@example.com", "secret123")

	_, err := f.uc.Register(context.Background(), dto.RegisterRequest{Name: "Alice Two", Email: "ALICE@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_Validacion(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Register(context.Background(), dto.RegisterRequest{Name: "Al", Email: "x", Password: "short"})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 3)
}

func TestLogin_ErrorIdenticoParaEmailYPassword(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice@example.com", "secret123")

	_, errUnknown := f.uc.Login(context.Background(), dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	_, errWrong := f.uc.Login(context.Background(), dto.LoginRequest{Email: "alice@example.com", Password: "wrongpass"})

	require.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
	require.ErrorIs(t, errWrong, domain.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestLogin_EmailDesconocidoTambienComparaHash(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice@example.com", "secret123")
	// primera llamada fuera de la medición: inicializa el hash de referencia
	_, _ = f.uc.Login(context.Background(), dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"})

	start := time.Now()
	_, _ = f.uc.Login(context.Background(), dto.LoginRequest{Email: "alice@example.com", Password: "wrongpass"})
	wrong := time.Since(start)

	start = time.Now()
	_, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "nobody@example.com", Password: "wrongpass"})
	unknown := time.Since(start)

	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.GreaterOrEqual(t, unknown, wrong/4, "un email desconocido debe costar un bcrypt")
}

func TestRegister_NombreSoloEspaciosYPasswordLarga(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Register(context.Background(), dto.RegisterRequest{Name: "  Al    ", Email: "alice@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Register(context.Background(), dto.RegisterRequest{Name: "Alice Doe", Email: "alice@example.com", Password: strings.Repeat("a", 80)})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "password", verr.Fields[0].Field)
}

func TestAuthenticate_TokenVigenteYExpirado(t *testing.T) {
	f := newFixture(t)
	s := f.register(t, "alice@example.com", "secret123")

	u, err := f.uc.Authenticate(context.Background(), s.Token)
	require.NoError(t, err)
	assert.Equal(t, s.User.ID, u.ID)

	expired, _, _, err := jwt.Generate(testSecret, s.User.ID, "test", -time.Minute)
	require.NoError(t, err)
	_, err = f.uc.Authenticate(context.Background(), expired)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAuthenticate_UsuarioBorrado(t *testing.T) {
	f := newFixture(t)
	s := f.register(t, "alice@example.com", "secret123")
	require.NoError(t, f.users.Delete(context.Background(), s.User.ID))

	_, err := f.uc.Authenticate(context.Background(), s.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestLogout_RevocaElToken(t *testing.T) {
	f := newFixture(t)
	s := f.register(t, "alice@example.com", "secret123")

	require.NoError(t, f.uc.Logout(context.Background(), s.Token))
	_, err := f.uc.Authenticate(context.Background(), s.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	for _, ttl := range f.denylist.revoked {
		assert.Greater(t, ttl, 59*time.Minute)
		assert.LessOrEqual(t, ttl, time.Hour)
	}
	assert.NoError(t, f.uc.Logout(context.Background(), "basura"))
	assert.NoError(t, f.uc.Logout(context.Background(), ""))
}

func TestForgotPassword_EnviaURL(t *testing.T) {
	f := newFixture(t)
	s := f.register(t, "alice@example.com", "secret123")

	email, err := f.uc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{Email: "alice@example.com"}, "http://shop.local:4000")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", email)

	require.Len(t, f.mailer.sent, 1)
	msg := f.mailer.sent[0]
	assert.Equal(t, "Ecommerce Password Recovery", msg.Subject)
	assert.Contains(t, msg.Body, "http://shop.local:4000/api/v1/password/reset/")

	raw := rawTokenFromMail(t, f.mailer)
	assert.Len(t, raw, 40)

	stored, err := f.users.GetByID(context.Background(), s.User.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ResetPasswordToken)
	require.NotNil(t, stored.ResetPasswordExpire)
	assert.NotEqual(t, raw, *stored.ResetPasswordToken)
	assert.WithinDuration(t, time.Now().Add(15*time.Hour), *stored.ResetPasswordExpire, time.Minute)
}

func TestForgotPassword_PublicURLTienePrioridad(t *testing.T) {
	f := newFixture(t)
	f.uc.cfg.PublicURL = "https://shop.example.com"
	f.register(t, "alice@example.com", "secret123")

	_, err := f.uc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{Email: "alice@example.com"}, "http://internal:4000")
	require.NoError(t, err)

	body := f.mailer.sent[0].Body
	i := strings.Index(body, "https://")
	require.GreaterOrEqual(t, i, 0)
	u, err := url.Parse(strings.Fields(body[i:])[0])
	require.NoError(t, err)
	assert.Equal(t, "shop.example.com", u.Host)
}

func TestForgotPassword_EmailDesconocido(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{Email: "nobody@example.com"}, "http://x")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestForgotPassword_FalloDeCorreoLimpiaElToken(t *testing.T) {
	f := newFixture(t)
	s := f.register(t, "alice@example.com", "secret123")
	f.mailer.err = errors.New("smtp caído")

	_, err := f.uc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{Email: "alice@example.com"}, "http://x")
	require.ErrorIs(t, err, domain.ErrMailDelivery)

	stored, err := f.users.GetByID(context.Background(), s.User.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ResetPasswordToken)
	assert.Nil(t, stored.ResetPasswordExpire)
}

func TestResetPassword_UnSoloUso(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice@example.com", "secret123")
	_, err := f.uc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{Email: "alice@example.com"}, "http://x")
	require.NoError(t, err)
	raw := rawTokenFromMail(t, f.mailer)

	in := dto.ResetPasswordRequest{Password: "newsecret1", ConfirmPassword: "newsecret1"}
	s, err := f.uc.ResetPassword(context.Background(), raw, in)
	require.NoError(t, err)
	assert.NotEmpty(t, s.Token)
	assert.Nil(t, s.User.ResetPasswordToken)

	_, err = f.uc.ResetPassword(context.Background(), raw, in)
	assert.ErrorIs(t, err, domain.ErrInvalidResetToken)

	_, err = f.uc.Login(context.Background(), dto.LoginRequest{Email: "alice@example.com", Password: "newsecret1"})
	assert.NoError(t, err)
	_, err = f.uc.Login(context.Background(), dto.LoginRequest{Email: "alice@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestResetPassword_Expirado(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice@example.com", "secret123")
	_, err := f.uc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{Email: "alice@example.com"}, "http://x")
	require.NoError(t, err)
	raw := rawTokenFromMail(t, f.mailer)

	f.uc.now = func() time.Time { return time.Now().Add(16 * time.Hour) }
	_, err = f.uc.ResetPassword(context.Background(), raw, dto.ResetPasswordRequest{Password: "newsecret1", ConfirmPassword: "newsecret1"})
	assert.ErrorIs(t, err, domain.ErrInvalidResetToken)
}

func TestResetPassword_ConfirmacionDistinta(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice@example.com", "secret123")
	_, err := f.uc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{Email: "alice@example.com"}, "http://x")
	require.NoError(t, err)
	raw := rawTokenFromMail(t, f.mailer)

	_, err = f.uc.ResetPassword(context.Background(), raw, dto.ResetPasswordRequest{Password: "newsecret1", ConfirmPassword: "other"})
	assert.ErrorIs(t, err, domain.ErrPasswordMismatch)

	// el token sigue vigente tras un intento rechazado
	_, err = f.uc.ResetPassword(context.Background(), raw, dto.ResetPasswordRequest{Password: "newsecret1", ConfirmPassword: "newsecret1"})
	assert.NoError(t, err)
}

func TestUpdatePassword(t *testing.T) {
	f := newFixture(t)
	s := f.register(t, "alice@example.com", "secret123")
	ctx := context.Background()

	_, err := f.uc.UpdatePassword(ctx, s.User.ID, dto.UpdatePasswordRequest{OldPassword: "nope12345", NewPassword: "newsecret1", ConfirmPassword: "newsecret1"})
	assert.ErrorIs(t, err, domain.ErrWrongOldPassword)

	_, err = f.uc.UpdatePassword(ctx, s.User.ID, dto.UpdatePasswordRequest{OldPassword: "secret123", NewPassword: "newsecret1", ConfirmPassword: "newsecret2"})
	assert.ErrorIs(t, err, domain.ErrPasswordMismatch)

	_, err = f.uc.UpdatePassword(ctx, s.User.ID, dto.UpdatePasswordRequest{OldPassword: "secret123", NewPassword: "newsecret1", ConfirmPassword: "newsecret1"})
	require.NoError(t, err)

	_, err = f.uc.Login(ctx, dto.LoginRequest{Email: "alice@example.com", Password: "newsecret1"})
	assert.NoError(t, err)
}
