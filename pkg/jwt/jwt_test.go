package jwt_test

import (
	"errors"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/ecommerce-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUserID = "00000000-0000-0000-0000-000000000001"
	testIssuer = "ecommerce-api-test"
)

func TestGenerateAndParse(t *testing.T) {
	tok, jti, exp, err := pkgjwt.Generate(testSecret, testUserID, testIssuer, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	require.NotEmpty(t, jti)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, jti, claims.ID)
	assert.Equal(t, testIssuer, claims.Issuer)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, _, _, err := pkgjwt.Generate(testSecret, testUserID, testIssuer, -time.Minute)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gojwt.ErrTokenExpired))
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, _, _, err := pkgjwt.Generate(testSecret, testUserID, testIssuer, time.Hour)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gojwt.ErrTokenSignatureInvalid))
}

func TestParse_AlgoritmoNone(t *testing.T) {
	claims := gojwt.MapClaims{"id": testUserID, "exp": time.Now().Add(time.Hour).Unix()}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestParse_SinExpiracion(t *testing.T) {
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{"id": testUserID}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "un token sin exp no debe aceptarse")
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, _, _, err := pkgjwt.Generate("", testUserID, testIssuer, time.Hour)
	assert.Error(t, err)
}
