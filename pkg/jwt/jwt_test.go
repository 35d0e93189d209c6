package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUserID = "00000000-0000-0000-0000-000000000001"
	testIssuer = "mida-test"
)

func TestGenerateAndParse_ConservaClaims(t *testing.T) {
	tok, err := Generate(testSecret, testUserID, "inspector", "user", testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := Parse(testSecret, testIssuer, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, "inspector", claims.Username)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, testIssuer, claims.Issuer)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := Generate(testSecret, testUserID, "admin", "admin", testIssuer, -1)
	require.NoError(t, err)

	_, err = Parse(testSecret, testIssuer, tok)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := Generate(testSecret, testUserID, "admin", "admin", testIssuer, 60)
	require.NoError(t, err)

	_, err = Parse("otro-secret-completamente-distinto", testIssuer, tok)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParse_Malformado(t *testing.T) {
	_, err := Parse(testSecret, testIssuer, "token.invalido.aqui")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", testUserID, "admin", "admin", testIssuer, 60)
	assert.Error(t, err)
}

func TestParse_EmisorDistinto(t *testing.T) {
	tok, err := Generate(testSecret, testUserID, "admin", "admin", "otro-despliegue", 60)
	require.NoError(t, err)

	_, err = Parse(testSecret, testIssuer, tok)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParse_SinEmisorConfigurado(t *testing.T) {
	tok, err := Generate(testSecret, testUserID, "admin", "admin", "otro-despliegue", 60)
	require.NoError(t, err)

	_, err = Parse(testSecret, "", tok)
	assert.NoError(t, err)
}
