package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youssefyouyoudev/GestionStock/pkg/jwt"
)

const testSecret = "super-secret"

func TestGenerateYParse_IdaYVuelta(t *testing.T) {
	tok, err := jwt.Generate(testSecret, "user-1", "admin", "gestion-stock", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, username, err := jwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "admin", username)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "user-1", "admin", "gestion-stock", 60)
	assert.Error(t, err)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := jwt.Generate(testSecret, "user-1", "admin", "gestion-stock", 60)
	require.NoError(t, err)

	_, _, err = jwt.Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := jwt.Generate(testSecret, "user-1", "admin", "gestion-stock", -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestParse_TokenBasura(t *testing.T) {
	_, _, err := jwt.Parse(testSecret, "no.es.un.jwt")
	assert.Error(t, err)
}
