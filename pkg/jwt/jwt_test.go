package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Kardex-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "u-1", "Jefe de cancha", "kardex-test", time.Hour)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "Jefe de cancha", claims.Actor(), "el actor es el nombre cuando existe")
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "u-1", "", "kardex-test", time.Hour)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secreto", tok)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "u-1", "", "kardex-test", -time.Minute)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "un token expirado debe rechazarse")
}

func TestClaims_ActorSinNombreUsaUserID(t *testing.T) {
	c := &pkgjwt.Claims{UserID: "u-9"}
	assert.Equal(t, "u-9", c.Actor())
}
