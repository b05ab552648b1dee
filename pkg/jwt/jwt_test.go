package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vallas-erp/pkg/jwt"
)

const secret = "s3cr3t"

func TestGenerateYParse(t *testing.T) {
	tok, err := jwt.Generate(secret, "u1", "ana@vallas.cl", "contador", "vallas-erp", 5)
	require.NoError(t, err)

	claims, err := jwt.Parse(secret, "vallas-erp", tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "ana@vallas.cl", claims.Email)
	assert.Equal(t, "contador", claims.Role)
}

func TestParse_EmisorDistinto(t *testing.T) {
	tok, err := jwt.Generate(secret, "u1", "", "admin", "otro", 5)
	require.NoError(t, err)

	_, err = jwt.Parse(secret, "vallas-erp", tok)
	assert.Error(t, err)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := jwt.Generate("otro-secreto", "u1", "", "admin", "", 5)
	require.NoError(t, err)

	_, err = jwt.Parse(secret, "", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := jwt.Generate(secret, "u1", "", "admin", "", -1)
	require.NoError(t, err)

	_, err = jwt.Parse(secret, "", tok)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)
}

func TestParse_SubjectComoUsuario(t *testing.T) {
	claims := gojwt.MapClaims{"sub": "kp_123", "role": "vendedor", "exp": time.Now().Add(time.Minute).Unix()}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	got, err := jwt.Parse(secret, "", tok)
	require.NoError(t, err)
	assert.Equal(t, "kp_123", got.UserID)
	assert.Equal(t, "vendedor", got.Role)
}

func TestParse_SecretVacio(t *testing.T) {
	_, err := jwt.Parse("", "", "x")
	assert.Error(t, err)
}
