package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pet-catalog-api/internal/config"
	"github.com/pet-catalog-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCfg = config.AuthConfig{JWTSecret: "test-secret", JWTIssuer: "pet-catalog", TokenTTL: time.Hour}

func TestMintAndParse(t *testing.T) {
	token, err := Mint(testCfg, time.Now(), "user-1", models.RoleEditor, 0)
	require.NoError(t, err)

	claims, err := Parse(testCfg, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, models.RoleEditor, claims.Role)
	assert.Equal(t, "pet-catalog", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestMint_Rejects(t *testing.T) {
	_, err := Mint(config.AuthConfig{}, time.Now(), "user-1", models.RoleUser, time.Hour)
	assert.Error(t, err)

	_, err = Mint(testCfg, time.Now(), "", models.RoleUser, time.Hour)
	assert.Error(t, err)

	_, err = Mint(testCfg, time.Now(), "user-1", models.UserRole("ROOT"), time.Hour)
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	expired, err := Mint(testCfg, time.Now().Add(-2*time.Hour), "user-1", models.RoleUser, time.Hour)
	require.NoError(t, err)

	otherSecret := testCfg
	otherSecret.JWTSecret = "another-secret"
	forged, err := Mint(otherSecret, time.Now(), "user-1", models.RoleAdmin, time.Hour)
	require.NoError(t, err)

	otherIssuer := testCfg
	otherIssuer.JWTIssuer = "someone-else"
	foreign, err := Mint(otherIssuer, time.Now(), "user-1", models.RoleAdmin, time.Hour)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Role: models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1", Issuer: "pet-catalog",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":      expired,
		"wrong secret": forged,
		"wrong issuer": foreign,
		"alg none":     unsigned,
		"garbage":      "not.a.jwt",
		"empty":        "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(testCfg, token)
			assert.True(t, errors.Is(err, ErrInvalidToken), "got %v", err)
		})
	}
}
