package utils

import (
	"strings"
	"testing"
	"time"
	"waste_tracker/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndParseJWT(t *testing.T) {
	truck := 7
	user := domain.User{ID: 42, Username: "juan", Roles: domain.RoleCollector, TruckNum: &truck}

	tok, err := GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(tok, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "juan", claims.Username)
	assert.Equal(t, domain.RoleCollector, claims.Role())
	require.NotNil(t, claims.TruckNum)
	assert.Equal(t, 7, *claims.TruckNum)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParseJWT_RejectsExpired(t *testing.T) {
	tok, err := GenerateJWT(domain.User{ID: 1, Username: "a", Roles: domain.RoleAdmin}, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(tok, testSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseJWT_RejectsWrongSecret(t *testing.T) {
	tok, err := GenerateJWT(domain.User{ID: 1, Username: "a"}, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(tok, "other-secret")
	assert.Error(t, err)
}

func TestParseJWT_RejectsTamperedPayload(t *testing.T) {
	tok, err := GenerateJWT(domain.User{ID: 1, Username: "viewer", Roles: domain.RoleViewer}, testSecret, time.Hour)
	require.NoError(t, err)

	forged, err := GenerateJWT(domain.User{ID: 1, Username: "viewer", Roles: domain.RoleAdmin}, "attacker", time.Hour)
	require.NoError(t, err)

	// Splice the forged payload onto the genuine signature
	parts := strings.Split(tok, ".")
	forgedParts := strings.Split(forged, ".")
	spliced := parts[0] + "." + forgedParts[1] + "." + parts[2]

	_, err = ParseJWT(spliced, testSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParseJWT_RejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{
		UserID:   1,
		Username: "a",
		Roles:    domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseJWT(tok, testSecret)
	assert.Error(t, err)
}

func TestClaimsRole_UnknownBecomesGuest(t *testing.T) {
	c := &Claims{Roles: "superuser"}
	assert.Equal(t, domain.RoleGuest, c.Role())
}
