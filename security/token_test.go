package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interntrack.com/interntrack/core/model"
)

var testSecret = []byte("test-secret")

func testUser() *model.User {
	return &model.User{
		ID:    "u1",
		Email: "alice@example.com",
		Role:  model.RoleIntern,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := CreateUserToken(testUser(), testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseUserToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, model.RoleIntern, claims.Role)
	assert.Equal(t, "interntrack", claims.Issuer)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := CreateUserToken(testUser(), testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseUserToken(token, testSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := CreateUserToken(testUser(), testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseUserToken(token, []byte("other-secret"))
	assert.Error(t, err)
}

func TestWrongSigningMethodRejected(t *testing.T) {
	// alg=none tokens must never pass
	token := jwt.NewWithClaims(jwt.SigningMethodNone, UserClaims{Identity: Identity{UserID: "u1"}})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseUserToken(signed, testSecret)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, err := ParseUserToken("not.a.token", testSecret)
	assert.Error(t, err)
}
