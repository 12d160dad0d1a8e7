package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayengine/config"
	"stayengine/infras/jwt"
)

func newService(secret string, expireMin int) jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "stayengine"
	cfg.JWT.AccessSecret = secret
	cfg.JWT.AccessExpireMin = expireMin

	return jwt.New(cfg)
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newService("secret", 15)

	token, err := svc.GenerateAccessToken("host-1", "host")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "host-1", claims.UserID)
	assert.Equal(t, "host", claims.Role)
	assert.NotEmpty(t, claims.TokenID)
}

func TestValidateToken_Errors(t *testing.T) {
	token, err := newService("secret", 15).GenerateAccessToken("guest-1", "guest")
	require.NoError(t, err)

	_, err = newService("other-secret", 15).ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	expired, err := newService("secret", -1).GenerateAccessToken("guest-1", "guest")
	require.NoError(t, err)

	_, err = newService("secret", 15).ValidateToken(expired)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)

	_, err = newService("secret", 15).ValidateToken("not-a-token")
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = jwt.ExtractTokenFromHeader("Basic abc")
	assert.Error(t, err)
}
