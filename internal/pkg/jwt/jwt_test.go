package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackview/internal/pkg/config"
	"stackview/pkg/constants"
)

func setupConfig(expire int) {
	config.GlobalConfig = &config.Config{
		Session: config.SessionConfig{
			Secret: "test-secret",
			Expire: expire,
		},
	}
}

func TestGenerateAndValidate(t *testing.T) {
	setupConfig(3600)

	token, err := GenerateSessionToken("sess-1", "octocat")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "octocat", claims.Login)
	assert.Equal(t, constants.JWTTypeAccess, claims.Type)
	assert.Equal(t, "octocat", claims.Subject)
}

func TestValidate_Expired(t *testing.T) {
	setupConfig(-60)

	token, err := GenerateSessionToken("sess-1", "octocat")
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestParse_Garbage(t *testing.T) {
	setupConfig(3600)

	_, err := ParseToken("not-a-jwt")
	assert.Error(t, err)
}

func TestParse_WrongSecret(t *testing.T) {
	setupConfig(3600)
	token, err := GenerateSessionToken("sess-1", "octocat")
	require.NoError(t, err)

	config.GlobalConfig.Session.Secret = "another-secret"
	_, err = ParseToken(token)
	assert.Error(t, err)
}
