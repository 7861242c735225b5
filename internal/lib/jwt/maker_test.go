package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTMaker_GenerateAndParseToken(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	maker := NewJWTMaker(secretKey, 15*time.Minute)

	tests := []struct {
		name   string
		userID string
	}{
		{name: "regular object id", userID: "507f1f77bcf86cd799439011"},
		{name: "another object id", userID: "64dd8c2f9b1e8b0012345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(tt.userID)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)
			assert.Equal(t, tt.userID, claims.ID)
			assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, time.Minute)
		})
	}
}

func TestJWTMaker_ParseToken_WrongSecret(t *testing.T) {
	maker := NewJWTMaker("secret-one", time.Hour)
	other := NewJWTMaker("secret-two", time.Hour)

	token, err := maker.GenerateToken("507f1f77bcf86cd799439011")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestJWTMaker_ParseToken_Expired(t *testing.T) {
	maker := NewJWTMaker("secret", time.Hour)

	token, err := maker.GenerateExpiredToken("507f1f77bcf86cd799439011")
	require.NoError(t, err)

	_, err = maker.ParseToken(token)
	assert.Error(t, err)
}

func TestJWTMaker_ParseToken_Garbage(t *testing.T) {
	maker := NewJWTMaker("secret", time.Hour)

	_, err := maker.ParseToken("not-a-token")
	assert.Error(t, err)
}
