package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pizzaria-erp/go-api-server/internal/shared/testutil"
	"github.com/pizzaria-erp/go-api-server/internal/shared/token"
)

func TestAccessToken_RoundTrip(t *testing.T) {
	// Given
	manager := token.NewJWTManager(testutil.NewTestConfig())

	// When
	raw, err := manager.GenerateAccessToken("42", "caixa@pizzaria.com.br")
	require.NoError(t, err)
	claims, err := manager.ValidateToken(raw)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "42", claims.EmployeeID)
	assert.Equal(t, "caixa@pizzaria.com.br", claims.Email)
	assert.Equal(t, token.ACCESS, claims.TokenType)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "pizzaria-erp-api-test", claims.Issuer)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestRefreshToken_Type(t *testing.T) {
	manager := token.NewJWTManager(testutil.NewTestConfig())

	raw, err := manager.GenerateRefreshToken("42", "caixa@pizzaria.com.br")
	require.NoError(t, err)
	claims, err := manager.ValidateToken(raw)

	require.NoError(t, err)
	assert.Equal(t, token.REFRESH, claims.TokenType)
}

func TestValidateToken_Rejections(t *testing.T) {
	cfg := testutil.NewTestConfig()
	manager := token.NewJWTManager(cfg)

	expiredCfg := testutil.NewTestConfig()
	expiredCfg.JWT.Expiry = -time.Minute
	expired, err := token.NewJWTManager(expiredCfg).GenerateAccessToken("42", "a@b.com")
	require.NoError(t, err)

	otherSecretCfg := testutil.NewTestConfig()
	otherSecretCfg.JWT.Secret = "another-secret-key-that-is-at-least-32-characters"
	forged, err := token.NewJWTManager(otherSecretCfg).GenerateAccessToken("42", "a@b.com")
	require.NoError(t, err)

	otherIssuerCfg := testutil.NewTestConfig()
	otherIssuerCfg.App.Name = "outro-sistema"
	foreign, err := token.NewJWTManager(otherIssuerCfg).GenerateAccessToken("42", "a@b.com")
	require.NoError(t, err)

	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "expired", raw: expired, wantErr: token.ErrExpiredToken},
		{name: "wrong secret", raw: forged, wantErr: token.ErrInvalidToken},
		{name: "other issuer", raw: foreign, wantErr: token.ErrInvalidToken},
		{name: "garbage", raw: "not.a.token", wantErr: token.ErrInvalidToken},
		{name: "empty", raw: "", wantErr: token.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := manager.ValidateToken(tt.raw)

			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
