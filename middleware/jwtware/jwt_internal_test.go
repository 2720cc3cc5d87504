package jwtware

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetExtractorsParsesLookupString(t *testing.T) {
	extractors := GetExtractors("header:Authorization,cookie:jwt,query:auth_token", "Bearer")
	require.Len(t, extractors, 3)

	// Unknown sources are dropped rather than failing.
	extractors = GetExtractors("header:Authorization,body:token")
	require.Len(t, extractors, 1)
}

func TestGetDefaultConfigDefaults(t *testing.T) {
	cfg := GetDefaultConfig(Config{TokenValidator: TokenValidatorStub{}})

	require.Equal(t, "user", cfg.ContextKey)
	require.Equal(t, defaultTokenLookup, cfg.TokenLookup)
	require.Equal(t, "Bearer", cfg.AuthScheme)
	require.NotNil(t, cfg.SuccessHandler)
	require.NotNil(t, cfg.ErrorHandler)
}

// TokenValidatorStub satisfies TokenValidator for configuration tests.
type TokenValidatorStub struct{}

func (TokenValidatorStub) Validate(string) (AuthClaims, error) {
	return nil, ErrJWTMissingOrMalformed
}
