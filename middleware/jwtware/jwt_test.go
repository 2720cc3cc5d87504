package jwtware_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/uide-sgt/titulacion-api/middleware/jwtware"
)

type stubClaims struct {
	subject string
	uid     int64
	email   string
	role    string
}

func (s stubClaims) Subject() string { return s.subject }
func (s stubClaims) UserID() int64   { return s.uid }
func (s stubClaims) Email() string   { return s.email }
func (s stubClaims) Role() string    { return s.role }
func (s stubClaims) HasRole(role string) bool {
	return s.role == role
}

type stubValidator struct {
	claims jwtware.AuthClaims
	err    error

	lastToken string
}

func (v *stubValidator) Validate(tokenString string) (jwtware.AuthClaims, error) {
	v.lastToken = tokenString
	if v.err != nil {
		return nil, v.err
	}
	return v.claims, nil
}

func noopHandler(ctx router.Context) error {
	return nil
}

func TestJWTWare_HeaderExtraction(t *testing.T) {
	validator := &stubValidator{
		claims: stubClaims{subject: "42", uid: 42, email: "ana@uide.edu.ec", role: "ESTUDIANTE"},
	}

	middleware := jwtware.New(jwtware.Config{
		TokenValidator: validator,
		ErrorHandler: func(ctx router.Context, err error) error {
			return err
		},
	})
	handler := middleware(noopHandler)

	t.Run("valid bearer token reaches the next handler", func(t *testing.T) {
		ctx := router.NewMockContext()
		ctx.HeadersM["Authorization"] = "Bearer some-token"
		ctx.On("GetString", "Authorization", "").Return("Bearer some-token")
		ctx.On("Locals", "user", mock.Anything).Return(nil)

		err := handler(ctx)
		require.NoError(t, err)
		assert.True(t, ctx.NextCalled)
		assert.Equal(t, "some-token", validator.lastToken)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		ctx := router.NewMockContext()
		ctx.On("GetString", "Authorization", "").Return("")

		err := handler(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, jwtware.ErrJWTMissingOrMalformed)
		assert.False(t, ctx.NextCalled)
	})

	t.Run("wrong scheme is rejected", func(t *testing.T) {
		ctx := router.NewMockContext()
		ctx.HeadersM["Authorization"] = "Basic some-token"
		ctx.On("GetString", "Authorization", "").Return("Basic some-token")

		err := handler(ctx)
		require.Error(t, err)
		assert.False(t, ctx.NextCalled)
	})
}

func TestJWTWare_ValidatorFailure(t *testing.T) {
	wantErr := errors.New("token is malformed")
	validator := &stubValidator{err: wantErr}

	middleware := jwtware.New(jwtware.Config{
		TokenValidator: validator,
		ErrorHandler: func(ctx router.Context, err error) error {
			return err
		},
	})
	handler := middleware(noopHandler)

	ctx := router.NewMockContext()
	ctx.HeadersM["Authorization"] = "Bearer bad-token"
	ctx.On("GetString", "Authorization", "").Return("Bearer bad-token")

	err := handler(ctx)
	assert.ErrorIs(t, err, wantErr)
	assert.False(t, ctx.NextCalled)
}

func TestJWTWare_RequiredRole(t *testing.T) {
	validator := &stubValidator{
		claims: stubClaims{subject: "42", uid: 42, role: "ESTUDIANTE"},
	}

	newHandler := func(role string) router.HandlerFunc {
		middleware := jwtware.New(jwtware.Config{
			TokenValidator: validator,
			RequiredRole:   role,
			ErrorHandler: func(ctx router.Context, err error) error {
				return err
			},
		})
		return middleware(noopHandler)
	}

	t.Run("matching role passes", func(t *testing.T) {
		ctx := router.NewMockContext()
		ctx.HeadersM["Authorization"] = "Bearer some-token"
		ctx.On("GetString", "Authorization", "").Return("Bearer some-token")
		ctx.On("Locals", "user", mock.Anything).Return(nil)

		err := newHandler("ESTUDIANTE")(ctx)
		require.NoError(t, err)
		assert.True(t, ctx.NextCalled)
	})

	t.Run("other role is denied", func(t *testing.T) {
		ctx := router.NewMockContext()
		ctx.HeadersM["Authorization"] = "Bearer some-token"
		ctx.On("GetString", "Authorization", "").Return("Bearer some-token")

		err := newHandler("COORDINADOR")(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "required role")
		assert.False(t, ctx.NextCalled)
	})
}

func TestJWTWare_Filter(t *testing.T) {
	validator := &stubValidator{
		claims: stubClaims{subject: "42"},
	}

	middleware := jwtware.New(jwtware.Config{
		TokenValidator: validator,
		Filter: func(ctx router.Context) bool {
			// skip every request
			return true
		},
	})
	handler := middleware(noopHandler)

	ctx := router.NewMockContext()

	err := handler(ctx)
	require.NoError(t, err)
	assert.True(t, ctx.NextCalled)
	assert.Empty(t, validator.lastToken)
}

func TestJWTWare_PanicsWithoutValidator(t *testing.T) {
	assert.Panics(t, func() {
		handler := jwtware.New(jwtware.Config{})(noopHandler)
		_ = handler(router.NewMockContext())
	})
}
