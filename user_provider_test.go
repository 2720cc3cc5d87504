package titulacion_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	titulacion "github.com/uide-sgt/titulacion-api"
)

func storedUsuario(t *testing.T, password string) *titulacion.Usuario {
	t.Helper()

	hash, err := titulacion.HashPassword(password)
	require.NoError(t, err)

	return &titulacion.Usuario{
		ID:                  7,
		Nombres:             "Ana",
		Apellidos:           "Ruiz",
		CorreoInstitucional: "ana@uide.edu.ec",
		Clave:               hash,
		Rol:                 titulacion.RolEstudiante,
	}
}

func TestUsuarioProvider_VerifyIdentity(t *testing.T) {
	ctx := context.Background()

	t.Run("returns identity for a correct password", func(t *testing.T) {
		store := &MockUsuarioStore{}
		store.On("GetByEmail", ctx, "ana@uide.edu.ec").
			Return(storedUsuario(t, "123456"), nil)

		provider := titulacion.NewUsuarioProvider(store).WithLogger(noopLogger{})

		identity, err := provider.VerifyIdentity(ctx, "ana@uide.edu.ec", "123456")
		require.NoError(t, err)
		require.NotNil(t, identity)

		assert.Equal(t, int64(7), identity.ID())
		assert.Equal(t, "Ana", identity.Nombres())
		assert.Equal(t, "Ruiz", identity.Apellidos())
		assert.Equal(t, "ana@uide.edu.ec", identity.Email())
		assert.Equal(t, "ESTUDIANTE", identity.Role())

		store.AssertExpectations(t)
	})

	t.Run("wrong password yields invalid credentials", func(t *testing.T) {
		store := &MockUsuarioStore{}
		store.On("GetByEmail", ctx, "ana@uide.edu.ec").
			Return(storedUsuario(t, "123456"), nil)

		provider := titulacion.NewUsuarioProvider(store).WithLogger(noopLogger{})

		identity, err := provider.VerifyIdentity(ctx, "ana@uide.edu.ec", "wrong-pass")
		assert.ErrorIs(t, err, titulacion.ErrInvalidCredentials)
		assert.Nil(t, identity)
	})

	t.Run("unknown email yields the same invalid credentials", func(t *testing.T) {
		store := &MockUsuarioStore{}
		store.On("GetByEmail", ctx, "nadie@uide.edu.ec").
			Return(nil, titulacion.NewUserNotFound())

		provider := titulacion.NewUsuarioProvider(store).WithLogger(noopLogger{})

		identity, err := provider.VerifyIdentity(ctx, "nadie@uide.edu.ec", "123456")
		assert.ErrorIs(t, err, titulacion.ErrInvalidCredentials)
		assert.Nil(t, identity)
	})

	t.Run("malformed stored hash is a fault, not a credential failure", func(t *testing.T) {
		broken := storedUsuario(t, "123456")
		broken.Clave = "plaintext-leftover"

		store := &MockUsuarioStore{}
		store.On("GetByEmail", ctx, "ana@uide.edu.ec").
			Return(broken, nil)

		provider := titulacion.NewUsuarioProvider(store).WithLogger(noopLogger{})

		_, err := provider.VerifyIdentity(ctx, "ana@uide.edu.ec", "123456")
		require.Error(t, err)
		assert.NotErrorIs(t, err, titulacion.ErrInvalidCredentials)
		assert.True(t, titulacion.IsInvalidHashError(err))
	})
}

func TestUsuarioProvider_FindIdentityByID(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves without a credential check", func(t *testing.T) {
		store := &MockUsuarioStore{}
		store.On("GetByID", ctx, int64(7)).
			Return(storedUsuario(t, "123456"), nil)

		provider := titulacion.NewUsuarioProvider(store)

		identity, err := provider.FindIdentityByID(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), identity.ID())
	})

	t.Run("passes through not found", func(t *testing.T) {
		store := &MockUsuarioStore{}
		store.On("GetByID", ctx, int64(99)).
			Return(nil, titulacion.NewUserNotFound())

		provider := titulacion.NewUsuarioProvider(store)

		_, err := provider.FindIdentityByID(ctx, 99)
		require.Error(t, err)
	})
}

// recordingHasher tracks each hash handed to the credential check so tests
// can see which stored value the provider compared against.
type recordingHasher struct {
	hashes []string
	err    error
}

func (r *recordingHasher) HashPassword(password string) (string, error) {
	return titulacion.HashPassword(password)
}

func (r *recordingHasher) ComparePasswordAndHash(password, hash string) error {
	r.hashes = append(r.hashes, hash)
	return r.err
}

func TestUsuarioProvider_WithPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()

	t.Run("compares against the stored hash", func(t *testing.T) {
		record := storedUsuario(t, "123456")

		store := &MockUsuarioStore{}
		store.On("GetByEmail", ctx, "ana@uide.edu.ec").
			Return(record, nil)

		hasher := &recordingHasher{}
		provider := titulacion.NewUsuarioProvider(store).
			WithLogger(noopLogger{}).
			WithPasswordAuthenticator(hasher)

		identity, err := provider.VerifyIdentity(ctx, "ana@uide.edu.ec", "123456")
		require.NoError(t, err)
		require.NotNil(t, identity)

		require.Len(t, hasher.hashes, 1)
		assert.Equal(t, record.Clave, hasher.hashes[0])
	})

	t.Run("unknown email still runs one comparison", func(t *testing.T) {
		store := &MockUsuarioStore{}
		store.On("GetByEmail", ctx, "nadie@uide.edu.ec").
			Return(nil, titulacion.NewUserNotFound())

		hasher := &recordingHasher{}
		provider := titulacion.NewUsuarioProvider(store).
			WithLogger(noopLogger{}).
			WithPasswordAuthenticator(hasher)

		identity, err := provider.VerifyIdentity(ctx, "nadie@uide.edu.ec", "123456")
		assert.ErrorIs(t, err, titulacion.ErrInvalidCredentials)
		assert.Nil(t, identity)

		// The dummy comparison keeps the miss path doing the same work as
		// a hit, and it never touches a real stored hash.
		require.Len(t, hasher.hashes, 1)
		assert.NotEmpty(t, hasher.hashes[0])
	})

	t.Run("hasher rejection maps to invalid credentials", func(t *testing.T) {
		store := &MockUsuarioStore{}
		store.On("GetByEmail", ctx, "ana@uide.edu.ec").
			Return(storedUsuario(t, "123456"), nil)

		hasher := &recordingHasher{err: titulacion.ErrMismatchedHashAndPassword}
		provider := titulacion.NewUsuarioProvider(store).
			WithLogger(noopLogger{}).
			WithPasswordAuthenticator(hasher)

		_, err := provider.VerifyIdentity(ctx, "ana@uide.edu.ec", "123456")
		assert.ErrorIs(t, err, titulacion.ErrInvalidCredentials)
	})
}
