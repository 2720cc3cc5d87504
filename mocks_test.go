package titulacion_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	titulacion "github.com/uide-sgt/titulacion-api"
)

// MockIdentity implements titulacion.Identity
type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) ID() int64 {
	args := m.Called()
	return args.Get(0).(int64)
}

func (m *MockIdentity) Nombres() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Apellidos() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Email() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Role() string {
	args := m.Called()
	return args.String(0)
}

// MockIdentityProvider implements titulacion.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, identifier, password string) (titulacion.Identity, error) {
	args := m.Called(ctx, identifier, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(titulacion.Identity), args.Error(1)
}

func (m *MockIdentityProvider) FindIdentityByID(ctx context.Context, id int64) (titulacion.Identity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(titulacion.Identity), args.Error(1)
}

// MockUsuarioStore implements titulacion.UsuarioStore
type MockUsuarioStore struct {
	mock.Mock
}

func (m *MockUsuarioStore) GetByEmail(ctx context.Context, email string) (*titulacion.Usuario, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*titulacion.Usuario), args.Error(1)
}

func (m *MockUsuarioStore) GetByID(ctx context.Context, id int64) (*titulacion.Usuario, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*titulacion.Usuario), args.Error(1)
}

// MockLogger implements titulacion.Logger
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Warn(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}

// noopLogger swallows log output in tests that do not assert on it.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
