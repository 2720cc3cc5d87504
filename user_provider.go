package titulacion

import (
	"context"
	"errors"
	"strconv"

	goerrors "github.com/goliatone/go-errors"
)

// UsuarioStore is the slice of the directory the provider needs.
type UsuarioStore interface {
	GetByEmail(ctx context.Context, email string) (*Usuario, error)
	GetByID(ctx context.Context, id int64) (*Usuario, error)
}

// UsuarioProvider resolves identities against the user directory.
type UsuarioProvider struct {
	store  UsuarioStore
	logger Logger
	hasher PasswordAuthenticator
	// dummyHash is compared against on the unknown-email path so both
	// failure arms pay the same bcrypt cost.
	dummyHash string
}

// NewUsuarioProvider will create a new UsuarioProvider
func NewUsuarioProvider(store UsuarioStore) *UsuarioProvider {
	return &UsuarioProvider{
		store:     store,
		logger:    defLogger{},
		hasher:    BcryptAuthenticator{},
		dummyHash: RandomPasswordHash(),
	}
}

func (u *UsuarioProvider) WithLogger(l Logger) *UsuarioProvider {
	u.logger = l
	return u
}

func (u *UsuarioProvider) WithPasswordAuthenticator(h PasswordAuthenticator) *UsuarioProvider {
	u.hasher = h
	return u
}

// VerifyIdentity will find the user, compare to the password, and return identity
func (u *UsuarioProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	user, err := u.store.GetByEmail(ctx, identifier)
	if err != nil {
		if goerrors.IsNotFound(err) {
			_ = u.hasher.ComparePasswordAndHash(password, u.dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user during verification")
	}

	if err := u.hasher.ComparePasswordAndHash(password, user.Clave); err != nil {
		if errors.Is(err, ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		// Malformed stored hash: a fault, not an authentication outcome.
		return nil, err
	}

	return usuarioIdentity{
		id:        user.ID,
		nombres:   user.Nombres,
		apellidos: user.Apellidos,
		email:     user.CorreoInstitucional,
		role:      string(user.Rol),
	}, nil
}

// FindIdentityByID resolves an identity without a credential check.
func (u *UsuarioProvider) FindIdentityByID(ctx context.Context, id int64) (Identity, error) {
	user, err := u.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return usuarioIdentity{
		id:        user.ID,
		nombres:   user.Nombres,
		apellidos: user.Apellidos,
		email:     user.CorreoInstitucional,
		role:      string(user.Rol),
	}, nil
}

type usuarioIdentity struct {
	id        int64
	nombres   string
	apellidos string
	email     string
	role      string
}

func (a usuarioIdentity) ID() int64 {
	return a.id
}

func (a usuarioIdentity) Nombres() string {
	return a.nombres
}

func (a usuarioIdentity) Apellidos() string {
	return a.apellidos
}

func (a usuarioIdentity) Email() string {
	return a.email
}

func (a usuarioIdentity) Role() string {
	return a.role
}

func (a usuarioIdentity) String() string {
	return "usuario:" + strconv.FormatInt(a.id, 10)
}

var _ Identity = usuarioIdentity{}
var _ IdentityProvider = (*UsuarioProvider)(nil)
