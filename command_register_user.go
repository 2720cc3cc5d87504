package titulacion

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

type RegisterUserMessage struct {
	Nombres             string `json:"nombres"`
	Apellidos           string `json:"apellidos"`
	CorreoInstitucional string `json:"correoInstitucional"`
	Clave               string `json:"clave"`
	Rol                 string `json:"rol"`
}

func (e RegisterUserMessage) Type() string { return "usuario.register" }

// RegisterUserHandler creates a user record: the duplicate-email check,
// password hashing, and insert all run inside one transaction.
type RegisterUserHandler struct {
	repo RepositoryManager
}

func NewRegisterUserHandler(repo RepositoryManager) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

func (h *RegisterUserHandler) Execute(ctx context.Context, event RegisterUserMessage) (*Usuario, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during user registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterUserHandler) execute(ctx context.Context, event RegisterUserMessage) (*Usuario, error) {
	rol, ok := ParseRol(event.Rol)
	if !ok {
		return nil, goerrors.New("unknown role", goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest).
			WithMetadata(map[string]any{"rol": event.Rol})
	}

	user := &Usuario{}
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := h.repo.Usuarios().GetByEmailTx(ctx, tx, event.CorreoInstitucional); err == nil {
			return ErrUserExists
		} else if !goerrors.IsNotFound(err) {
			return err
		}

		hash, err := HashPassword(event.Clave)
		if err != nil {
			var richErr *goerrors.Error
			if goerrors.As(err, &richErr) {
				return goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid password provided")
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}

		user.Nombres = event.Nombres
		user.Apellidos = event.Apellidos
		user.CorreoInstitucional = event.CorreoInstitucional
		user.Clave = hash
		user.Rol = rol

		if user, err = h.repo.Usuarios().CreateTx(ctx, tx, user); err != nil {
			return err
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}

		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "user registration transaction failed")
	}

	return user, nil
}
