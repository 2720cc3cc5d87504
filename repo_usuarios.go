package titulacion

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Usuarios is the directory repository. The uniqueness invariant on
// correo_institucional is enforced both by a pre-check inside the
// registration transaction and by the table's unique constraint.
type Usuarios interface {
	GetByEmail(ctx context.Context, email string) (*Usuario, error)
	GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*Usuario, error)
	GetByID(ctx context.Context, id int64) (*Usuario, error)
	List(ctx context.Context) ([]*Usuario, error)
	Create(ctx context.Context, record *Usuario) (*Usuario, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Usuario) (*Usuario, error)
	DeleteByID(ctx context.Context, id int64) error
}

type usuarios struct {
	db *bun.DB
}

var _ Usuarios = (*usuarios)(nil)
var _ UsuarioStore = (*usuarios)(nil)

func NewUsuariosRepository(db *bun.DB) Usuarios {
	return &usuarios{db: db}
}

func (a *usuarios) GetByEmail(ctx context.Context, email string) (*Usuario, error) {
	return a.GetByEmailTx(ctx, a.db, email)
}

func (a *usuarios) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*Usuario, error) {
	record := &Usuario{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.correo_institucional = ?", strings.TrimSpace(email)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewUserNotFound().WithMetadata(map[string]any{
				"correo_institucional": email,
			})
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to query user by email")
	}

	return record, nil
}

func (a *usuarios) GetByID(ctx context.Context, id int64) (*Usuario, error) {
	record := &Usuario{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewUserNotFound().WithMetadata(map[string]any{
				"id": id,
			})
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to query user by id")
	}

	return record, nil
}

func (a *usuarios) List(ctx context.Context) ([]*Usuario, error) {
	var records []*Usuario
	err := a.db.NewSelect().
		Model(&records).
		Order("id ASC").
		Scan(ctx)

	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list users")
	}

	return records, nil
}

func (a *usuarios) Create(ctx context.Context, record *Usuario) (*Usuario, error) {
	return a.CreateTx(ctx, a.db, record)
}

func (a *usuarios) CreateTx(ctx context.Context, tx bun.IDB, record *Usuario) (*Usuario, error) {
	_, err := tx.NewInsert().
		Model(record).
		Returning("*").
		Exec(ctx)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create user")
	}

	return record, nil
}

func (a *usuarios) DeleteByID(ctx context.Context, id int64) error {
	res, err := a.db.NewDelete().
		Model((*Usuario)(nil)).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete user")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return NewUserNotFound().WithMetadata(map[string]any{
			"id": id,
		})
	}

	return nil
}

// isUniqueViolation matches the duplicate-key errors of the supported
// drivers: MySQL error 1062 and sqlite's UNIQUE constraint message.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
