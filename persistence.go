package titulacion

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// OpenDB opens a bun handle for the given driver. MySQL is the deployment
// target; anything else falls back to the sqlite shim, which also backs the
// in-memory test databases.
func OpenDB(driver, dsn string) (*bun.DB, error) {
	switch driver {
	case "mysql":
		sqldb, err := sql.Open("mysql", dsn)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to open mysql connection")
		}
		return bun.NewDB(sqldb, mysqldialect.New()), nil
	default:
		sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to open sqlite connection")
		}
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	}
}

// EnsureSchema creates the usuarios table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().
		Model((*Usuario)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "failed to create usuarios table")
	}
	return nil
}
