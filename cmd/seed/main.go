package main

import (
	"context"
	"os"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"

	titulacion "github.com/uide-sgt/titulacion-api"
)

// Seeds the bootstrap account so a fresh deployment has a login to start
// from. Safe to run repeatedly.
func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("seed"),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	appLog := lgr.GetLogger("main")

	cfg, err := titulacion.LoadConfig()
	if err != nil {
		appLog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := titulacion.OpenDB(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		appLog.Error("database error", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := titulacion.EnsureSchema(ctx, db); err != nil {
		appLog.Error("schema error", "error", err)
		os.Exit(1)
	}

	handler := titulacion.NewRegisterUserHandler(titulacion.NewRepositoryManager(db))

	record, err := handler.Execute(ctx, titulacion.RegisterUserMessage{
		Nombres:             "Estudiante",
		Apellidos:           "Prueba",
		CorreoInstitucional: "estudiante@uide.edu.ec",
		Clave:               "123456",
		Rol:                 string(titulacion.RolEstudiante),
	})
	if err != nil {
		if titulacion.IsConflictError(err) {
			appLog.Info("seed user already exists, nothing to do")
			return
		}
		appLog.Error("seed failed", "error", err)
		os.Exit(1)
	}

	appLog.Info("seed user created", "id", record.ID, "email", record.CorreoInstitucional)
}
