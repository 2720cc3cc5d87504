package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-router"

	titulacion "github.com/uide-sgt/titulacion-api"
)

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("titulacion"),
		glog.WithAddSource(false),
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

	repo := titulacion.NewRepositoryManager(db)

	provider := titulacion.NewUsuarioProvider(repo.Usuarios()).
		WithLogger(lgr.GetLogger("auth:prv"))

	authenticator := titulacion.NewAuthenticator(provider, cfg).
		WithLogger(lgr.GetLogger("auth:authz"))

	auther := titulacion.NewHTTPAuthenticator(authenticator, cfg).
		WithLogger(lgr.GetLogger("auth:http"))

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		app := fiber.New(fiber.Config{
			UnescapePath:  true,
			StrictRouting: false,
			AppName:       "titulacion-api",
		})

		app.Use(cors.New(cors.Config{
			AllowOrigins: "*",
		}))

		return router.DefaultFiberOptions(app)
	})

	srv.Router().WithLogger(lgr.GetLogger("router"))

	authController := titulacion.NewAuthController(
		titulacion.WithAuther(authenticator),
		titulacion.WithAuthLogger(lgr.GetLogger("auth:ctrl")),
	)

	usersController := titulacion.NewUsersController(
		repo,
		titulacion.NewRegisterUserHandler(repo),
		lgr.GetLogger("users:ctrl"),
	)

	protected := auther.ProtectedRoute()

	titulacion.RegisterHealthRoutes(srv.Router())
	titulacion.RegisterAuthRoutes(srv.Router(), authController)
	titulacion.RegisterUserRoutes(srv.Router(), usersController, protected)
	titulacion.RegisterModuleStubRoutes(srv.Router(), protected)

	srv.Serve(":" + cfg.Port)

	appLog.Info("server listening", "port", cfg.Port)

	waitExitSignal()

	appLog.Info("shutting down")
}

func waitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
