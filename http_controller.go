package titulacion

import (
	"fmt"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// UsuarioPublic is the client-facing projection used by login and show.
type UsuarioPublic struct {
	ID        int64  `json:"id"`
	Nombres   string `json:"nombres"`
	Apellidos string `json:"apellidos"`
	Email     string `json:"email"`
	Rol       string `json:"rol"`
}

// UsuarioSummary is the listing projection; it keeps the storage field name
// for the email column.
type UsuarioSummary struct {
	ID                  int64  `json:"id"`
	Nombres             string `json:"nombres"`
	Apellidos           string `json:"apellidos"`
	CorreoInstitucional string `json:"correoInstitucional"`
	Rol                 string `json:"rol"`
}

// LoginResponse carries the freshly minted token plus public user fields.
type LoginResponse struct {
	Token string        `json:"token"`
	User  UsuarioPublic `json:"user"`
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

// CreateUserRequest is the registration payload.
type CreateUserRequest struct {
	Nombres             string `form:"nombres" json:"nombres"`
	Apellidos           string `form:"apellidos" json:"apellidos"`
	CorreoInstitucional string `form:"correoInstitucional" json:"correoInstitucional"`
	Clave               string `form:"clave" json:"clave"`
	Rol                 string `form:"rol" json:"rol"`
}

// Validate will validate the payload
func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Nombres, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Apellidos, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.CorreoInstitucional, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Clave, validation.Required, validation.Length(6, 100)),
		validation.Field(&r.Rol, validation.Required, validation.In(ValidRoles()...)),
	)
}

// AuthController serves the login endpoint.
type AuthController struct {
	Debug  bool
	Logger Logger
	Auther Authenticator
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing Authenticator in auth controller...")
	}

	return c
}

func WithAuthLogger(l Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = l
		return c
	}
}

func WithAuther(a Authenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = a
		return c
	}
}

func (a *AuthController) LoginPost(ctx router.Context) error {
	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{
			"message": "cuerpo de la petición inválido",
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{
			"message": err.Error(),
		})
	}

	if a.Debug {
		// never the password
		fmt.Println(print.MaybePrettyJSON(map[string]string{"login": payload.Email}))
	}

	token, identity, err := a.Auther.Login(ctx.Context(), payload.Email, payload.Password)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) && richErr.Category == goerrors.CategoryAuth {
			// Unknown email and wrong password share this response.
			return ctx.JSON(http.StatusUnauthorized, map[string]string{
				"message": "Credenciales inválidas",
			})
		}
		a.Logger.Error("login failed unexpectedly", "error", err)
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User: UsuarioPublic{
			ID:        identity.ID(),
			Nombres:   identity.Nombres(),
			Apellidos: identity.Apellidos(),
			Email:     identity.Email(),
			Rol:       identity.Role(),
		},
	})
}

// UsersController serves the directory CRUD endpoints. Every route is
// registered behind the gate middleware.
type UsersController struct {
	Logger   Logger
	Repo     RepositoryManager
	Register *RegisterUserHandler
}

func NewUsersController(repo RepositoryManager, register *RegisterUserHandler, logger Logger) *UsersController {
	if logger == nil {
		logger = defLogger{}
	}
	return &UsersController{
		Logger:   logger,
		Repo:     repo,
		Register: register,
	}
}

func (u *UsersController) Index(ctx router.Context) error {
	records, err := u.Repo.Usuarios().List(ctx.Context())
	if err != nil {
		u.Logger.Error("failed to list users", "error", err)
		return respondError(ctx, err)
	}

	out := make([]UsuarioSummary, 0, len(records))
	for _, r := range records {
		out = append(out, UsuarioSummary{
			ID:                  r.ID,
			Nombres:             r.Nombres,
			Apellidos:           r.Apellidos,
			CorreoInstitucional: r.CorreoInstitucional,
			Rol:                 string(r.Rol),
		})
	}

	return ctx.JSON(http.StatusOK, out)
}

func (u *UsersController) Create(ctx router.Context) error {
	payload := new(CreateUserRequest)

	if err := ctx.Bind(payload); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{
			"message": "cuerpo de la petición inválido",
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{
			"message": err.Error(),
		})
	}

	record, err := u.Register.Execute(ctx.Context(), RegisterUserMessage{
		Nombres:             payload.Nombres,
		Apellidos:           payload.Apellidos,
		CorreoInstitucional: payload.CorreoInstitucional,
		Clave:               payload.Clave,
		Rol:                 payload.Rol,
	})
	if err != nil {
		if IsConflictError(err) {
			return ctx.JSON(http.StatusConflict, map[string]string{
				"message": "El usuario ya existe",
			})
		}
		u.Logger.Error("failed to register user", "error", err)
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]any{
		"id":    record.ID,
		"email": record.CorreoInstitucional,
		"rol":   string(record.Rol),
	})
}

func (u *UsersController) Show(ctx router.Context) error {
	id := ctx.ParamsInt("id", 0)
	if id <= 0 {
		return ctx.JSON(http.StatusBadRequest, map[string]string{
			"message": "id inválido",
		})
	}

	record, err := u.Repo.Usuarios().GetByID(ctx.Context(), int64(id))
	if err != nil {
		if goerrors.IsNotFound(err) {
			return ctx.JSON(http.StatusNotFound, map[string]string{
				"message": "Usuario no encontrado",
			})
		}
		u.Logger.Error("failed to fetch user", "id", id, "error", err)
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, UsuarioPublic{
		ID:        record.ID,
		Nombres:   record.Nombres,
		Apellidos: record.Apellidos,
		Email:     record.CorreoInstitucional,
		Rol:       string(record.Rol),
	})
}

func (u *UsersController) Destroy(ctx router.Context) error {
	id := ctx.ParamsInt("id", 0)
	if id <= 0 {
		return ctx.JSON(http.StatusBadRequest, map[string]string{
			"message": "id inválido",
		})
	}

	if claims, ok := GetRouterClaims(ctx, ""); ok {
		u.Logger.Info("user deletion requested", "actor", claims.Subject(), "id", id)
	}

	if err := u.Repo.Usuarios().DeleteByID(ctx.Context(), int64(id)); err != nil {
		if goerrors.IsNotFound(err) {
			return ctx.JSON(http.StatusNotFound, map[string]string{
				"message": "Usuario no encontrado o no se puede eliminar",
			})
		}
		u.Logger.Error("failed to delete user", "id", id, "error", err)
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{
		"message": "Usuario eliminado correctamente",
	})
}

// AdvancesIndex is the stub listing endpoint for degree-process advances.
func AdvancesIndex(ctx router.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{
		"message": "Advances list",
	})
}

// ProposalsIndex is the stub listing endpoint for degree proposals.
func ProposalsIndex(ctx router.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{
		"message": "Proposals list",
	})
}

// HealthCheck reports liveness.
func HealthCheck(ctx router.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func RegisterAuthRoutes[T any](app router.Router[T], controller *AuthController) {
	app.Post("/auth/login", controller.LoginPost).SetName("auth.login")
}

func RegisterUserRoutes[T any](app router.Router[T], controller *UsersController, protected router.MiddlewareFunc) {
	app.Get("/users", controller.Index, protected).SetName("users.index")
	app.Post("/users", controller.Create, protected).SetName("users.create")
	app.Get("/users/:id", controller.Show, protected).SetName("users.show")
	app.Delete("/users/:id", controller.Destroy, protected).SetName("users.destroy")
}

func RegisterModuleStubRoutes[T any](app router.Router[T], protected router.MiddlewareFunc) {
	app.Get("/advances", AdvancesIndex, protected).SetName("advances.index")
	app.Get("/proposals", ProposalsIndex, protected).SetName("proposals.index")
}

func RegisterHealthRoutes[T any](app router.Router[T]) {
	app.Get("/health", HealthCheck).SetName("health")
}

// respondError maps rich errors onto their HTTP status; anything without a
// mapped code is a 500 and never leaks internals to the client.
func respondError(ctx router.Context, err error) error {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.Code >= 400 && richErr.Code < 600 {
		return ctx.JSON(richErr.Code, map[string]string{
			"message": richErr.Message,
		})
	}

	return ctx.JSON(http.StatusInternalServerError, map[string]string{
		"message": "Internal Server Error",
	})
}
