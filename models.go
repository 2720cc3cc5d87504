package titulacion

import (
	"time"

	"github.com/uptrace/bun"
)

// Usuario is the user record of the degree-process directory. Clave holds
// the bcrypt hash of the password and is never serialized to clients.
type Usuario struct {
	bun.BaseModel `bun:"table:usuarios,alias:usu"`

	ID                  int64     `bun:"id,pk,autoincrement" json:"id"`
	Nombres             string    `bun:"nombres,notnull" json:"nombres"`
	Apellidos           string    `bun:"apellidos,notnull" json:"apellidos"`
	CorreoInstitucional string    `bun:"correo_institucional,notnull,unique" json:"correoInstitucional"`
	Clave               string    `bun:"clave,notnull" json:"-"`
	Rol                 Rol       `bun:"rol,notnull" json:"rol"`
	CreatedAt           time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"-"`
	UpdatedAt           time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"-"`
}
