package titulacion

// Rol is the closed set of roles a user can hold in the degree process.
type Rol string

const (
	RolEstudiante         Rol = "ESTUDIANTE"
	RolTutor              Rol = "TUTOR"
	RolDirector           Rol = "DIRECTOR"
	RolCoordinador        Rol = "COORDINADOR"
	RolComite             Rol = "COMITE"
	RolDocenteIntegracion Rol = "DOCENTE_INTEGRACION"
)

// IsValid checks if the role is one of the predefined valid roles
func (r Rol) IsValid() bool {
	switch r {
	case RolEstudiante, RolTutor, RolDirector, RolCoordinador, RolComite, RolDocenteIntegracion:
		return true
	default:
		return false
	}
}

func (r Rol) String() string {
	return string(r)
}

// ParseRol maps a raw string onto a role, reporting whether it is valid.
func ParseRol(s string) (Rol, bool) {
	r := Rol(s)
	return r, r.IsValid()
}

// ValidRoles returns the role set in a shape ozzo-validation's In accepts.
func ValidRoles() []any {
	return []any{
		string(RolEstudiante),
		string(RolTutor),
		string(RolDirector),
		string(RolCoordinador),
		string(RolComite),
		string(RolDocenteIntegracion),
	}
}
