package titulacion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	titulacion "github.com/uide-sgt/titulacion-api"
)

func TestRol_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		rol   titulacion.Rol
		valid bool
	}{
		{"estudiante", titulacion.RolEstudiante, true},
		{"tutor", titulacion.RolTutor, true},
		{"director", titulacion.RolDirector, true},
		{"coordinador", titulacion.RolCoordinador, true},
		{"comite", titulacion.RolComite, true},
		{"docente integracion", titulacion.RolDocenteIntegracion, true},
		{"empty", titulacion.Rol(""), false},
		{"lowercase", titulacion.Rol("estudiante"), false},
		{"unknown", titulacion.Rol("ADMIN"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.rol.IsValid())
		})
	}
}

func TestParseRol(t *testing.T) {
	t.Run("accepts known roles", func(t *testing.T) {
		rol, ok := titulacion.ParseRol("TUTOR")
		assert.True(t, ok)
		assert.Equal(t, titulacion.RolTutor, rol)
	})

	t.Run("rejects unknown roles", func(t *testing.T) {
		_, ok := titulacion.ParseRol("SUPERADMIN")
		assert.False(t, ok)
	})
}

func TestValidRoles(t *testing.T) {
	roles := titulacion.ValidRoles()
	assert.Len(t, roles, 6)
	assert.Contains(t, roles, "ESTUDIANTE")
	assert.Contains(t, roles, "DOCENTE_INTEGRACION")
}
