package services

import (
	"testing"

	"ventanilla/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrearAreaNombreDuplicado(t *testing.T) {
	conn := newTestDB(t)

	_, err := CrearArea(conn, AreaInput{Nombre: "Dirección Jurídica"})
	require.NoError(t, err)

	// La unicidad no distingue mayúsculas.
	_, err = CrearArea(conn, AreaInput{Nombre: "dirección jurídica"})
	require.Error(t, err)
	assert.Equal(t, KIND_CONFLICT, AsError(err).Kind)

	_, err = CrearArea(conn, AreaInput{Nombre: "  "})
	assert.Equal(t, KIND_VALIDATION, AsError(err).Kind)
}

func TestDesactivarAreaConUsuariosActivos(t *testing.T) {
	conn := newTestDB(t)
	area := crearAreaTest(t, conn)
	usuario := crearUsuarioTest(t, conn, "jperez", "Secreta123!", area.ID)

	_, err := CambiarEstadoArea(conn, area.ID, false)
	require.Error(t, err)
	assert.Equal(t, KIND_CONFLICT, AsError(err).Kind)

	// Sin usuarios activos sí se puede desactivar.
	_, err = CambiarEstadoUsuario(conn, usuario.ID, false)
	require.NoError(t, err)
	desactivada, err := CambiarEstadoArea(conn, area.ID, false)
	require.NoError(t, err)
	assert.False(t, desactivada.Activo)

	// Y reactivar.
	reactivada, err := CambiarEstadoArea(conn, area.ID, true)
	require.NoError(t, err)
	assert.True(t, reactivada.Activo)
}

func TestListarAreasSoloActivas(t *testing.T) {
	conn := newTestDB(t)
	activa := crearAreaTest(t, conn)
	inactiva := crearAreaTest(t, conn)
	_, err := CambiarEstadoArea(conn, inactiva.ID, false)
	require.NoError(t, err)

	soloActivas, err := ListarAreas(conn, true)
	require.NoError(t, err)
	require.Len(t, soloActivas, 1)
	assert.Equal(t, activa.ID, soloActivas[0].ID)

	todas, err := ListarAreas(conn, false)
	require.NoError(t, err)
	assert.Len(t, todas, 2)
}

func TestUsuariosDeArea(t *testing.T) {
	conn := newTestDB(t)
	areaA := crearAreaTest(t, conn)
	areaB := crearAreaTest(t, conn)
	crearUsuarioTest(t, conn, "usera", "Secreta123!", areaA.ID)
	crearUsuarioTest(t, conn, "userb", "Secreta123!", areaB.ID)

	usuarios, err := UsuariosDeArea(conn, areaA.ID)
	require.NoError(t, err)
	require.Len(t, usuarios, 1)
	assert.Equal(t, "usera", usuarios[0].Username)
}

func TestCrearUsuarioReglasDeRol(t *testing.T) {
	conn := newTestDB(t)
	area := crearAreaTest(t, conn)

	// Admin con área rechazado.
	_, err := CrearUsuario(conn, UsuarioInput{
		Username: "admin2", Password: "Secreta123!", NombreCompleto: "Admin Dos",
		Email: "admin2@sistema.gob.mx", Rol: models.ROL_ADMIN, AreaID: &area.ID,
	})
	assert.Equal(t, KIND_VALIDATION, AsError(err).Kind)

	// Usuario sin área rechazado.
	_, err = CrearUsuario(conn, UsuarioInput{
		Username: "jlopez", Password: "Secreta123!", NombreCompleto: "J. López",
		Email: "jlopez@sistema.gob.mx", Rol: models.ROL_USUARIO,
	})
	assert.Equal(t, KIND_VALIDATION, AsError(err).Kind)

	// Contraseña corta rechazada.
	_, err = CrearUsuario(conn, UsuarioInput{
		Username: "jlopez", Password: "corta", NombreCompleto: "J. López",
		Email: "jlopez@sistema.gob.mx", Rol: models.ROL_USUARIO, AreaID: &area.ID,
	})
	assert.Equal(t, KIND_VALIDATION, AsError(err).Kind)

	// Username duplicado (el seed ya crea "admin").
	_, err = CrearUsuario(conn, UsuarioInput{
		Username: "admin", Password: "Secreta123!", NombreCompleto: "Otro Admin",
		Email: "otro@sistema.gob.mx", Rol: models.ROL_USUARIO, AreaID: &area.ID,
	})
	assert.Equal(t, KIND_CONFLICT, AsError(err).Kind)
}
