package services

import (
	"testing"

	"ventanilla/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumenEjecutivo(t *testing.T) {
	conn := newTestDB(t)
	areaA := crearAreaTest(t, conn)
	areaB := crearAreaTest(t, conn)

	crearOficioTest(t, conn, areaA.ID, models.TIPO_RECIBIDO_EXTERNO, models.PRIORIDAD_NORMAL)
	crearOficioTest(t, conn, areaA.ID, models.TIPO_RECIBIDO_EXTERNO, models.PRIORIDAD_URGENTE)
	vencido := crearOficioTest(t, conn, areaB.ID, models.TIPO_RECIBIDO_EXTERNO, models.PRIORIDAD_URGENTE)
	cancelado := crearOficioTest(t, conn, areaB.ID, models.TIPO_INFORMATIVO, models.PRIORIDAD_INFORMATIVO)

	_, err := CambiarEstado(conn, cancelado.ID, models.ESTADO_CANCELADO, 1, "cierre")
	require.NoError(t, err)
	retrocederRecepcion(t, conn, vencido.ID, 6)
	_, err = RecalcularTodos(conn)
	require.NoError(t, err)

	resumen, err := ObtenerResumenEjecutivo(conn)
	require.NoError(t, err)

	assert.Equal(t, 4, resumen.TotalOficios)
	assert.Equal(t, 3, resumen.PorEstado[models.ESTADO_RECIBIDO])
	assert.Equal(t, 1, resumen.PorEstado[models.ESTADO_CANCELADO])
	assert.Equal(t, 2, resumen.PorPrioridad[models.PRIORIDAD_URGENTE])

	// El cancelado no cuenta en el semáforo vigente.
	assert.Equal(t, 2, resumen.Semaforo.Verde)
	assert.Equal(t, 1, resumen.Semaforo.Rojo)

	// Tendencia: los 3 vivos mas el cancelado se recibieron dentro de la
	// ventana (el vencido quedó retrocedido 6 días).
	totalRecibidos := 0
	for _, p := range resumen.Tendencia {
		totalRecibidos += p.Recibidos
	}
	assert.Equal(t, 4, totalRecibidos)

	require.NotEmpty(t, resumen.AreasConCarga)
	assert.Equal(t, areaA.ID, resumen.AreasConCarga[0].AreaID)
	assert.Equal(t, 2, resumen.AreasConCarga[0].Pendientes)
}

func TestResumenArea(t *testing.T) {
	conn := newTestDB(t)
	area := crearAreaTest(t, conn)
	otra := crearAreaTest(t, conn)

	crearOficioTest(t, conn, area.ID, models.TIPO_RECIBIDO_EXTERNO, models.PRIORIDAD_NORMAL)
	crearOficioTest(t, conn, otra.ID, models.TIPO_RECIBIDO_EXTERNO, models.PRIORIDAD_NORMAL)
	_, err := CrearProyecto(conn, ProyectoInput{Nombre: "Obra", AreaID: area.ID}, 1)
	require.NoError(t, err)

	resumen, err := ObtenerResumenArea(conn, area.ID)
	require.NoError(t, err)
	assert.Equal(t, area.Nombre, resumen.AreaNombre)
	assert.Equal(t, 1, resumen.TotalOficios)
	assert.Equal(t, 1, resumen.PorEstado[models.ESTADO_RECIBIDO])
	assert.Equal(t, 1, resumen.Semaforo.Verde)
	assert.Equal(t, 1, resumen.Proyectos)

	_, err = ObtenerResumenArea(conn, 9999)
	require.Error(t, err)
	assert.Equal(t, KIND_NOT_FOUND, AsError(err).Kind)
}
