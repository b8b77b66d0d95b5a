package services

import (
	"testing"

	"ventanilla/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrearOficioEstadoInicialYSemaforo(t *testing.T) {
	conn := newTestDB(t)
	area := crearAreaTest(t, conn)

	casos := []struct {
		tipo          string
		estadoInicial string
	}{
		{models.TIPO_RECIBIDO_EXTERNO, models.ESTADO_RECIBIDO},
		{models.TIPO_INICIADO_INTERNO, models.ESTADO_EN_PROCESO},
		{models.TIPO_INFORMATIVO, models.ESTADO_RECIBIDO},
	}

	for _, caso := range casos {
		detalle := crearOficioTest(t, conn, area.ID, caso.tipo, models.PRIORIDAD_NORMAL)
		assert.Equal(t, caso.estadoInicial, detalle.Estado, "tipo %s", caso.tipo)
		assert.Equal(t, int64(1), detalle.Version)

		// Semáforo creado en verde con los umbrales sembrados para normal.
		require.NotNil(t, detalle.Semaforo)
		assert.Equal(t, models.COLOR_VERDE, detalle.Semaforo.EstadoSemaforo)
		assert.Equal(t, 0, detalle.Semaforo.DiasTranscurridos)
		assert.Equal(t, 5, detalle.Semaforo.DiasLimiteAmarillo)
		assert.Equal(t, 15, detalle.Semaforo.DiasLimiteRojo)

		// Historial inicial.
		require.Len(t, detalle.Historial, 1)
		assert.Equal(t, "ninguno", detalle.Historial[0].EstadoAnterior)
		assert.Equal(t, caso.estadoInicial, detalle.Historial[0].EstadoNuevo)

		// Solo el flujo interno nace asignado.
		if caso.tipo == models.TIPO_INICIADO_INTERNO {
			assert.NotNil(t, detalle.FechaAsignacion)
		} else {
			assert.Nil(t, detalle.FechaAsignacion)
		}
	}
}

func TestCrearOficioUrgenteTomaUmbralesSembrados(t *testing.T) {
	conn := newTestDB(t)
	area := crearAreaTest(t, conn)

	detalle := crearOficioTest(t, conn, area.ID, models.TIPO_RECIBIDO_EXTERNO, models.PRIORIDAD_URGENTE)
	require.NotNil(t, detalle.Semaforo)
	assert.Equal(t, 2, detalle.Semaforo.DiasLimiteAmarillo)
	assert.Equal(t, 5, detalle.Semaforo.DiasLimiteRojo)
}

func TestCrearOficioNumeroDuplicado(t *testing.T) {
	conn := newTestDB(t)
	area := crearAreaTest(t, conn)

	in := CrearOficioInput{
		NumeroOficio:   "SG/0001/2026",
		TipoProceso:    models.TIPO_RECIBIDO_EXTERNO,
		Prioridad:      models.PRIORIDAD_NORMAL,
		AreaAsignadaID: area.ID,
		Asunto:         "Primero",
	}
	_, err := CrearOficio(conn, in, 1)
	require.NoError(t, err)

	in.Asunto = "Segundo"
	_, err = CrearOficio(conn, in, 1)
	require.Error(t, err)
	assert.Equal(t, KIND_CONFLICT, AsError(err).Kind)
}

func TestCrearOficioValidaciones(t *testing.T) {
	conn := newTestDB(t)
	area := crearAreaTest(t, conn)

	base := CrearOficioInput{
		NumeroOficio:   "SG/0100/2026",
		TipoProceso:    models.TIPO_RECIBIDO_EXTERNO,
		Prioridad:      models.PRIORIDAD_NORMAL,
		AreaAsignadaID: area.ID,
		Asunto:         "Asunto",
	}

	sinNumero := base
	sinNumero.NumeroOficio = "  "
	_, err := CrearOficio(conn, sinNumero, 1)
	assert.Equal(t, KIND_VALIDATION, AsError(err).Kind)

	sinAsunto := base
	sinAsunto.Asunto = ""
	_, err = CrearOficio(conn, sinAsunto, 1)
	assert.Equal(t, KIND_VALIDATION, AsError(err).Kind)

	malTipo := base
	malTipo.TipoProceso = "externo"
	_, err = CrearOficio(conn, malTipo, 1)
	assert.Equal(t, KIND_VALIDATION, AsError(err).Kind)

	malPrioridad := base
	malPrioridad.Prioridad = "alta"
	_, err = CrearOficio(conn, malPrioridad, 1)
	assert.Equal(t, KIND_VALIDATION, AsError(err).Kind)

	// Área inactiva rechazada.
	inactiva := crearAreaTest(t, conn)
	_, err = CambiarEstadoArea(conn, inactiva.ID, false)
	require.NoError(t, err)
	enInactiva := base
	enInactiva.AreaAsignadaID = inactiva.ID
	_, err = CrearOficio(conn, enInactiva, 1)
	assert.Equal(t, KIND_NOT_FOUND, AsError(err).Kind)
}

func TestCrearOficioProyectoDeOtraArea(t *testing.T) {
	conn := newTestDB(t)
	areaA := crearAreaTest(t, conn)
	areaB := crearAreaTest(t, conn)

	proyecto, err := CrearProyecto(conn, ProyectoInput{
		Nombre: "Programa Anual", AreaID: areaB.ID,
	}, 1)
	require.NoError(t, err)

	_, err = CrearOficio(conn, CrearOficioInput{
		NumeroOficio:   "SG/0200/2026",
		TipoProceso:    models.TIPO_RECIBIDO_EXTERNO,
		Prioridad:      models.PRIORIDAD_NORMAL,
		AreaAsignadaID: areaA.ID,
		ProyectoID:     &proyecto.ID,
		Asunto:         "Cruce de áreas",
	}, 1)
	require.Error(t, err)
	assert.Equal(t, KIND_CONFLICT, AsError(err).Kind)
}

func TestCambiarEstadoFlujoExternoCompleto(t *testing.T) {
	conn := newTestDB(t)
	area := crearAreaTest(t, conn)
	oficio := crearOficioTest(t, conn, area.ID, models.TIPO_RECIBIDO_EXTERNO, models.PRIORIDAD_NORMAL)

	detalle, err := CambiarEstado(conn, oficio.ID, models.ESTADO_ASIGNADO, 1, "")
	require.NoError(t, err)
	assert.Equal(t, models.ESTADO_ASIGNADO, detalle.Estado)
	assert.NotNil(t, detalle.FechaAsignacion)
	assert.Equal(t, int64(2), detalle.Version)

	detalle, err = CambiarEstado(conn, oficio.ID, models.ESTADO_EN_PROCESO, 1, "")
	require.NoError(t, err)

	detalle, err = CambiarEstado(conn, oficio.ID, models.ESTADO_RESPONDIDO, 1, "")
	require.NoError(t, err)
	assert.NotNil(t, detalle.FechaRespuesta)

	detalle, err = CambiarEstado(conn, oficio.ID, models.ESTADO_EN_ESPERA_ACUSE, 1, "")
	require.NoError(t, err)

	detalle, err = CambiarEstado(conn, oficio.ID, models.ESTADO_FINALIZADO, 1, "Se recibió confirmación telefónica")
	require.NoError(t, err)
	assert.Equal(t, models.ESTADO_FINALIZADO, detalle.Estado)
	assert.NotNil(t, detalle.FechaFinalizacion)
	assert.Equal(t, int64(6), detalle.Version)

	// Historial completo: creación + 5 transiciones, en orden.
	require.Len(t, detalle.Historial, 6)
	assert.Equal(t, models.ESTADO_EN_ESPERA_ACUSE, detalle.Historial[5].EstadoAnterior)
	assert.Equal(t, models.ESTADO_FINALIZADO, detalle.Historial[5].EstadoNuevo)

	// Terminal: semáforo reseteado.
	require.NotNil(t, detalle.Semaforo)
	assert.Equal(t, models.COLOR_VERDE, detalle.Semaforo.EstadoSemaforo)
	assert.Equal(t, 0, detalle.Semaforo.DiasTranscurridos)
}

func TestCambiarEstadoTransicionInvalida(t *testing.T) {
	conn := newTestDB(t)
	area := crearAreaTest(t, conn)
	oficio := crearOficioTest(t, conn, area.ID, models.TIPO_RECIBIDO_EXTERNO, models.PRIORIDAD_NORMAL)

	// recibido -> finalizado no existe en el flujo externo.
	_, err := CambiarEstado(conn, oficio.ID, models.ESTADO_FINALIZADO, 1, "motivo")
	require.Error(t, err)
	assert.Equal(t, KIND_CONFLICT, AsError(err).Kind)

	// El estado no cambió y no se escribió historial extra.
	detalle, errO := ObtenerOficio(conn, oficio.ID)
	require.NoError(t, errO)
	assert.Equal(t, models.ESTADO_RECIBIDO, detalle.Estado)
	assert.Equal(t, int64(1), detalle.Version)
	assert.Len(t, detalle.Historial, 1)
}

func TestCancelarRequiereMotivo(t *testing.T) {
	conn := newTestDB(t)
	area := crearAreaTest(t, conn)
	oficio := crearOficioTest(t, conn, area.ID, models.TIPO_RECIBIDO_EXTERNO, models.PRIORIDAD_NORMAL)

	_, err := CambiarEstado(conn, oficio.ID, models.ESTADO_CANCELADO, 1, "   ")
	require.Error(t, err)
	assert.Equal(t, KIND_VALIDATION, AsError(err).Kind)

	detalle, err := CambiarEstado(conn, oficio.ID, models.ESTADO_CANCELADO, 1, "Duplicado del SG/0001/2026")
	require.NoError(t, err)
	assert.Equal(t, models.ESTADO_CANCELADO, detalle.Estado)
	assert.NotNil(t, detalle.FechaFinalizacion)
	assert.Equal(t, "Duplicado del SG/0001/2026", detalle.Historial[1].Motivo)
}

func TestFinalizarManualSinAcuseRequiereMotivo(t *testing.T) {
	conn := newTestDB(t)
	area := crearAreaTest(t, conn)
	oficio := crearOficioTest(t, conn, area.ID, models.TIPO_INICIADO_INTERNO, models.PRIORIDAD_NORMAL)

	_, err := CambiarEstado(conn, oficio.ID, models.ESTADO_RESPONDIDO, 1, "")
	require.NoError(t, err)
	_, err = CambiarEstado(conn, oficio.ID, models.ESTADO_EN_ESPERA_ACUSE, 1, "")
	require.NoError(t, err)

	_, err = CambiarEstado(conn, oficio.ID, models.ESTADO_FINALIZADO, 1, "")
	require.Error(t, err)
	assert.Equal(t, KIND_VALIDATION, AsError(err).Kind)

	// Con motivo sí procede.
	_, err = CambiarEstado(conn, oficio.ID, models.ESTADO_FINALIZADO, 1, "Acuse entregado en ventanilla física")
	require.NoError(t, err)
}

func TestFinalizarInformativoSinMotivo(t *testing.T) {
	conn := newTestDB(t)
	area := crearAreaTest(t, conn)
	oficio := crearOficioTest(t, conn, area.ID, models.TIPO_INFORMATIVO, models.PRIORIDAD_INFORMATIVO)

	_, err := CambiarEstado(conn, oficio.ID, models.ESTADO_ASIGNADO, 1, "")
	require.NoError(t, err)

	// Un informativo no maneja acuses ni exige motivo para finalizar.
	detalle, err := CambiarEstado(conn, oficio.ID, models.ESTADO_FINALIZADO, 1, "")
	require.NoError(t, err)
	assert.Equal(t, models.ESTADO_FINALIZADO, detalle.Estado)
}

func TestAsignarArea(t *testing.T) {
	conn := newTestDB(t)
	areaA := crearAreaTest(t, conn)
	areaB := crearAreaTest(t, conn)
	oficio := crearOficioTest(t, conn, areaA.ID, models.TIPO_RECIBIDO_EXTERNO, models.PRIORIDAD_NORMAL)

	detalle, err := AsignarArea(conn, oficio.ID, areaB.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, areaB.ID, detalle.AreaAsignadaID)
	assert.Equal(t, models.ESTADO_RECIBIDO, detalle.Estado)

	// Evento de auditoría sin cambio de estado.
	require.Len(t, detalle.Historial, 2)
	assert.Equal(t, detalle.Historial[1].EstadoAnterior, detalle.Historial[1].EstadoNuevo)
	assert.Contains(t, detalle.Historial[1].Motivo, "Reasignado")

	// No se reasigna un oficio terminal.
	_, err = CambiarEstado(conn, oficio.ID, models.ESTADO_CANCELADO, 1, "cierre de prueba")
	require.NoError(t, err)
	_, err = AsignarArea(conn, oficio.ID, areaA.ID, 1)
	assert.Equal(t, KIND_CONFLICT, AsError(err).Kind)
}

func TestCambiarPrioridadActualizaUmbralesNoElColor(t *testing.T) {
	conn := newTestDB(t)
	area := crearAreaTest(t, conn)
	oficio := crearOficioTest(t, conn, area.ID, models.TIPO_RECIBIDO_EXTERNO, models.PRIORIDAD_NORMAL)

	// Forzar un color amarillo con el sweep antes del cambio.
	retrocederRecepcion(t, conn, oficio.ID, 6)
	_, err := RecalcularTodos(conn)
	require.NoError(t, err)
	require.Equal(t, models.COLOR_AMARILLO, semaforoDe(t, conn, oficio.ID).EstadoSemaforo)

	detalle, err := CambiarPrioridad(conn, oficio.ID, models.PRIORIDAD_URGENTE, 1)
	require.NoError(t, err)
	assert.Equal(t, models.PRIORIDAD_URGENTE, detalle.Prioridad)

	// Umbrales nuevos aplicados de inmediato; el color queda hasta el sweep.
	sem := semaforoDe(t, conn, oficio.ID)
	assert.Equal(t, 2, sem.DiasLimiteAmarillo)
	assert.Equal(t, 5, sem.DiasLimiteRojo)
	assert.Equal(t, models.COLOR_AMARILLO, sem.EstadoSemaforo)

	// El próximo sweep recalcula con los umbrales nuevos: 6 días >= 5 es rojo.
	_, err = RecalcularTodos(conn)
	require.NoError(t, err)
	assert.Equal(t, models.COLOR_ROJO, semaforoDe(t, conn, oficio.ID).EstadoSemaforo)

	// Auditoría del cambio.
	historial := historialDe(t, conn, oficio.ID)
	ultimo := historial[len(historial)-1]
	assert.Equal(t, ultimo.EstadoAnterior, ultimo.EstadoNuevo)
	assert.Contains(t, ultimo.Motivo, "Prioridad")
}

func TestEditarOficioTerminalRechazado(t *testing.T) {
	conn := newTestDB(t)
	area := crearAreaTest(t, conn)
	oficio := crearOficioTest(t, conn, area.ID, models.TIPO_RECIBIDO_EXTERNO, models.PRIORIDAD_NORMAL)

	_, err := CambiarEstado(conn, oficio.ID, models.ESTADO_CANCELADO, 1, "cierre")
	require.NoError(t, err)

	nuevoAsunto := "Asunto corregido"
	_, err = EditarOficio(conn, oficio.ID, EditarOficioInput{Asunto: &nuevoAsunto}, 1)
	require.Error(t, err)
	assert.Equal(t, KIND_CONFLICT, AsError(err).Kind)
}

func TestEditarOficioCamposDescriptivos(t *testing.T) {
	conn := newTestDB(t)
	area := crearAreaTest(t, conn)
	oficio := crearOficioTest(t, conn, area.ID, models.TIPO_RECIBIDO_EXTERNO, models.PRIORIDAD_NORMAL)

	asunto := "Asunto corregido"
	obs := "Se anexa expediente"
	detalle, err := EditarOficio(conn, oficio.ID, EditarOficioInput{
		Asunto:        &asunto,
		Observaciones: &obs,
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, asunto, detalle.Asunto)
	assert.Equal(t, obs, detalle.Observaciones)
	assert.Equal(t, int64(2), detalle.Version)

	vacio := "   "
	_, err = EditarOficio(conn, oficio.ID, EditarOficioInput{Asunto: &vacio}, 1)
	assert.Equal(t, KIND_VALIDATION, AsError(err).Kind)
}

func TestListarOficiosFiltrosYPaginacion(t *testing.T) {
	conn := newTestDB(t)
	areaA := crearAreaTest(t, conn)
	areaB := crearAreaTest(t, conn)

	for i := 0; i < 3; i++ {
		crearOficioTest(t, conn, areaA.ID, models.TIPO_RECIBIDO_EXTERNO, models.PRIORIDAD_NORMAL)
	}
	urgente := crearOficioTest(t, conn, areaB.ID, models.TIPO_INICIADO_INTERNO, models.PRIORIDAD_URGENTE)

	// Filtro por área.
	listado, err := ListarOficios(conn, FiltroOficios{AreaID: &areaA.ID})
	require.NoError(t, err)
	assert.Equal(t, 3, listado.Total)

	// Filtro por prioridad.
	listado, err = ListarOficios(conn, FiltroOficios{Prioridad: models.PRIORIDAD_URGENTE})
	require.NoError(t, err)
	require.Equal(t, 1, listado.Total)
	assert.Equal(t, urgente.NumeroOficio, listado.Data[0].NumeroOficio)
	assert.Equal(t, models.COLOR_VERDE, listado.Data[0].EstadoSemaforo)

	// Búsqueda por número.
	listado, err = ListarOficios(conn, FiltroOficios{Busqueda: urgente.NumeroOficio})
	require.NoError(t, err)
	assert.Equal(t, 1, listado.Total)

	// Paginación.
	listado, err = ListarOficios(conn, FiltroOficios{Limite: 2, Pagina: 1})
	require.NoError(t, err)
	assert.Equal(t, 4, listado.Total)
	assert.Len(t, listado.Data, 2)
	assert.Equal(t, 2, listado.TotalPaginas)

	listado, err = ListarOficios(conn, FiltroOficios{Limite: 2, Pagina: 2})
	require.NoError(t, err)
	assert.Len(t, listado.Data, 2)
}

func TestObtenerOficioInexistente(t *testing.T) {
	conn := newTestDB(t)
	_, err := ObtenerOficio(conn, 9999)
	require.Error(t, err)
	assert.Equal(t, KIND_NOT_FOUND, AsError(err).Kind)
}
