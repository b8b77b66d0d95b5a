package services

import (
	"fmt"
	"strings"
	"time"

	"ventanilla/models"

	"github.com/jinzhu/gorm"
)

/************************************************
/**** MARK: TIPOS DE ENTRADA / SALIDA ****/
/************************************************/

type CrearOficioInput struct {
	NumeroOficio   string     `json:"numero_oficio" form:"numero_oficio"`
	TipoProceso    string     `json:"tipo_proceso" form:"tipo_proceso"`
	Prioridad      string     `json:"prioridad" form:"prioridad"`
	AreaAsignadaID int64      `json:"area_asignada_id" form:"area_asignada_id"`
	ProyectoID     *int64     `json:"proyecto_id" form:"proyecto_id"`
	Promovente     string     `json:"promovente" form:"promovente"`
	Destinatario   string     `json:"destinatario" form:"destinatario"`
	Asunto         string     `json:"asunto" form:"asunto"`
	Observaciones  string     `json:"observaciones" form:"observaciones"`
	FechaRecepcion *time.Time `json:"fecha_recepcion" form:"fecha_recepcion"`
}

type EditarOficioInput struct {
	Asunto        *string `json:"asunto"`
	Promovente    *string `json:"promovente"`
	Destinatario  *string `json:"destinatario"`
	Observaciones *string `json:"observaciones"`
	ProyectoID    *int64  `json:"proyecto_id"`
}

type FiltroOficios struct {
	AreaID     *int64
	TipoProceso string
	Prioridad  string
	Estado     string
	ProyectoID *int64
	Busqueda   string
	Pagina     int
	Limite     int
}

// OficioResumen es la fila de listado: oficio + nombres + semáforo.
type OficioResumen struct {
	models.Oficio
	AreaNombre        string `json:"area_nombre"`
	ProyectoNombre    string `json:"proyecto_nombre"`
	EstadoSemaforo    string `json:"estado_semaforo"`
	DiasTranscurridos int    `json:"dias_transcurridos"`
}

type ListadoOficios struct {
	Data         []OficioResumen `json:"data"`
	Total        int             `json:"total"`
	Pagina       int             `json:"pagina"`
	Limite       int             `json:"limite"`
	TotalPaginas int             `json:"total_paginas"`
}

type OficioDetalle struct {
	models.Oficio
	AreaNombre     string                   `json:"area_nombre"`
	ProyectoNombre string                   `json:"proyecto_nombre"`
	Historial      []models.HistorialEstado `json:"historial"`
	Archivos       []models.ArchivoOficio   `json:"archivos"`
	Semaforo       *models.SemaforoTiempo   `json:"semaforo"`
}

/************************************************
/**** MARK: HELPERS INTERNOS ****/
/************************************************/

func cargarOficio(db *gorm.DB, id int64) (*models.Oficio, *Error) {
	var oficio models.Oficio
	res := db.First(&oficio, id)
	if res.RecordNotFound() {
		return nil, ErrNotFound("Oficio no encontrado")
	}
	if res.Error != nil {
		return nil, ErrInterno()
	}
	return &oficio, nil
}

func validarArea(db *gorm.DB, areaID int64) (*models.Area, *Error) {
	var area models.Area
	if db.Where("id = ? AND activo = ?", areaID, true).First(&area).RecordNotFound() {
		return nil, ErrNotFound("Área no encontrada o inactiva")
	}
	return &area, nil
}

// obtenerConfigSemaforo lee los umbrales de la prioridad; si no hay fila en
// BD usa valores por defecto seguros.
func obtenerConfigSemaforo(db *gorm.DB, prioridad string) (int, int) {
	var cfg models.ConfiguracionSemaforo
	if db.Where("prioridad = ?", prioridad).First(&cfg).RecordNotFound() {
		return 5, 15
	}
	return cfg.DiasVerde, cfg.DiasRojo
}

// upsertSemaforo inserta el registro en verde/0 o, si ya existe, sobrescribe
// solo los umbrales. UPSERT atómico: seguro frente al sweep concurrente.
func upsertSemaforo(tx *gorm.DB, oficioID int64, prioridad string) error {
	verde, rojo := obtenerConfigSemaforo(tx, prioridad)
	return tx.Exec(`
		INSERT INTO semaforo_tiempo
			(oficio_id, estado_semaforo, dias_transcurridos, dias_limite_amarillo, dias_limite_rojo, alertas_enviadas, ultimo_color_alertado, fecha_calculo)
		VALUES (?, 'verde', 0, ?, ?, 0, '', ?)
		ON CONFLICT (oficio_id)
		DO UPDATE SET dias_limite_amarillo = ?, dias_limite_rojo = ?`,
		oficioID, verde, rojo, time.Now(), verde, rojo).Error
}

func registrarHistorial(tx *gorm.DB, oficioID int64, anterior, nuevo string, usuarioID int64, motivo string) error {
	now := time.Now()
	return tx.Create(&models.HistorialEstado{
		OficioID:       oficioID,
		EstadoAnterior: anterior,
		EstadoNuevo:    nuevo,
		UsuarioID:      usuarioID,
		Motivo:         motivo,
		FechaCambio:    &now,
	}).Error
}

/************************************************
/**** MARK: CREAR ****/
/************************************************/

// CrearOficio inserta el oficio en el estado inicial de su tipo de proceso,
// escribe el historial inicial y crea el semáforo, todo en una transacción.
func CrearOficio(db *gorm.DB, in CrearOficioInput, usuarioID int64) (*OficioDetalle, error) {
	if strings.TrimSpace(in.NumeroOficio) == "" {
		return nil, ErrValidation("numero_oficio es obligatorio")
	}
	if strings.TrimSpace(in.Asunto) == "" {
		return nil, ErrValidation("asunto es obligatorio")
	}
	if !models.TipoProcesoValido(in.TipoProceso) {
		return nil, ErrValidation(fmt.Sprintf("tipo_proceso inválido: %s", in.TipoProceso))
	}
	if !models.PrioridadValida(in.Prioridad) {
		return nil, ErrValidation(fmt.Sprintf("prioridad inválida: %s", in.Prioridad))
	}

	var existente models.Oficio
	if !db.Where("numero_oficio = ?", in.NumeroOficio).First(&existente).RecordNotFound() {
		return nil, ErrConflict(fmt.Sprintf("Ya existe un oficio con el número %q", in.NumeroOficio))
	}

	if _, errA := validarArea(db, in.AreaAsignadaID); errA != nil {
		return nil, errA
	}

	if in.ProyectoID != nil {
		var proyecto models.Proyecto
		if db.Where("id = ? AND activo = ?", *in.ProyectoID, true).First(&proyecto).RecordNotFound() {
			return nil, ErrNotFound("Proyecto no encontrado")
		}
		if proyecto.AreaID != in.AreaAsignadaID {
			return nil, ErrConflict("El proyecto pertenece a otra área")
		}
	}

	estadoInicial := models.EstadoInicial[in.TipoProceso]
	now := time.Now()
	recepcion := now
	if in.FechaRecepcion != nil {
		recepcion = *in.FechaRecepcion
	}

	oficio := models.Oficio{
		NumeroOficio:   in.NumeroOficio,
		TipoProceso:    in.TipoProceso,
		Prioridad:      in.Prioridad,
		Estado:         estadoInicial,
		AreaAsignadaID: in.AreaAsignadaID,
		ProyectoID:     in.ProyectoID,
		Promovente:     in.Promovente,
		Destinatario:   in.Destinatario,
		Asunto:         in.Asunto,
		Observaciones:  in.Observaciones,
		FechaRecepcion: recepcion,
		Version:        1,
		CreadoPor:      usuarioID,
	}
	// Un iniciado_interno nace ya asignado a su área.
	if in.TipoProceso == models.TIPO_INICIADO_INTERNO {
		oficio.FechaAsignacion = &now
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&oficio).Error; err != nil {
			return err
		}
		if err := registrarHistorial(tx, oficio.ID, "ninguno", estadoInicial, usuarioID, "Oficio creado"); err != nil {
			return err
		}
		return upsertSemaforo(tx, oficio.ID, in.Prioridad)
	})
	if err != nil {
		return nil, AsError(err)
	}

	return ObtenerOficio(db, oficio.ID)
}

/************************************************
/**** MARK: CAMBIAR ESTADO ****/
/************************************************/

// CambiarEstado valida la transición contra la tabla del tipo de proceso,
// estampa el hito correspondiente (una sola vez), agrega historial y, si el
// destino es terminal, resetea el semáforo. Todo en una transacción.
func CambiarEstado(db *gorm.DB, id int64, nuevoEstado string, usuarioID int64, motivo string) (*OficioDetalle, error) {
	oficio, errO := cargarOficio(db, id)
	if errO != nil {
		return nil, errO
	}

	if !models.TransicionPermitida(oficio.TipoProceso, oficio.Estado, nuevoEstado) {
		return nil, ErrConflict(fmt.Sprintf(
			"No se puede cambiar de %q a %q en un oficio de tipo %q",
			oficio.Estado, nuevoEstado, oficio.TipoProceso))
	}

	motivo = strings.TrimSpace(motivo)

	// Finalización manual de un oficio no informativo: requiere motivo salvo
	// que exista un acuse activo.
	if nuevoEstado == models.ESTADO_FINALIZADO && oficio.TipoProceso != models.TIPO_INFORMATIVO && motivo == "" {
		var total int
		db.Model(&models.ArchivoOficio{}).
			Where("oficio_id = ? AND categoria = ? AND es_version_activa = ?", id, models.CATEGORIA_ACUSE, true).
			Count(&total)
		if total == 0 {
			return nil, ErrValidation("Se requiere motivo para finalización manual sin acuse")
		}
	}

	// Cancelar siempre requiere justificación.
	if nuevoEstado == models.ESTADO_CANCELADO && motivo == "" {
		return nil, ErrValidation("Se requiere motivo para cancelar un oficio")
	}

	now := time.Now()
	err := db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"estado":         nuevoEstado,
			"modificado_por": usuarioID,
			"version":        gorm.Expr("version + 1"),
		}
		switch nuevoEstado {
		case models.ESTADO_ASIGNADO:
			if oficio.FechaAsignacion == nil {
				updates["fecha_asignacion"] = now
			}
		case models.ESTADO_RESPONDIDO:
			if oficio.FechaRespuesta == nil {
				updates["fecha_respuesta"] = now
			}
		case models.ESTADO_FINALIZADO, models.ESTADO_CANCELADO:
			if oficio.FechaFinalizacion == nil {
				updates["fecha_finalizacion"] = now
			}
		}

		if err := tx.Model(&models.Oficio{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		if err := registrarHistorial(tx, id, oficio.Estado, nuevoEstado, usuarioID, motivo); err != nil {
			return err
		}

		// Estado terminal: el semáforo vuelve a verde/0 y se desarma la alerta.
		if models.EsEstadoTerminal(nuevoEstado) {
			return tx.Model(&models.SemaforoTiempo{}).
				Where("oficio_id = ?", id).
				Updates(map[string]interface{}{
					"estado_semaforo":       models.COLOR_VERDE,
					"dias_transcurridos":    0,
					"ultimo_color_alertado": "",
					"fecha_calculo":         now,
				}).Error
		}
		return nil
	})
	if err != nil {
		return nil, AsError(err)
	}

	return ObtenerOficio(db, id)
}

/************************************************
/**** MARK: ASIGNAR AREA ****/
/************************************************/

// AsignarArea mueve el oficio de área sin tocar su estado. Queda registrado
// en el historial como evento de auditoría (estado_anterior = estado_nuevo).
func AsignarArea(db *gorm.DB, id int64, areaID int64, usuarioID int64) (*OficioDetalle, error) {
	oficio, errO := cargarOficio(db, id)
	if errO != nil {
		return nil, errO
	}
	if models.EsEstadoTerminal(oficio.Estado) {
		return nil, ErrConflict("No se puede reasignar un oficio en estado terminal")
	}

	area, errA := validarArea(db, areaID)
	if errA != nil {
		return nil, errA
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Oficio{}).Where("id = ?", id).Updates(map[string]interface{}{
			"area_asignada_id": areaID,
			"modificado_por":   usuarioID,
			"version":          gorm.Expr("version + 1"),
		}).Error; err != nil {
			return err
		}
		motivo := fmt.Sprintf("Reasignado al área %q (ID %d)", area.Nombre, areaID)
		return registrarHistorial(tx, id, oficio.Estado, oficio.Estado, usuarioID, motivo)
	})
	if err != nil {
		return nil, AsError(err)
	}

	return ObtenerOficio(db, id)
}

/************************************************
/**** MARK: CAMBIAR PRIORIDAD ****/
/************************************************/

// CambiarPrioridad actualiza la prioridad y sobrescribe los umbrales del
// semáforo con la configuración nueva. El color y los días transcurridos NO
// se recalculan aquí: eso lo hace el próximo sweep.
func CambiarPrioridad(db *gorm.DB, id int64, prioridad string, usuarioID int64) (*OficioDetalle, error) {
	if !models.PrioridadValida(prioridad) {
		return nil, ErrValidation(fmt.Sprintf("prioridad inválida: %s", prioridad))
	}

	oficio, errO := cargarOficio(db, id)
	if errO != nil {
		return nil, errO
	}
	if models.EsEstadoTerminal(oficio.Estado) {
		return nil, ErrConflict("No se puede cambiar la prioridad de un oficio en estado terminal")
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Oficio{}).Where("id = ?", id).Updates(map[string]interface{}{
			"prioridad":      prioridad,
			"modificado_por": usuarioID,
			"version":        gorm.Expr("version + 1"),
		}).Error; err != nil {
			return err
		}
		if err := upsertSemaforo(tx, id, prioridad); err != nil {
			return err
		}
		motivo := fmt.Sprintf("Prioridad cambiada de %q a %q", oficio.Prioridad, prioridad)
		return registrarHistorial(tx, id, oficio.Estado, oficio.Estado, usuarioID, motivo)
	})
	if err != nil {
		return nil, AsError(err)
	}

	return ObtenerOficio(db, id)
}

/************************************************
/**** MARK: EDITAR ****/
/************************************************/

// EditarOficio actualiza solo campos descriptivos. Cambiar el proyecto
// revalida que pertenezca al área del oficio.
func EditarOficio(db *gorm.DB, id int64, in EditarOficioInput, usuarioID int64) (*OficioDetalle, error) {
	oficio, errO := cargarOficio(db, id)
	if errO != nil {
		return nil, errO
	}
	if models.EsEstadoTerminal(oficio.Estado) {
		return nil, ErrConflict("No se puede editar un oficio en estado terminal")
	}

	updates := map[string]interface{}{
		"modificado_por": usuarioID,
		"version":        gorm.Expr("version + 1"),
	}
	if in.Asunto != nil {
		if strings.TrimSpace(*in.Asunto) == "" {
			return nil, ErrValidation("asunto no puede quedar vacío")
		}
		updates["asunto"] = *in.Asunto
	}
	if in.Promovente != nil {
		updates["promovente"] = *in.Promovente
	}
	if in.Destinatario != nil {
		updates["destinatario"] = *in.Destinatario
	}
	if in.Observaciones != nil {
		updates["observaciones"] = *in.Observaciones
	}
	if in.ProyectoID != nil {
		var proyecto models.Proyecto
		if db.Where("id = ? AND activo = ?", *in.ProyectoID, true).First(&proyecto).RecordNotFound() {
			return nil, ErrNotFound("Proyecto no encontrado")
		}
		if proyecto.AreaID != oficio.AreaAsignadaID {
			return nil, ErrConflict("El proyecto pertenece a otra área")
		}
		updates["proyecto_id"] = *in.ProyectoID
	}

	if err := db.Model(&models.Oficio{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, AsError(err)
	}

	return ObtenerOficio(db, id)
}

/************************************************
/**** MARK: LISTAR / OBTENER ****/
/************************************************/

func ListarOficios(db *gorm.DB, f FiltroOficios) (*ListadoOficios, error) {
	if f.Pagina <= 0 {
		f.Pagina = 1
	}
	if f.Limite <= 0 || f.Limite > 100 {
		f.Limite = 20
	}

	base := db.Table("oficios o").
		Select(`o.*,
			a.nombre AS area_nombre,
			p.nombre AS proyecto_nombre,
			s.estado_semaforo,
			s.dias_transcurridos`).
		Joins("LEFT JOIN areas a ON o.area_asignada_id = a.id").
		Joins("LEFT JOIN proyectos p ON o.proyecto_id = p.id").
		Joins("LEFT JOIN semaforo_tiempo s ON o.id = s.oficio_id")

	count := db.Table("oficios o")

	aplicar := func(q *gorm.DB) *gorm.DB {
		if f.AreaID != nil {
			q = q.Where("o.area_asignada_id = ?", *f.AreaID)
		}
		if f.TipoProceso != "" {
			q = q.Where("o.tipo_proceso = ?", f.TipoProceso)
		}
		if f.Prioridad != "" {
			q = q.Where("o.prioridad = ?", f.Prioridad)
		}
		if f.Estado != "" {
			q = q.Where("o.estado = ?", f.Estado)
		}
		if f.ProyectoID != nil {
			q = q.Where("o.proyecto_id = ?", *f.ProyectoID)
		}
		if f.Busqueda != "" {
			like := "%" + f.Busqueda + "%"
			q = q.Where(`(o.numero_oficio LIKE ? OR o.asunto LIKE ? OR o.promovente LIKE ? OR o.destinatario LIKE ?)`,
				like, like, like, like)
		}
		return q
	}

	var total int
	if err := aplicar(count).Count(&total).Error; err != nil {
		return nil, AsError(err)
	}

	var data []OficioResumen
	offset := (f.Pagina - 1) * f.Limite
	if err := aplicar(base).
		Order("o.fecha_recepcion DESC").
		Limit(f.Limite).
		Offset(offset).
		Scan(&data).Error; err != nil {
		return nil, AsError(err)
	}

	totalPaginas := (total + f.Limite - 1) / f.Limite
	return &ListadoOficios{
		Data:         data,
		Total:        total,
		Pagina:       f.Pagina,
		Limite:       f.Limite,
		TotalPaginas: totalPaginas,
	}, nil
}

// ObtenerOficio devuelve el oficio con historial, archivos y semáforo.
func ObtenerOficio(db *gorm.DB, id int64) (*OficioDetalle, error) {
	oficio, errO := cargarOficio(db, id)
	if errO != nil {
		return nil, errO
	}

	detalle := OficioDetalle{Oficio: *oficio}

	var area models.Area
	if !db.First(&area, oficio.AreaAsignadaID).RecordNotFound() {
		detalle.AreaNombre = area.Nombre
	}
	if oficio.ProyectoID != nil {
		var proyecto models.Proyecto
		if !db.First(&proyecto, *oficio.ProyectoID).RecordNotFound() {
			detalle.ProyectoNombre = proyecto.Nombre
		}
	}

	if err := db.Where("oficio_id = ?", id).
		Order("fecha_cambio ASC, id ASC").
		Find(&detalle.Historial).Error; err != nil {
		return nil, AsError(err)
	}
	if err := db.Where("oficio_id = ?", id).
		Order("categoria ASC, version DESC").
		Find(&detalle.Archivos).Error; err != nil {
		return nil, AsError(err)
	}

	var sem models.SemaforoTiempo
	if !db.Where("oficio_id = ?", id).First(&sem).RecordNotFound() {
		detalle.Semaforo = &sem
	}

	return &detalle, nil
}
