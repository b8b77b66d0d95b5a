package services

import (
	"time"

	"ventanilla/models"

	"github.com/jinzhu/gorm"
)

type ConteoSemaforo struct {
	Verde    int `json:"verde"`
	Amarillo int `json:"amarillo"`
	Rojo     int `json:"rojo"`
}

type PuntoTendencia struct {
	Fecha      string `json:"fecha"`
	Recibidos  int    `json:"recibidos"`
	Concluidos int    `json:"concluidos"`
}

type AreaCarga struct {
	AreaID     int64  `json:"area_id"`
	AreaNombre string `json:"area_nombre"`
	Pendientes int    `json:"pendientes"`
	Rojos      int    `json:"rojos"`
}

type ResumenEjecutivo struct {
	TotalOficios  int              `json:"total_oficios"`
	PorEstado     map[string]int   `json:"por_estado"`
	PorPrioridad  map[string]int   `json:"por_prioridad"`
	Semaforo      ConteoSemaforo   `json:"semaforo"`
	Tendencia     []PuntoTendencia `json:"tendencia_30_dias"`
	AreasConCarga []AreaCarga      `json:"areas_con_mas_carga"`
}

type ResumenArea struct {
	AreaID       int64          `json:"area_id"`
	AreaNombre   string         `json:"area_nombre"`
	TotalOficios int            `json:"total_oficios"`
	PorEstado    map[string]int `json:"por_estado"`
	Semaforo     ConteoSemaforo `json:"semaforo"`
	Proyectos    int            `json:"proyectos_activos"`
}

// MARK: Consultas

func conteosPorColumna(db *gorm.DB, columna string, areaID *int64) (map[string]int, error) {
	type fila struct {
		Valor string
		Total int
	}
	q := db.Table("oficios").Select(columna + " as valor, COUNT(*) as total")
	if areaID != nil {
		q = q.Where("area_asignada_id = ?", *areaID)
	}
	var filas []fila
	if err := q.Group(columna).Scan(&filas).Error; err != nil {
		return nil, AsError(err)
	}
	out := make(map[string]int, len(filas))
	for _, f := range filas {
		out[f.Valor] = f.Total
	}
	return out, nil
}

func conteoSemaforo(db *gorm.DB, areaID *int64) (ConteoSemaforo, error) {
	type fila struct {
		Verde    int
		Amarillo int
		Rojo     int
	}
	q := db.Table("semaforo_tiempo").
		Select(`SUM(CASE WHEN semaforo_tiempo.estado_semaforo = 'verde' THEN 1 ELSE 0 END) as verde,
			SUM(CASE WHEN semaforo_tiempo.estado_semaforo = 'amarillo' THEN 1 ELSE 0 END) as amarillo,
			SUM(CASE WHEN semaforo_tiempo.estado_semaforo = 'rojo' THEN 1 ELSE 0 END) as rojo`).
		Joins("JOIN oficios ON oficios.id = semaforo_tiempo.oficio_id").
		Where("oficios.estado NOT IN (?)", []string{models.ESTADO_FINALIZADO, models.ESTADO_CANCELADO})
	if areaID != nil {
		q = q.Where("oficios.area_asignada_id = ?", *areaID)
	}
	var f fila
	if err := q.Scan(&f).Error; err != nil {
		return ConteoSemaforo{}, AsError(err)
	}
	return ConteoSemaforo{Verde: f.Verde, Amarillo: f.Amarillo, Rojo: f.Rojo}, nil
}

// ObtenerResumenEjecutivo arma el tablero global: totales por estado y
// prioridad, semáforo vigente, tendencia de 30 días y áreas más cargadas.
func ObtenerResumenEjecutivo(db *gorm.DB) (*ResumenEjecutivo, error) {
	resumen := ResumenEjecutivo{
		PorEstado:    map[string]int{},
		PorPrioridad: map[string]int{},
	}

	if err := db.Table("oficios").Count(&resumen.TotalOficios).Error; err != nil {
		return nil, AsError(err)
	}

	var err error
	if resumen.PorEstado, err = conteosPorColumna(db, "estado", nil); err != nil {
		return nil, err
	}
	if resumen.PorPrioridad, err = conteosPorColumna(db, "prioridad", nil); err != nil {
		return nil, err
	}
	if resumen.Semaforo, err = conteoSemaforo(db, nil); err != nil {
		return nil, err
	}
	if resumen.Tendencia, err = tendencia30Dias(db); err != nil {
		return nil, err
	}
	if resumen.AreasConCarga, err = areasConCarga(db); err != nil {
		return nil, err
	}
	return &resumen, nil
}

func tendencia30Dias(db *gorm.DB) ([]PuntoTendencia, error) {
	desde := time.Now().AddDate(0, 0, -30)

	type fila struct {
		ID               int64
		FechaRecepcion   time.Time
		FechaFinalizacion *time.Time
	}
	var filas []fila
	err := db.Table("oficios").
		Select("id, fecha_recepcion, fecha_finalizacion").
		Where("fecha_recepcion >= ? OR fecha_finalizacion >= ?", desde, desde).
		Scan(&filas).Error
	if err != nil {
		return nil, AsError(err)
	}

	// Agrupación por día en memoria para no depender del dialecto de fechas.
	recibidos := map[string]int{}
	concluidos := map[string]int{}
	for _, f := range filas {
		if !f.FechaRecepcion.Before(desde) {
			recibidos[f.FechaRecepcion.Format("2006-01-02")]++
		}
		if f.FechaFinalizacion != nil && !f.FechaFinalizacion.Before(desde) {
			concluidos[f.FechaFinalizacion.Format("2006-01-02")]++
		}
	}

	puntos := make([]PuntoTendencia, 0, 31)
	for i := 30; i >= 0; i-- {
		dia := time.Now().AddDate(0, 0, -i).Format("2006-01-02")
		puntos = append(puntos, PuntoTendencia{
			Fecha:      dia,
			Recibidos:  recibidos[dia],
			Concluidos: concluidos[dia],
		})
	}
	return puntos, nil
}

func areasConCarga(db *gorm.DB) ([]AreaCarga, error) {
	var filas []AreaCarga
	err := db.Table("oficios").
		Select(`oficios.area_asignada_id as area_id, areas.nombre as area_nombre,
			COUNT(*) as pendientes,
			SUM(CASE WHEN semaforo_tiempo.estado_semaforo = 'rojo' THEN 1 ELSE 0 END) as rojos`).
		Joins("JOIN areas ON areas.id = oficios.area_asignada_id").
		Joins("LEFT JOIN semaforo_tiempo ON semaforo_tiempo.oficio_id = oficios.id").
		Where("oficios.estado NOT IN (?)", []string{models.ESTADO_FINALIZADO, models.ESTADO_CANCELADO}).
		Group("oficios.area_asignada_id, areas.nombre").
		Order("pendientes desc").
		Limit(5).
		Scan(&filas).Error
	if err != nil {
		return nil, AsError(err)
	}
	return filas, nil
}

// ObtenerResumenArea arma el tablero de una sola área.
func ObtenerResumenArea(db *gorm.DB, areaID int64) (*ResumenArea, error) {
	area, errA := ObtenerArea(db, areaID)
	if errA != nil {
		return nil, errA
	}

	resumen := ResumenArea{AreaID: area.ID, AreaNombre: area.Nombre}

	if err := db.Table("oficios").Where("area_asignada_id = ?", areaID).
		Count(&resumen.TotalOficios).Error; err != nil {
		return nil, AsError(err)
	}

	var err error
	if resumen.PorEstado, err = conteosPorColumna(db, "estado", &areaID); err != nil {
		return nil, err
	}
	if resumen.Semaforo, err = conteoSemaforo(db, &areaID); err != nil {
		return nil, err
	}

	if err := db.Model(&models.Proyecto{}).
		Where("area_id = ? AND estado = ?", areaID, models.PROYECTO_ACTIVO).
		Count(&resumen.Proyectos).Error; err != nil {
		return nil, AsError(err)
	}
	return &resumen, nil
}
