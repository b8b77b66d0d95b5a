package services

import (
	"fmt"
	"time"

	"ventanilla/models"

	"github.com/jinzhu/gorm"
)

// AlertaOficio es un candidato a alerta: oficio en amarillo/rojo cuyo tier
// actual todavía no fue alertado.
type AlertaOficio struct {
	OficioID           int64  `json:"oficio_id"`
	NumeroOficio       string `json:"numero_oficio"`
	Asunto             string `json:"asunto"`
	Estado             string `json:"estado"`
	Prioridad          string `json:"prioridad"`
	AreaNombre         string `json:"area_nombre"`
	EmailArea          string `json:"email_area"`
	EstadoSemaforo     string `json:"estado_semaforo"`
	DiasTranscurridos  int    `json:"dias_transcurridos"`
	DiasLimiteAmarillo int    `json:"dias_limite_amarillo"`
	DiasLimiteRojo     int    `json:"dias_limite_rojo"`
}

type ResultadoSweep struct {
	Actualizados int `json:"actualizados"`
	Alertas      int `json:"alertas"`
}

/************************************************
/**** MARK: SWEEP ****/
/************************************************/

// RecalcularTodos recalcula el semáforo de cada oficio no terminal: días
// transcurridos (truncado a días completos) y color contra los umbrales
// vigentes de su prioridad. Crea el registro si falta. Idempotente: correrlo
// dos veces sin que pase el tiempo deja filas idénticas. El UPSERT por fila
// es atómico, así que es seguro frente a creaciones concurrentes.
func RecalcularTodos(db *gorm.DB) (int, error) {
	ahora := time.Now()

	type filaSweep struct {
		ID             int64
		Prioridad      string
		FechaRecepcion time.Time
	}
	var filas []filaSweep
	if err := db.Table("oficios").
		Select("id, prioridad, fecha_recepcion").
		Where("estado NOT IN (?)", []string{models.ESTADO_FINALIZADO, models.ESTADO_CANCELADO}).
		Scan(&filas).Error; err != nil {
		return 0, AsError(err)
	}

	// Umbrales por prioridad leídos una vez por sweep.
	var configs []models.ConfiguracionSemaforo
	if err := db.Find(&configs).Error; err != nil {
		return 0, AsError(err)
	}
	umbrales := map[string][2]int{}
	for _, cfg := range configs {
		umbrales[cfg.Prioridad] = [2]int{cfg.DiasVerde, cfg.DiasRojo}
	}

	actualizados := 0
	for _, fila := range filas {
		lim, ok := umbrales[fila.Prioridad]
		if !ok {
			lim = [2]int{5, 15}
		}
		dias := models.DiasTranscurridos(fila.FechaRecepcion, ahora)
		color := models.CalcularColor(dias, lim[0], lim[1])

		// El CASE baja ultimo_color_alertado cuando el color regresa por
		// debajo del tier alertado: la regresión no alerta, pero una
		// re-escalación posterior sí.
		err := db.Exec(`
			INSERT INTO semaforo_tiempo
				(oficio_id, estado_semaforo, dias_transcurridos, dias_limite_amarillo, dias_limite_rojo, alertas_enviadas, ultimo_color_alertado, fecha_calculo)
			VALUES (?, ?, ?, ?, ?, 0, '', ?)
			ON CONFLICT (oficio_id) DO UPDATE SET
				estado_semaforo      = excluded.estado_semaforo,
				dias_transcurridos   = excluded.dias_transcurridos,
				dias_limite_amarillo = excluded.dias_limite_amarillo,
				dias_limite_rojo     = excluded.dias_limite_rojo,
				fecha_calculo        = excluded.fecha_calculo,
				ultimo_color_alertado = CASE
					WHEN (CASE semaforo_tiempo.ultimo_color_alertado WHEN 'rojo' THEN 2 WHEN 'amarillo' THEN 1 ELSE 0 END) > ?
					THEN excluded.estado_semaforo
					ELSE semaforo_tiempo.ultimo_color_alertado
				END`,
			fila.ID, color, dias, lim[0], lim[1], ahora, models.RangoColor(color)).Error
		if err != nil {
			return actualizados, AsError(err)
		}
		actualizados++
	}

	return actualizados, nil
}

/************************************************
/**** MARK: ALERTAS ****/
/************************************************/

// OficiosParaAlertar devuelve los oficios activos en amarillo/rojo que aún
// no fueron alertados en su tier actual.
func OficiosParaAlertar(db *gorm.DB) ([]AlertaOficio, error) {
	var alertas []AlertaOficio
	err := db.Table("oficios o").
		Select(`o.id AS oficio_id, o.numero_oficio, o.asunto, o.estado, o.prioridad,
			a.nombre AS area_nombre, a.email_area,
			s.estado_semaforo, s.dias_transcurridos, s.dias_limite_amarillo, s.dias_limite_rojo`).
		Joins("JOIN areas a ON o.area_asignada_id = a.id").
		Joins("JOIN semaforo_tiempo s ON o.id = s.oficio_id").
		Where("s.estado_semaforo IN (?)", []string{models.COLOR_AMARILLO, models.COLOR_ROJO}).
		Where("o.estado NOT IN (?)", []string{models.ESTADO_FINALIZADO, models.ESTADO_CANCELADO}).
		Where(`(CASE s.estado_semaforo WHEN 'rojo' THEN 2 ELSE 1 END) >
			(CASE s.ultimo_color_alertado WHEN 'rojo' THEN 2 WHEN 'amarillo' THEN 1 ELSE 0 END)`).
		Order("s.estado_semaforo DESC, s.dias_transcurridos DESC").
		Scan(&alertas).Error
	if err != nil {
		return nil, AsError(err)
	}
	return alertas, nil
}

// MarcarAlertaEnviada incrementa el contador y fija el tier alertado al
// color actual, desarmando nuevas alertas hasta la próxima escalación.
func MarcarAlertaEnviada(db *gorm.DB, oficioID int64) error {
	var sem models.SemaforoTiempo
	if db.Where("oficio_id = ?", oficioID).First(&sem).RecordNotFound() {
		return ErrNotFound("Semáforo no encontrado para el oficio")
	}

	now := time.Now()
	err := db.Model(&models.SemaforoTiempo{}).
		Where("oficio_id = ?", oficioID).
		Updates(map[string]interface{}{
			"alertas_enviadas":      gorm.Expr("alertas_enviadas + 1"),
			"fecha_alerta_enviada":  now,
			"ultimo_color_alertado": sem.EstadoSemaforo,
		}).Error
	if err != nil {
		return AsError(err)
	}
	return nil
}

// ObtenerAlertas lista los oficios activos en amarillo/rojo, opcionalmente
// filtrados por área (vista de usuario).
func ObtenerAlertas(db *gorm.DB, areaID *int64) ([]AlertaOficio, error) {
	q := db.Table("oficios o").
		Select(`o.id AS oficio_id, o.numero_oficio, o.asunto, o.estado, o.prioridad,
			a.nombre AS area_nombre, a.email_area,
			s.estado_semaforo, s.dias_transcurridos, s.dias_limite_amarillo, s.dias_limite_rojo`).
		Joins("JOIN areas a ON o.area_asignada_id = a.id").
		Joins("JOIN semaforo_tiempo s ON o.id = s.oficio_id").
		Where("s.estado_semaforo IN (?)", []string{models.COLOR_AMARILLO, models.COLOR_ROJO}).
		Where("o.estado NOT IN (?)", []string{models.ESTADO_FINALIZADO, models.ESTADO_CANCELADO})
	if areaID != nil {
		q = q.Where("o.area_asignada_id = ?", *areaID)
	}

	var alertas []AlertaOficio
	if err := q.Order("s.estado_semaforo DESC, s.dias_transcurridos DESC").Scan(&alertas).Error; err != nil {
		return nil, AsError(err)
	}
	return alertas, nil
}

/************************************************
/**** MARK: CONFIGURACION ****/
/************************************************/

func ObtenerConfiguracion(db *gorm.DB) ([]models.ConfiguracionSemaforo, error) {
	var configs []models.ConfiguracionSemaforo
	if err := db.Order("id ASC").Find(&configs).Error; err != nil {
		return nil, AsError(err)
	}
	return configs, nil
}

// ActualizarConfiguracion cambia los umbrales de una prioridad. No toca los
// semáforos existentes: el próximo sweep toma los valores nuevos.
func ActualizarConfiguracion(db *gorm.DB, prioridad string, diasVerde, diasRojo int) (*models.ConfiguracionSemaforo, error) {
	if diasVerde >= diasRojo {
		return nil, ErrValidation("dias_verde debe ser menor que dias_rojo")
	}
	if diasVerde < 1 || diasRojo < 2 {
		return nil, ErrValidation("Los valores mínimos son: dias_verde=1, dias_rojo=2")
	}

	var cfg models.ConfiguracionSemaforo
	if db.Where("prioridad = ?", prioridad).First(&cfg).RecordNotFound() {
		return nil, ErrNotFound(fmt.Sprintf("Prioridad %q no encontrada en configuración", prioridad))
	}

	cfg.DiasVerde = diasVerde
	cfg.DiasRojo = diasRojo
	if err := db.Save(&cfg).Error; err != nil {
		return nil, AsError(err)
	}
	return &cfg, nil
}
