package models

import "time"

/************************************************
/**** MARK: COLORES DE SEMAFORO ****/
/************************************************/
const COLOR_VERDE = "verde"
const COLOR_AMARILLO = "amarillo"
const COLOR_ROJO = "rojo"

// SemaforoTiempo es el indicador SLA de un oficio (uno a uno). Al pasar el
// oficio a estado terminal se resetea a verde/0 y se conserva por auditoría.
type SemaforoTiempo struct {
	ID                 int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	OficioID           int64  `gorm:"column:oficio_id;not null;unique_index" json:"oficio_id"`
	EstadoSemaforo     string `gorm:"column:estado_semaforo;not null;default:'verde';index" json:"estado_semaforo"`
	DiasTranscurridos  int    `gorm:"column:dias_transcurridos;not null;default:0" json:"dias_transcurridos"`
	DiasLimiteAmarillo int    `gorm:"column:dias_limite_amarillo;not null;default:5" json:"dias_limite_amarillo"`
	DiasLimiteRojo     int    `gorm:"column:dias_limite_rojo;not null;default:15" json:"dias_limite_rojo"`
	AlertasEnviadas    int    `gorm:"column:alertas_enviadas;not null;default:0" json:"alertas_enviadas"`
	// Tier más alto ya alertado en la escalación vigente. Una regresión de
	// color (rojo→amarillo) lo baja sin alertar; una nueva escalación por
	// encima de él vuelve a alertar.
	UltimoColorAlertado string     `gorm:"column:ultimo_color_alertado;not null;default:''" json:"-"`
	FechaAlertaEnviada  *time.Time `gorm:"column:fecha_alerta_enviada" json:"fecha_alerta_enviada"`
	FechaCalculo        *time.Time `gorm:"column:fecha_calculo" json:"fecha_calculo"`
}

func (SemaforoTiempo) TableName() string {
	return "semaforo_tiempo"
}

// ConfiguracionSemaforo: umbrales de días por prioridad.
// Invariante: dias_verde < dias_rojo estricto.
type ConfiguracionSemaforo struct {
	ID        int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Prioridad string `gorm:"not null;unique" json:"prioridad"`
	DiasVerde int    `gorm:"column:dias_verde;not null" json:"dias_verde"`
	DiasRojo  int    `gorm:"column:dias_rojo;not null" json:"dias_rojo"`
	Activo    bool   `gorm:"not null;default:true" json:"activo"`
}

func (ConfiguracionSemaforo) TableName() string {
	return "configuracion_semaforo"
}

// DiasTranscurridos calcula días calendario completos entre la recepción y
// ahora, truncando (23h transcurridas = 0 días). Nunca negativo.
func DiasTranscurridos(desde, ahora time.Time) int {
	if ahora.Before(desde) {
		return 0
	}
	return int(ahora.Sub(desde).Hours() / 24)
}

// CalcularColor deriva el color con límites inferiores inclusivos:
// dias == limAmarillo ya es amarillo, dias == limRojo ya es rojo.
func CalcularColor(dias, limAmarillo, limRojo int) string {
	switch {
	case dias >= limRojo:
		return COLOR_ROJO
	case dias >= limAmarillo:
		return COLOR_AMARILLO
	default:
		return COLOR_VERDE
	}
}

// RangoColor ordena los colores para comparar escalaciones.
func RangoColor(color string) int {
	switch color {
	case COLOR_ROJO:
		return 2
	case COLOR_AMARILLO:
		return 1
	default:
		return 0
	}
}
