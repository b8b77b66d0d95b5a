package models

import "time"

/************************************************
/**** MARK: ESTADOS DE PROYECTO ****/
/************************************************/
const PROYECTO_ACTIVO = "Activo"
const PROYECTO_FINALIZADO = "Finalizado"
const PROYECTO_CANCELADO = "Cancelado"

// Un proyecto finalizado puede reabrirse; uno cancelado no.
var TransicionesProyecto = map[string][]string{
	PROYECTO_ACTIVO:     {PROYECTO_FINALIZADO, PROYECTO_CANCELADO},
	PROYECTO_FINALIZADO: {PROYECTO_ACTIVO},
	PROYECTO_CANCELADO:  {},
}

// Proyecto agrupa oficios dentro de un área.
type Proyecto struct {
	ID          int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Nombre      string     `gorm:"not null" json:"nombre" form:"nombre"`
	Descripcion string     `gorm:"type:text" json:"descripcion" form:"descripcion"`
	AreaID      int64      `gorm:"column:area_id;not null;index" json:"area_id" form:"area_id"`
	Estado      string     `gorm:"not null;default:'Activo'" json:"estado"`
	FechaInicio *time.Time `gorm:"column:fecha_inicio" json:"fecha_inicio" form:"fecha_inicio"`
	FechaFin    *time.Time `gorm:"column:fecha_fin" json:"fecha_fin" form:"fecha_fin"`
	Activo      bool       `gorm:"not null;default:true" json:"activo"`
	CreadoPor   int64      `gorm:"column:creado_por" json:"creado_por"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

func TransicionProyectoPermitida(actual, nuevo string) bool {
	for _, e := range TransicionesProyecto[actual] {
		if e == nuevo {
			return true
		}
	}
	return false
}
