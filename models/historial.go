package models

import "time"

// HistorialEstado es el registro de auditoría de un oficio: append-only,
// nunca se edita ni se borra. Los eventos administrativos que no cambian el
// estado (reasignación, cambio de prioridad) se registran con
// estado_anterior = estado_nuevo.
type HistorialEstado struct {
	ID             int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	OficioID       int64      `gorm:"column:oficio_id;not null;index" json:"oficio_id"`
	EstadoAnterior string     `gorm:"column:estado_anterior;not null" json:"estado_anterior"`
	EstadoNuevo    string     `gorm:"column:estado_nuevo;not null" json:"estado_nuevo"`
	UsuarioID      int64      `gorm:"column:usuario_id" json:"usuario_id"`
	Motivo         string     `gorm:"type:text" json:"motivo"`
	FechaCambio    *time.Time `gorm:"column:fecha_cambio;index" json:"fecha_cambio"`
}

func (HistorialEstado) TableName() string {
	return "historial_estado"
}
