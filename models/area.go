package models

import "time"

// Area representa una unidad organizacional. Los oficios y proyectos
// pertenecen siempre a un área; los usuarios no-admin ven solo la suya.
type Area struct {
	ID          int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Nombre      string     `gorm:"not null;unique" json:"nombre" form:"nombre"`
	Descripcion string     `gorm:"type:text" json:"descripcion" form:"descripcion"`
	Responsable string     `json:"responsable" form:"responsable"`
	EmailArea   string     `gorm:"column:email_area" json:"email_area" form:"email_area"`
	Activo      bool       `gorm:"not null;default:true" json:"activo" form:"activo"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}
