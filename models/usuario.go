package models

import "time"

/************************************************
/**** MARK: ROLES ****/
/************************************************/
const ROL_ADMIN = "admin"
const ROL_USUARIO = "usuario"

// Usuario representa un usuario del sistema.
// Regla: admin no tiene área; usuario siempre tiene área.
type Usuario struct {
	ID               int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Username         string     `gorm:"not null;unique" json:"username" form:"username"`
	PasswordHash     string     `gorm:"column:password_hash;not null" json:"-"`
	NombreCompleto   string     `gorm:"column:nombre_completo;not null" json:"nombre_completo" form:"nombre_completo"`
	Email            string     `gorm:"not null;unique" json:"email" form:"email"`
	Rol              string     `gorm:"not null" json:"rol" form:"rol"`
	AreaID           *int64     `gorm:"column:area_id;index" json:"area_id" form:"area_id"`
	Activo           bool       `gorm:"not null;default:true" json:"activo"`
	IntentosFallidos int        `gorm:"column:intentos_fallidos;not null;default:0" json:"-"`
	BloqueadoHasta   *time.Time `gorm:"column:bloqueado_hasta" json:"-"`
	UltimoAcceso     *time.Time `gorm:"column:ultimo_acceso" json:"ultimo_acceso"`
	CreatedAt        *time.Time `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at"`
}

func (u Usuario) EsAdmin() bool {
	return u.Rol == ROL_ADMIN
}

func RolValido(rol string) bool {
	return rol == ROL_ADMIN || rol == ROL_USUARIO
}
