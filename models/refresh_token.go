package models

import "time"

// RefreshToken guarda solo el hash del token emitido; el valor en claro
// viaja una única vez en la respuesta de login/refresh.
type RefreshToken struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UsuarioID int64      `gorm:"column:usuario_id;not null;index" json:"usuario_id"`
	TokenHash string     `gorm:"column:token_hash;not null;unique" json:"-"`
	IPAddress string     `gorm:"column:ip_address" json:"ip_address"`
	UserAgent string     `gorm:"column:user_agent;type:text" json:"user_agent"`
	ExpiraEn  time.Time  `gorm:"column:expira_en;not null" json:"expira_en"`
	Revocado  bool       `gorm:"not null;default:false" json:"revocado"`
	CreatedAt *time.Time `json:"created_at"`
}
