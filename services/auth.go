package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"ventanilla/models"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	"golang.org/x/crypto/bcrypt"
)

type LoginInput struct {
	Username  string
	Password  string
	IPAddress string
	UserAgent string
}

type SesionTokens struct {
	Usuario      models.Usuario
	RefreshToken string // valor en claro, se entrega una sola vez
}

type PoliticaLogin struct {
	MaxIntentos      int
	BloqueoMinutos   int
	RefreshTokenDias int
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Login verifica credenciales con bcrypt, aplica bloqueo temporal por
// intentos fallidos y emite un refresh token rotatorio (guardado hasheado).
func Login(db *gorm.DB, in LoginInput, pol PoliticaLogin) (*SesionTokens, error) {
	var usuario models.Usuario
	if db.Where("username = ?", in.Username).First(&usuario).RecordNotFound() {
		// No revelar si el usuario existe o no.
		return nil, &Error{Status: http.StatusUnauthorized, Kind: KIND_VALIDATION, Message: "Credenciales inválidas"}
	}

	if !usuario.Activo {
		return nil, &Error{Status: http.StatusUnauthorized, Kind: KIND_VALIDATION, Message: "Cuenta desactivada. Contacte al administrador"}
	}

	now := time.Now()
	if usuario.BloqueadoHasta != nil && now.Before(*usuario.BloqueadoHasta) {
		minutos := int(usuario.BloqueadoHasta.Sub(now).Minutes()) + 1
		return nil, &Error{Status: http.StatusTooManyRequests, Kind: KIND_CONFLICT,
			Message: fmt.Sprintf("Cuenta bloqueada. Intente de nuevo en %d minuto(s)", minutos)}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(in.Password)); err != nil {
		intentos := usuario.IntentosFallidos + 1
		updates := map[string]interface{}{"intentos_fallidos": intentos}
		if intentos >= pol.MaxIntentos {
			hasta := now.Add(time.Duration(pol.BloqueoMinutos) * time.Minute)
			updates["bloqueado_hasta"] = hasta
			updates["intentos_fallidos"] = 0
		}
		db.Model(&models.Usuario{}).Where("id = ?", usuario.ID).Updates(updates)
		return nil, &Error{Status: http.StatusUnauthorized, Kind: KIND_VALIDATION, Message: "Credenciales inválidas"}
	}

	// Login exitoso: resetear intentos y registrar acceso.
	db.Model(&models.Usuario{}).Where("id = ?", usuario.ID).Updates(map[string]interface{}{
		"intentos_fallidos": 0,
		"bloqueado_hasta":   nil,
		"ultimo_acceso":     now,
	})

	refresh, err := emitirRefreshToken(db, usuario.ID, in.IPAddress, in.UserAgent, pol.RefreshTokenDias)
	if err != nil {
		return nil, err
	}

	usuario.PasswordHash = ""
	return &SesionTokens{Usuario: usuario, RefreshToken: refresh}, nil
}

func emitirRefreshToken(db *gorm.DB, usuarioID int64, ip, agent string, dias int) (string, error) {
	token := uuid.NewString() + uuid.NewString()
	rt := models.RefreshToken{
		UsuarioID: usuarioID,
		TokenHash: hashToken(token),
		IPAddress: ip,
		UserAgent: agent,
		ExpiraEn:  time.Now().Add(time.Duration(dias) * 24 * time.Hour),
	}
	if err := db.Create(&rt).Error; err != nil {
		return "", AsError(err)
	}
	return token, nil
}

// RenovarToken rota el refresh token: revoca el usado y emite uno nuevo.
func RenovarToken(db *gorm.DB, refreshToken, ip, agent string, pol PoliticaLogin) (*SesionTokens, error) {
	var rt models.RefreshToken
	if db.Where("token_hash = ? AND revocado = ?", hashToken(refreshToken), false).
		First(&rt).RecordNotFound() {
		return nil, &Error{Status: http.StatusUnauthorized, Kind: KIND_VALIDATION, Message: "Refresh token inválido o expirado"}
	}
	if time.Now().After(rt.ExpiraEn) {
		return nil, &Error{Status: http.StatusUnauthorized, Kind: KIND_VALIDATION, Message: "Refresh token inválido o expirado"}
	}

	usuario, errU := ObtenerUsuario(db, rt.UsuarioID)
	if errU != nil {
		return nil, errU
	}
	if !usuario.Activo {
		return nil, &Error{Status: http.StatusUnauthorized, Kind: KIND_VALIDATION, Message: "Cuenta desactivada"}
	}

	var nuevo string
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.RefreshToken{}).
			Where("id = ?", rt.ID).
			Update("revocado", true).Error; err != nil {
			return err
		}
		var errE error
		nuevo, errE = emitirRefreshToken(tx, usuario.ID, ip, agent, pol.RefreshTokenDias)
		return errE
	})
	if err != nil {
		return nil, AsError(err)
	}

	usuario.PasswordHash = ""
	return &SesionTokens{Usuario: *usuario, RefreshToken: nuevo}, nil
}

// Logout revoca el refresh token indicado, o todos los del usuario.
func Logout(db *gorm.DB, usuarioID int64, refreshToken string, todos bool) error {
	q := db.Model(&models.RefreshToken{}).Where("usuario_id = ?", usuarioID)
	if !todos {
		if refreshToken == "" {
			return nil
		}
		q = q.Where("token_hash = ?", hashToken(refreshToken))
	}
	if err := q.Update("revocado", true).Error; err != nil {
		return AsError(err)
	}
	return nil
}

// CambiarPassword verifica la contraseña actual antes de reemplazarla y
// revoca las sesiones abiertas.
func CambiarPassword(db *gorm.DB, usuarioID int64, actual, nueva string) error {
	usuario, errU := ObtenerUsuario(db, usuarioID)
	if errU != nil {
		return errU
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(actual)); err != nil {
		return &Error{Status: http.StatusUnauthorized, Kind: KIND_VALIDATION, Message: "Contraseña actual incorrecta"}
	}
	if len(nueva) < 8 {
		return ErrValidation("La contraseña debe tener al menos 8 caracteres")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(nueva), bcrypt.DefaultCost)
	if err != nil {
		return ErrInterno()
	}

	errT := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Usuario{}).
			Where("id = ?", usuarioID).
			Update("password_hash", string(hash)).Error; err != nil {
			return err
		}
		return tx.Model(&models.RefreshToken{}).
			Where("usuario_id = ?", usuarioID).
			Update("revocado", true).Error
	})
	if errT != nil {
		return AsError(errT)
	}
	return nil
}

// LimpiarTokensExpirados borra refresh tokens vencidos o revocados.
// Lo invoca el worker de limpieza diaria.
func LimpiarTokensExpirados(db *gorm.DB) (int64, error) {
	res := db.Where("expira_en < ? OR revocado = ?", time.Now(), true).
		Delete(&models.RefreshToken{})
	if res.Error != nil {
		return 0, AsError(res.Error)
	}
	return res.RowsAffected, nil
}
