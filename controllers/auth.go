package controllers

import (
	"net/http"

	dbpkg "ventanilla/db"
	"ventanilla/models"
	"ventanilla/services"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type LoginResponse struct {
	Token        string         `json:"token"`
	RefreshToken string         `json:"refresh_token"`
	Usuario      models.Usuario `json:"usuario"`
}

func politicaLogin() services.PoliticaLogin {
	return services.PoliticaLogin{
		MaxIntentos:      conf.Security.MaxIntentosLogin,
		BloqueoMinutos:   conf.Security.BloqueoMinutos,
		RefreshTokenDias: conf.Security.RefreshTokenDays,
	}
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		RespondError(c, "username y password son obligatorios", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	sesion, err := services.Login(db, services.LoginInput{
		Username:  req.Username,
		Password:  req.Password,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}, politicaLogin())
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	signed, errS := firmarAccessToken(sesion.Usuario.ID, sesion.Usuario.Rol)
	if errS != nil {
		RespondError(c, "Error al firmar el token", http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, LoginResponse{
		Token:        signed,
		RefreshToken: sesion.RefreshToken,
		Usuario:      sesion.Usuario,
	})
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

func Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		RespondError(c, "refresh_token es obligatorio", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	sesion, err := services.RenovarToken(db, req.RefreshToken, c.ClientIP(),
		c.Request.UserAgent(), politicaLogin())
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	signed, errS := firmarAccessToken(sesion.Usuario.ID, sesion.Usuario.Rol)
	if errS != nil {
		RespondError(c, "Error al firmar el token", http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, LoginResponse{
		Token:        signed,
		RefreshToken: sesion.RefreshToken,
		Usuario:      sesion.Usuario,
	})
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
	Todos        bool   `json:"todos" form:"todos"`
}

func Logout(c *gin.Context) {
	usuario, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "No autenticado", http.StatusUnauthorized)
		return
	}

	var req LogoutRequest
	_ = c.Bind(&req)

	db := dbpkg.DBInstance(c)
	if err := services.Logout(db, usuario.ID, req.RefreshToken, req.Todos); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"mensaje": "Sesión cerrada"})
}

// Me devuelve el perfil del usuario autenticado.
func Me(c *gin.Context) {
	usuario, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "No autenticado", http.StatusUnauthorized)
		return
	}
	usuario.PasswordHash = ""
	RespondSuccess(c, usuario)
}

type ChangePasswordRequest struct {
	PasswordActual string `json:"password_actual" form:"password_actual"`
	PasswordNueva  string `json:"password_nueva" form:"password_nueva"`
}

func ChangePassword(c *gin.Context) {
	usuario, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "No autenticado", http.StatusUnauthorized)
		return
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.PasswordActual == "" || req.PasswordNueva == "" {
		RespondError(c, "password_actual y password_nueva son obligatorios", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if err := services.CambiarPassword(db, usuario.ID, req.PasswordActual, req.PasswordNueva); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"mensaje": "Contraseña actualizada. Vuelva a iniciar sesión"})
}
