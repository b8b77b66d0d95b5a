package controllers

import (
	"net/http"
	"strings"

	dbpkg "ventanilla/db"
	"ventanilla/models"

	"github.com/gin-gonic/gin"
)

const ctxUserKey = "auth_user"

// AuthRequired valida el Bearer token y carga el usuario al contexto.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(strings.ToLower(h), "bearer ") {
			RespondError(c, "Token requerido", http.StatusUnauthorized)
			c.Abort()
			return
		}
		token := strings.TrimSpace(h[len("Bearer "):])
		usuarioID, ok := parseAccessToken(token)
		if !ok {
			RespondError(c, "Token inválido o expirado", http.StatusUnauthorized)
			c.Abort()
			return
		}

		db := dbpkg.DBInstance(c)
		if db == nil {
			RespondError(c, "db no configurada en el contexto", http.StatusInternalServerError)
			c.Abort()
			return
		}
		var usuario models.Usuario
		if err := db.First(&usuario, usuarioID).Error; err != nil {
			RespondError(c, "Usuario no encontrado", http.StatusUnauthorized)
			c.Abort()
			return
		}
		if !usuario.Activo {
			RespondError(c, "Cuenta desactivada", http.StatusForbidden)
			c.Abort()
			return
		}

		c.Set(ctxUserKey, usuario)
		c.Next()
	}
}

// GetUserLogged devuelve el usuario cargado por AuthRequired.
func GetUserLogged(c *gin.Context) (models.Usuario, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return models.Usuario{}, false
	}
	usuario, ok := v.(models.Usuario)
	return usuario, ok
}

// AreaDelUsuario devuelve el filtro de área efectivo: nil para admins
// (ven todo), el área propia para el resto.
func AreaDelUsuario(c *gin.Context) *int64 {
	usuario, ok := GetUserLogged(c)
	if !ok || usuario.EsAdmin() {
		return nil
	}
	return usuario.AreaID
}
