package router

import (
	"net/http"

	"ventanilla/controllers"

	"github.com/gin-gonic/gin"
)

// Adminizer bloquea el acceso cuando el usuario no es admin.
func Adminizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		usuario, ok := controllers.GetUserLogged(c)
		if !ok {
			controllers.RespondError(c, "No autenticado", http.StatusUnauthorized)
			c.Abort()
			return
		}
		if !usuario.EsAdmin() {
			controllers.RespondError(c, "Se requiere rol de administrador", http.StatusForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
