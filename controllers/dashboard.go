package controllers

import (
	"net/http"

	dbpkg "ventanilla/db"
	"ventanilla/services"

	"github.com/gin-gonic/gin"
)

// GetDashboard: resumen ejecutivo global para admins; para usuarios de
// área devuelve el resumen de su propia área.
func GetDashboard(c *gin.Context) {
	usuario, _ := GetUserLogged(c)
	db := dbpkg.DBInstance(c)

	if usuario.EsAdmin() {
		resumen, err := services.ObtenerResumenEjecutivo(db)
		if err != nil {
			RespondServiceError(c, err)
			return
		}
		RespondSuccess(c, resumen)
		return
	}

	if usuario.AreaID == nil {
		RespondError(c, "Usuario sin área asignada", http.StatusConflict)
		return
	}
	resumen, err := services.ObtenerResumenArea(db, *usuario.AreaID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, resumen)
}

func GetDashboardArea(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	usuario, _ := GetUserLogged(c)
	if !puedeVerOficio(usuario, id) {
		RespondError(c, "Área fuera de su alcance", http.StatusForbidden)
		return
	}

	db := dbpkg.DBInstance(c)
	resumen, err := services.ObtenerResumenArea(db, id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, resumen)
}
