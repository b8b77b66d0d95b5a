package controllers

import (
	"net/http"

	dbpkg "ventanilla/db"
	"ventanilla/services"

	"github.com/gin-gonic/gin"
)

func GetProyectos(c *gin.Context) {
	db := dbpkg.DBInstance(c)

	areaID := AreaDelUsuario(c)
	if areaID == nil {
		areaID = QueryInt64(c, "area_id")
	}

	proyectos, err := services.ListarProyectos(db, areaID, c.Query("estado"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, proyectos)
}

func GetProyectoByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	usuario, _ := GetUserLogged(c)
	db := dbpkg.DBInstance(c)

	proyecto, err := services.ObtenerProyecto(db, id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if !puedeVerOficio(usuario, proyecto.AreaID) {
		RespondError(c, "Proyecto fuera de su área", http.StatusForbidden)
		return
	}
	RespondSuccess(c, proyecto)
}

func CreateProyecto(c *gin.Context) {
	usuario, _ := GetUserLogged(c)

	var in services.ProyectoInput
	if err := c.Bind(&in); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if !usuario.EsAdmin() {
		if usuario.AreaID == nil || in.AreaID != *usuario.AreaID {
			RespondError(c, "Solo puede crear proyectos en su propia área", http.StatusForbidden)
			return
		}
	}

	db := dbpkg.DBInstance(c)
	proyecto, err := services.CrearProyecto(db, in, usuario.ID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, proyecto)
}

func UpdateProyecto(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	usuario, _ := GetUserLogged(c)
	db := dbpkg.DBInstance(c)

	actual, err := services.ObtenerProyecto(db, id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if !puedeVerOficio(usuario, actual.AreaID) {
		RespondError(c, "Proyecto fuera de su área", http.StatusForbidden)
		return
	}

	var in services.ProyectoInput
	if err := c.Bind(&in); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	proyecto, err := services.EditarProyecto(db, id, in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, proyecto)
}

type EstadoProyectoRequest struct {
	Estado string `json:"estado" form:"estado"`
}

func ChangeEstadoProyecto(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	usuario, _ := GetUserLogged(c)
	db := dbpkg.DBInstance(c)

	actual, err := services.ObtenerProyecto(db, id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if !puedeVerOficio(usuario, actual.AreaID) {
		RespondError(c, "Proyecto fuera de su área", http.StatusForbidden)
		return
	}

	var req EstadoProyectoRequest
	if err := c.Bind(&req); err != nil || req.Estado == "" {
		RespondError(c, "estado es obligatorio", http.StatusBadRequest)
		return
	}

	proyecto, err := services.CambiarEstadoProyecto(db, id, req.Estado)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, proyecto)
}

func GetOficiosDeProyecto(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	usuario, _ := GetUserLogged(c)
	db := dbpkg.DBInstance(c)

	proyecto, err := services.ObtenerProyecto(db, id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if !puedeVerOficio(usuario, proyecto.AreaID) {
		RespondError(c, "Proyecto fuera de su área", http.StatusForbidden)
		return
	}

	oficios, err := services.OficiosDeProyecto(db, id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, oficios)
}
