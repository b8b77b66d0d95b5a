package controllers

import (
	"net/http"

	dbpkg "ventanilla/db"
	"ventanilla/services"

	"github.com/gin-gonic/gin"
)

func GetAreas(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	soloActivas := c.Query("todas") != "true"
	areas, err := services.ListarAreas(db, soloActivas)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, areas)
}

func GetAreaByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db := dbpkg.DBInstance(c)
	area, err := services.ObtenerArea(db, id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, area)
}

func CreateArea(c *gin.Context) {
	var in services.AreaInput
	if err := c.Bind(&in); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	db := dbpkg.DBInstance(c)
	area, err := services.CrearArea(db, in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, area)
}

func UpdateArea(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var in services.AreaInput
	if err := c.Bind(&in); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	db := dbpkg.DBInstance(c)
	area, err := services.EditarArea(db, id, in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, area)
}

type EstadoActivoRequest struct {
	Activo *bool `json:"activo" form:"activo"`
}

func ChangeEstadoArea(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req EstadoActivoRequest
	if err := c.Bind(&req); err != nil || req.Activo == nil {
		RespondError(c, "activo es obligatorio", http.StatusBadRequest)
		return
	}
	db := dbpkg.DBInstance(c)
	area, err := services.CambiarEstadoArea(db, id, *req.Activo)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, area)
}

func GetUsuariosDeArea(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db := dbpkg.DBInstance(c)
	usuarios, err := services.UsuariosDeArea(db, id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, usuarios)
}
