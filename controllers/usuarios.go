package controllers

import (
	"net/http"

	dbpkg "ventanilla/db"
	"ventanilla/services"

	"github.com/gin-gonic/gin"
)

func GetUsuarios(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	usuarios, err := services.ListarUsuarios(db)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, usuarios)
}

func GetUsuarioByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	db := dbpkg.DBInstance(c)
	usuario, err := services.ObtenerUsuario(db, id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	usuario.PasswordHash = ""
	RespondSuccess(c, usuario)
}

func CreateUsuario(c *gin.Context) {
	var in services.UsuarioInput
	if err := c.Bind(&in); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	db := dbpkg.DBInstance(c)
	usuario, err := services.CrearUsuario(db, in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	usuario.PasswordHash = ""
	c.JSON(http.StatusCreated, usuario)
}

func UpdateUsuario(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var in services.UsuarioInput
	if err := c.Bind(&in); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	db := dbpkg.DBInstance(c)
	usuario, err := services.EditarUsuario(db, id, in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	usuario.PasswordHash = ""
	RespondSuccess(c, usuario)
}

func ChangeEstadoUsuario(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	actual, okU := GetUserLogged(c)
	if okU && actual.ID == id {
		RespondError(c, "No puede desactivar su propia cuenta", http.StatusConflict)
		return
	}

	var req EstadoActivoRequest
	if err := c.Bind(&req); err != nil || req.Activo == nil {
		RespondError(c, "activo es obligatorio", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	usuario, err := services.CambiarEstadoUsuario(db, id, *req.Activo)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	usuario.PasswordHash = ""
	RespondSuccess(c, usuario)
}
