package controllers

import (
	"net/http"

	dbpkg "ventanilla/db"
	"ventanilla/services"

	"github.com/gin-gonic/gin"
)

// GetAlertas lista los oficios en amarillo/rojo, acotados al área del
// usuario cuando no es admin.
func GetAlertas(c *gin.Context) {
	db := dbpkg.DBInstance(c)

	areaID := AreaDelUsuario(c)
	if areaID == nil {
		areaID = QueryInt64(c, "area_id")
	}

	alertas, err := services.ObtenerAlertas(db, areaID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, alertas)
}

func GetConfiguracionSemaforo(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	configs, err := services.ObtenerConfiguracion(db)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, configs)
}

type ConfiguracionSemaforoRequest struct {
	DiasVerde int `json:"dias_verde" form:"dias_verde"`
	DiasRojo  int `json:"dias_rojo" form:"dias_rojo"`
}

func UpdateConfiguracionSemaforo(c *gin.Context) {
	prioridad := c.Param("prioridad")
	if prioridad == "" {
		RespondError(c, "prioridad es obligatoria", http.StatusBadRequest)
		return
	}

	var req ConfiguracionSemaforoRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	config, err := services.ActualizarConfiguracion(db, prioridad, req.DiasVerde, req.DiasRojo)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, config)
}

// RunSemaforoSweep dispara un recálculo manual y reporta cuántos oficios
// quedaron pendientes de alertar. El envío en sí sigue a cargo del job
// periódico; esto existe para operación y pruebas.
func RunSemaforoSweep(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	actualizados, err := services.RecalcularTodos(db)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	alertas, err := services.OficiosParaAlertar(db)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, gin.H{
		"actualizados":       actualizados,
		"alertas_pendientes": len(alertas),
	})
}
