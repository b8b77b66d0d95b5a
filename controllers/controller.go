package controllers

import (
	"ventanilla/config"
	"ventanilla/services"

	"github.com/gin-gonic/gin"
)

var conf config.Configuration

// SetConfig recibe la configuración cargada en el main, igual que
// db.SetConfigurations. Evita acoplar controllers al archivo físico.
func SetConfig(c config.Configuration) {
	conf = c
}

func RespondError(c *gin.Context, msg string, code int) {
	c.JSON(code, gin.H{"error": msg})
}

func RespondSuccess(c *gin.Context, payload any) {
	c.JSON(200, payload)
}

// RespondServiceError traduce el error tipado de services a la respuesta
// HTTP: status del error más kind y message en el cuerpo.
func RespondServiceError(c *gin.Context, err error) {
	e := services.AsError(err)
	c.JSON(e.Status, gin.H{"error": e.Message, "kind": e.Kind})
}
