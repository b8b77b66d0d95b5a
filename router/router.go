package router

import (
	"ventanilla/controllers"
	"ventanilla/middleware"

	"github.com/gin-gonic/gin"
)

// Initialize arma todas las rutas y middlewares: rutas públicas, rutas
// autenticadas y rutas de administrador.
func Initialize(r *gin.Engine) {
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Públicas (sin token)
	api.POST("/auth/login", Logger(), controllers.Login)
	api.POST("/auth/refresh", Logger(), controllers.Refresh)

	// Autenticadas (token requerido)
	auth := api.Group("")
	auth.Use(controllers.AuthRequired())

	auth.POST("/auth/logout", Logger(), controllers.Logout)
	auth.GET("/auth/me", Logger(), controllers.Me)
	auth.PUT("/auth/password", Logger(), controllers.ChangePassword)

	// Oficios
	auth.GET("/oficios", Logger(), controllers.GetOficios)
	auth.POST("/oficios", Logger(), controllers.CreateOficio)
	auth.GET("/oficios/:id", Logger(), controllers.GetOficioByID)
	auth.PUT("/oficios/:id", Logger(), controllers.UpdateOficio)
	auth.PUT("/oficios/:id/estado", Logger(), controllers.ChangeEstadoOficio)
	auth.PUT("/oficios/:id/prioridad", Logger(), controllers.ChangePrioridadOficio)

	// Archivos adjuntos
	auth.GET("/oficios/:id/archivos", Logger(), controllers.GetArchivos)
	auth.POST("/oficios/:id/archivos", Logger(), controllers.UploadArchivo)
	auth.GET("/archivos/:archivoId/descargar", Logger(), controllers.DownloadArchivo)

	// Catálogo de áreas (lectura)
	auth.GET("/areas", Logger(), controllers.GetAreas)
	auth.GET("/areas/:id", Logger(), controllers.GetAreaByID)

	// Proyectos
	auth.GET("/proyectos", Logger(), controllers.GetProyectos)
	auth.POST("/proyectos", Logger(), controllers.CreateProyecto)
	auth.GET("/proyectos/:id", Logger(), controllers.GetProyectoByID)
	auth.PUT("/proyectos/:id", Logger(), controllers.UpdateProyecto)
	auth.PUT("/proyectos/:id/estado", Logger(), controllers.ChangeEstadoProyecto)
	auth.GET("/proyectos/:id/oficios", Logger(), controllers.GetOficiosDeProyecto)

	// Semáforos y tableros
	auth.GET("/semaforos/alertas", Logger(), controllers.GetAlertas)
	auth.GET("/semaforos/configuracion", Logger(), controllers.GetConfiguracionSemaforo)
	auth.GET("/dashboard", Logger(), controllers.GetDashboard)
	auth.GET("/dashboard/areas/:id", Logger(), controllers.GetDashboardArea)

	// Administración
	admin := auth.Group("")
	admin.Use(Adminizer())

	admin.PUT("/oficios/:id/area", Logger(), controllers.AssignAreaOficio)

	admin.POST("/areas", Logger(), controllers.CreateArea)
	admin.PUT("/areas/:id", Logger(), controllers.UpdateArea)
	admin.PUT("/areas/:id/estado", Logger(), controllers.ChangeEstadoArea)
	admin.GET("/areas/:id/usuarios", Logger(), controllers.GetUsuariosDeArea)

	admin.GET("/usuarios", Logger(), controllers.GetUsuarios)
	admin.GET("/usuarios/:id", Logger(), controllers.GetUsuarioByID)
	admin.POST("/usuarios", Logger(), controllers.CreateUsuario)
	admin.PUT("/usuarios/:id", Logger(), controllers.UpdateUsuario)
	admin.PUT("/usuarios/:id/estado", Logger(), controllers.ChangeEstadoUsuario)

	admin.PUT("/semaforos/configuracion/:prioridad", Logger(), controllers.UpdateConfiguracionSemaforo)
	admin.POST("/semaforos/recalcular", Logger(), controllers.RunSemaforoSweep)

	log.Info("rutas inicializadas")
}
