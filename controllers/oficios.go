package controllers

import (
	"net/http"

	dbpkg "ventanilla/db"
	"ventanilla/models"
	"ventanilla/services"

	"github.com/gin-gonic/gin"
)

// puedeVerOficio aplica el alcance por área: admin ve todo, el resto
// solo oficios de su propia área.
func puedeVerOficio(usuario models.Usuario, areaAsignadaID int64) bool {
	if usuario.EsAdmin() {
		return true
	}
	return usuario.AreaID != nil && *usuario.AreaID == areaAsignadaID
}

func CreateOficio(c *gin.Context) {
	usuario, _ := GetUserLogged(c)

	var in services.CrearOficioInput
	if err := c.Bind(&in); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if !usuario.EsAdmin() {
		if usuario.AreaID == nil || in.AreaAsignadaID != *usuario.AreaID {
			RespondError(c, "Solo puede crear oficios en su propia área", http.StatusForbidden)
			return
		}
	}

	db := dbpkg.DBInstance(c)
	detalle, err := services.CrearOficio(db, in, usuario.ID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, detalle)
}

func GetOficios(c *gin.Context) {
	db := dbpkg.DBInstance(c)

	filtro := services.FiltroOficios{
		TipoProceso: c.Query("tipo_proceso"),
		Prioridad:   c.Query("prioridad"),
		Estado:      c.Query("estado"),
		ProyectoID:  QueryInt64(c, "proyecto_id"),
		Busqueda:    c.Query("busqueda"),
		Pagina:      QueryInt(c, "pagina", 1),
		Limite:      QueryInt(c, "limite", 20),
	}
	if area := AreaDelUsuario(c); area != nil {
		filtro.AreaID = area
	} else {
		filtro.AreaID = QueryInt64(c, "area_id")
	}

	listado, err := services.ListarOficios(db, filtro)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, listado)
}

func GetOficioByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	usuario, _ := GetUserLogged(c)

	db := dbpkg.DBInstance(c)
	detalle, err := services.ObtenerOficio(db, id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if !puedeVerOficio(usuario, detalle.AreaAsignadaID) {
		RespondError(c, "Oficio fuera de su área", http.StatusForbidden)
		return
	}
	RespondSuccess(c, detalle)
}

func UpdateOficio(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	usuario, _ := GetUserLogged(c)
	db := dbpkg.DBInstance(c)

	actual, err := services.ObtenerOficio(db, id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if !puedeVerOficio(usuario, actual.AreaAsignadaID) {
		RespondError(c, "Oficio fuera de su área", http.StatusForbidden)
		return
	}

	var in services.EditarOficioInput
	if err := c.Bind(&in); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	detalle, err := services.EditarOficio(db, id, in, usuario.ID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, detalle)
}

type ChangeEstadoRequest struct {
	Estado string `json:"estado" form:"estado"`
	Motivo string `json:"motivo" form:"motivo"`
}

func ChangeEstadoOficio(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	usuario, _ := GetUserLogged(c)
	db := dbpkg.DBInstance(c)

	actual, err := services.ObtenerOficio(db, id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if !puedeVerOficio(usuario, actual.AreaAsignadaID) {
		RespondError(c, "Oficio fuera de su área", http.StatusForbidden)
		return
	}

	var req ChangeEstadoRequest
	if err := c.Bind(&req); err != nil || req.Estado == "" {
		RespondError(c, "estado es obligatorio", http.StatusBadRequest)
		return
	}

	detalle, err := services.CambiarEstado(db, id, req.Estado, usuario.ID, req.Motivo)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, detalle)
}

type AssignAreaRequest struct {
	AreaID int64 `json:"area_id" form:"area_id"`
}

// AssignAreaOficio reasigna un oficio a otra área. Solo admin.
func AssignAreaOficio(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	usuario, _ := GetUserLogged(c)

	var req AssignAreaRequest
	if err := c.Bind(&req); err != nil || req.AreaID <= 0 {
		RespondError(c, "area_id es obligatorio", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	detalle, err := services.AsignarArea(db, id, req.AreaID, usuario.ID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, detalle)
}

type ChangePrioridadRequest struct {
	Prioridad string `json:"prioridad" form:"prioridad"`
}

func ChangePrioridadOficio(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	usuario, _ := GetUserLogged(c)
	db := dbpkg.DBInstance(c)

	actual, err := services.ObtenerOficio(db, id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if !puedeVerOficio(usuario, actual.AreaAsignadaID) {
		RespondError(c, "Oficio fuera de su área", http.StatusForbidden)
		return
	}

	var req ChangePrioridadRequest
	if err := c.Bind(&req); err != nil || req.Prioridad == "" {
		RespondError(c, "prioridad es obligatoria", http.StatusBadRequest)
		return
	}

	detalle, err := services.CambiarPrioridad(db, id, req.Prioridad, usuario.ID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, detalle)
}
