package controllers

import (
	"io"
	"net/http"

	dbpkg "ventanilla/db"
	"ventanilla/services"

	"github.com/gin-gonic/gin"
)

func GetArchivos(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	usuario, _ := GetUserLogged(c)
	db := dbpkg.DBInstance(c)

	oficio, err := services.ObtenerOficio(db, id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if !puedeVerOficio(usuario, oficio.AreaAsignadaID) {
		RespondError(c, "Oficio fuera de su área", http.StatusForbidden)
		return
	}

	archivos, err := services.ListarArchivos(db, id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondSuccess(c, archivos)
}

// UploadArchivo recibe multipart: campo "archivo" más "categoria".
func UploadArchivo(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	usuario, _ := GetUserLogged(c)
	db := dbpkg.DBInstance(c)

	oficio, err := services.ObtenerOficio(db, id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if !puedeVerOficio(usuario, oficio.AreaAsignadaID) {
		RespondError(c, "Oficio fuera de su área", http.StatusForbidden)
		return
	}

	categoria := c.PostForm("categoria")
	if categoria == "" {
		RespondError(c, "categoria es obligatoria", http.StatusBadRequest)
		return
	}

	fileHeader, errF := c.FormFile("archivo")
	if errF != nil {
		RespondError(c, "archivo es obligatorio", http.StatusBadRequest)
		return
	}

	maxBytes := conf.MaxFileSizeMB * 1024 * 1024
	if fileHeader.Size > maxBytes {
		RespondError(c, "El archivo excede el tamaño máximo permitido", http.StatusRequestEntityTooLarge)
		return
	}

	f, errO := fileHeader.Open()
	if errO != nil {
		RespondError(c, "No se pudo leer el archivo", http.StatusBadRequest)
		return
	}
	defer f.Close()

	contenido, errR := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if errR != nil {
		RespondError(c, "No se pudo leer el archivo", http.StatusBadRequest)
		return
	}

	archivo, err := services.SubirArchivo(db, id, categoria, fileHeader.Filename,
		contenido, maxBytes, usuario.ID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, archivo)
}

func DownloadArchivo(c *gin.Context) {
	archivoID, ok := ParamID(c, "archivoId")
	if !ok {
		return
	}
	usuario, _ := GetUserLogged(c)
	db := dbpkg.DBInstance(c)

	info, err := services.RutaDescarga(db, archivoID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	oficio, err := services.ObtenerOficio(db, info.OficioID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if !puedeVerOficio(usuario, oficio.AreaAsignadaID) {
		RespondError(c, "Oficio fuera de su área", http.StatusForbidden)
		return
	}

	c.FileAttachment(info.RutaAbsoluta, info.NombreOriginal)
}
