package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ventanilla/models"
	"ventanilla/tools"

	"github.com/jinzhu/gorm"
)

type RutaDescargaInfo struct {
	RutaAbsoluta   string
	NombreOriginal string
	OficioID       int64
}

func validarCategoria(categoria, tipoProceso, ext string) *Error {
	regla, ok := models.ReglasCategoria[categoria]
	if !ok {
		return ErrValidation(fmt.Sprintf("Categoría inválida: %s", categoria))
	}
	permitido := false
	for _, t := range regla.TiposProceso {
		if t == tipoProceso {
			permitido = true
			break
		}
	}
	if !permitido {
		return ErrValidation(fmt.Sprintf(
			"La categoría %q no está permitida para oficios de tipo %q", categoria, tipoProceso))
	}
	for _, e := range regla.Extensiones {
		if e == ext {
			return nil
		}
	}
	return ErrValidation(fmt.Sprintf(
		"Extensión .%s no permitida para la categoría %q. Permitidas: %s",
		ext, categoria, strings.Join(regla.Extensiones, ", ")))
}

// ListarArchivos lista los archivos de un oficio, versiones inactivas
// incluidas (el historial de versiones se conserva completo).
func ListarArchivos(db *gorm.DB, oficioID int64) ([]models.ArchivoOficio, error) {
	if _, errO := cargarOficio(db, oficioID); errO != nil {
		return nil, errO
	}
	var archivos []models.ArchivoOficio
	if err := db.Where("oficio_id = ?", oficioID).
		Order("categoria ASC, version DESC").
		Find(&archivos).Error; err != nil {
		return nil, AsError(err)
	}
	return archivos, nil
}

// SubirArchivo valida categoría y extensión contra el tipo de proceso,
// versiona (desactiva la versión activa anterior de la misma categoría) y
// registra el archivo, todo en una transacción. Subir un acuse a un oficio
// en en_espera_acuse dispara la finalización automática: es la única vía
// sancionada por la que un archivo cambia el estado de un oficio.
func SubirArchivo(db *gorm.DB, oficioID int64, categoria, nombreOriginal string, contenido []byte, maxBytes int64, usuarioID int64) (*models.ArchivoOficio, error) {
	oficio, errO := cargarOficio(db, oficioID)
	if errO != nil {
		return nil, errO
	}
	if models.EsEstadoTerminal(oficio.Estado) {
		return nil, ErrConflict("No se pueden subir archivos a un oficio en estado terminal")
	}

	ext := tools.Extension(nombreOriginal)
	tipoArchivo, ok := models.ExtensionATipo[ext]
	if !ok {
		return nil, ErrValidation(fmt.Sprintf("Extensión .%s no soportada por el sistema", ext))
	}
	if errV := validarCategoria(categoria, oficio.TipoProceso, ext); errV != nil {
		return nil, errV
	}
	if maxBytes > 0 && int64(len(contenido)) > maxBytes {
		return nil, ErrValidation(fmt.Sprintf("El archivo excede el tamaño máximo de %d bytes", maxBytes))
	}

	// Versión siguiente = 1 + máxima existente para (oficio, categoría).
	var maxVersion struct{ MaxVersion int }
	if err := db.Table("archivos_oficio").
		Select("COALESCE(MAX(version), 0) AS max_version").
		Where("oficio_id = ? AND categoria = ?", oficioID, categoria).
		Scan(&maxVersion).Error; err != nil {
		return nil, AsError(err)
	}
	nuevaVersion := maxVersion.MaxVersion + 1

	dir, err := tools.GenerarRutaArchivo(categoria, oficio.AreaAsignadaID)
	if err != nil {
		return nil, ErrInterno()
	}
	nombreEnDisco := tools.GenerarNombreArchivo(nombreOriginal)
	rutaRelativa := filepath.Join(strings.TrimPrefix(dir, tools.BaseDir()+string(filepath.Separator)), nombreEnDisco)
	rutaCompleta := filepath.Join(dir, nombreEnDisco)

	now := time.Now()
	archivo := models.ArchivoOficio{
		OficioID:        oficioID,
		TipoArchivo:     tipoArchivo,
		Categoria:       categoria,
		NombreArchivo:   nombreOriginal,
		RutaArchivo:     rutaRelativa,
		TamanoBytes:     int64(len(contenido)),
		Version:         nuevaVersion,
		EsVersionActiva: true,
		SubidoPor:       usuarioID,
		FechaSubida:     &now,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ArchivoOficio{}).
			Where("oficio_id = ? AND categoria = ?", oficioID, categoria).
			Update("es_version_activa", false).Error; err != nil {
			return err
		}
		if err := os.WriteFile(rutaCompleta, contenido, 0o644); err != nil {
			return err
		}
		return tx.Create(&archivo).Error
	})
	if err != nil {
		// La transacción hizo rollback; no dejar el blob huérfano.
		_ = os.Remove(rutaCompleta)
		return nil, AsError(err)
	}

	if categoria == models.CATEGORIA_ACUSE && oficio.Estado == models.ESTADO_EN_ESPERA_ACUSE {
		if _, err := CambiarEstado(db, oficioID, models.ESTADO_FINALIZADO, usuarioID,
			"Acuse recibido: finalización automática"); err != nil {
			return nil, err
		}
	}

	return &archivo, nil
}

// RutaDescarga resuelve la ruta física de un archivo, verificando que el
// registro exista y que el blob siga en disco.
func RutaDescarga(db *gorm.DB, archivoID int64) (*RutaDescargaInfo, error) {
	var archivo models.ArchivoOficio
	if db.First(&archivo, archivoID).RecordNotFound() {
		return nil, ErrNotFound("Archivo no encontrado")
	}

	rutaAbsoluta := filepath.Join(tools.BaseDir(), archivo.RutaArchivo)
	if _, err := os.Stat(rutaAbsoluta); err != nil {
		return nil, ErrNotFound("El archivo físico no está disponible en el servidor")
	}

	return &RutaDescargaInfo{
		RutaAbsoluta:   rutaAbsoluta,
		NombreOriginal: archivo.NombreArchivo,
		OficioID:       archivo.OficioID,
	}, nil
}
