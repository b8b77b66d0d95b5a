package services

import (
	"fmt"
	"strings"

	"ventanilla/models"

	"github.com/jinzhu/gorm"
)

type AreaInput struct {
	Nombre      string `json:"nombre" form:"nombre"`
	Descripcion string `json:"descripcion" form:"descripcion"`
	Responsable string `json:"responsable" form:"responsable"`
	EmailArea   string `json:"email_area" form:"email_area"`
}

func ListarAreas(db *gorm.DB, soloActivas bool) ([]models.Area, error) {
	q := db.Order("nombre ASC")
	if soloActivas {
		q = q.Where("activo = ?", true)
	}
	var areas []models.Area
	if err := q.Find(&areas).Error; err != nil {
		return nil, AsError(err)
	}
	return areas, nil
}

func ObtenerArea(db *gorm.DB, id int64) (*models.Area, error) {
	var area models.Area
	if db.First(&area, id).RecordNotFound() {
		return nil, ErrNotFound("Área no encontrada")
	}
	return &area, nil
}

func CrearArea(db *gorm.DB, in AreaInput) (*models.Area, error) {
	if strings.TrimSpace(in.Nombre) == "" {
		return nil, ErrValidation("nombre es obligatorio")
	}

	var existente models.Area
	if !db.Where("LOWER(nombre) = LOWER(?)", in.Nombre).First(&existente).RecordNotFound() {
		return nil, ErrConflict(fmt.Sprintf("Ya existe un área con el nombre %q", in.Nombre))
	}

	area := models.Area{
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		Responsable: in.Responsable,
		EmailArea:   in.EmailArea,
		Activo:      true,
	}
	if err := db.Create(&area).Error; err != nil {
		return nil, AsError(err)
	}
	return &area, nil
}

func EditarArea(db *gorm.DB, id int64, in AreaInput) (*models.Area, error) {
	area, err := ObtenerArea(db, id)
	if err != nil {
		return nil, err
	}

	if in.Nombre != "" && !strings.EqualFold(in.Nombre, area.Nombre) {
		var existente models.Area
		if !db.Where("LOWER(nombre) = LOWER(?) AND id != ?", in.Nombre, id).First(&existente).RecordNotFound() {
			return nil, ErrConflict(fmt.Sprintf("Ya existe un área con el nombre %q", in.Nombre))
		}
		area.Nombre = in.Nombre
	}
	if in.Descripcion != "" {
		area.Descripcion = in.Descripcion
	}
	if in.Responsable != "" {
		area.Responsable = in.Responsable
	}
	if in.EmailArea != "" {
		area.EmailArea = in.EmailArea
	}

	if err := db.Save(area).Error; err != nil {
		return nil, AsError(err)
	}
	return area, nil
}

// CambiarEstadoArea activa/desactiva (soft delete). No se puede desactivar
// un área que todavía tiene usuarios activos.
func CambiarEstadoArea(db *gorm.DB, id int64, activo bool) (*models.Area, error) {
	area, err := ObtenerArea(db, id)
	if err != nil {
		return nil, err
	}

	if !activo {
		var total int
		db.Model(&models.Usuario{}).Where("area_id = ? AND activo = ?", id, true).Count(&total)
		if total > 0 {
			return nil, ErrConflict("No se puede desactivar un área con usuarios activos. Reasigne o desactive los usuarios primero")
		}
	}

	area.Activo = activo
	if err := db.Save(area).Error; err != nil {
		return nil, AsError(err)
	}
	return area, nil
}

func UsuariosDeArea(db *gorm.DB, areaID int64) ([]models.Usuario, error) {
	if _, err := ObtenerArea(db, areaID); err != nil {
		return nil, err
	}
	var usuarios []models.Usuario
	if err := db.Where("area_id = ?", areaID).
		Order("nombre_completo ASC").
		Find(&usuarios).Error; err != nil {
		return nil, AsError(err)
	}
	return usuarios, nil
}
