package services

import (
	"fmt"
	"time"

	"ventanilla/models"

	"github.com/jinzhu/gorm"
)

type ProyectoInput struct {
	Nombre      string     `json:"nombre" form:"nombre"`
	Descripcion string     `json:"descripcion" form:"descripcion"`
	AreaID      int64      `json:"area_id" form:"area_id"`
	FechaInicio *time.Time `json:"fecha_inicio" form:"fecha_inicio"`
	FechaFin    *time.Time `json:"fecha_fin" form:"fecha_fin"`
}

func ListarProyectos(db *gorm.DB, areaID *int64, estado string) ([]models.Proyecto, error) {
	q := db.Where("activo = ?", true).Order("created_at DESC")
	if areaID != nil {
		q = q.Where("area_id = ?", *areaID)
	}
	if estado != "" {
		q = q.Where("estado = ?", estado)
	}
	var proyectos []models.Proyecto
	if err := q.Find(&proyectos).Error; err != nil {
		return nil, AsError(err)
	}
	return proyectos, nil
}

func ObtenerProyecto(db *gorm.DB, id int64) (*models.Proyecto, error) {
	var proyecto models.Proyecto
	if db.First(&proyecto, id).RecordNotFound() {
		return nil, ErrNotFound("Proyecto no encontrado")
	}
	return &proyecto, nil
}

func CrearProyecto(db *gorm.DB, in ProyectoInput, usuarioID int64) (*models.Proyecto, error) {
	if in.Nombre == "" {
		return nil, ErrValidation("nombre es obligatorio")
	}
	if _, err := validarArea(db, in.AreaID); err != nil {
		return nil, err
	}

	// Nombre único dentro del área (entre proyectos vivos).
	var existente models.Proyecto
	if !db.Where("LOWER(nombre) = LOWER(?) AND area_id = ? AND activo = ?", in.Nombre, in.AreaID, true).
		First(&existente).RecordNotFound() {
		return nil, ErrConflict("Ya existe un proyecto con ese nombre en esta área")
	}

	proyecto := models.Proyecto{
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		AreaID:      in.AreaID,
		Estado:      models.PROYECTO_ACTIVO,
		FechaInicio: in.FechaInicio,
		FechaFin:    in.FechaFin,
		Activo:      true,
		CreadoPor:   usuarioID,
	}
	if err := db.Create(&proyecto).Error; err != nil {
		return nil, AsError(err)
	}
	return &proyecto, nil
}

func EditarProyecto(db *gorm.DB, id int64, in ProyectoInput) (*models.Proyecto, error) {
	proyecto, err := ObtenerProyecto(db, id)
	if err != nil {
		return nil, err
	}
	if proyecto.Estado == models.PROYECTO_CANCELADO {
		return nil, ErrConflict("No se puede editar un proyecto cancelado")
	}

	if in.Nombre != "" {
		proyecto.Nombre = in.Nombre
	}
	if in.Descripcion != "" {
		proyecto.Descripcion = in.Descripcion
	}
	if in.FechaInicio != nil {
		proyecto.FechaInicio = in.FechaInicio
	}
	if in.FechaFin != nil {
		proyecto.FechaFin = in.FechaFin
	}

	if err := db.Save(proyecto).Error; err != nil {
		return nil, AsError(err)
	}
	return proyecto, nil
}

func CambiarEstadoProyecto(db *gorm.DB, id int64, estado string) (*models.Proyecto, error) {
	proyecto, err := ObtenerProyecto(db, id)
	if err != nil {
		return nil, err
	}

	if !models.TransicionProyectoPermitida(proyecto.Estado, estado) {
		return nil, ErrConflict(fmt.Sprintf("No se puede cambiar de %q a %q", proyecto.Estado, estado))
	}

	proyecto.Estado = estado
	if err := db.Save(proyecto).Error; err != nil {
		return nil, AsError(err)
	}
	return proyecto, nil
}

func OficiosDeProyecto(db *gorm.DB, proyectoID int64) ([]OficioResumen, error) {
	if _, err := ObtenerProyecto(db, proyectoID); err != nil {
		return nil, err
	}

	var data []OficioResumen
	err := db.Table("oficios o").
		Select(`o.*, a.nombre AS area_nombre, s.estado_semaforo, s.dias_transcurridos`).
		Joins("LEFT JOIN areas a ON o.area_asignada_id = a.id").
		Joins("LEFT JOIN semaforo_tiempo s ON o.id = s.oficio_id").
		Where("o.proyecto_id = ?", proyectoID).
		Order("o.fecha_recepcion DESC").
		Scan(&data).Error
	if err != nil {
		return nil, AsError(err)
	}
	return data, nil
}
