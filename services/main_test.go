package services

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	dbpkg "ventanilla/db"
	"ventanilla/models"

	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/require"
)

// newTestDB abre una sqlite por test con el esquema y los seeds reales
// (umbrales de semáforo y usuario admin).
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(conn))
	t.Cleanup(func() { conn.Close() })
	return conn
}

var areaSeq int

func crearAreaTest(t *testing.T, conn *gorm.DB) *models.Area {
	t.Helper()
	areaSeq++
	area := models.Area{
		Nombre:    fmt.Sprintf("Dirección de Pruebas %d", areaSeq),
		EmailArea: fmt.Sprintf("pruebas%d@sistema.gob.mx", areaSeq),
		Activo:    true,
	}
	require.NoError(t, conn.Create(&area).Error)
	return &area
}

var oficioSeq int

func crearOficioTest(t *testing.T, conn *gorm.DB, areaID int64, tipo, prioridad string) *OficioDetalle {
	t.Helper()
	oficioSeq++
	detalle, err := CrearOficio(conn, CrearOficioInput{
		NumeroOficio:   fmt.Sprintf("SG/%04d/2026", oficioSeq),
		TipoProceso:    tipo,
		Prioridad:      prioridad,
		AreaAsignadaID: areaID,
		Promovente:     "Secretaría General",
		Destinatario:   "Dirección Jurídica",
		Asunto:         "Solicitud de información",
	}, 1)
	require.NoError(t, err)
	return detalle
}

// retrocederRecepcion mueve fecha_recepcion hacia atrás para simular el paso
// del tiempo sin dormir en los tests.
func retrocederRecepcion(t *testing.T, conn *gorm.DB, oficioID int64, dias int) {
	t.Helper()
	fecha := time.Now().Add(-time.Duration(dias)*24*time.Hour - time.Hour)
	require.NoError(t, conn.Model(&models.Oficio{}).
		Where("id = ?", oficioID).
		Update("fecha_recepcion", fecha).Error)
}

func semaforoDe(t *testing.T, conn *gorm.DB, oficioID int64) *models.SemaforoTiempo {
	t.Helper()
	var sem models.SemaforoTiempo
	require.NoError(t, conn.Where("oficio_id = ?", oficioID).First(&sem).Error)
	return &sem
}

func historialDe(t *testing.T, conn *gorm.DB, oficioID int64) []models.HistorialEstado {
	t.Helper()
	var historial []models.HistorialEstado
	require.NoError(t, conn.Where("oficio_id = ?", oficioID).
		Order("id ASC").Find(&historial).Error)
	return historial
}
