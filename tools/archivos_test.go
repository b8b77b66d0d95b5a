package tools

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtension(t *testing.T) {
	assert.Equal(t, "pdf", Extension("oficio.pdf"))
	assert.Equal(t, "pdf", Extension("OFICIO.PDF"))
	assert.Equal(t, "docx", Extension("respuesta.final.DOCX"))
	assert.Equal(t, "", Extension("sin_extension"))
}

func TestGenerarRutaArchivo(t *testing.T) {
	t.Setenv("UPLOADS_DIR", t.TempDir())

	dir, err := GenerarRutaArchivo("acuse", 7)
	require.NoError(t, err)

	ahora := time.Now()
	esperado := filepath.Join(BaseDir(), "acuses",
		fmt.Sprintf("%d", ahora.Year()),
		fmt.Sprintf("%02d", int(ahora.Month())), "7")
	assert.Equal(t, esperado, dir)
	assert.DirExists(t, dir)

	// Categoría desconocida cae en temp.
	dir, err = GenerarRutaArchivo("otra", 7)
	require.NoError(t, err)
	assert.Contains(t, dir, filepath.Join(BaseDir(), "temp"))
}

func TestBaseDirConfigurado(t *testing.T) {
	t.Setenv("UPLOADS_DIR", "/por_env")
	t.Cleanup(func() { SetBaseDir("") })

	// Sin configurar, gana la variable de entorno.
	assert.Equal(t, "/por_env", BaseDir())

	// El valor de configuración tiene prioridad sobre el entorno.
	SetBaseDir("/por_config")
	assert.Equal(t, "/por_config", BaseDir())
}

func TestGenerarNombreArchivo(t *testing.T) {
	nombre := GenerarNombreArchivo("Oficio de Respuesta (v2).pdf")

	assert.True(t, strings.HasSuffix(nombre, ".pdf"))
	// Sin espacios ni paréntesis en el nombre final.
	assert.NotContains(t, nombre, " ")
	assert.NotContains(t, nombre, "(")

	// Dos llamadas nunca chocan gracias al sufijo aleatorio.
	assert.NotEqual(t, nombre, GenerarNombreArchivo("Oficio de Respuesta (v2).pdf"))
}
