package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var nombreSeguro = regexp.MustCompile(`[^a-zA-Z0-9_\-]`)

// Subcarpeta por categoría dentro del directorio de uploads.
var subcarpetas = map[string]string{
	"oficio_recibido":       "oficios",
	"oficio_respuesta_pdf":  "respuestas",
	"oficio_respuesta_word": "respuestas",
	"acuse":                 "acuses",
	"anexo":                 "anexos",
}

var baseDir string

// SetBaseDir fija el directorio raíz de uploads desde la configuración.
func SetBaseDir(dir string) {
	baseDir = dir
}

// BaseDir devuelve el directorio raíz de uploads: el configurado con
// SetBaseDir, o en su defecto env UPLOADS_DIR, o "uploads".
func BaseDir() string {
	if baseDir != "" {
		return baseDir
	}
	if v := os.Getenv("UPLOADS_DIR"); v != "" {
		return v
	}
	return "uploads"
}

// Extension devuelve la extensión en minúsculas sin punto.
func Extension(nombreArchivo string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(nombreArchivo), "."))
}

// GenerarRutaArchivo crea (si hace falta) y devuelve el directorio destino:
// {base}/{subcarpeta}/{año}/{mes}/{areaID}/
func GenerarRutaArchivo(categoria string, areaID int64) (string, error) {
	sub, ok := subcarpetas[categoria]
	if !ok {
		sub = "temp"
	}
	ahora := time.Now()
	dir := filepath.Join(BaseDir(), sub,
		fmt.Sprintf("%d", ahora.Year()),
		fmt.Sprintf("%02d", int(ahora.Month())),
		fmt.Sprintf("%d", areaID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// GenerarNombreArchivo: {timestamp}_{uuid8}_{nombre_sanitizado}{ext}
func GenerarNombreArchivo(nombreOriginal string) string {
	ext := filepath.Ext(nombreOriginal)
	base := strings.TrimSuffix(filepath.Base(nombreOriginal), ext)
	base = nombreSeguro.ReplaceAllString(base, "_")
	if len(base) > 40 {
		base = base[:40]
	}
	uuid8 := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d_%s_%s%s", time.Now().UnixMilli(), uuid8, base, strings.ToLower(ext))
}
