package models

import "time"

/************************************************
/**** MARK: CATEGORIAS DE ARCHIVO ****/
/************************************************/
const CATEGORIA_OFICIO_RECIBIDO = "oficio_recibido"
const CATEGORIA_RESPUESTA_WORD = "oficio_respuesta_word"
const CATEGORIA_RESPUESTA_PDF = "oficio_respuesta_pdf"
const CATEGORIA_ANEXO = "anexo"
const CATEGORIA_ACUSE = "acuse"

// ReglaCategoria define qué extensiones acepta una categoría y en qué tipos
// de proceso es válida.
type ReglaCategoria struct {
	Extensiones  []string
	TiposProceso []string
}

// ReglasCategoria: la subida de un acuse puede disparar la finalización
// automática del oficio (ver services/archivos.go).
var ReglasCategoria = map[string]ReglaCategoria{
	CATEGORIA_OFICIO_RECIBIDO: {
		Extensiones:  []string{"pdf"},
		TiposProceso: []string{TIPO_RECIBIDO_EXTERNO},
	},
	CATEGORIA_RESPUESTA_WORD: {
		Extensiones:  []string{"doc", "docx"},
		TiposProceso: []string{TIPO_RECIBIDO_EXTERNO, TIPO_INICIADO_INTERNO},
	},
	CATEGORIA_RESPUESTA_PDF: {
		Extensiones:  []string{"pdf"},
		TiposProceso: []string{TIPO_RECIBIDO_EXTERNO, TIPO_INICIADO_INTERNO},
	},
	CATEGORIA_ANEXO: {
		Extensiones:  []string{"pdf"},
		TiposProceso: []string{TIPO_RECIBIDO_EXTERNO, TIPO_INICIADO_INTERNO, TIPO_INFORMATIVO},
	},
	CATEGORIA_ACUSE: {
		Extensiones:  []string{"pdf"},
		TiposProceso: []string{TIPO_RECIBIDO_EXTERNO, TIPO_INICIADO_INTERNO},
	},
}

// ExtensionATipo: extensión → tipo_archivo canónico en BD.
var ExtensionATipo = map[string]string{
	"pdf":  "pdf",
	"doc":  "word",
	"docx": "word",
}

// ArchivoOficio es un adjunto versionado. A lo más una versión activa por
// (oficio, categoría); subir una nueva desactiva la anterior, nunca la borra.
type ArchivoOficio struct {
	ID              int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	OficioID        int64      `gorm:"column:oficio_id;not null;index" json:"oficio_id"`
	TipoArchivo     string     `gorm:"column:tipo_archivo;not null" json:"tipo_archivo"`
	Categoria       string     `gorm:"not null;index" json:"categoria"`
	NombreArchivo   string     `gorm:"column:nombre_archivo;not null" json:"nombre_archivo"`
	RutaArchivo     string     `gorm:"column:ruta_archivo;not null" json:"-"`
	TamanoBytes     int64      `gorm:"column:tamano_bytes;not null" json:"tamano_bytes"`
	Version         int        `gorm:"not null;default:1" json:"version"`
	EsVersionActiva bool       `gorm:"column:es_version_activa;not null;default:true;index" json:"es_version_activa"`
	SubidoPor       int64      `gorm:"column:subido_por" json:"subido_por"`
	FechaSubida     *time.Time `gorm:"column:fecha_subida" json:"fecha_subida"`
}

func (ArchivoOficio) TableName() string {
	return "archivos_oficio"
}
