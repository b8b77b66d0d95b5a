package models

import "time"

/************************************************
/**** MARK: TIPOS DE PROCESO ****/
/************************************************/
const TIPO_RECIBIDO_EXTERNO = "recibido_externo"
const TIPO_INICIADO_INTERNO = "iniciado_interno"
const TIPO_INFORMATIVO = "informativo"

/************************************************
/**** MARK: ESTADOS ****/
/************************************************/
const ESTADO_RECIBIDO = "recibido"
const ESTADO_ASIGNADO = "asignado"
const ESTADO_EN_PROCESO = "en_proceso"
const ESTADO_RESPONDIDO = "respondido"
const ESTADO_EN_ESPERA_ACUSE = "en_espera_acuse"
const ESTADO_FINALIZADO = "finalizado"
const ESTADO_CANCELADO = "cancelado"

/************************************************
/**** MARK: PRIORIDADES ****/
/************************************************/
const PRIORIDAD_URGENTE = "urgente"
const PRIORIDAD_NORMAL = "normal"
const PRIORIDAD_INFORMATIVO = "informativo"

// TransicionesValidas define el grafo de estados por tipo de proceso.
// Cancelado es alcanzable desde cualquier estado no terminal; los estados
// terminales no tienen salidas.
var TransicionesValidas = map[string]map[string][]string{
	TIPO_RECIBIDO_EXTERNO: {
		ESTADO_RECIBIDO:        {ESTADO_ASIGNADO, ESTADO_CANCELADO},
		ESTADO_ASIGNADO:        {ESTADO_EN_PROCESO, ESTADO_CANCELADO},
		ESTADO_EN_PROCESO:      {ESTADO_RESPONDIDO, ESTADO_CANCELADO},
		ESTADO_RESPONDIDO:      {ESTADO_EN_ESPERA_ACUSE, ESTADO_CANCELADO},
		ESTADO_EN_ESPERA_ACUSE: {ESTADO_FINALIZADO, ESTADO_CANCELADO},
		ESTADO_FINALIZADO:      {},
		ESTADO_CANCELADO:       {},
	},
	TIPO_INICIADO_INTERNO: {
		ESTADO_EN_PROCESO:      {ESTADO_RESPONDIDO, ESTADO_CANCELADO},
		ESTADO_RESPONDIDO:      {ESTADO_EN_ESPERA_ACUSE, ESTADO_CANCELADO},
		ESTADO_EN_ESPERA_ACUSE: {ESTADO_FINALIZADO, ESTADO_CANCELADO},
		ESTADO_FINALIZADO:      {},
		ESTADO_CANCELADO:       {},
	},
	TIPO_INFORMATIVO: {
		ESTADO_RECIBIDO:   {ESTADO_ASIGNADO, ESTADO_CANCELADO},
		ESTADO_ASIGNADO:   {ESTADO_FINALIZADO, ESTADO_CANCELADO},
		ESTADO_FINALIZADO: {},
		ESTADO_CANCELADO:  {},
	},
}

// EstadoInicial por tipo de proceso. Un iniciado_interno nace directamente
// en en_proceso (no pasa por recibido/asignado).
var EstadoInicial = map[string]string{
	TIPO_RECIBIDO_EXTERNO: ESTADO_RECIBIDO,
	TIPO_INICIADO_INTERNO: ESTADO_EN_PROCESO,
	TIPO_INFORMATIVO:      ESTADO_RECIBIDO,
}

// Oficio representa una pieza de correspondencia oficial.
// El tipo de proceso se fija al crear y nunca cambia; el estado solo se
// mueve vía CambiarEstado. Los timestamps de hito se escriben una sola vez.
type Oficio struct {
	ID                int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	NumeroOficio      string     `gorm:"column:numero_oficio;not null;unique" json:"numero_oficio" form:"numero_oficio"`
	TipoProceso       string     `gorm:"column:tipo_proceso;not null;index" json:"tipo_proceso" form:"tipo_proceso"`
	Prioridad         string     `gorm:"not null;index" json:"prioridad" form:"prioridad"`
	Estado            string     `gorm:"not null;index" json:"estado"`
	AreaAsignadaID    int64      `gorm:"column:area_asignada_id;not null;index" json:"area_asignada_id" form:"area_asignada_id"`
	ProyectoID        *int64     `gorm:"column:proyecto_id;index" json:"proyecto_id" form:"proyecto_id"`
	Promovente        string     `json:"promovente" form:"promovente"`
	Destinatario      string     `json:"destinatario" form:"destinatario"`
	Asunto            string     `gorm:"type:text;not null" json:"asunto" form:"asunto"`
	Observaciones     string     `gorm:"type:text" json:"observaciones" form:"observaciones"`
	FechaRecepcion    time.Time  `gorm:"column:fecha_recepcion;not null;index" json:"fecha_recepcion" form:"fecha_recepcion"`
	FechaAsignacion   *time.Time `gorm:"column:fecha_asignacion" json:"fecha_asignacion"`
	FechaRespuesta    *time.Time `gorm:"column:fecha_respuesta" json:"fecha_respuesta"`
	FechaFinalizacion *time.Time `gorm:"column:fecha_finalizacion" json:"fecha_finalizacion"`
	// Contador de versión para concurrencia optimista. Se incrementa en cada
	// mutación; los clientes pueden rechazar escrituras obsoletas comparándolo.
	Version       int64      `gorm:"not null;default:1" json:"version"`
	CreadoPor     int64      `gorm:"column:creado_por" json:"creado_por"`
	ModificadoPor *int64     `gorm:"column:modificado_por" json:"modificado_por"`
	CreatedAt     *time.Time `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

func TipoProcesoValido(tipo string) bool {
	_, ok := EstadoInicial[tipo]
	return ok
}

func PrioridadValida(p string) bool {
	return p == PRIORIDAD_URGENTE || p == PRIORIDAD_NORMAL || p == PRIORIDAD_INFORMATIVO
}

func EsEstadoTerminal(estado string) bool {
	return estado == ESTADO_FINALIZADO || estado == ESTADO_CANCELADO
}

// TransicionPermitida consulta la tabla de transiciones del tipo de proceso.
// Un estado desconocido para el tipo no tiene salidas.
func TransicionPermitida(tipoProceso, actual, nuevo string) bool {
	mapa, ok := TransicionesValidas[tipoProceso]
	if !ok {
		return false
	}
	for _, e := range mapa[actual] {
		if e == nuevo {
			return true
		}
	}
	return false
}
