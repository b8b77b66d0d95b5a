package services

import "net/http"

/************************************************
/**** MARK: KINDS DE ERROR ****/
/************************************************/
const KIND_NOT_FOUND = "not_found"
const KIND_CONFLICT = "conflict"
const KIND_VALIDATION = "validation_failed"
const KIND_INTEGRITY = "integrity_failure"

// Error es el error tipado que devuelven todos los servicios: un kind
// estable, un status HTTP y un mensaje legible. Los errores de almacenamiento
// no clasificados se envuelven como integrity_failure sin filtrar su texto.
type Error struct {
	Status  int    `json:"-"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func ErrNotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Kind: KIND_NOT_FOUND, Message: msg}
}

func ErrConflict(msg string) *Error {
	return &Error{Status: http.StatusConflict, Kind: KIND_CONFLICT, Message: msg}
}

func ErrValidation(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Kind: KIND_VALIDATION, Message: msg}
}

func ErrInterno() *Error {
	return &Error{Status: http.StatusInternalServerError, Kind: KIND_INTEGRITY, Message: "Error interno del servidor"}
}

// AsError normaliza cualquier error a *Error. Un fallo de transacción llega
// aquí ya con rollback completo hecho por gorm.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	return ErrInterno()
}
