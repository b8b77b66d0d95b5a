package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDiasTranscurridosTrunca(t *testing.T) {
	ahora := time.Now()

	// 23 horas transcurridas siguen siendo 0 días completos.
	assert.Equal(t, 0, DiasTranscurridos(ahora.Add(-23*time.Hour), ahora))
	assert.Equal(t, 1, DiasTranscurridos(ahora.Add(-24*time.Hour), ahora))
	assert.Equal(t, 1, DiasTranscurridos(ahora.Add(-47*time.Hour), ahora))
	assert.Equal(t, 4, DiasTranscurridos(ahora.Add(-4*24*time.Hour), ahora))
}

func TestDiasTranscurridosNuncaNegativo(t *testing.T) {
	ahora := time.Now()
	assert.Equal(t, 0, DiasTranscurridos(ahora.Add(2*time.Hour), ahora))
}

func TestCalcularColorLimitesInclusivos(t *testing.T) {
	// Umbrales urgente: amarillo desde 2, rojo desde 5.
	assert.Equal(t, COLOR_VERDE, CalcularColor(0, 2, 5))
	assert.Equal(t, COLOR_VERDE, CalcularColor(1, 2, 5))
	assert.Equal(t, COLOR_AMARILLO, CalcularColor(2, 2, 5))
	assert.Equal(t, COLOR_AMARILLO, CalcularColor(4, 2, 5))
	assert.Equal(t, COLOR_ROJO, CalcularColor(5, 2, 5))
	assert.Equal(t, COLOR_ROJO, CalcularColor(50, 2, 5))

	// Umbrales normal: 5/15.
	assert.Equal(t, COLOR_VERDE, CalcularColor(4, 5, 15))
	assert.Equal(t, COLOR_AMARILLO, CalcularColor(5, 5, 15))
	assert.Equal(t, COLOR_AMARILLO, CalcularColor(14, 5, 15))
	assert.Equal(t, COLOR_ROJO, CalcularColor(15, 5, 15))
}

func TestRangoColor(t *testing.T) {
	assert.Equal(t, 2, RangoColor(COLOR_ROJO))
	assert.Equal(t, 1, RangoColor(COLOR_AMARILLO))
	assert.Equal(t, 0, RangoColor(COLOR_VERDE))
	assert.Equal(t, 0, RangoColor(""))

	assert.Greater(t, RangoColor(COLOR_ROJO), RangoColor(COLOR_AMARILLO))
	assert.Greater(t, RangoColor(COLOR_AMARILLO), RangoColor(COLOR_VERDE))
}

func TestTransicionesProyecto(t *testing.T) {
	assert.True(t, TransicionProyectoPermitida(PROYECTO_ACTIVO, PROYECTO_FINALIZADO))
	assert.True(t, TransicionProyectoPermitida(PROYECTO_ACTIVO, PROYECTO_CANCELADO))
	assert.True(t, TransicionProyectoPermitida(PROYECTO_FINALIZADO, PROYECTO_ACTIVO))

	assert.False(t, TransicionProyectoPermitida(PROYECTO_CANCELADO, PROYECTO_ACTIVO))
	assert.False(t, TransicionProyectoPermitida(PROYECTO_FINALIZADO, PROYECTO_CANCELADO))
}
