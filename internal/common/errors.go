package common

import (
	"errors"
	"fmt"
)

// Taxonomia de errores. Se envuelven con fmt.Errorf("...: %w", ...) y se comparan con errors.Is.
var (
	// ErrRange: un campo no cabe en su ancho de bits o es negativo.
	ErrRange = errors.New("valor fuera de rango")
	// ErrInvalidArgument: etiqueta o cadena de entrada mal formada.
	ErrInvalidArgument = errors.New("argumento invalido")
	// ErrInconsistentState: post-condicion violada tras la reconciliacion.
	ErrInconsistentState = errors.New("estado inconsistente")
	// ErrMalformedAssignment envuelve ErrInvalidArgument para el formato de asignaciones.
	ErrMalformedAssignment   = fmt.Errorf("asignacion mal formada: %w", ErrInvalidArgument)
	ErrUnsupportedServerType = errors.New("tipo de servidor no soportado")
)
