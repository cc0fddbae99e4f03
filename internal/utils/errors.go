package utils

import (
	"errors"
	"fmt"
)

// Categorias de erro do motor de receita. Os handlers mapeiam cada uma para um status HTTP.
var (
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInconsistentState = errors.New("estado inconsistente")
	ErrNotFound          = errors.New("registro não encontrado")
	ErrInvalidTransition = errors.New("transição de status inválida")
)

func InvalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func Inconsistent(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInconsistentState, fmt.Sprintf(format, args...))
}

func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func InvalidTransition(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidTransition, fmt.Sprintf(format, args...))
}
