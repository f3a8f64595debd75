// Package apperr define los errores tipados que cruzan la frontera de los
// servicios: validación con campos señalados y entidades inexistentes.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError acumula los campos inválidos de una petición.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validación fallida: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// NotFoundError lleva el tipo de entidad y el id buscado.
type NotFoundError struct {
	Kind string
	ID   uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s con ID %d no existe", e.Kind, e.ID)
}

func NotFound(kind string, id uint) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
