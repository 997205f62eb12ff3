package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrRecordNotFound       = errors.New("record not found")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrContentTooLarge      = errors.New("content too large")
	ErrBadRequest           = errors.New("bad request")
)

// ValidationError reports the fields of a payload that failed validation,
// keyed by field name.
type ValidationError struct {
	Fields map[string]string
}

func (e ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%q %s", k, e.Fields[k]))
	}
	return strings.Join(parts, "; ")
}

// failedValidation wraps a validator error map in a ValidationError.
func (s *service) failedValidation(errorMap map[string]string) error {
	return ValidationError{Fields: errorMap}
}
