// Package server provides the HTTP server for the cover letter dashboard.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Fields map[string]string // field name -> message
}

func (e *ErrValidation) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s - %s", k, e.Fields[k]))
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// ErrCoverLetterNotFound indicates no history entry has the requested key
type ErrCoverLetterNotFound struct {
	Key string
}

func (e *ErrCoverLetterNotFound) Error() string {
	return fmt.Sprintf("cover letter not found: %s", e.Key)
}

// ErrGenerationUnavailable indicates a valid request that this server cannot fulfil
type ErrGenerationUnavailable struct{}

func (e *ErrGenerationUnavailable) Error() string {
	return "cover letter generation is not available yet"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation  *ErrValidation
		notFound    *ErrCoverLetterNotFound
		unavailable *ErrGenerationUnavailable
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &unavailable):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
