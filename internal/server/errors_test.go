package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Fields: map[string]string{
		"job_title":    "Job Title is required",
		"company_name": "Company Name is required",
	}}
	assert.Equal(t, "validation error: company_name - Company Name is required; job_title - Job Title is required", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestErrCoverLetterNotFound(t *testing.T) {
	err := &ErrCoverLetterNotFound{Key: "42"}
	assert.Equal(t, "cover letter not found: 42", err.Error())
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestErrGenerationUnavailable(t *testing.T) {
	err := &ErrGenerationUnavailable{}
	assert.Equal(t, "cover letter generation is not available yet", err.Error())
	assert.Equal(t, http.StatusNotImplemented, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "ErrValidation",
			err:      &ErrValidation{Fields: map[string]string{"job_title": "required"}},
			expected: http.StatusBadRequest,
		},
		{
			name:     "ErrCoverLetterNotFound",
			err:      &ErrCoverLetterNotFound{Key: "9"},
			expected: http.StatusNotFound,
		},
		{
			name:     "wrapped ErrCoverLetterNotFound",
			err:      fmt.Errorf("lookup: %w", &ErrCoverLetterNotFound{Key: "9"}),
			expected: http.StatusNotFound,
		},
		{
			name:     "ErrGenerationUnavailable",
			err:      &ErrGenerationUnavailable{},
			expected: http.StatusNotImplemented,
		},
		{
			name:     "Unknown error",
			err:      assert.AnError,
			expected: http.StatusInternalServerError,
		},
		{
			name:     "Nil error",
			err:      nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
