// Package types provides request types shared by the dashboard form and the JSON API.
package types

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Field length limits for a cover letter request.
const (
	MaxCompanyNameLength    = 200
	MaxJobTitleLength       = 200
	MaxJobDescriptionLength = 20000
)

// CoverLetterRequest is the job a user wants a cover letter for.
type CoverLetterRequest struct {
	CompanyName    string `json:"company_name" validate:"required,max=200"`
	JobTitle       string `json:"job_title" validate:"required,max=200"`
	JobDescription string `json:"job_description" validate:"required,max=20000"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// requestValidator reports field names by their JSON tag so errors line up
// with form inputs and API payload keys.
func requestValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Normalize trims surrounding whitespace from every field.
func (r *CoverLetterRequest) Normalize() {
	r.CompanyName = strings.TrimSpace(r.CompanyName)
	r.JobTitle = strings.TrimSpace(r.JobTitle)
	r.JobDescription = strings.TrimSpace(r.JobDescription)
}

// Validate validates the CoverLetterRequest using the validator.
func (r *CoverLetterRequest) Validate() error {
	return requestValidator().Struct(r)
}

// FieldErrors maps a validation error to a message per field name.
// It returns nil when err carries no field-level failures.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	label := fieldLabels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

var fieldLabels = map[string]string{
	"company_name":    "Company Name",
	"job_title":       "Job Title",
	"job_description": "Job Description",
}
