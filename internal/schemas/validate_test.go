package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "stat"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "stat": {"type": "string"}
  },
  "additionalProperties": false
}`

func TestValidateJSONBytes_Valid(t *testing.T) {
	err := ValidateJSONBytes("stat", []byte(testSchema), []byte(`{"name": "Last 14 Days", "stat": "8"}`))
	assert.NoError(t, err)
}

func TestValidateJSONBytes_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		document  string
		wantField string
	}{
		{
			name:      "missing field",
			document:  `{"name": "Last 14 Days"}`,
			wantField: "(root)",
		},
		{
			name:      "wrong type",
			document:  `{"name": "Last 14 Days", "stat": 8}`,
			wantField: "stat",
		},
		{
			name:      "empty name",
			document:  `{"name": "", "stat": "8"}`,
			wantField: "name",
		},
		{
			name:      "unknown property",
			document:  `{"name": "x", "stat": "8", "extra": true}`,
			wantField: "(root)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSONBytes("stat", []byte(testSchema), []byte(tt.document))
			require.Error(t, err)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
			require.NotEmpty(t, validationErr.Errors)

			fields := make([]string, 0, len(validationErr.Errors))
			for _, fe := range validationErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.wantField)
			assert.Contains(t, err.Error(), "validation failed:")
		})
	}
}

func TestValidateJSONBytes_MalformedDocument(t *testing.T) {
	err := ValidateJSONBytes("stat", []byte(testSchema), []byte(`{ invalid json }`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "stat", loadErr.Name)
	assert.NotNil(t, errors.Unwrap(loadErr))
}

func TestSchemaLoadError_Error(t *testing.T) {
	err := &SchemaLoadError{Name: "mock", Message: "bad"}
	assert.Equal(t, "failed to load schema mock: bad", err.Error())

	err.Cause = errors.New("boom")
	assert.Equal(t, "failed to load schema mock: bad: boom", err.Error())
}
