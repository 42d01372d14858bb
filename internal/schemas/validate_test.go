package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
  "type": "object",
  "required": ["name", "age"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "age": {"type": "integer", "minimum": 0}
  }
}`

func TestSchema_Validate(t *testing.T) {
	schema, err := Compile("person.schema.json", []byte(personSchema))
	require.NoError(t, err)
	assert.Equal(t, "person.schema.json", schema.Name())

	tests := []struct {
		name       string
		document   string
		wantFields []string
	}{
		{name: "valid", document: `{"name": "Ada", "age": 36}`},
		{name: "missing field", document: `{"name": "Ada"}`, wantFields: []string{"(root)"}},
		{name: "wrong type", document: `{"name": "Ada", "age": "one"}`, wantFields: []string{"age"}},
		{name: "empty name and negative age", document: `{"name": "", "age": -1}`, wantFields: []string{"name", "age"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schema.Validate([]byte(tt.document))
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "expected ValidationError, got %T", err)
			fields := make([]string, 0, len(validationErr.Errors))
			for _, fe := range validationErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.ElementsMatch(t, tt.wantFields, fields)
		})
	}
}

func TestSchema_MalformedDocument(t *testing.T) {
	schema, err := Compile("person.schema.json", []byte(personSchema))
	require.NoError(t, err)

	err = schema.Validate([]byte(`{ not json`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON document")

	var validationErr *ValidationError
	assert.False(t, errors.As(err, &validationErr))
}

func TestCompile_MalformedSchema(t *testing.T) {
	_, err := Compile("broken", []byte(`{ not json`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr), "error should be SchemaLoadError type")
	assert.Equal(t, "broken", loadErr.Name)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{
		Schema: "catalog.schema.json",
		Errors: []FieldError{{Field: "roles.0.weight", Message: "must be greater than 0"}},
	}
	assert.Contains(t, err.Error(), "catalog.schema.json validation failed")
	assert.Contains(t, err.Error(), "1. roles.0.weight: must be greater than 0")
}
