package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name string `json:"name" validate:"required"`
	Age  int    `json:"age" validate:"gte=0"`
	EDD  string `json:"edd" validate:"required,datetime=2006-01-02"`
}

func TestFormatValidationErrorsUsesJSONNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&sampleRequest{Age: -1, EDD: "10/05/2025"})
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	assert.Equal(t, "name is required", errs["name"])
	assert.Equal(t, "age must be greater than or equal to 0", errs["age"])
	assert.Equal(t, "edd must be a date in the form YYYY-MM-DD", errs["edd"])
}

func TestValidRequestPasses(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(&sampleRequest{Name: "Amy", EDD: "2025-05-10"}))
}
