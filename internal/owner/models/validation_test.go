package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationResult(t *testing.T) {
	t.Run("empty result has no errors", func(t *testing.T) {
		assert.False(t, ValidationResult{}.HasErrors())
		assert.False(t, ValidationResult(nil).HasErrors())
		assert.Empty(t, ValidationResult{}.Fields())
	})

	t.Run("a key without messages still counts", func(t *testing.T) {
		result := ValidationResult{"city": {}, "address": nil}

		assert.True(t, result.HasErrors())
		assert.Equal(t, []string{"address", "city"}, result.Fields())
	})

	t.Run("add appends per field", func(t *testing.T) {
		result := ValidationResult{}
		result.Add("telephone", "numeric value out of bounds")
		result.Add("telephone", "cannot be blank")

		assert.Len(t, result["telephone"], 2)
		assert.Equal(t, []string{"telephone"}, result.Fields())
	})
}
