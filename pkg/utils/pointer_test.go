package utils_test

import (
	"testing"

	"github.com/pracor/pracor/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func TestPtr(t *testing.T) {
	t.Parallel()
	t.Run("string pointer", func(t *testing.T) {
		t.Parallel()
		s := "PLN"
		ptr := utils.Ptr(s)
		assert.NotNil(t, ptr)
		assert.Equal(t, s, *ptr)
	})

	t.Run("integer pointer", func(t *testing.T) {
		t.Parallel()
		i := 2024
		ptr := utils.Ptr(i)
		assert.NotNil(t, ptr)
		assert.Equal(t, i, *ptr)
	})
}
