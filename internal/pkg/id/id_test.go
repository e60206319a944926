package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_IsValidAndUnique(t *testing.T) {
	a, b := New(), New()
	assert.True(t, Valid(a))
	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
}

func TestValid_RejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "abc", "../etc/passwd", "01ARZ3NDEKTSV4RRFFQ69G5FA!"} {
		assert.False(t, Valid(s), s)
	}
}
