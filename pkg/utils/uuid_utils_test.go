package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenerateUUIDv7(t *testing.T) {
	a := GenerateUUIDv7()
	b := GenerateUUIDv7()
	assert.NotEqual(t, uuid.Nil, a)
	assert.NotEqual(t, a, b)
	assert.Equal(t, uuid.Version(7), a.Version())
}
