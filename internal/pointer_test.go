package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointer(t *testing.T) {
	val := "some text"
	ptr := Pointer(val)
	assert.NotNil(t, ptr)
	assert.Equal(t, val, *ptr)
}

func TestDereference(t *testing.T) {
	// returns value when not-nil
	val := 42
	ptr := Pointer(val)
	assert.Equal(t, val, Dereference(ptr))

	// returns zero value when nil
	ptr = nil
	assert.Equal(t, 0, Dereference(ptr))

	// strings are the common case for us
	assert.Equal(t, "", Dereference[string](nil))
}
