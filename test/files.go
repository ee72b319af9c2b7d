package test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// MustWriteFile writes contents to dir/name and returns the full path.
func MustWriteFile(t *testing.T, dir string, name string, contents []byte) string {
	p := filepath.Join(dir, name)
	err := os.WriteFile(p, contents, 0o600)
	assert.NoError(t, err)
	return p
}

// TinyJpeg returns a few bytes that pass for a jpeg payload. Nothing in the
// pipeline decodes images, so the header alone is enough.
func TinyJpeg() []byte {
	return []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 0x4a, 0x46, 0x49, 0x46}
}

// TinyPng returns a few bytes that pass for a png payload.
func TinyPng() []byte {
	return []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
}
