package media

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path      string
		format    Format
		supported bool
	}{
		{"photo.jpg", FormatJpeg, true},
		{"photo.JPG", FormatJpeg, true},
		{"cancer.jpeg", FormatJpeg, true},
		{"Cancer.JPEG", FormatJpeg, true},
		{"pic.png", FormatPng, true},
		{"PIC.PNG", FormatPng, true},
		{"/tmp/jpg-exports/1", FormatJpeg, true}, // substring match, not extension match
		{"png.jpg", FormatJpeg, true},            // jpg wins over png
		{"chart.svg", "", false},
		{"notes.txt", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		format, ok := DetectFormat(c.path)
		assert.Equal(t, c.supported, ok, c.path)
		assert.Equal(t, c.format, format, c.path)
	}
}

func TestResolveMissingFile(t *testing.T) {
	t.Parallel()

	img, err := Resolve(filepath.Join(t.TempDir(), "photo.JPG"))
	assert.NoError(t, err)
	assert.Nil(t, img)
}

func TestResolveUnsupportedFormat(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "chart.svg")
	assert.NoError(t, os.WriteFile(path, []byte("<svg/>"), 0o600))

	img, err := Resolve(path)
	assert.NoError(t, err)
	assert.Nil(t, img)
}

func TestResolveReadsBytes(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pic.PNG")
	assert.NoError(t, os.WriteFile(path, []byte{0x89, 'P', 'N', 'G'}, 0o600))

	img, err := Resolve(path)
	assert.NoError(t, err)
	assert.NotNil(t, img)
	assert.Equal(t, FormatPng, img.Format)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, img.Bytes)
	assert.Equal(t, path, img.Path)
}
