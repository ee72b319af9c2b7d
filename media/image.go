package media

import (
	"log"
	"os"
	"strings"

	"github.com/ryanuber/go-glob"
)

type Format string

const (
	FormatJpeg Format = "jpeg"
	FormatPng  Format = "png"
)

// formatPatterns tags a path by case-insensitive substring match anywhere in
// the path, not just the extension. Ordering matters: the first match wins,
// so "png.jpg" is tagged jpeg.
var formatPatterns = []struct {
	pattern string
	format  Format
}{
	{"*jpg*", FormatJpeg},
	{"*jpeg*", FormatJpeg},
	{"*png*", FormatPng},
}

// Image is a local image payload, fully read into memory. There is no
// streaming: the guardrail API wants the raw bytes anyway.
type Image struct {
	Path   string
	Format Format
	Bytes  []byte
}

// Resolve loads the image at the given filesystem path. A missing file or an
// unsupported format is not an error - the caller is expected to proceed
// without the image - so Resolve logs a warning and returns (nil, nil).
// Read failures on a file that does exist are returned as errors.
func Resolve(path string) (*Image, error) {
	if _, err := os.Stat(path); err != nil {
		log.Printf("File does not exist: %s; proceeding without image", path)
		return nil, nil
	}

	format, ok := DetectFormat(path)
	if !ok {
		log.Printf("Image type of %s is not supported; proceeding without image", path)
		return nil, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return &Image{Path: path, Format: format, Bytes: b}, nil
}

// DetectFormat maps a path to the guardrail image format it appears to hold:
// jpg/jpeg paths are "jpeg", png paths are "png", anything else is
// unsupported.
func DetectFormat(path string) (Format, bool) {
	lowered := strings.ToLower(path)
	for _, fp := range formatPatterns {
		if glob.Glob(fp.pattern, lowered) {
			return fp.format, true
		}
	}
	return "", false
}
