package photos

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"

	// registers the webp decoder with image.Decode
	_ "golang.org/x/image/webp"
)

// dimensions decodes data and returns its displayed size, honouring the EXIF
// orientation tag.
func dimensions(data []byte) (int, int, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return 0, 0, fmt.Errorf("decode image: %w", err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), nil
}

// detectMIME returns the declared type, or sniffs it from the content.
func detectMIME(declared string, data []byte) string {
	if declared != "" {
		return declared
	}
	return mimetype.Detect(data).String()
}

// extension returns the lowercase extension of name without the dot, falling
// back to the one registered for mimeType.
func extension(name, mimeType string) string {
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), "."); ext != "" {
		return ext
	}
	if m := mimetype.Lookup(mimeType); m != nil {
		if ext := strings.TrimPrefix(m.Extension(), "."); ext != "" {
			return ext
		}
	}
	return "bin"
}

func isImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}
