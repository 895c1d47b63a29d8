package photos

import (
	"path/filepath"
	"strings"
)

// Accepted image content types. Anything else is rejected outright.
const (
	ContentTypePNG  = "image/png"
	ContentTypeJPEG = "image/jpeg"
)

// ImageExtensions lists the candidate extensions in probe order.
var ImageExtensions = []string{".png", ".jpg"}

// ContentTypeForExt maps an image file extension to its content type, or ""
// for anything that is not an accepted image extension.
func ContentTypeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return ContentTypePNG
	case ".jpg", ".jpeg":
		return ContentTypeJPEG
	default:
		return ""
	}
}

// ItemNameFromFilename derives the deck item name from an image filename:
// the extension is dropped and trailing digits are folded away, so cat.png,
// cat1.png and cat2.jpg all belong to item "cat".
func ItemNameFromFilename(filename string) string {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	return strings.TrimRight(name, "0123456789")
}
