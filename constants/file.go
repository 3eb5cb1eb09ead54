package constants

import "strings"

// ImageMIMEPrefix is the prefix every accepted upload's content type must carry.
const ImageMIMEPrefix = "image/"

// MaxImageMBDefault caps the size of an uploaded image.
const MaxImageMBDefault = 10

// ImageExtensions maps the image extensions we recognise to their content type.
// mime.TypeByExtension is consulted first; this table covers hosts without a mime database.
var ImageExtensions = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"webp": "image/webp",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"heic": "image/heic",
	"heif": "image/heif",
}

// Export formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatHTML = "html"
)

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsHEICExt reports whether ext (with or without dot) is a HEIC/HEIF container.
func IsHEICExt(ext string) bool {
	switch NormalizeExt(ext) {
	case "heic", "heif", "heics", "heifs":
		return true
	}
	return false
}

// IsImageMIME reports whether a declared content type is an image type.
func IsImageMIME(mimeType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mimeType)), ImageMIMEPrefix)
}
