package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/idcard-extractor/internal/utils"
)

// Supported HEIC converters.
const (
	ConverterHeifConvert = "heif-convert"
	ConverterMagick      = "magick"
	ConverterSips        = "sips"
)

// convertHEICtoPNG converts a HEIC/HEIF file to a temporary PNG.
// Call cleanup() to remove the temp dir; it is never nil when err is nil.
func convertHEICtoPNG(ctx context.Context, r utils.Runner, converter, in string) (string, func(), error) {
	tmpDir, err := os.MkdirTemp("", "idx-heic-*")
	if err != nil {
		return "", func() {}, err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }
	out := filepath.Join(tmpDir, "image.png")

	var args []string
	switch converter {
	case ConverterHeifConvert, ConverterMagick:
		args = []string{in, out}
	case ConverterSips:
		args = []string{"-s", "format", "png", in, "--out", out}
	default:
		return "", cleanup, fmt.Errorf("HEIC not supported: set HEIC_CONVERTER to one of: heif-convert | magick | sips")
	}
	if _, errb, err := r.Run(ctx, converter, args...); err != nil {
		return "", cleanup, fmt.Errorf("%s failed: %w (%s)", converter, err, strings.TrimSpace(string(errb)))
	}

	if _, statErr := os.Stat(out); statErr != nil {
		return "", cleanup, fmt.Errorf("HEIC conversion produced no output: %w", statErr)
	}
	return out, cleanup, nil
}
