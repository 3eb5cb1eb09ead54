package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joseph-ayodele/idcard-extractor/constants"
)

// Filename is the artifact name for dt, e.g. "pan_card_info.csv".
func Filename(dt constants.DocumentType, ext string) string {
	return fmt.Sprintf("%s_info.%s", dt, constants.NormalizeExt(ext))
}

// WriteFile writes data to dir/Filename(dt, ext) and returns the path.
func WriteFile(dir string, dt constants.DocumentType, ext string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	p := filepath.Join(dir, Filename(dt, ext))
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", p, err)
	}
	return p, nil
}
