package ingest

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vincent-petithory/dataurl"

	"github.com/joseph-ayodele/idcard-extractor/constants"
	"github.com/joseph-ayodele/idcard-extractor/internal/common"
)

// PreviewResult is delivered once the preview has been decoded.
type PreviewResult struct {
	File    *File
	DataURL string
	Err     error
}

// DataURL reads f and returns it as data:<mime>;base64,<payload> along with
// the content type actually encoded (PNG after HEIC conversion).
func (i *Ingestor) DataURL(ctx context.Context, f *File) (string, string, error) {
	if f == nil {
		return "", "", common.NewAppError(common.CodeDecodeFailure, common.MsgNoFileSelected, common.ErrInvalidInput)
	}
	start := time.Now()

	path, mt := f.Path, f.MIMEType
	if i.cfg.ConvertHEIC && isHEIC(f) {
		out, cleanup, err := convertHEICtoPNG(ctx, i.runner, i.cfg.HeicConverter, f.Path)
		defer cleanup()
		if err != nil {
			slog.ErrorContext(ctx, "ingest.heic.failed", "path", f.Path, "error", err)
			return "", "", common.NewAppError(common.CodeDecodeFailure, common.MsgDecodeFailure, err)
		}
		path, mt = out, "image/png"
	}

	b, err := os.ReadFile(path)
	if err != nil {
		slog.ErrorContext(ctx, "ingest.read.failed", "path", path, "error", err)
		return "", "", common.NewAppError(common.CodeDecodeFailure, common.MsgDecodeFailure, err)
	}
	u := dataurl.New(b, mt).String()
	slog.DebugContext(ctx, "ingest.encode.ok", "path", path, "mime", mt, "bytes", len(b), "elapsed_ms", time.Since(start).Milliseconds())
	return u, mt, nil
}

// ToBase64Payload returns the base64 payload (the data URL after its first
// comma) and the content type it encodes.
func (i *Ingestor) ToBase64Payload(ctx context.Context, f *File) (string, string, error) {
	u, mt, err := i.DataURL(ctx, f)
	if err != nil {
		return "", "", err
	}
	return StripDataURLPrefix(u), mt, nil
}

// Preview decodes f in the background. The channel receives exactly one value.
func (i *Ingestor) Preview(ctx context.Context, f *File) <-chan PreviewResult {
	ch := make(chan PreviewResult, 1)
	go func() {
		defer close(ch)
		u, _, err := i.DataURL(ctx, f)
		ch <- PreviewResult{File: f, DataURL: u, Err: err}
	}()
	return ch
}

// StripDataURLPrefix returns the substring after the first comma; input
// without a comma is returned unchanged.
func StripDataURLPrefix(u string) string {
	if _, payload, ok := strings.Cut(u, ","); ok {
		return payload
	}
	return u
}

func isHEIC(f *File) bool {
	switch f.MIMEType {
	case "image/heic", "image/heif":
		return true
	}
	return constants.IsHEICExt(filepath.Ext(f.Path))
}
