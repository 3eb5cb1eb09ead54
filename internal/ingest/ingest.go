// Package ingest accepts a user-chosen image, validates that it is an image
// and turns it into the data URL preview and base64 payload sent for extraction.
package ingest

import (
	"context"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/joseph-ayodele/idcard-extractor/constants"
	"github.com/joseph-ayodele/idcard-extractor/internal/common"
	"github.com/joseph-ayodele/idcard-extractor/internal/utils"
)

// Candidate is one file offered by a picker or a drop. DeclaredType is the
// content type reported by the source; empty means detect it.
type Candidate struct {
	Path         string
	DeclaredType string
}

// Source is a picker selection or a drop; only the first file is used.
type Source struct {
	Files []Candidate
	Drop  bool
}

// PickerSource wraps paths chosen in a file picker.
func PickerSource(paths ...string) Source {
	return Source{Files: candidates(paths)}
}

// DropSource wraps paths dropped onto the upload area.
func DropSource(paths ...string) Source {
	return Source{Files: candidates(paths), Drop: true}
}

func candidates(paths []string) []Candidate {
	out := make([]Candidate, 0, len(paths))
	for _, p := range paths {
		out = append(out, Candidate{Path: p})
	}
	return out
}

// File is an accepted image.
type File struct {
	Path     string
	Name     string
	MIMEType string
	Size     int64
}

// Config controls size limits and HEIC handling.
type Config struct {
	MaxImageMB    int
	ConvertHEIC   bool
	HeicConverter string
}

// Ingestor validates selections and encodes accepted images.
type Ingestor struct {
	cfg    Config
	runner utils.Runner
}

func NewIngestor(cfg Config, r utils.Runner) *Ingestor {
	if cfg.MaxImageMB <= 0 {
		cfg.MaxImageMB = constants.MaxImageMBDefault
	}
	if r == nil {
		r = utils.ExecRunner{}
	}
	return &Ingestor{cfg: cfg, runner: r}
}

// NewIngestorFromConfig builds an Ingestor from application config.
func NewIngestorFromConfig(c common.IngestConfig) *Ingestor {
	return NewIngestor(Config{
		MaxImageMB:    c.MaxImageMB,
		ConvertHEIC:   c.ConvertHEIC,
		HeicConverter: c.HeicConverter,
	}, utils.ExecRunner{})
}

// SelectFile takes the first file of src. It returns (nil, nil) when src holds
// no file, and an InvalidFileType error when the file is not an acceptable image.
func (i *Ingestor) SelectFile(ctx context.Context, src Source) (*File, error) {
	if len(src.Files) == 0 || strings.TrimSpace(src.Files[0].Path) == "" {
		return nil, nil
	}
	c := src.Files[0]

	abs, err := filepath.Abs(c.Path)
	if err != nil {
		return nil, common.NewAppError(common.CodeDecodeFailure, common.MsgDecodeFailure, err)
	}
	st, err := os.Stat(abs)
	if err != nil || st.IsDir() {
		if err == nil {
			err = common.ErrInvalidFileType
		}
		slog.WarnContext(ctx, "ingest.select.unreadable", "path", abs, "error", err)
		return nil, common.NewAppError(common.CodeInvalidFileType, common.MsgInvalidFileType, err)
	}

	mt := c.DeclaredType
	if strings.TrimSpace(mt) == "" {
		mt = DetectMIME(abs)
	}
	if !constants.IsImageMIME(mt) {
		slog.InfoContext(ctx, "ingest.select.rejected", "path", abs, "mime", mt)
		return nil, common.NewAppError(common.CodeInvalidFileType, common.MsgInvalidFileType, common.ErrInvalidFileType)
	}
	if st.Size() > int64(i.cfg.MaxImageMB)*1024*1024 {
		slog.InfoContext(ctx, "ingest.select.too_large", "path", abs, "bytes", st.Size(), "max_mb", i.cfg.MaxImageMB)
		return nil, common.NewAppError(common.CodeInvalidFileType, common.MsgInvalidFileType, common.ErrInvalidFileType)
	}

	f := &File{Path: abs, Name: filepath.Base(abs), MIMEType: baseMIME(mt), Size: st.Size()}
	slog.DebugContext(ctx, "ingest.select.ok", "path", abs, "mime", f.MIMEType, "bytes", f.Size, "drop", src.Drop)
	return f, nil
}

// DetectMIME declares a content type from the extension, sniffing the bytes
// when the extension is unknown.
func DetectMIME(path string) string {
	ext := filepath.Ext(path)
	if mt := mime.TypeByExtension(strings.ToLower(ext)); mt != "" {
		return mt
	}
	if mt, ok := constants.ImageExtensions[constants.NormalizeExt(ext)]; ok {
		return mt
	}
	return sniff(path)
}

func sniff(path string) string {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return "application/octet-stream"
	}
	return mt.String()
}

// baseMIME drops parameters such as "; charset=utf-8".
func baseMIME(mt string) string {
	if parsed, _, err := mime.ParseMediaType(mt); err == nil {
		return parsed
	}
	return strings.TrimSpace(mt)
}
