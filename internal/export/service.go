// Package export serializes the (possibly edited) extraction result.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/joseph-ayodele/idcard-extractor/constants"
	"github.com/joseph-ayodele/idcard-extractor/internal/entity"
	"github.com/joseph-ayodele/idcard-extractor/internal/results"
	"github.com/joseph-ayodele/idcard-extractor/internal/utils"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrClipboard         = errors.New("clipboard unavailable")
)

// Service renders, saves, prints and copies results.
type Service struct {
	runner  utils.Runner
	goos    string
	wayland bool
	logger  *slog.Logger
}

func NewService(r utils.Runner, logger *slog.Logger) *Service {
	if r == nil {
		r = utils.ExecRunner{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		runner:  r,
		goos:    runtime.GOOS,
		wayland: os.Getenv("WAYLAND_DISPLAY") != "",
		logger:  logger,
	}
}

// Formats lists what Render accepts.
func Formats() []string {
	return []string{constants.FormatJSON, constants.FormatCSV, constants.FormatXLSX, constants.FormatHTML}
}

// Render serializes the current fields of v in format.
func (s *Service) Render(format string, v results.View) ([]byte, error) {
	switch constants.NormalizeExt(format) {
	case constants.FormatJSON:
		return JSON(v.Current()), nil
	case constants.FormatCSV:
		return CSV(v.Current()), nil
	case constants.FormatXLSX:
		return XLSX(v, s.logger)
	case constants.FormatHTML:
		return HTML(v)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Save renders v and writes <documentType>_info.<format> into dir.
func (s *Service) Save(dir, format string, v results.View) (string, error) {
	data, err := s.Render(format, v)
	if err != nil {
		return "", err
	}
	p, err := WriteFile(dir, v.Type(), format, data)
	if err != nil {
		return "", err
	}
	s.logger.Info("export.save.ok", "format", format, "path", p, "bytes", len(data))
	return p, nil
}

// Print writes the HTML report and opens it with the host's default viewer,
// whose print dialog produces the PDF.
func (s *Service) Print(ctx context.Context, dir string, v results.View) (string, error) {
	p, err := s.Save(dir, constants.FormatHTML, v)
	if err != nil {
		return "", err
	}
	name, args := utils.OpenCommand(s.goos, p)
	if _, errb, err := s.runner.Run(ctx, name, args...); err != nil {
		return p, fmt.Errorf("open %s: %w (%s)", p, err, strings.TrimSpace(string(errb)))
	}
	return p, nil
}

// Copy puts the JSON serialization of rec on the system clipboard. Each known
// clipboard tool is tried in turn.
func (s *Service) Copy(ctx context.Context, rec entity.Record) error {
	start := time.Now()
	data := JSON(rec)

	var errs []error
	for _, cmd := range utils.ClipboardCommands(s.goos, s.wayland) {
		_, errb, err := s.runner.RunWithInput(ctx, data, cmd[0], cmd[1:]...)
		if err == nil {
			s.logger.Info("export.clipboard.ok", "cmd", cmd[0], "bytes", len(data), "elapsed_ms", time.Since(start).Milliseconds())
			return nil
		}
		errs = append(errs, fmt.Errorf("%s: %w (%s)", cmd[0], err, strings.TrimSpace(string(errb))))
	}
	s.logger.Warn("export.clipboard.failed", "tried", len(errs))
	return fmt.Errorf("%w: %w", ErrClipboard, errors.Join(errs...))
}
