package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/idcard-extractor/constants"
	"github.com/joseph-ayodele/idcard-extractor/internal/client"
	"github.com/joseph-ayodele/idcard-extractor/internal/common"
	"github.com/joseph-ayodele/idcard-extractor/internal/export"
	"github.com/joseph-ayodele/idcard-extractor/internal/ingest"
	"github.com/joseph-ayodele/idcard-extractor/internal/results"
	"github.com/joseph-ayodele/idcard-extractor/internal/session"
)

type extractOptions struct {
	docType string
	apiURL  string
	outDir  string
	formats []string
	edits   []string
	revert  bool
	copy    bool
	print   bool
}

func newExtractCmd(root *rootOptions) *cobra.Command {
	opts := &extractOptions{}
	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Send an image to the extraction backend and show the fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runExtract(ctx, cmd, root, opts, args[0])
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.docType, "type", "t", string(constants.DrivingLicense),
		"document type: "+strings.Join(constants.AsStringSlice(), ", "))
	f.StringVar(&opts.apiURL, "api", "", "extraction backend base URL (overrides EXTRACTOR_API_URL)")
	f.StringVarP(&opts.outDir, "out", "o", ".", "directory for exported files")
	f.StringSliceVarP(&opts.formats, "format", "f", nil, "export formats: "+strings.Join(export.Formats(), ", "))
	f.StringArrayVar(&opts.edits, "set", nil, "edit a field before exporting, as path=value (repeatable)")
	f.BoolVar(&opts.revert, "revert", false, "discard edits and export the extracted values")
	f.BoolVar(&opts.copy, "copy", false, "copy the JSON result to the clipboard")
	f.BoolVar(&opts.print, "print", false, "open a printable report")
	return cmd
}

func runExtract(ctx context.Context, cmd *cobra.Command, root *rootOptions, opts *extractOptions, path string) error {
	logger := newLogger(root.verbose)

	cfg, err := common.LoadConfig(root.configPath)
	if err != nil {
		return err
	}
	if opts.apiURL != "" {
		cfg.Client.BaseURL = opts.apiURL
	}
	if err := cfg.ValidateClient(); err != nil {
		return err
	}
	dt, ok := constants.Canonicalize(opts.docType)
	if !ok {
		return fmt.Errorf("unknown document type %q", opts.docType)
	}

	cl := client.NewFromConfig(cfg, logger)
	logger.InfoContext(ctx, "idextract.extract", "api", cl.BaseURL(), "card_type", dt, "file", path)

	ctrl := session.NewController(ingest.NewIngestorFromConfig(cfg.Ingest), cl, dt, logger)

	done, err := ctrl.Select(ctx, ingest.PickerSource(path))
	if err != nil {
		return errors.New(common.UserMessage(err))
	}
	if done == nil {
		return errors.New(common.MsgNoFileSelected)
	}
	<-done

	state, err := ctrl.Extract(ctx)
	if err != nil {
		return errors.New(common.UserMessage(err))
	}

	for _, e := range opts.edits {
		if state, err = applyEdit(ctrl, e); err != nil {
			return err
		}
	}
	if opts.revert {
		if state, err = ctrl.Revert(); err != nil {
			return err
		}
	}
	if state.View == nil {
		return errors.New(common.MsgEmptyResult)
	}
	view := *state.View

	out := cmd.OutOrStdout()
	renderView(out, view)

	svc := export.NewService(nil, logger)
	for _, format := range opts.formats {
		p, err := svc.Save(opts.outDir, format, view)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "saved %s\n", p)
	}
	if opts.copy {
		if err := svc.Copy(ctx, view.Current()); err != nil {
			return err
		}
		fmt.Fprintln(out, "copied to clipboard")
	}
	if opts.print {
		p, err := svc.Print(ctx, opts.outDir, view)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "opened %s\n", p)
	}
	return nil
}

// applyEdit runs one full edit cycle for a path=value pair.
func applyEdit(ctrl *session.Controller, kv string) (session.State, error) {
	path, value, ok := strings.Cut(kv, "=")
	if !ok || strings.TrimSpace(path) == "" {
		return session.State{}, fmt.Errorf("invalid --set %q, expected path=value", kv)
	}
	if _, err := ctrl.StartEdit(strings.TrimSpace(path)); err != nil {
		return session.State{}, fmt.Errorf("edit %s: %w", path, err)
	}
	if _, err := ctrl.Change(value); err != nil {
		return session.State{}, fmt.Errorf("edit %s: %w", path, err)
	}
	return ctrl.CloseEdit(results.CloseEnter)
}
