package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/idcard-extractor/constants"
)

func newFieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields [document-type]",
		Short: "List the fields shown for each document type",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			types := constants.DocumentTypes()
			if len(args) == 1 {
				dt, ok := constants.Canonicalize(args[0])
				if !ok {
					return fmt.Errorf("unknown document type %q", args[0])
				}
				types = []constants.DocumentType{dt}
			}
			out := cmd.OutOrStdout()
			for i, dt := range types {
				if i > 0 {
					fmt.Fprintln(out)
				}
				renderFields(out, dt)
			}
			return nil
		},
	}
}
