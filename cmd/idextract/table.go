package main

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/joseph-ayodele/idcard-extractor/constants"
	"github.com/joseph-ayodele/idcard-extractor/internal/results"
	"github.com/joseph-ayodele/idcard-extractor/internal/schema"
)

var indicatorMarks = map[constants.Indicator]string{
	constants.IndicatorValid:   "✓",
	constants.IndicatorInvalid: "✗",
	constants.IndicatorMissing: "-",
	constants.IndicatorUnknown: "?",
}

func renderView(w io.Writer, v results.View) {
	title := v.Type().DisplayName() + " Information"
	if v.Edited() {
		title += " (edited)"
	}
	fmt.Fprintln(w, title)

	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"Section", "Field", "Value", "", "Expected"})
	t.SetAutoWrapText(false)
	t.SetAutoMergeCells(true)
	t.SetRowLine(false)
	for _, r := range v.Rows() {
		t.Append([]string{r.Section, r.Label, r.Text, indicatorMarks[r.Indicator], r.Hint})
	}
	t.Render()
}

func renderFields(w io.Writer, dt constants.DocumentType) {
	fmt.Fprintf(w, "%s (%s, response key %q)\n", dt.DisplayName(), dt, dt.ResponseKey())

	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"Section", "Path", "Label", "Format"})
	t.SetAutoWrapText(false)
	t.SetAutoMergeCells(true)
	for _, s := range schema.SectionsFor(dt) {
		for _, f := range s.Fields {
			path := f.Key
			if f.Multi {
				path += "[]"
			}
			t.Append([]string{s.Title, path, f.Label, f.FormatHint})
		}
	}
	t.Render()
}
