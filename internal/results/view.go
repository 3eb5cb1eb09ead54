// Package results renders an extraction result against the document schema
// and holds the local, edit-in-place copy of its fields.
package results

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/joseph-ayodele/idcard-extractor/constants"
	"github.com/joseph-ayodele/idcard-extractor/internal/entity"
	"github.com/joseph-ayodele/idcard-extractor/internal/schema"
)

var (
	ErrNotEditing   = errors.New("no field is being edited")
	ErrUnknownField = errors.New("field is not part of this document")
)

// CloseTrigger is what ended an edit. All triggers behave the same.
type CloseTrigger string

const (
	CloseBlur   CloseTrigger = "blur"
	CloseEnter  CloseTrigger = "enter"
	CloseEscape CloseTrigger = "escape"
)

// View is the results screen state. Every method returns a new View; the
// original result is never modified.
type View struct {
	original entity.ExtractionResult
	current  entity.Record
	editing  string
}

// NewView starts a view over res.
func NewView(res entity.ExtractionResult) View {
	res = res.Clone()
	return View{original: res, current: res.Fields.Clone()}
}

func (v View) Type() constants.DocumentType {
	return v.original.Type
}

// Current returns a copy of the possibly edited fields.
func (v View) Current() entity.Record {
	return v.current.Clone()
}

// Result returns the edited fields tagged with the document type.
func (v View) Result() entity.ExtractionResult {
	return entity.ExtractionResult{Type: v.original.Type, Fields: v.current.Clone()}
}

// Original returns the result as received.
func (v View) Original() entity.ExtractionResult {
	return v.original.Clone()
}

// Editing is the path of the field being edited, or "".
func (v View) Editing() string {
	return v.editing
}

// Edited reports whether the current copy differs from the original.
func (v View) Edited() bool {
	return !bytes.Equal(v.current, v.original.Fields)
}

// StartEdit puts path into editing; any other editing field is closed first.
func (v View) StartEdit(path string) (View, error) {
	if _, ok := schema.Lookup(v.original.Type, path); !ok {
		return v, fmt.Errorf("%w: %s", ErrUnknownField, path)
	}
	v.editing = path
	return v, nil
}

// Change writes text to the field being edited. Changes apply immediately.
func (v View) Change(text string) (View, error) {
	if v.editing == "" {
		return v, ErrNotEditing
	}
	set := schema.SetField
	if fd, ok := schema.Lookup(v.original.Type, v.editing); ok && fd.Multi {
		set = schema.SetListField
	}
	rec, err := set(v.current, v.editing, text)
	if err != nil {
		return v, err
	}
	v.current = rec
	return v, nil
}

// Close ends editing. It is idempotent and never discards changes.
func (v View) Close(CloseTrigger) View {
	v.editing = ""
	return v
}

// Edit is StartEdit, Change and Close in one step.
func (v View) Edit(path, text string) (View, error) {
	v, err := v.StartEdit(path)
	if err != nil {
		return v, err
	}
	if v, err = v.Change(text); err != nil {
		return v, err
	}
	return v.Close(CloseEnter), nil
}

// Revert drops every edit.
func (v View) Revert() View {
	v.current = v.original.Fields.Clone()
	v.editing = ""
	return v
}

// Row is one rendered field.
type Row struct {
	Section   string
	Label     string
	Path      string
	Value     schema.Value
	Text      string // display text; NotDetected when missing
	// Indicator follows the backend's valid flag; an edited value keeps the
	// flag it was extracted with.
	Indicator constants.Indicator
	Hint      string // format hint shown with an invalid value
	Editing   bool
}

// Section is a titled group of rows.
type Section struct {
	Title string
	Rows  []Row
}

// Sections walks the registry for the document type against the current copy.
func (v View) Sections() []Section {
	descs := schema.SectionsFor(v.original.Type)
	out := make([]Section, 0, len(descs))
	for _, sd := range descs {
		sec := Section{Title: sd.Title, Rows: make([]Row, 0, len(sd.Fields))}
		for _, fd := range sd.Fields {
			sec.Rows = append(sec.Rows, v.row(sd.Title, fd))
		}
		out = append(out, sec)
	}
	return out
}

// Rows is Sections flattened in display order.
func (v View) Rows() []Row {
	var out []Row
	for _, s := range v.Sections() {
		out = append(out, s.Rows...)
	}
	return out
}

func (v View) row(section string, fd schema.FieldDescriptor) Row {
	val := schema.GetField(v.current, fd.Key)
	r := Row{
		Section:   section,
		Label:     fd.Label,
		Path:      fd.Key,
		Value:     val,
		Text:      val.Text,
		Indicator: IndicatorFor(val),
		Editing:   v.editing == fd.Key,
	}
	if val.Empty() {
		r.Text = constants.NotDetected
	}
	if r.Indicator == constants.IndicatorInvalid {
		r.Hint = fd.FormatHint
	}
	return r
}
