// Package session holds the upload/results screen state as one record and
// the transitions between its values.
package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/idcard-extractor/constants"
	"github.com/joseph-ayodele/idcard-extractor/internal/common"
	"github.com/joseph-ayodele/idcard-extractor/internal/entity"
	"github.com/joseph-ayodele/idcard-extractor/internal/ingest"
	"github.com/joseph-ayodele/idcard-extractor/internal/results"
)

var (
	ErrNoFile          = errors.New("no file selected")
	ErrExtractDisabled = errors.New("extraction is not available")
	ErrNoResult        = errors.New("no extraction result")
	ErrStaleResponse   = errors.New("response belongs to a superseded request")
)

type Stage string

const (
	StageUpload  Stage = "upload"
	StageResults Stage = "results"
)

// State is everything the screen shows. Transitions never modify their input.
type State struct {
	Stage        Stage
	DocumentType constants.DocumentType
	File         *ingest.File
	Preview      string // data URL once decoded
	Loading      bool
	Error        string
	DecodeFailed bool   // extraction stays disabled until another file is chosen
	Ticket       string // id of the outstanding extraction
	View         *results.View
}

// Initial is the empty upload screen for dt.
func Initial(dt constants.DocumentType) State {
	if !dt.Valid() {
		dt = constants.DrivingLicense
	}
	return State{Stage: StageUpload, DocumentType: dt}
}

// CanExtract reports whether the extract control is enabled.
func (s State) CanExtract() bool {
	return s.File != nil && !s.Loading && !s.DecodeFailed
}

// SelectDocumentType changes the card type sent with the next extraction.
func SelectDocumentType(s State, dt constants.DocumentType) (State, error) {
	if !dt.Valid() {
		return s, fmt.Errorf("%w: unsupported document type %q", common.ErrInvalidInput, dt)
	}
	s.DocumentType = dt
	return s, nil
}

// Select stores an accepted file and clears the previous error, preview and
// result. Any outstanding request is orphaned. A nil file changes nothing.
func Select(s State, f *ingest.File) State {
	if f == nil {
		return s
	}
	return State{
		Stage:        StageUpload,
		DocumentType: s.DocumentType,
		File:         f,
	}
}

// Reject records a refused selection. Everything else is left as it was.
func Reject(s State, err error) State {
	s.Error = common.UserMessage(err)
	return s
}

// PreviewReady applies a decoded preview if f is still the selected file.
func PreviewReady(s State, f *ingest.File, dataURL string) State {
	if s.File == nil || s.File != f {
		return s
	}
	s.Preview = dataURL
	return s
}

// BeginExtract marks a request as outstanding and returns its ticket.
func BeginExtract(s State) (State, string, error) {
	if s.File == nil {
		s.Error = common.MsgNoFileSelected
		return s, "", ErrNoFile
	}
	if !s.CanExtract() {
		return s, "", ErrExtractDisabled
	}
	ticket := uuid.New().String()
	s.Loading = true
	s.Error = ""
	s.Ticket = ticket
	return s, ticket, nil
}

// CompleteExtract applies the outcome of the request identified by ticket.
// Outcomes of any other request are discarded and reported as not applied.
func CompleteExtract(s State, ticket string, res entity.ExtractionResult, err error) (State, bool) {
	if ticket == "" || s.Ticket != ticket {
		return s, false
	}
	s.Loading = false
	s.Ticket = ""
	if err != nil {
		s.Error = common.UserMessage(err)
		if errors.Is(err, common.ErrDecodeFailure) {
			s.DecodeFailed = true
		}
		return s, true
	}
	v := results.NewView(res)
	s.View = &v
	s.Stage = StageResults
	s.Error = ""
	return s, true
}

// GoBack returns to an empty upload screen. Only the card type is kept.
func GoBack(s State) State {
	return Initial(s.DocumentType)
}

func withView(s State, fn func(results.View) (results.View, error)) (State, error) {
	if s.View == nil {
		return s, ErrNoResult
	}
	v, err := fn(*s.View)
	if err != nil {
		return s, err
	}
	s.View = &v
	return s, nil
}

func StartEdit(s State, path string) (State, error) {
	return withView(s, func(v results.View) (results.View, error) { return v.StartEdit(path) })
}

func Change(s State, text string) (State, error) {
	return withView(s, func(v results.View) (results.View, error) { return v.Change(text) })
}

func CloseEdit(s State, trigger results.CloseTrigger) (State, error) {
	return withView(s, func(v results.View) (results.View, error) { return v.Close(trigger), nil })
}

func Revert(s State) (State, error) {
	return withView(s, func(v results.View) (results.View, error) { return v.Revert(), nil })
}
