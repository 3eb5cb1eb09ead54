package session

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/idcard-extractor/constants"
	"github.com/joseph-ayodele/idcard-extractor/internal/common"
	"github.com/joseph-ayodele/idcard-extractor/internal/entity"
	"github.com/joseph-ayodele/idcard-extractor/internal/ingest"
)

type fakeExtractor struct {
	started chan entity.ExtractionRequest
	release chan struct{}
	result  entity.ExtractionResult
	err     error
}

func (f *fakeExtractor) Extract(_ context.Context, req entity.ExtractionRequest) (entity.ExtractionResult, error) {
	if f.started != nil {
		f.started <- req
	}
	if f.release != nil {
		<-f.release
	}
	return f.result, f.err
}

func pngFile(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "card.png")
	require.NoError(t, os.WriteFile(p, []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, 0o600))
	return p
}

func newController(ext *fakeExtractor, dt constants.DocumentType) *Controller {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewController(ingest.NewIngestor(ingest.Config{}, nil), ext, dt, logger)
}

func TestController_SelectAndExtract(t *testing.T) {
	ext := &fakeExtractor{result: entity.ExtractionResult{
		Type:   constants.DrivingLicense,
		Fields: entity.Record(`{"dlNumber":"MH0120130012345"}`),
	}}
	c := newController(ext, constants.DrivingLicense)

	done, err := c.Select(context.Background(), ingest.PickerSource(pngFile(t)))
	require.NoError(t, err)
	<-done
	require.Contains(t, c.State().Preview, "data:image/png;base64,")

	s, err := c.Extract(context.Background())
	require.NoError(t, err)
	require.Equal(t, StageResults, s.Stage)

	rows := s.View.Rows()
	require.Equal(t, "DL Number", rows[1].Label)
	require.Equal(t, "MH0120130012345", rows[1].Text)
	require.Equal(t, constants.IndicatorUnknown, rows[1].Indicator)
}

func TestController_RejectsTextFile(t *testing.T) {
	c := newController(&fakeExtractor{}, constants.PANCard)
	p := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(p, []byte("hi"), 0o600))

	done, err := c.Select(context.Background(), ingest.PickerSource(p))
	require.Nil(t, done)
	require.ErrorIs(t, err, common.ErrInvalidFileType)

	s := c.State()
	require.Nil(t, s.File)
	require.Equal(t, common.MsgInvalidFileType, s.Error)
}

func TestController_RejectedExtraction(t *testing.T) {
	ext := &fakeExtractor{err: common.NewAppError(common.CodeRejected, "blurry image", common.ErrExtractionRejected)}
	c := newController(ext, constants.PANCard)
	_, err := c.Select(context.Background(), ingest.PickerSource(pngFile(t)))
	require.NoError(t, err)

	s, err := c.Extract(context.Background())
	require.Error(t, err)
	require.Equal(t, "blurry image", s.Error)
	require.Nil(t, s.View)
}

func TestController_GoBackDiscardsLateResponse(t *testing.T) {
	ext := &fakeExtractor{
		started: make(chan entity.ExtractionRequest, 1),
		release: make(chan struct{}),
		result:  entity.ExtractionResult{Type: constants.PANCard, Fields: entity.Record(`{"panNumber":"X"}`)},
	}
	c := newController(ext, constants.PANCard)
	_, err := c.Select(context.Background(), ingest.PickerSource(pngFile(t)))
	require.NoError(t, err)

	type outcome struct {
		s   State
		err error
	}
	out := make(chan outcome, 1)
	go func() {
		s, err := c.Extract(context.Background())
		out <- outcome{s, err}
	}()

	req := <-ext.started
	require.Equal(t, constants.PANCard, req.DocumentType)
	require.Equal(t, "image/png", req.MimeType)

	c.GoBack()
	close(ext.release)

	got := <-out
	require.ErrorIs(t, got.err, ErrStaleResponse)
	require.Equal(t, Initial(constants.PANCard), c.State())
}

func TestController_DecodeFailure(t *testing.T) {
	c := newController(&fakeExtractor{}, constants.PANCard)
	p := pngFile(t)
	done, err := c.Select(context.Background(), ingest.PickerSource(p))
	require.NoError(t, err)
	<-done
	require.NoError(t, os.Remove(p))

	s, err := c.Extract(context.Background())
	require.ErrorIs(t, err, common.ErrDecodeFailure)
	require.True(t, s.DecodeFailed)
	require.False(t, s.CanExtract())

	_, err = c.Extract(context.Background())
	require.ErrorIs(t, err, ErrExtractDisabled)
}

func TestController_EditFlow(t *testing.T) {
	ext := &fakeExtractor{result: entity.ExtractionResult{Type: constants.PANCard, Fields: entity.Record(`{"panNumber":"X"}`)}}
	c := newController(ext, constants.PANCard)
	_, err := c.Select(context.Background(), ingest.PickerSource(pngFile(t)))
	require.NoError(t, err)
	_, err = c.Extract(context.Background())
	require.NoError(t, err)

	_, err = c.StartEdit("fatherName")
	require.NoError(t, err)
	_, err = c.Change("Suresh")
	require.NoError(t, err)
	s, err := c.CloseEdit("blur")
	require.NoError(t, err)
	require.JSONEq(t, `{"panNumber":"X","fatherName":"Suresh"}`, s.View.Current().String())

	s, err = c.Revert()
	require.NoError(t, err)
	require.JSONEq(t, `{"panNumber":"X"}`, s.View.Current().String())
}
