package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/idcard-extractor/constants"
	"github.com/joseph-ayodele/idcard-extractor/internal/common"
	"github.com/joseph-ayodele/idcard-extractor/internal/entity"
	"github.com/joseph-ayodele/idcard-extractor/internal/ingest"
)

var card = &ingest.File{Path: "/tmp/card.png", Name: "card.png", MIMEType: "image/png"}

func TestReject_LeavesStateUntouched(t *testing.T) {
	s := Select(Initial(constants.PANCard), card)
	s = PreviewReady(s, card, "data:image/png;base64,AA==")

	err := common.NewAppError(common.CodeInvalidFileType, common.MsgInvalidFileType, common.ErrInvalidFileType)
	next := Reject(s, err)
	require.Same(t, card, next.File)
	require.Equal(t, "data:image/png;base64,AA==", next.Preview)
	require.Equal(t, common.MsgInvalidFileType, next.Error)
}

func TestReject_OnEmptyState(t *testing.T) {
	err := common.NewAppError(common.CodeInvalidFileType, common.MsgInvalidFileType, common.ErrInvalidFileType)
	s := Reject(Initial(constants.PANCard), err)
	require.Nil(t, s.File)
	require.Equal(t, common.MsgInvalidFileType, s.Error)
}

func TestSelect_NilIsNoop(t *testing.T) {
	s := Initial(constants.AadhaarCard)
	s.Error = "previous"
	require.Equal(t, s, Select(s, nil))
}

func TestSelect_ResetsPreviousOutcome(t *testing.T) {
	s := Initial(constants.PANCard)
	s.Error = "blurry image"
	s.DecodeFailed = true
	s.Ticket = "old"

	next := Select(s, card)
	require.Empty(t, next.Error)
	require.False(t, next.DecodeFailed)
	require.Empty(t, next.Ticket)
	require.Equal(t, constants.PANCard, next.DocumentType)
	require.True(t, next.CanExtract())
}

func TestPreviewReady_IgnoresOtherFile(t *testing.T) {
	other := &ingest.File{Path: "/tmp/other.png"}
	s := Select(Initial(constants.PANCard), card)
	require.Empty(t, PreviewReady(s, other, "data:x").Preview)
}

func TestBeginExtract_RequiresFile(t *testing.T) {
	s, ticket, err := BeginExtract(Initial(constants.PANCard))
	require.ErrorIs(t, err, ErrNoFile)
	require.Empty(t, ticket)
	require.Equal(t, common.MsgNoFileSelected, s.Error)
}

func TestBeginExtract_DisabledWhileLoading(t *testing.T) {
	s, ticket, err := BeginExtract(Select(Initial(constants.PANCard), card))
	require.NoError(t, err)
	require.NotEmpty(t, ticket)
	require.True(t, s.Loading)
	require.False(t, s.CanExtract())

	_, _, err = BeginExtract(s)
	require.ErrorIs(t, err, ErrExtractDisabled)
}

func TestCompleteExtract_Success(t *testing.T) {
	s, ticket, err := BeginExtract(Select(Initial(constants.DrivingLicense), card))
	require.NoError(t, err)

	res := entity.ExtractionResult{Type: constants.DrivingLicense, Fields: entity.Record(`{"dlNumber":"MH0120130012345"}`)}
	s, ok := CompleteExtract(s, ticket, res, nil)
	require.True(t, ok)
	require.Equal(t, StageResults, s.Stage)
	require.False(t, s.Loading)
	require.NotNil(t, s.View)
	require.Equal(t, constants.DrivingLicense, s.View.Type())
}

func TestCompleteExtract_RejectedKeepsNoResult(t *testing.T) {
	s, ticket, _ := BeginExtract(Select(Initial(constants.PANCard), card))
	err := common.NewAppError(common.CodeRejected, "blurry image", common.ErrExtractionRejected)

	s, ok := CompleteExtract(s, ticket, entity.ExtractionResult{}, err)
	require.True(t, ok)
	require.Equal(t, "blurry image", s.Error)
	require.Nil(t, s.View)
	require.Equal(t, StageUpload, s.Stage)
	require.True(t, s.CanExtract())
}

func TestCompleteExtract_DecodeFailureDisablesExtract(t *testing.T) {
	s, ticket, _ := BeginExtract(Select(Initial(constants.PANCard), card))
	err := common.NewAppError(common.CodeDecodeFailure, common.MsgDecodeFailure, errors.New("read failed"))

	s, _ = CompleteExtract(s, ticket, entity.ExtractionResult{}, err)
	require.True(t, s.DecodeFailed)
	require.False(t, s.CanExtract())
	require.Equal(t, common.MsgDecodeFailure, s.Error)

	s = Select(s, card)
	require.True(t, s.CanExtract())
}

func TestCompleteExtract_DiscardsStaleTicket(t *testing.T) {
	s, ticket, _ := BeginExtract(Select(Initial(constants.PANCard), card))
	s = GoBack(s)

	res := entity.ExtractionResult{Type: constants.PANCard, Fields: entity.Record(`{"panNumber":"X"}`)}
	next, ok := CompleteExtract(s, ticket, res, nil)
	require.False(t, ok)
	require.Equal(t, s, next)
}

func TestGoBack_FullReset(t *testing.T) {
	s, ticket, _ := BeginExtract(Select(Initial(constants.AadhaarCard), card))
	s = PreviewReady(s, card, "data:x")
	s, _ = CompleteExtract(s, ticket, entity.ExtractionResult{Type: constants.AadhaarCard, Fields: entity.Record(`{"name":"A"}`)}, nil)
	s, err := StartEdit(s, "name")
	require.NoError(t, err)

	require.Equal(t, Initial(constants.AadhaarCard), GoBack(s))
}

func TestEditTransitions(t *testing.T) {
	s, ticket, _ := BeginExtract(Select(Initial(constants.PANCard), card))
	s, _ = CompleteExtract(s, ticket, entity.ExtractionResult{Type: constants.PANCard, Fields: entity.Record(`{"panNumber":"X"}`)}, nil)

	s, err := StartEdit(s, "panNumber")
	require.NoError(t, err)
	s, err = Change(s, "ABCDE1234F")
	require.NoError(t, err)
	s, err = CloseEdit(s, "escape")
	require.NoError(t, err)
	require.JSONEq(t, `{"panNumber":"ABCDE1234F"}`, s.View.Current().String())

	s, err = Revert(s)
	require.NoError(t, err)
	require.JSONEq(t, `{"panNumber":"X"}`, s.View.Current().String())
}

func TestEditTransitions_NoResult(t *testing.T) {
	_, err := StartEdit(Initial(constants.PANCard), "panNumber")
	require.ErrorIs(t, err, ErrNoResult)
}

func TestSelectDocumentType(t *testing.T) {
	s, err := SelectDocumentType(Initial(constants.PANCard), constants.AadhaarCard)
	require.NoError(t, err)
	require.Equal(t, constants.AadhaarCard, s.DocumentType)

	_, err = SelectDocumentType(s, "passport")
	require.ErrorIs(t, err, common.ErrInvalidInput)
}
