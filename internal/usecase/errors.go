package usecase

import (
	"errors"
	"fmt"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrExtraction          = errors.New("extraction failed")
	ErrService             = errors.New("ai service failed")
	ErrExportPrecondition  = errors.New("export precondition failed")
	ErrCapture             = errors.New("capture failed")
	ErrEnhancementInFlight = errors.New("enhancement already in progress")
	ErrNotFound            = errors.New("not found")
)

// User-facing messages.
const (
	MsgInvalidPDF         = "Please upload a valid PDF file."
	MsgLowText            = "Could not extract text from this PDF. It might be a scanned image or password protected. Please try a different file."
	MsgEmptyAIResponse    = "AI response was empty."
	MsgEmptyDescription   = "Please enter a description to enhance."
	MsgEnhanceFailed      = "Failed to enhance the description. Please try again."
	MsgEnhanceInFlight    = "This description is already being enhanced."
	MsgMissingBoth        = "Please upload a profile photo and the institute logo before downloading."
	MsgMissingPhoto       = "Please upload a profile photo before downloading."
	MsgMissingLogo        = "Please upload the institute logo before downloading."
	MsgNoPanels           = "There is no content to download as a PDF."
	MsgCaptureFailed      = "Could not generate PDF. Please try again."
	MsgNoCropRegion       = "Please select a crop area."
	MsgUnsupportedImage   = "Please upload a PNG, JPEG or GIF image."
	msgImportFailedPrefix = "Failed to process resume: "
)

// OperationError carries the message shown to the user next to the error
// kind used for status mapping.
type OperationError struct {
	Op      string
	Kind    error
	Message string
	Err     error
}

func (e *OperationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
}

func (e *OperationError) Unwrap() error { return e.Err }

func (e *OperationError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

func opError(op string, kind error, msg string, err error) error {
	return &OperationError{Op: op, Kind: kind, Message: msg, Err: err}
}

// UserMessage returns the message to surface for err.
func UserMessage(err error) string {
	var oe *OperationError
	if errors.As(err, &oe) && oe.Message != "" {
		return oe.Message
	}
	return err.Error()
}

// editError maps model and lookup failures onto the operation taxonomy.
func editError(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return opError(op, ErrNotFound, "Session not found.", err)
	case errors.Is(err, model.ErrItemNotFound):
		return opError(op, ErrNotFound, "Item not found.", err)
	case errors.Is(err, model.ErrUnknownSection), errors.Is(err, model.ErrUnknownField), errors.Is(err, model.ErrDuplicateID):
		return opError(op, ErrInvalidInput, err.Error(), err)
	}
	return err
}
