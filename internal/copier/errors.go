package copier

import (
	"errors"
	"fmt"

	"github.com/mtlprog/sqlgallery/internal/domain"
)

// Kind tags the stage at which a fetch-and-copy failed.
type Kind string

const (
	KindNetwork   Kind = "network"
	KindStatus    Kind = "status"
	KindDecode    Kind = "decode"
	KindClipboard Kind = "clipboard"
)

// Outcome maps the kind to the recorded copy outcome.
func (k Kind) Outcome() domain.CopyOutcome {
	switch k {
	case KindNetwork:
		return domain.CopyOutcomeNetwork
	case KindStatus:
		return domain.CopyOutcomeStatus
	case KindDecode:
		return domain.CopyOutcomeDecode
	case KindClipboard:
		return domain.CopyOutcomeClipboard
	default:
		return domain.CopyOutcomeNetwork
	}
}

// Error is a tagged fetch-and-copy failure. It matches domain.ErrCopyFailed
// with errors.Is.
type Error struct {
	Kind       Kind
	URL        string
	StatusCode int // set for KindStatus
	Err        error
}

func (e *Error) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Kind, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %v", e.Kind, e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports domain.ErrCopyFailed as a match for every tagged error.
func (e *Error) Is(target error) bool {
	return target == domain.ErrCopyFailed
}

// AsError extracts a tagged error from err's chain.
func AsError(err error) (*Error, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
