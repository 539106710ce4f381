package ingest

import (
	"errors"
	"unicode/utf8"
)

var (
	// ErrFetch matches every *FetchError.
	ErrFetch  = errors.New("fetch pdf")
	ErrNoText = errors.New("could not extract text from PDF")
)

const maxReasonLength = 200

// FetchError reports a failed download or an unparseable PDF. Reason is
// capped at 200 characters so upstream error pages don't leak into responses.
type FetchError struct {
	Reason string
}

func newFetchError(err error) *FetchError {
	reason := err.Error()
	if utf8.RuneCountInString(reason) > maxReasonLength {
		reason = string([]rune(reason)[:maxReasonLength])
	}
	return &FetchError{Reason: reason}
}

func (e *FetchError) Error() string { return "fetch pdf: " + e.Reason }

func (e *FetchError) Is(target error) bool { return target == ErrFetch }
