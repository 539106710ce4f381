package service

import "errors"

var (
	// ErrBadInput matches every *BadInputError.
	ErrBadInput    = errors.New("bad input")
	ErrNotArchived = errors.New("original PDF not archived")
)

// BadInputError carries a message meant for the API caller.
type BadInputError struct {
	Msg string
}

func badInput(msg string) *BadInputError { return &BadInputError{Msg: msg} }

func (e *BadInputError) Error() string { return "bad input: " + e.Msg }

func (e *BadInputError) Is(target error) bool { return target == ErrBadInput }
