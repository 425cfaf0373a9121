package services

import "fmt"

// Expected outcomes are typed so controllers can map each to the right
// HTTP status. None of these are retried by the core.

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

func NewConflictError(format string, args ...interface{}) error {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

func NewNotFoundError(format string, args ...interface{}) error {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// PreconditionError covers "previous stage incomplete" and "unit still
// needs setup" style denials.
type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string { return e.Msg }

func NewPreconditionError(format string, args ...interface{}) error {
	return &PreconditionError{Msg: fmt.Sprintf(format, args...)}
}

// TimingNotElapsedError carries the countdown values for display.
type TimingNotElapsedError struct {
	Step             string
	RemainingSeconds int
	MinimumMinutes   int
}

func (e *TimingNotElapsedError) Error() string {
	return fmt.Sprintf("minimum dwell time for %s not elapsed, %d seconds remaining", e.Step, e.RemainingSeconds)
}

// GenerationExhaustedError aborts unit creation entirely; the caller
// must not fall back to unverified codes.
type GenerationExhaustedError struct {
	Rounds int
}

func (e *GenerationExhaustedError) Error() string {
	return fmt.Sprintf("unique code generation exhausted after %d rounds", e.Rounds)
}

type InternalError struct {
	Msg string
	Err error
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *InternalError) Unwrap() error { return e.Err }

func NewInternalError(msg string, err error) error {
	return &InternalError{Msg: msg, Err: err}
}
