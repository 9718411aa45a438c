// Package apperrors classifies the failures the lending core can report so
// controllers can translate them into a uniform client-error response.
package apperrors

import "errors"

type Kind int

const (
	KindUnknown Kind = iota
	// KindNotFound covers a missing entity and the empty page of a paginated
	// listing; callers treat both as "no data", not as a hard failure.
	KindNotFound
	// KindInvalidState means a state-machine precondition did not hold:
	// request already processed, loan already returned, book unavailable at
	// accept time.
	KindInvalidState
	// KindConflict covers duplicate pending requests and submitting against
	// an unavailable book.
	KindConflict
	KindUnauthorized
	// KindDataIntegrity flags referential inconsistency, e.g. a loan whose
	// book row cannot be resolved.
	KindDataIntegrity
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewNotFound(msg string) error      { return &Error{Kind: KindNotFound, Message: msg} }
func NewInvalidState(msg string) error  { return &Error{Kind: KindInvalidState, Message: msg} }
func NewConflict(msg string) error      { return &Error{Kind: KindConflict, Message: msg} }
func NewUnauthorized(msg string) error  { return &Error{Kind: KindUnauthorized, Message: msg} }
func NewDataIntegrity(msg string) error { return &Error{Kind: KindDataIntegrity, Message: msg} }

// KindOf reports the classification of err, or KindUnknown for errors that
// did not originate in this package.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
