package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindValidation       ErrorKind = "validation"
	KindStoreUnavailable ErrorKind = "store_unavailable"
	KindAIProvider       ErrorKind = "ai_provider"
	KindMalformedAI      ErrorKind = "malformed_ai_response"
)

// ErrNotFound is returned by single-row lookups with no match.
var ErrNotFound = errors.New("not found")

// Error carries a kind so callers can decide between surfacing the failure
// and degrading to the keyword fallback.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func NewError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func ValidationError(message string) *Error {
	return NewError(KindValidation, message, nil)
}

func StoreUnavailable(message string, err error) *Error {
	return NewError(KindStoreUnavailable, message, err)
}

func AIProviderError(message string, err error) *Error {
	return NewError(KindAIProvider, message, err)
}

func MalformedAIResponse(message string, err error) *Error {
	return NewError(KindMalformedAI, message, err)
}

// IsKind reports whether any error in err's chain is a *Error of kind.
func IsKind(err error, kind ErrorKind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}
