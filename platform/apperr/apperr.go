// Package apperr holds the failure categories services hand back to the
// HTTP layer. httpkit.HandleError turns the Kind into a status code and the
// Message into the response body; anything that is not an *Error becomes a
// 500 with a generic message.
package apperr

import (
	"errors"
	"net/http"
)

// Kind is the category of a failure.
type Kind uint8

const (
	KindUnknown Kind = iota
	// KindNotFound: the lead or interaction does not exist.
	KindNotFound
	// KindValidation: the request parsed but its values are unusable.
	KindValidation
	// KindConflict: the request collides with work already in progress,
	// such as a queued duplicate cleanup.
	KindConflict
	// KindInternal: our own code or storage failed.
	KindInternal
	// KindUnavailable: an optional dependency (Redis, the job queue) is not
	// configured or not reachable.
	KindUnavailable
	// KindUpstream: the language model provider failed.
	KindUpstream
)

var statusByKind = map[Kind]int{
	KindNotFound:    http.StatusNotFound,
	KindValidation:  http.StatusBadRequest,
	KindConflict:    http.StatusConflict,
	KindInternal:    http.StatusInternalServerError,
	KindUnavailable: http.StatusServiceUnavailable,
	KindUpstream:    http.StatusBadGateway,
}

// Error is a categorised failure. Message is safe to show to clients; the
// wrapped cause is only ever logged.
type Error struct {
	Kind    Kind
	Message string
	Details any
	cause   error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.cause.Error()
}

func (e *Error) Unwrap() error {
	return e.cause
}

// HTTPStatus is the response code for the error's Kind. Unknown kinds map
// to 500.
func (e *Error) HTTPStatus() int {
	if status, ok := statusByKind[e.Kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Internal hides cause behind message.
func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, cause: cause}
}

func Unavailable(message string) *Error {
	return &Error{Kind: KindUnavailable, Message: message}
}

// Upstream reports a provider failure; cause keeps the provider's error for
// logs.
func Upstream(message string, cause error) *Error {
	return &Error{Kind: KindUpstream, Message: message, cause: cause}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries an *Error of the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
