package pipeline

import (
	"errors"
	"net/http"

	"github.com/aristath/productpulse/internal/modules/prediction"
)

// ErrorKind classifies a failed pipeline run
type ErrorKind string

const (
	KindMalformedInput        ErrorKind = "malformed_input"
	KindClassifierUnavailable ErrorKind = "classifier_unavailable"
	KindFetcherUnavailable    ErrorKind = "fetcher_unavailable"
	KindFetchFailed           ErrorKind = "fetch_failed"
	KindInternal              ErrorKind = "internal"
)

var (
	// ErrMalformedInput is returned for invalid product metadata or an empty observation list
	ErrMalformedInput = errors.New("malformed input")

	// ErrClassifierUnavailable aliases the prediction error so callers need only this package
	ErrClassifierUnavailable = prediction.ErrClassifierUnavailable

	// ErrFetcherUnavailable is returned by Search when no listing fetcher is configured
	ErrFetcherUnavailable = errors.New("listing fetcher not configured")
)

// Error is a failed run with its kind
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// KindOf returns the kind of err, or KindInternal for errors not raised by the pipeline
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindInternal
}

// StatusCode maps err to the HTTP status reported to API clients
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindMalformedInput:
		return http.StatusBadRequest
	case KindClassifierUnavailable, KindFetcherUnavailable:
		return http.StatusServiceUnavailable
	case KindFetchFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
