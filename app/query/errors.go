package query

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies query execution failures
type ErrorKind string

const (
	KindConnection ErrorKind = "connection"
	KindSyntax     ErrorKind = "syntax"
	KindTimeout    ErrorKind = "timeout"
	KindCanceled   ErrorKind = "canceled"
)

// Sentinel errors matched with errors.Is against a *QueryError
var (
	ErrConnection = errors.New("query: connection failed")
	ErrSyntax     = errors.New("query: syntax error")
	ErrTimeout    = errors.New("query: timed out")
	ErrCanceled   = errors.New("query: canceled")
)

// QueryError reports a failed execution of one query text
type QueryError struct {
	Kind  ErrorKind
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("query %s error", e.Kind)
	}
	return fmt.Sprintf("query %s error: %v", e.Kind, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error of the same kind
func (e *QueryError) Is(target error) bool {
	switch target {
	case ErrConnection:
		return e.Kind == KindConnection
	case ErrSyntax:
		return e.Kind == KindSyntax
	case ErrTimeout:
		return e.Kind == KindTimeout
	case ErrCanceled:
		return e.Kind == KindCanceled
	}
	return false
}

// NewQueryError builds a QueryError of the given kind
func NewQueryError(kind ErrorKind, text string, err error) *QueryError {
	return &QueryError{Kind: kind, Query: text, Err: err}
}

// FromContext converts a done context's error into a QueryError
func FromContext(text string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return NewQueryError(KindTimeout, text, err)
	case errors.Is(err, context.Canceled):
		return NewQueryError(KindCanceled, text, err)
	}
	return err
}

// KindOf returns the ErrorKind of err, or "" when err is not a QueryError
func KindOf(err error) ErrorKind {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Kind
	}
	return ""
}
