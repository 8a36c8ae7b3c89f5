package cnpj

import (
	"errors"
	"fmt"
)

// Kind classifies why a registry lookup failed.
type Kind string

const (
	// KindValidation means the identifier is malformed. It never triggers the fallback.
	KindValidation Kind = "validation"
	// KindNotFound means the registry has no office for the identifier.
	KindNotFound Kind = "not_found"
	// KindAuth means the API key was rejected or has expired.
	KindAuth Kind = "auth"
	// KindUpstream covers transport failures, unexpected statuses and undecodable payloads.
	KindUpstream Kind = "upstream"
)

// LookupError wraps a registry failure with its Kind and the source that produced it.
type LookupError struct {
	Kind    Kind
	Source  string
	Status  int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	prefix := "cnpj"
	if e.Source != "" {
		prefix = e.Source
	}
	msg := fmt.Sprintf("%s [%s]: %s", prefix, e.Kind, e.Message)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes the underlying cause.
func (e *LookupError) Unwrap() error {
	return e.Err
}

// Is matches any *LookupError of the same Kind, so the sentinels below work with errors.Is.
func (e *LookupError) Is(target error) bool {
	var t *LookupError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidCNPJ  = &LookupError{Kind: KindValidation, Message: "cnpj must have exactly 14 digits"}
	ErrNotFound     = &LookupError{Kind: KindNotFound, Message: "company not found"}
	ErrUnauthorized = &LookupError{Kind: KindAuth, Message: "api key invalid or expired"}
	ErrUpstream     = &LookupError{Kind: KindUpstream, Message: "registry unavailable"}
)

// KindOf extracts the Kind from err, defaulting to KindUpstream.
func KindOf(err error) Kind {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Kind
	}
	return KindUpstream
}

func newLookupError(kind Kind, source string, status int, message string, err error) *LookupError {
	return &LookupError{Kind: kind, Source: source, Status: status, Message: message, Err: err}
}
