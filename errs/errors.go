// Package errs defines the closed set of error kinds the bridge can return
// across its package boundaries, so callers can branch on errors.As instead
// of matching strings.
package errs

import (
	"errors"
	"fmt"
)

// Kind identifies the category of a bridge Error. The set is closed: every
// error that crosses a package boundary in this module is wrapped in one of
// these kinds before it reaches mcpserver/tools.
type Kind string

const (
	ConfigInvalid    Kind = "config_invalid"
	PathEscape       Kind = "path_escape"
	FileNotFound     Kind = "file_not_found"
	InvalidEncoding  Kind = "invalid_encoding"
	NoServerForFile  Kind = "no_server_for_file"
	HeuristicsReject Kind = "heuristics_reject"
	InitFailed       Kind = "init_failed"
	Timeout          Kind = "timeout"
	ServerTerminated Kind = "server_terminated"
	TransportFraming Kind = "transport_framing"
	OutOfRange       Kind = "out_of_range"
	Unsupported      Kind = "unsupported"
	PayloadTooLarge  Kind = "payload_too_large"
	LspError         Kind = "lsp_error"
	Internal         Kind = "internal"
)

// Error is the wrapped error type carried across package boundaries.
type Error struct {
	Kind Kind
	// Code and Message are only meaningful for Kind == LspError, carrying the
	// JSON-RPC error code and message returned by the downstream server.
	Code    int32
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Kind == LspError {
		if e.Err != nil {
			return fmt.Sprintf("lsp error %d: %s: %v", e.Code, e.Message, e.Err)
		}
		return fmt.Sprintf("lsp error %d: %s", e.Code, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes errors.Is(err, &Error{Kind: k}) report true for any *Error of
// kind k, whatever error it wraps.
func (e *Error) Is(target error) bool {
	var te *Error
	if errors.As(target, &te) {
		return e.Kind == te.Kind
	}
	return false
}

// New wraps err under kind. A nil err is allowed, producing a sentinel-style
// Error with no cause.
func New(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Newf wraps a formatted message under kind.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// FromLSP builds an Error for a JSON-RPC error response from a downstream
// LSP server.
func FromLSP(code int32, message string, cause error) *Error {
	return &Error{Kind: LspError, Code: code, Message: message, Err: cause}
}

// Of reports whether err (or something it wraps) is a *Error of the given
// Kind.
func Of(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
