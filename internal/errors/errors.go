package errors

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Kind classifies an error into the categories the HTTP layer knows how
// to report: bad input, missing entity, business-rule conflict, storage.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindStorage
)

// Error carries a classification plus a caller-facing message. The
// wrapped cause, if any, is for logs only and never reaches the client.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Storage(err error, format string, args ...any) *Error {
	return &Error{Kind: KindStorage, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the classification of err. Anything that is not an
// *Error is treated as a storage failure.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}

// MessageOf returns the caller-facing message of err, or a generic one
// for unclassified errors.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

// FromStorage classifies an error coming back from Postgres. Trigger
// raises (P0001) and integrity violations (class 23) surface business
// conflicts enforced by the schema, everything else is a storage fault.
// Only the engine's first error line is exposed to the caller.
func FromStorage(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return &Error{Kind: KindNotFound, Message: "record not found", Err: err}
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "P0001" || pqErr.Code.Class() == "23" {
			return &Error{Kind: KindConflict, Message: firstLine(pqErr.Message), Err: err}
		}
		return &Error{Kind: KindStorage, Message: "Database error: " + firstLine(pqErr.Message), Err: err}
	}
	return &Error{Kind: KindStorage, Message: "Database error: " + firstLine(err.Error()), Err: err}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
