// Package apperr carries the typed failures the lifecycle services return
// to controllers. Controllers switch on Code(err) to pick a status code;
// nothing in the services branches on these beyond returning them.
package apperr

import "errors"

type Code string

const (
	CodeValidation        Code = "VALIDATION"
	CodeConflict          Code = "CONFLICT"
	CodeNotFound          Code = "NOT_FOUND"
	CodeIllegalTransition Code = "ILLEGAL_TRANSITION"
)

type Error struct {
	code Code
	msg  string

	// Conflicts holds the rentals or maintenance records that caused a
	// CONFLICT refusal, so the caller can show them and pick new dates.
	Conflicts any
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Code() Code    { return e.code }

func Validation(msg string) error { return &Error{code: CodeValidation, msg: msg} }

func NotFound(msg string) error { return &Error{code: CodeNotFound, msg: msg} }

func IllegalTransition(msg string) error { return &Error{code: CodeIllegalTransition, msg: msg} }

func Conflict(msg string, conflicts any) error {
	return &Error{code: CodeConflict, msg: msg, Conflicts: conflicts}
}

// GetCode extracts the error code, or "" for errors from elsewhere.
func GetCode(err error) Code {
	var ce interface{ Code() Code }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// ConflictsOf returns the conflicting records attached to a CONFLICT error,
// or nil.
func ConflictsOf(err error) any {
	var ae *Error
	if errors.As(err, &ae) && ae.code == CodeConflict {
		return ae.Conflicts
	}
	return nil
}
