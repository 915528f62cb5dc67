package gamification

import "fmt"

// Code is a stable identifier for a persistence failure
type Code string

const (
	CodeLoadFailed            Code = "load_failed"
	CodeStreakSaveFailed      Code = "streak_save_failed"
	CodeCompletionsSaveFailed Code = "completions_save_failed"
	CodeClearFailed           Code = "clear_failed"
)

// Error is returned when the engine could not read its state before a
// write, or could not write to its store
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by code, so errors.Is(err, &Error{Code: ...}) works
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// ParseError reports stored data that could not be decoded
type ParseError struct {
	Key string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
