package core

import (
	"errors"
	"fmt"
	"os"
)

// Error codes shared by all packages of this module.
const (
	NOERROR   int = 0
	EMISSING  int = 122 // font or glyph resource does not exist
	EINVALID  int = 123 // malformed input, e.g. a truncated HEX stream
	EINTERNAL int = 125 // I/O failure or broken invariant
)

var codeTexts = map[int]string{
	NOERROR:   "OK",
	EMISSING:  "not found",
	EINVALID:  "invalid",
	EINTERNAL: "internal error",
}

func errorText(ecode int) string {
	if t, ok := codeTexts[ecode]; ok {
		return t
	}
	return "undefined error"
}

// AppError is an error carrying a numeric code and a message suitable for
// end users.
type AppError interface {
	error
	ErrorCode() int
	UserMessage() string
}

type codedError struct {
	cause error
	code  int
	msg   string
}

var _ AppError = codedError{}

func (e codedError) Error() string {
	if e.msg == "" || e.msg == e.cause.Error() {
		return fmt.Sprintf("[%d] %v", e.code, e.cause)
	}
	return fmt.Sprintf("[%d] %s: %v", e.code, e.msg, e.cause)
}

func (e codedError) Unwrap() error       { return e.cause }
func (e codedError) ErrorCode() int      { return e.code }
func (e codedError) UserMessage() string { return e.msg }

// Error creates an error with code and a formatted user message.
func Error(code int, format string, v ...interface{}) error {
	return codedError{
		cause: errors.New(errorText(code)),
		code:  code,
		msg:   fmt.Sprintf(format, v...),
	}
}

// ErrorWithCode attaches code to err. A nil err is replaced by the code's
// standard text, so the result is never nil.
func ErrorWithCode(err error, code int) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	return codedError{cause: err, code: code, msg: errorText(code)}
}

// WrapError wraps err together with code and a formatted user message.
func WrapError(err error, code int, format string, v ...interface{}) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	return codedError{cause: err, code: code, msg: fmt.Sprintf(format, v...)}
}

// Code extracts the error code from err's chain. Errors without a code
// report EINTERNAL, nil reports NOERROR.
func Code(err error) int {
	if err == nil {
		return NOERROR
	}
	var e AppError
	if errors.As(err, &e) {
		return e.ErrorCode()
	}
	return EINTERNAL
}

// UserMessage returns the user message found in err's chain, falling back to
// the text of its code.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e AppError
	if errors.As(err, &e) {
		return e.UserMessage()
	}
	return errorText(Code(err))
}

// UserError prints err to stderr in a user-friendly format.
func UserError(err error) {
	var e AppError
	if errors.As(err, &e) {
		fmt.Fprintf(os.Stderr, "[%d] %s\n", e.ErrorCode(), e.UserMessage())
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
}
