// Package errs provides the error type returned across the HTTP boundary.
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
)

// ErrCode is a transport independent error category.
type ErrCode struct {
	value string
	name  string
}

// Value returns the wire form of the code.
func (ec ErrCode) Value() string {
	return ec.value
}

func (ec ErrCode) String() string {
	return ec.name
}

var (
	InvalidArgument = ErrCode{value: "invalid_argument", name: "InvalidArgument"}
	Unauthenticated = ErrCode{value: "unauthenticated", name: "Unauthenticated"}
	NotFound        = ErrCode{value: "not_found", name: "NotFound"}
	Internal        = ErrCode{value: "internal", name: "Internal"}

	// InternalOnlyLog is reported to clients as Internal with a generic
	// message. The original message is only logged.
	InternalOnlyLog = ErrCode{value: "internal_only_log", name: "InternalOnlyLog"}
)

var httpStatus = map[ErrCode]int{
	InvalidArgument: http.StatusBadRequest,
	Unauthenticated: http.StatusUnauthorized,
	NotFound:        http.StatusNotFound,
	Internal:        http.StatusInternalServerError,
	InternalOnlyLog: http.StatusInternalServerError,
}

// Error represents an error in the system.
type Error struct {
	Code     ErrCode `json:"-"`
	Message  string  `json:"message"`
	FuncName string  `json:"-"`
	FileName string  `json:"-"`
}

// New constructs an error based on an app error.
func New(code ErrCode, err error) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		Message:  err.Error(),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// Newf constructs an error based on an error message.
func Newf(code ErrCode, format string, v ...any) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		Message:  fmt.Sprintf(format, v...),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Encode implements the web encoder interface.
func (e *Error) Encode() ([]byte, string, error) {
	data, err := json.Marshal(struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    e.Code.Value(),
		Message: e.Message,
	})
	return data, "application/json", err
}

// HTTPStatus implements the web package httpStatus interface so the
// web framework can use the correct http status.
func (e *Error) HTTPStatus() int {
	if status, ok := httpStatus[e.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsError tests the concrete error is of the Error type.
func IsError(err error) bool {
	var er *Error
	return errors.As(err, &er)
}

// GetError returns a copy of the Error pointer.
func GetError(err error) *Error {
	var er *Error
	if !errors.As(err, &er) {
		return nil
	}
	return er
}
