package web

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body for failures raised inside the framework itself.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	status  int
}

func NewError(status int, msg string) ErrorResponse {
	return ErrorResponse{
		Code:    http.StatusText(status),
		Message: msg,
		status:  status,
	}
}

func (e ErrorResponse) Error() string {
	return e.Message
}

func (e ErrorResponse) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json", err
}

func (e ErrorResponse) HTTPStatus() int {
	if e.status == 0 {
		return http.StatusInternalServerError
	}
	return e.status
}
