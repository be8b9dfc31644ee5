// Package fopbridge holds the small response shapes shared by every bridge.
package fopbridge

import (
	"encoding/json"
	"net/http"
)

// CodeResponse provides a standard response with code and message
type CodeResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewCodeResponse(code, message string) CodeResponse {
	return CodeResponse{Code: code, Message: message}
}

func (c CodeResponse) Encode() ([]byte, string, error) {
	data, err := json.Marshal(c)
	return data, "application/json", err
}

// StatusResponse reports service health.
type StatusResponse struct {
	Status string `json:"status"`
	status int
}

func NewStatusResponse(status string, httpStatus int) StatusResponse {
	return StatusResponse{Status: status, status: httpStatus}
}

func (s StatusResponse) Encode() ([]byte, string, error) {
	data, err := json.Marshal(s)
	return data, "application/json", err
}

func (s StatusResponse) HTTPStatus() int {
	if s.status == 0 {
		return http.StatusOK
	}
	return s.status
}
