// Package response renders JSON envelopes for the preview API.
package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
)

const contentTypeJSON = "application/json; charset=utf-8"

// Error codes that are not derived from a status.
const (
	CodeInvalidStack = "invalid_stack"
	CodeRateLimited  = "rate_limited"
	CodeSlotNotFound = "slot_not_found"
)

var statusCodes = map[int]string{
	http.StatusBadRequest:            "bad_request",
	http.StatusNotFound:              "not_found",
	http.StatusMethodNotAllowed:      "method_not_allowed",
	http.StatusRequestTimeout:        "request_timeout",
	http.StatusRequestEntityTooLarge: "request_too_large",
	http.StatusTooManyRequests:       CodeRateLimited,
	http.StatusInternalServerError:   "internal_error",
	http.StatusServiceUnavailable:    "service_unavailable",
	http.StatusGatewayTimeout:        "gateway_timeout",
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// Error carries the status and code it should be rendered with.
type Error struct {
	Status int
	Code   string
	Err    error
}

// NewError wraps err. An empty code is derived from status.
func NewError(status int, code string, err error) *Error {
	if code == "" {
		code = codeFor(status)
	}
	return &Error{Status: status, Code: code, Err: err}
}

func (e *Error) Error() string { return message(e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// RenderJSON writes v with the given status.
func RenderJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// RenderOK writes v with status 200.
func RenderOK(w http.ResponseWriter, v interface{}) {
	RenderJSON(w, http.StatusOK, v)
}

// RenderError writes the error envelope. When err wraps an *Error its
// status and code win over statusCode.
func RenderError(w http.ResponseWriter, statusCode int, err error) {
	var e *Error
	if errors.As(err, &e) {
		RenderErrorWithCode(w, e.Status, err, e.Code)
		return
	}
	RenderErrorWithCode(w, statusCode, err, "")
}

// RenderErrorWithCode writes the error envelope with an explicit code.
func RenderErrorWithCode(w http.ResponseWriter, statusCode int, err error, code string) {
	if code == "" {
		code = codeFor(statusCode)
	}
	RenderJSON(w, statusCode, &ErrorResponse{
		Success: false,
		Error:   message(err),
		Code:    code,
	})
}

// RenderNotFound renders a 404.
func RenderNotFound(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "Resource not found"
	}
	RenderError(w, http.StatusNotFound, errors.New(msg))
}

// RenderInternalError renders a 500.
func RenderInternalError(w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("Internal server error")
	}
	RenderError(w, http.StatusInternalServerError, err)
}

// RenderServiceUnavailable renders a 503.
func RenderServiceUnavailable(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "Service temporarily unavailable"
	}
	RenderError(w, http.StatusServiceUnavailable, errors.New(msg))
}

func message(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

func codeFor(status int) string {
	if code, ok := statusCodes[status]; ok {
		return code
	}
	return "error"
}

// StatusText renders a status code as "404 Not Found".
func StatusText(code int) string {
	return strconv.Itoa(code) + " " + http.StatusText(code)
}
