package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return resp
}

func TestRenderError(t *testing.T) {
	rec := httptest.NewRecorder()
	RenderError(rec, http.StatusBadRequest, errors.New("invalid stack"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != contentTypeJSON {
		t.Errorf("Expected JSON content type, got %s", ct)
	}

	resp := decode(t, rec)
	if resp.Success {
		t.Error("Expected success to be false")
	}
	if resp.Error != "invalid stack" {
		t.Errorf("Expected error 'invalid stack', got %s", resp.Error)
	}
	if resp.Code != "bad_request" {
		t.Errorf("Expected code bad_request, got %s", resp.Code)
	}
}

func TestRenderErrorUsesError(t *testing.T) {
	rec := httptest.NewRecorder()
	err := fmt.Errorf("loading: %w", NewError(http.StatusNotFound, CodeSlotNotFound, errors.New("nothing saved in demo")))
	RenderError(rec, http.StatusInternalServerError, err)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
	resp := decode(t, rec)
	if resp.Code != CodeSlotNotFound {
		t.Errorf("Expected code slot_not_found, got %s", resp.Code)
	}
	if resp.Error != "loading: nothing saved in demo" {
		t.Errorf("Unexpected message %q", resp.Error)
	}
}

func TestNewErrorDerivesCode(t *testing.T) {
	err := NewError(http.StatusRequestEntityTooLarge, "", errors.New("too big"))
	if err.Code != "request_too_large" {
		t.Errorf("Expected code request_too_large, got %s", err.Code)
	}
	if err.Error() != "too big" {
		t.Errorf("Unexpected message %q", err.Error())
	}
	if !errors.Is(err, err.Err) {
		t.Error("Expected Unwrap to expose the cause")
	}
}

func TestRenderHelpers(t *testing.T) {
	tests := []struct {
		name   string
		render func(w http.ResponseWriter)
		status int
		code   string
	}{
		{"bad request", func(w http.ResponseWriter) { RenderError(w, http.StatusBadRequest, errors.New("nope")) }, http.StatusBadRequest, "bad_request"},
		{"not found", func(w http.ResponseWriter) { RenderNotFound(w, "") }, http.StatusNotFound, "not_found"},
		{"rate limited", func(w http.ResponseWriter) { RenderError(w, http.StatusTooManyRequests, errors.New("slow")) }, http.StatusTooManyRequests, "rate_limited"},
		{"internal", func(w http.ResponseWriter) { RenderInternalError(w, nil) }, http.StatusInternalServerError, "internal_error"},
		{"unavailable", func(w http.ResponseWriter) { RenderServiceUnavailable(w, "") }, http.StatusServiceUnavailable, "service_unavailable"},
		{"teapot", func(w http.ResponseWriter) { RenderError(w, http.StatusTeapot, errors.New("tea")) }, http.StatusTeapot, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.render(rec)
			if rec.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, rec.Code)
			}
			resp := decode(t, rec)
			if resp.Code != tt.code {
				t.Errorf("Expected code %s, got %s", tt.code, resp.Code)
			}
			if resp.Error == "" {
				t.Error("Expected a non-empty error message")
			}
		})
	}
}

func TestRenderOK(t *testing.T) {
	rec := httptest.NewRecorder()
	RenderOK(rec, map[string]bool{"success": true})

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if rec.Body.String() != "{\"success\":true}\n" {
		t.Errorf("Unexpected body %q", rec.Body.String())
	}
}

func TestStatusText(t *testing.T) {
	if got := StatusText(http.StatusNotFound); got != "404 Not Found" {
		t.Errorf("Expected '404 Not Found', got %s", got)
	}
}
