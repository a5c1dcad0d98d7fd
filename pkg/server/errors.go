package server

import (
	"encoding/json"
	"net/http"
	"strings"

	errs "github.com/matzehuels/labyrinth/pkg/errors"
)

type errorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

func errorBody(code, message string) errorResponse {
	return errorResponse{Error: errorDetail{Code: code, Message: message}}
}

func errNotFound(path string) error {
	return errs.New(errs.ErrCodeNotFound, "no route for %s", path)
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errs.Code) int {
	switch {
	case strings.HasPrefix(string(code), "INVALID_"), code == errs.ErrCodeOutOfBounds:
		return http.StatusBadRequest
	case code == errs.ErrCodeNotFound, code == errs.ErrCodeFileNotFound:
		return http.StatusNotFound
	case code == errs.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case code == errs.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case code == errs.ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	status := statusFor(code)

	msg := errs.UserMessage(err)
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}

	body := errorBody(string(code), msg)
	body.Error.RequestID = RequestID(r.Context())
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
