package server

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/matzehuels/apexkit/pkg/errors"
	"github.com/matzehuels/apexkit/pkg/observability"
)

// ErrorBody is the payload of every error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail names the error code and a message safe to show to users.
type ErrorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// StatusCode maps an error code to an HTTP status.
func StatusCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeNotFound, errors.ErrCodeChartNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidOption,
		errors.ErrCodeInvalidRefresh,
		errors.ErrCodeSeriesMismatch,
		errors.ErrCodeInvalidName,
		errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errNotFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, `{"error":{"code":"INTERNAL_ERROR","message":"encode response"}}`, http.StatusInternalServerError)
		return
	}
	writeRaw(w, status, "application/json", data)
}

func writeRaw(w http.ResponseWriter, status int, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError reports err as a JSON error body. Internal errors are logged
// in full and shown to the client without detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := StatusCode(code)
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "id", RequestID(r.Context()), "path", r.URL.Path, "err", err)
		msg = "internal error"
	}
	observability.HTTP().OnError(r.Context(), r.Method, routePattern(r), err)
	writeJSON(w, status, ErrorBody{Error: ErrorDetail{Code: code, Message: msg}})
}
