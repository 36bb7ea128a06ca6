package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"record-service/internal/models"
	"record-service/internal/telemetry"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("JSON encode error", "error", err)
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}

// writeError maps NotFound to 404, ErrInvalid to 422 and everything else to
// 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var nf *models.NotFoundError
	if errors.As(err, &nf) {
		writeDetail(w, http.StatusNotFound, nf.Detail())
		return
	}
	if errors.Is(err, models.ErrInvalid) {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	slog.Error("Request failed",
		"request_id", telemetry.RequestID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
}

// decodeBody reports a 422 and returns false when the body is not a JSON
// object that decodes into v. Fields absent from the object keep their zero
// value.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '{' {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body: expected a JSON object")
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

// pathInt reports a 422 and returns false when the named path value is not an
// integer.
func pathInt(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.PathValue(name)
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, fmt.Sprintf("%s must be an integer, got %q", name, raw))
		return 0, false
	}
	return n, true
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
