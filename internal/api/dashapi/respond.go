package dashapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pkg/errors"

	"github.com/BearBump/CaseDesk/internal/integrations/gemini"
	"github.com/BearBump/CaseDesk/internal/integrations/track17"
	"github.com/BearBump/CaseDesk/internal/services/advisor"
	"github.com/BearBump/CaseDesk/internal/services/cases"
	"github.com/BearBump/CaseDesk/internal/storage/airbase"
)

// Единый конверт ответа: фронт различает исходы по success, не по коду.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respondOK(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "path", r.URL.Path, "error", err.Error())
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		// Внутренние детали наружу не уходят.
		msg = "internal error"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Error: msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, cases.ErrInvalidInput), errors.Is(err, advisor.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, airbase.ErrNotFound), errors.Is(err, track17.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, track17.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, track17.ErrAuth), errors.Is(err, gemini.ErrGeneration):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
