package handler

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/tasktrack/tasktrack-go/internal/model"
	"github.com/tasktrack/tasktrack-go/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeSuccess renders the success envelope.
func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, model.SuccessEnvelope(message, data))
}

// writeError renders the error envelope.
func writeError(w http.ResponseWriter, status int, message string, errs ...any) {
	writeJSON(w, status, model.ErrorEnvelope(message, errs...))
}

// writeValidationError renders per-field validation failures as an error
// envelope with one detail object per field, in stable field order.
func writeValidationError(w http.ResponseWriter, message string, fields service.FieldErrors) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	errs := make([]any, 0, len(names))
	for _, name := range names {
		errs = append(errs, map[string]string{"field": name, "message": fields[name]})
	}

	writeError(w, http.StatusBadRequest, message, errs...)
}
