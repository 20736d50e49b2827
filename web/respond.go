package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quillhq/writeflow/service"
	"go.uber.org/zap"
)

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeData wraps list and detail payloads in the {"data": ...}
// envelope.
func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{"data": data})
}

// writeSuccess is the mutation envelope: {"success": true} plus the
// operation's result under "data" when there is one.
func writeSuccess(w http.ResponseWriter, data any) {
	body := map[string]any{"success": true}
	if data != nil {
		body["data"] = data
	}
	writeJSON(w, http.StatusOK, body)
}

// writeError maps the service error taxonomy onto HTTP statuses. The
// not-found-or-forbidden conflation stays intact: both cases are 404.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: validationErr.Message, Field: validationErr.Field})
	case errors.Is(err, service.ErrSelfFollow):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, service.ErrNotFoundOrForbidden):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	default:
		logger.Error("Request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return false
	}
	return true
}
