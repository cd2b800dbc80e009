package handler

import (
	"encoding/json"
	"net/http"

	"github.com/quickbite/kiosk/internal/apperr"
	"github.com/quickbite/kiosk/internal/logx"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logx.Error().Err(err).Msg("encode JSON response")
	}
}

// writeError maps err onto the error envelope. Unclassified errors are
// logged and hidden behind a generic message.
func writeError(w http.ResponseWriter, err error, action string) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logx.Error().Err(err).Msg(action)
		writeJSON(w, status, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Validation("invalid request body")
	}
	return nil
}
