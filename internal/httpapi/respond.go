package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeMsg writes the {"message": ...} envelope the dashboard expects.
func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeDBErr logs the storage error and hides it behind a generic 500.
func writeDBErr(w http.ResponseWriter, r *http.Request, err error) {
	log.Error().Err(err).
		Str("path", r.URL.Path).
		Str("request_id", requestIDFrom(r.Context())).
		Msg("database error")
	writeMsg(w, http.StatusInternalServerError, "Database error")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// pathID parses the {id}-style path value; 0,false when missing or not
// a number.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		writeMsg(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}
