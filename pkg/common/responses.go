// Package common holds small HTTP helpers shared by the REST handlers.
package common

import (
	"encoding/json"
	"net/http"
)

// RespondJSON writes data as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondMessage writes a {"message": ...} body, optionally merged with
// extra fields, matching the flat response shapes of the API.
func RespondMessage(w http.ResponseWriter, status int, message string, extra map[string]interface{}) {
	body := map[string]interface{}{"message": message}
	for k, v := range extra {
		body[k] = v
	}
	RespondJSON(w, status, body)
}

// ParseJSONBody parses a JSON request body with a size limit. Unknown
// fields are tolerated so older clients keep working.
func ParseJSONBody(r *http.Request, v interface{}, maxBytes int64) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)
	return json.NewDecoder(r.Body).Decode(v)
}
