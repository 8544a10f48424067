// internal/app/system/httpjson/httpjson.go

// Package httpjson holds the JSON response helpers shared by the API
// feature handlers. Error payloads use a "detail" field, which is the
// shape the bundled frontend expects.
package httpjson

import (
	"encoding/json"
	"net/http"
)

// Write serializes v as JSON with the given status code.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a {"detail": …} payload with the given status code.
func Error(w http.ResponseWriter, status int, detail string) {
	Write(w, status, map[string]string{"detail": detail})
}

// Decode parses the request body into dst. Unknown fields are tolerated;
// malformed JSON is not.
func Decode(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
