// internal/app/system/httpjson/httpjson.go

// Package httpjson holds the small response helpers every JSON handler
// uses: write a payload with a status code, or write the standard
// {"message": ...} error body.
package httpjson

import (
	"encoding/json"
	"net/http"
)

// Write encodes v as JSON with the given status code.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the error envelope all endpoints share.
type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error writes the standard error envelope.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, errorBody{Code: status, Message: msg})
}

// Decode reads the request body into v. Unknown fields are ignored.
func Decode(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
