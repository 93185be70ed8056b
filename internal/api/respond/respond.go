// Package respond writes the uniform JSON envelope every endpoint returns:
// {error: bool, msg?: string, ...payload}.
package respond

import (
	"encoding/json"
	"net/http"
)

// Envelope is the response body shape. Payload keys (data, product, user)
// are merged alongside the error flag.
type Envelope map[string]interface{}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// OK writes a success envelope. Extra payload fields are merged in.
func OK(w http.ResponseWriter, extra Envelope) {
	body := Envelope{"error": false}
	for k, v := range extra {
		body[k] = v
	}
	JSON(w, http.StatusOK, body)
}

// Fail writes an error envelope with the given status and message.
func Fail(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, Envelope{"error": true, "msg": msg})
}
