package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON marshals data and writes it as a JSON response with the given
// status code. Marshaling happens before any byte reaches the wire, so a
// value that cannot be encoded turns into a clean 500 instead of a truncated
// document; the failure body stays JSON like every other response of the
// API. The marshal error comes back for the caller's log line, the byte
// count for middleware that wants it.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		n, _ := w.Write([]byte(`{"error":"response encoding failed"}`))
		return n, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}
