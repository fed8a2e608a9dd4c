package apiutil

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// WriteJSON encodes the payload before touching the ResponseWriter, so an
// encoding failure can still produce a clean error response.
func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}
