package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// maxJSONBodyBytes caps JSON request bodies. Collection and gesture
// payloads are tiny, so one megabyte is generous.
const maxJSONBodyBytes = 1 << 20

// ParseJSON decodes the request body into dst, rejecting oversized and
// malformed payloads.
func ParseJSON(r *http.Request, w http.ResponseWriter, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
