package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON encodes data as the JSON body of the response. HEAD requests
// get the headers only. A value that cannot be encoded produces a 500 and
// the returned error.
func WriteJSON(w http.ResponseWriter, r *http.Request, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return 0, fmt.Errorf("error encoding JSON response: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if r.Method == http.MethodHead {
		return 0, nil
	}

	return w.Write(body)
}
