package sandbox

import (
	"bytes"
	"encoding/json"
	"net/http"

	"k8s.io/klog/v2"
)

// writeJSON encodes v and writes it with the given status code. An encoding
// failure becomes a plain 500.
func writeJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		klog.ErrorS(err, "Failed to encode response")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(buf.Bytes())
}

type gatewayError struct {
	Source      string `json:"Source"`
	ReasonCode  string `json:"ReasonCode"`
	Description string `json:"Description"`
	Recoverable bool   `json:"Recoverable"`
}

type errorEnvelope struct {
	Errors struct {
		Error []gatewayError `json:"Error"`
	} `json:"Errors"`
}

// writeError writes the gateway error envelope.
func writeError(w http.ResponseWriter, code int, reason, description string) {
	var env errorEnvelope
	env.Errors.Error = []gatewayError{{
		Source:      "sandbox",
		ReasonCode:  reason,
		Description: description,
		Recoverable: code == http.StatusTooManyRequests,
	}}

	writeJSON(w, code, env)
}
