package handlers

import (
	"encoding/json"
	"net/http"
)

// statusResponse is the envelope of the reading-submission endpoint.
type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeStatus(w http.ResponseWriter, status int, ok bool, message string) {
	s := "success"
	if !ok {
		s = "error"
	}
	writeJSON(w, status, statusResponse{Status: s, Message: message})
}
