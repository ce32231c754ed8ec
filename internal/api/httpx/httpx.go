package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope shapes match what the SPA expects: {success:true, data|token}
// on success and {success:false, error} on failure.

type successBody struct {
	Success bool `json:"success"`
	Count   *int `json:"count,omitempty"`
	Data    any  `json:"data,omitempty"`
}

type tokenBody struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Data    any    `json:"data,omitempty"`
}

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successBody{Success: true, Data: data})
}

// WriteList adds the count field carried by list responses.
func WriteList(w http.ResponseWriter, status int, count int, data any) {
	writeJSON(w, status, successBody{Success: true, Count: &count, Data: data})
}

func WriteToken(w http.ResponseWriter, status int, token string, data any) {
	writeJSON(w, status, tokenBody{Success: true, Token: token, Data: data})
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Success: false, Error: msg})
}
