package httpx

import (
	"encoding/json"
	"net/http"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Books wraps a list result in the {"books": [...]} envelope.
func Books(w http.ResponseWriter, v any) {
	WriteJSON(w, http.StatusOK, map[string]any{"books": v})
}

// Book wraps a single record in the {"book": {...}} envelope.
func Book(w http.ResponseWriter, status int, v any) {
	WriteJSON(w, status, map[string]any{"book": v})
}

func Message(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusOK, map[string]any{"message": msg})
}
