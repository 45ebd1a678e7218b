package handlers

import (
	"net/http"

	"github.com/avolkov/bookstore-api/internal/api/httpx"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"name":      "bookstore-api",
		"resources": []string{"/books", "/books/{isbn}"},
	})
}
