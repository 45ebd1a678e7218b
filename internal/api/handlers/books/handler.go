// Package books holds the HTTP adapters for the book resource: thin handlers
// that parse requests, delegate to the resource manager, and serialize the
// outcome.
package books

import (
	"errors"
	"log"
	"net/http"

	"github.com/avolkov/bookstore-api/internal/api/apperr"
	resource "github.com/avolkov/bookstore-api/internal/books"
)

// writeError maps the resource error taxonomy onto status codes. Kinds are
// matched explicitly so nothing is silently downgraded; anything unrecognized
// is a storage-level failure.
func writeError(w http.ResponseWriter, r *http.Request, err error, fallbackTitle string) {
	var verr *resource.ValidationError
	switch {
	case errors.As(err, &verr):
		apperr.WriteValidation(w, r, verr.Violations)
	case errors.Is(err, resource.ErrNotFound):
		apperr.WriteStatus(w, r, http.StatusNotFound, "Not Found", "book not found")
	case errors.Is(err, resource.ErrConflict):
		apperr.WriteStatus(w, r, http.StatusConflict, "Conflict", "isbn already exists")
	default:
		log.Printf("[books] %s %s: %v", r.Method, r.URL.Path, err)
		apperr.HandleDBError(w, r, err, fallbackTitle)
	}
}

func pathISBN(w http.ResponseWriter, r *http.Request) (string, bool) {
	isbn := r.PathValue("isbn")
	if isbn == "" {
		apperr.WriteStatus(w, r, http.StatusBadRequest, "Bad Request", "missing isbn")
		return "", false
	}
	return isbn, true
}
