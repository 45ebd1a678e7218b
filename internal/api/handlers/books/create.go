package books

import (
	"io"
	"net/http"

	"github.com/avolkov/bookstore-api/internal/api/apperr"
	"github.com/avolkov/bookstore-api/internal/api/httpx"
	resource "github.com/avolkov/bookstore-api/internal/books"
)

// Create handles POST /books. The raw body goes to the manager untouched so
// schema validation sees exactly what the caller sent.
func Create(m *resource.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		body, err := io.ReadAll(r.Body)
		if err != nil {
			apperr.WriteStatus(w, r, http.StatusBadRequest, "Bad Request", "unreadable body")
			return
		}

		b, err := m.Create(r.Context(), body)
		if err != nil {
			writeError(w, r, err, "create failed")
			return
		}
		httpx.Book(w, http.StatusCreated, b)
	}
}
