package books

import (
	"net/http"

	"github.com/avolkov/bookstore-api/internal/api/httpx"
	resource "github.com/avolkov/bookstore-api/internal/books"
)

// Get handles GET /books/{isbn}. An unknown isbn is always a 404, never an
// empty book.
func Get(m *resource.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isbn, ok := pathISBN(w, r)
		if !ok {
			return
		}
		b, err := m.GetOne(r.Context(), isbn)
		if err != nil {
			writeError(w, r, err, "fetch failed")
			return
		}
		httpx.Book(w, http.StatusOK, b)
	}
}
