package books

import (
	"net/http"

	"github.com/avolkov/bookstore-api/internal/api/httpx"
	resource "github.com/avolkov/bookstore-api/internal/books"
)

// Delete handles DELETE /books/{isbn}. Deleting twice is not a no-op: the
// second call lands on an absent row and reports 404.
func Delete(m *resource.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isbn, ok := pathISBN(w, r)
		if !ok {
			return
		}
		if err := m.Delete(r.Context(), isbn); err != nil {
			writeError(w, r, err, "delete failed")
			return
		}
		httpx.Message(w, "Book deleted")
	}
}
