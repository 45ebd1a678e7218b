package books

import (
	"io"
	"net/http"

	"github.com/avolkov/bookstore-api/internal/api/apperr"
	"github.com/avolkov/bookstore-api/internal/api/httpx"
	resource "github.com/avolkov/bookstore-api/internal/books"
)

// Put handles PUT /books/{isbn}: a full replacement of the non-identity
// fields. The manager rejects any body that tries to address the identity.
func Put(m *resource.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		isbn, ok := pathISBN(w, r)
		if !ok {
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			apperr.WriteStatus(w, r, http.StatusBadRequest, "Bad Request", "unreadable body")
			return
		}

		b, err := m.Update(r.Context(), isbn, body)
		if err != nil {
			writeError(w, r, err, "update failed")
			return
		}
		httpx.Book(w, http.StatusOK, b)
	}
}
