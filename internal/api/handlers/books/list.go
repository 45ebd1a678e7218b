package books

import (
	"net/http"
	"strconv"

	"github.com/avolkov/bookstore-api/internal/api/apperr"
	"github.com/avolkov/bookstore-api/internal/api/httpx"
	resource "github.com/avolkov/bookstore-api/internal/books"
	storebooks "github.com/avolkov/bookstore-api/internal/store/books"
)

// List handles GET /books with optional equality filters taken from the query
// string. Unknown parameters and non-numeric values for integer columns are
// caller errors, rejected before the manager runs.
func List(m *resource.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, ok := parseFilters(w, r)
		if !ok {
			return
		}

		out, err := m.List(r.Context(), f)
		if err != nil {
			writeError(w, r, err, "list failed")
			return
		}
		httpx.Books(w, out)
	}
}

func parseFilters(w http.ResponseWriter, r *http.Request) (storebooks.Filters, bool) {
	var f storebooks.Filters
	for key, vals := range r.URL.Query() {
		v := vals[0]
		switch key {
		case "author":
			f.Author = v
		case "language":
			f.Language = v
		case "publisher":
			f.Publisher = v
		case "title":
			f.Title = v
		case "pages":
			n, err := strconv.Atoi(v)
			if err != nil {
				apperr.WriteStatus(w, r, http.StatusBadRequest, "Bad Request", "pages must be an integer")
				return storebooks.Filters{}, false
			}
			f.Pages = &n
		case "year":
			n, err := strconv.Atoi(v)
			if err != nil {
				apperr.WriteStatus(w, r, http.StatusBadRequest, "Bad Request", "year must be an integer")
				return storebooks.Filters{}, false
			}
			f.Year = &n
		default:
			apperr.WriteStatus(w, r, http.StatusBadRequest, "Bad Request", "unknown filter: "+key)
			return storebooks.Filters{}, false
		}
	}
	return f, true
}
