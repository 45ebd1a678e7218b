package router

import (
	"net/http"

	"github.com/avolkov/bookstore-api/internal/api/handlers"
	booksapi "github.com/avolkov/bookstore-api/internal/api/handlers/books"
	"github.com/avolkov/bookstore-api/internal/books"
)

func Router(m *books.Manager) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /", handlers.RootHandler)

	// Books (method-specific 1.22 patterns)
	mux.Handle("GET /books", booksapi.List(m))
	mux.Handle("POST /books", booksapi.Create(m))
	mux.Handle("GET /books/{isbn}", booksapi.Get(m))
	mux.Handle("PUT /books/{isbn}", booksapi.Put(m))
	mux.Handle("DELETE /books/{isbn}", booksapi.Delete(m))

	return mux
}
