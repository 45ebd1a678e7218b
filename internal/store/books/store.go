// Package books is the storage gateway for the books table. It runs
// parameterized SQL and reports storage outcomes (row found/not found,
// duplicate key) without applying any business rules.
package books

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate reports an insert that hit the books primary key.
var ErrDuplicate = errors.New("duplicate isbn")

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Filters narrows List by equality on the given columns. Zero-valued string
// fields and nil int fields are ignored.
type Filters struct {
	Author    string
	Language  string
	Publisher string
	Title     string
	Pages     *int
	Year      *int
}

const bookColumns = `isbn, amazon_url, author, language, pages, publisher, title, year`

func isUniqueViolation(err error) bool {
	var pg *pgconn.PgError
	return errors.As(err, &pg) && pg.Code == "23505"
}
