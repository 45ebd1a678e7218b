package books

import (
	"context"
	"strconv"
	"strings"

	"github.com/avolkov/bookstore-api/internal/models"
)

// List returns all books matching the filters, ordered by isbn. An empty
// result is not an error.
func (s *Store) List(ctx context.Context, f Filters) ([]models.Book, error) {
	where := []string{}
	args := []any{}
	i := 1

	add := func(cond string, v any) {
		where = append(where, cond+" = $"+strconv.Itoa(i))
		args = append(args, v)
		i++
	}

	if f.Author != "" {
		add("author", f.Author)
	}
	if f.Language != "" {
		add("language", f.Language)
	}
	if f.Publisher != "" {
		add("publisher", f.Publisher)
	}
	if f.Title != "" {
		add("title", f.Title)
	}
	if f.Pages != nil {
		add("pages", *f.Pages)
	}
	if f.Year != nil {
		add("year", *f.Year)
	}

	q := `SELECT ` + bookColumns + ` FROM books`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY isbn"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Book{}
	for rows.Next() {
		var b models.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(row scanner, b *models.Book) error {
	return row.Scan(
		&b.ISBN, &b.AmazonURL, &b.Author, &b.Language,
		&b.Pages, &b.Publisher, &b.Title, &b.Year,
	)
}

// GetByISBN is a point lookup on the primary key. Returns sql.ErrNoRows when
// no row matches.
func (s *Store) GetByISBN(ctx context.Context, isbn string) (models.Book, error) {
	var b models.Book
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE isbn = $1`, isbn)
	if err := scanBook(row, &b); err != nil {
		return models.Book{}, err
	}
	return b, nil
}
