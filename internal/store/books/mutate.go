package books

import (
	"context"

	"github.com/avolkov/bookstore-api/internal/models"
)

// Insert creates one row and returns it as persisted. A primary key hit is
// reported as ErrDuplicate.
func (s *Store) Insert(ctx context.Context, b models.Book) (models.Book, error) {
	var out models.Book
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO books (isbn, amazon_url, author, language, pages, publisher, title, year)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+bookColumns,
		b.ISBN, b.AmazonURL, b.Author, b.Language, b.Pages, b.Publisher, b.Title, b.Year,
	)
	if err := scanBook(row, &out); err != nil {
		if isUniqueViolation(err) {
			return models.Book{}, ErrDuplicate
		}
		return models.Book{}, err
	}
	return out, nil
}

// UpdateByISBN replaces every non-identity column of the matching row and
// returns the updated record. Returns sql.ErrNoRows when no row matched.
func (s *Store) UpdateByISBN(ctx context.Context, isbn string, f models.BookFields) (models.Book, error) {
	var out models.Book
	row := s.db.QueryRowContext(ctx, `
		UPDATE books
		SET amazon_url = $1, author = $2, language = $3, pages = $4,
		    publisher = $5, title = $6, year = $7
		WHERE isbn = $8
		RETURNING `+bookColumns,
		f.AmazonURL, f.Author, f.Language, f.Pages, f.Publisher, f.Title, f.Year, isbn,
	)
	if err := scanBook(row, &out); err != nil {
		return models.Book{}, err
	}
	return out, nil
}

// DeleteByISBN removes the matching row and reports how many rows went away.
func (s *Store) DeleteByISBN(ctx context.Context, isbn string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE isbn = $1`, isbn)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
