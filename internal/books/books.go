// Package books is the resource manager for the book entity. It validates
// payloads, enforces identity immutability, and maps storage outcomes onto
// the resource error taxonomy. It keeps no state between requests; all state
// lives behind the Gateway.
package books

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkov/bookstore-api/internal/models"
	storebooks "github.com/avolkov/bookstore-api/internal/store/books"
)

// Gateway is the narrow persistence surface the manager drives. Absent rows
// surface as sql.ErrNoRows, duplicate keys as storebooks.ErrDuplicate; the
// manager translates both, so no storage vocabulary leaks past it.
type Gateway interface {
	List(ctx context.Context, f storebooks.Filters) ([]models.Book, error)
	GetByISBN(ctx context.Context, isbn string) (models.Book, error)
	Insert(ctx context.Context, b models.Book) (models.Book, error)
	UpdateByISBN(ctx context.Context, isbn string, f models.BookFields) (models.Book, error)
	DeleteByISBN(ctx context.Context, isbn string) (int64, error)
}

type Manager struct {
	gw Gateway
}

func NewManager(gw Gateway) *Manager {
	return &Manager{gw: gw}
}

// List forwards equality filters to the gateway. It fails only when storage
// does.
func (m *Manager) List(ctx context.Context, f storebooks.Filters) ([]models.Book, error) {
	out, err := m.gw.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return out, nil
}

// GetOne looks up a single book. Absence is always ErrNotFound, never an
// empty record.
func (m *Manager) GetOne(ctx context.Context, isbn string) (models.Book, error) {
	b, err := m.gw.GetByISBN(ctx, isbn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Book{}, ErrNotFound
		}
		return models.Book{}, fmt.Errorf("get book %q: %w", isbn, err)
	}
	return b, nil
}

// Create validates the payload against the full book schema and inserts it.
// Validation short-circuits before any storage access; a duplicate isbn is a
// conflict, not a validation failure.
func (m *Manager) Create(ctx context.Context, payload []byte) (models.Book, error) {
	b, verr := decodeCreate(payload)
	if verr != nil {
		return models.Book{}, verr
	}
	created, err := m.gw.Insert(ctx, b)
	if err != nil {
		if errors.Is(err, storebooks.ErrDuplicate) {
			return models.Book{}, ErrConflict
		}
		return models.Book{}, fmt.Errorf("insert book %q: %w", b.ISBN, err)
	}
	return created, nil
}

// Update fully replaces the non-identity fields of the book at isbn. The
// identity is path-addressed only: a body containing isbn is rejected even
// when its value matches.
func (m *Manager) Update(ctx context.Context, isbn string, payload []byte) (models.Book, error) {
	f, verr := decodeUpdate(payload)
	if verr != nil {
		return models.Book{}, verr
	}
	updated, err := m.gw.UpdateByISBN(ctx, isbn, f)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Book{}, ErrNotFound
		}
		return models.Book{}, fmt.Errorf("update book %q: %w", isbn, err)
	}
	return updated, nil
}

// Delete removes the book at isbn. Deleting an already-absent row is
// ErrNotFound, not a vacuous success.
func (m *Manager) Delete(ctx context.Context, isbn string) error {
	n, err := m.gw.DeleteByISBN(ctx, isbn)
	if err != nil {
		return fmt.Errorf("delete book %q: %w", isbn, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
