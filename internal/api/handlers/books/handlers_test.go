package books_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/avolkov/bookstore-api/internal/api/router"
	resource "github.com/avolkov/bookstore-api/internal/books"
	"github.com/avolkov/bookstore-api/internal/models"
	storebooks "github.com/avolkov/bookstore-api/internal/store/books"
)

type memGateway struct {
	rows map[string]models.Book
	err  error
}

func (g *memGateway) List(ctx context.Context, f storebooks.Filters) ([]models.Book, error) {
	if g.err != nil {
		return nil, g.err
	}
	isbns := make([]string, 0, len(g.rows))
	for k := range g.rows {
		isbns = append(isbns, k)
	}
	sort.Strings(isbns)
	out := []models.Book{}
	for _, k := range isbns {
		b := g.rows[k]
		if f.Author != "" && b.Author != f.Author {
			continue
		}
		if f.Year != nil && b.Year != *f.Year {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (g *memGateway) GetByISBN(ctx context.Context, isbn string) (models.Book, error) {
	if g.err != nil {
		return models.Book{}, g.err
	}
	b, ok := g.rows[isbn]
	if !ok {
		return models.Book{}, sql.ErrNoRows
	}
	return b, nil
}

func (g *memGateway) Insert(ctx context.Context, b models.Book) (models.Book, error) {
	if g.err != nil {
		return models.Book{}, g.err
	}
	if _, ok := g.rows[b.ISBN]; ok {
		return models.Book{}, storebooks.ErrDuplicate
	}
	g.rows[b.ISBN] = b
	return b, nil
}

func (g *memGateway) UpdateByISBN(ctx context.Context, isbn string, f models.BookFields) (models.Book, error) {
	if g.err != nil {
		return models.Book{}, g.err
	}
	if _, ok := g.rows[isbn]; !ok {
		return models.Book{}, sql.ErrNoRows
	}
	b := models.Book{ISBN: isbn, BookFields: f}
	g.rows[isbn] = b
	return b, nil
}

func (g *memGateway) DeleteByISBN(ctx context.Context, isbn string) (int64, error) {
	if g.err != nil {
		return 0, g.err
	}
	if _, ok := g.rows[isbn]; !ok {
		return 0, nil
	}
	delete(g.rows, isbn)
	return 1, nil
}

var seeded = models.Book{
	ISBN: "123432122",
	BookFields: models.BookFields{
		AmazonURL: "https://amazon.com/taco",
		Author:    "Elie",
		Language:  "English",
		Pages:     100,
		Publisher: "Nothing publishers",
		Title:     "my first book",
		Year:      2008,
	},
}

func newServer(seed ...models.Book) (*memGateway, http.Handler) {
	gw := &memGateway{rows: map[string]models.Book{}}
	for _, b := range seed {
		gw.rows[b.ISBN] = b
	}
	return gw, router.Router(resource.NewManager(gw))
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("bad response JSON %q: %v", rec.Body.String(), err)
	}
}

func TestGetBooks_ListsSeededBook(t *testing.T) {
	_, h := newServer(seeded)

	rec := do(t, h, http.MethodGet, "/books", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	var resp struct {
		Books []models.Book `json:"books"`
	}
	decode(t, rec, &resp)
	if len(resp.Books) != 1 || resp.Books[0].ISBN != "123432122" {
		t.Fatalf("want exactly the seeded book, got %+v", resp.Books)
	}
	if resp.Books[0].AmazonURL == "" {
		t.Fatal("amazon_url missing from response")
	}
}

func TestGetBooks_FilterMiss(t *testing.T) {
	_, h := newServer(seeded)

	rec := do(t, h, http.MethodGet, "/books?author=nobody", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	var resp struct {
		Books []models.Book `json:"books"`
	}
	decode(t, rec, &resp)
	if len(resp.Books) != 0 {
		t.Fatalf("want empty books list, got %+v", resp.Books)
	}
}

func TestGetBooks_BadIntFilter(t *testing.T) {
	_, h := newServer(seeded)

	if rec := do(t, h, http.MethodGet, "/books?year=twothousand", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/books?color=red", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown filter: want 400, got %d", rec.Code)
	}
}

func TestGetBook_ByISBN(t *testing.T) {
	_, h := newServer(seeded)

	rec := do(t, h, http.MethodGet, "/books/123432122", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	var resp struct {
		Book models.Book `json:"book"`
	}
	decode(t, rec, &resp)
	if resp.Book != seeded {
		t.Fatalf("want seeded book, got %+v", resp.Book)
	}
}

func TestGetBook_NotFound(t *testing.T) {
	_, h := newServer(seeded)

	rec := do(t, h, http.MethodGet, "/books/999", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", rec.Code)
	}
}

func TestPostBooks_CreatesBook(t *testing.T) {
	gw, h := newServer()

	body := `{
		"isbn": "32794782",
		"amazon_url": "https://taco.com",
		"author": "mctest",
		"language": "english",
		"pages": 1000,
		"publisher": "yeah right",
		"title": "amazing times",
		"year": 2000
	}`
	rec := do(t, h, http.MethodPost, "/books", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Book models.Book `json:"book"`
	}
	decode(t, rec, &resp)
	if resp.Book.ISBN != "32794782" {
		t.Fatalf("created book missing isbn: %+v", resp.Book)
	}
	if _, ok := gw.rows["32794782"]; !ok {
		t.Fatal("row not persisted")
	}
}

func TestPostBooks_MissingFieldsIs400(t *testing.T) {
	gw, h := newServer()

	rec := do(t, h, http.MethodPost, "/books", `{"year": 2000}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
	var resp struct {
		Errors []string `json:"errors"`
	}
	decode(t, rec, &resp)
	if len(resp.Errors) == 0 {
		t.Fatalf("want violation list in body, got %s", rec.Body.String())
	}
	if len(gw.rows) != 0 {
		t.Fatal("validation failure must not persist anything")
	}
}

func TestPostBooks_DuplicateIs409(t *testing.T) {
	_, h := newServer(seeded)

	body := `{
		"isbn": "123432122",
		"amazon_url": "https://taco.com",
		"author": "mctest",
		"language": "english",
		"pages": 1000,
		"publisher": "yeah right",
		"title": "amazing times",
		"year": 2000
	}`
	rec := do(t, h, http.MethodPost, "/books", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("want 409, got %d", rec.Code)
	}
}

const updateBody = `{
	"amazon_url": "https://taco.com",
	"author": "mctest",
	"language": "english",
	"pages": 1000,
	"publisher": "yeah right",
	"title": "UPDATED BOOK",
	"year": 2000
}`

func TestPutBook_Updates(t *testing.T) {
	_, h := newServer(seeded)

	rec := do(t, h, http.MethodPut, "/books/123432122", updateBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Book models.Book `json:"book"`
	}
	decode(t, rec, &resp)
	if resp.Book.Title != "UPDATED BOOK" {
		t.Fatalf("want UPDATED BOOK, got %q", resp.Book.Title)
	}

	rec = do(t, h, http.MethodGet, "/books/123432122", "")
	decode(t, rec, &resp)
	if resp.Book.Title != "UPDATED BOOK" {
		t.Fatalf("update not visible on re-read: %+v", resp.Book)
	}
}

func TestPutBook_BodyISBNIs400(t *testing.T) {
	_, h := newServer(seeded)

	body := strings.Replace(updateBody, `"amazon_url"`, `"isbn": "123432122", "amazon_url"`, 1)
	rec := do(t, h, http.MethodPut, "/books/123432122", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
}

func TestPutBook_NotFound(t *testing.T) {
	_, h := newServer()

	rec := do(t, h, http.MethodPut, "/books/999", updateBody)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", rec.Code)
	}
}

func TestDeleteBook_ThenSecondDeleteIs404(t *testing.T) {
	_, h := newServer(seeded)

	rec := do(t, h, http.MethodDelete, "/books/123432122", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	var resp struct {
		Message string `json:"message"`
	}
	decode(t, rec, &resp)
	if resp.Message != "Book deleted" {
		t.Fatalf("want 'Book deleted', got %q", resp.Message)
	}

	rec = do(t, h, http.MethodDelete, "/books/123432122", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: want 404, got %d", rec.Code)
	}
}

func TestStorageFailureIs500(t *testing.T) {
	gw, h := newServer(seeded)
	gw.err = context.DeadlineExceeded

	rec := do(t, h, http.MethodGet, "/books", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", rec.Code)
	}
}
