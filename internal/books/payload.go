package books

import (
	"encoding/json"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/avolkov/bookstore-api/internal/models"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindInt
)

type fieldSpec struct {
	name string
	kind fieldKind
}

// bookFields is the declared schema: exactly these fields, no extras. The
// create shape prepends isbn; the update shape is this list as-is.
var bookFields = []fieldSpec{
	{"amazon_url", kindString},
	{"author", kindString},
	{"language", kindString},
	{"pages", kindInt},
	{"publisher", kindString},
	{"title", kindString},
	{"year", kindInt},
}

var cleaner = transform.Chain(norm.NFC, runes.Remove(runes.In(unicode.Cc)))

func sanitize(s string) string {
	out, _, err := transform.String(cleaner, s)
	if err != nil {
		out = s
	}
	return strings.TrimSpace(out)
}

// decodeCreate validates the full create shape (isbn plus all book fields).
func decodeCreate(body []byte) (models.Book, *ValidationError) {
	raw, verr := parseObject(body)
	if verr != nil {
		return models.Book{}, verr
	}

	specs := append([]fieldSpec{{"isbn", kindString}}, bookFields...)
	violations := checkUnknown(raw, specs)

	var b models.Book
	violations = append(violations, fillFields(raw, specs, &b)...)
	if len(violations) > 0 {
		return models.Book{}, &ValidationError{Violations: violations}
	}
	return b, nil
}

// decodeUpdate validates the update shape: same schema minus the identity
// field. A payload carrying isbn is rejected outright, whatever its value.
func decodeUpdate(body []byte) (models.BookFields, *ValidationError) {
	raw, verr := parseObject(body)
	if verr != nil {
		return models.BookFields{}, verr
	}

	if _, ok := raw["isbn"]; ok {
		return models.BookFields{}, &ValidationError{
			Violations: []string{"isbn is not allowed"},
		}
	}

	violations := checkUnknown(raw, bookFields)

	var b models.Book
	violations = append(violations, fillFields(raw, bookFields, &b)...)
	if len(violations) > 0 {
		return models.BookFields{}, &ValidationError{Violations: violations}
	}
	return b.BookFields, nil
}

func parseObject(body []byte) (map[string]json.RawMessage, *ValidationError) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return nil, &ValidationError{Violations: []string{"request body must be a JSON object"}}
	}
	return raw, nil
}

func checkUnknown(raw map[string]json.RawMessage, specs []fieldSpec) []string {
	allowed := make(map[string]struct{}, len(specs))
	for _, f := range specs {
		allowed[f.name] = struct{}{}
	}
	var extras []string
	for k := range raw {
		if _, ok := allowed[k]; !ok {
			extras = append(extras, k)
		}
	}
	sort.Strings(extras)
	out := make([]string, 0, len(extras))
	for _, k := range extras {
		out = append(out, `"`+k+`" is not a valid book field`)
	}
	return out
}

// fillFields checks presence and type of every declared field and writes the
// decoded values into b.
func fillFields(raw map[string]json.RawMessage, specs []fieldSpec, b *models.Book) []string {
	var violations []string

	for _, f := range specs {
		v, ok := raw[f.name]
		if !ok {
			violations = append(violations, `"`+f.name+`" is required`)
			continue
		}
		switch f.kind {
		case kindString:
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				violations = append(violations, `"`+f.name+`" must be a string`)
				continue
			}
			s = sanitize(s)
			switch f.name {
			case "isbn":
				if s == "" {
					violations = append(violations, `"isbn" must not be empty`)
					continue
				}
				b.ISBN = s
			case "amazon_url":
				b.AmazonURL = s
			case "author":
				b.Author = s
			case "language":
				b.Language = s
			case "publisher":
				b.Publisher = s
			case "title":
				if s == "" {
					violations = append(violations, `"title" must not be empty`)
					continue
				}
				b.Title = s
			}
		case kindInt:
			var n int
			if err := json.Unmarshal(v, &n); err != nil {
				violations = append(violations, `"`+f.name+`" must be a whole number`)
				continue
			}
			if f.name == "pages" {
				b.Pages = n
			} else {
				b.Year = n
			}
		}
	}
	return violations
}
