package models

// BookFields holds every mutable column of a book row. The identity column
// lives on Book itself so update payloads can be expressed without it.
type BookFields struct {
	AmazonURL string `json:"amazon_url"`
	Author    string `json:"author"`
	Language  string `json:"language"`
	Pages     int    `json:"pages"`
	Publisher string `json:"publisher"`
	Title     string `json:"title"`
	Year      int    `json:"year"`
}

type Book struct {
	ISBN string `json:"isbn"`
	BookFields
}
