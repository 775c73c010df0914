package model //import "github.com/hapinus/booksync/model"

import "strings"

// BookRecord is one row of the flat record file, keyed by ISBN key.
// Multi-valued fields (authors, translators, tags) hold comma-delimited
// names. The six hex slots are reserved columns carried through verbatim.
type BookRecord struct {
	ISBNKey       string
	IsUpdated     string
	Title         string
	Subtitle      string
	OriginalTitle string
	Authors       string
	Translators   string
	Publisher     string
	PublishedDate string
	ISBN10        string
	ISBN13        string
	Pages         string
	Edition       string
	Category      string
	Tags          string
	Rating        string
	ReviewText    string
	Hex1          string
	Hex2          string
	Hex3          string
	Hex4          string
	Hex5          string
	Hex6          string
	ThumbnailURL  string
	Description   string
}

// Updated reports whether the record has been fetched and is ready to sync.
func (r *BookRecord) Updated() bool {
	return strings.ToUpper(strings.TrimSpace(r.IsUpdated)) == "TRUE"
}

// Pending reports whether the record still needs a metadata fetch.
// A record with a garbage flag is neither pending nor updated.
func (r *BookRecord) Pending() bool {
	return strings.ToUpper(strings.TrimSpace(r.IsUpdated)) == "FALSE"
}

type Author struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
}

type Translator struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
}

type Tag struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
}

type Category struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
}

type Publisher struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
}

// Book is the fact row of the relational store, uniquely keyed by isbn_key.
type Book struct {
	ID            int      `db:"id"`
	ISBNKey       string   `db:"isbn_key"`
	Title         string   `db:"title"`
	Subtitle      string   `db:"subtitle"`
	OriginalTitle string   `db:"original_title"`
	PublisherID   int      `db:"publisher_id"`
	PublishedDate string   `db:"published_date"`
	Pages         string   `db:"pages"`
	Edition       string   `db:"edition"`
	Rating        *float64 `db:"rating"`
	ReviewText    string   `db:"review_text"`
	Description   string   `db:"description"`
	ThumbnailURL  string   `db:"thumbnail_url"`
}
