package fetch

import (
	"strings"

	"github.com/hapinus/booksync/isbn"
	"github.com/hapinus/booksync/model"
)

// MapResponse converts one search response into a normalized record for the
// given ISBN key, or nil when the response carries no documents. A nil
// result means "no data": the caller must not overwrite an existing record
// with emptiness. Only the first document is used; providers return
// near-duplicates for fuzzy ISBN matches and picking the first is the
// established behavior. Fields the provider does not supply stay empty,
// absence of data is not an error.
func MapResponse(isbnKey string, resp *SearchResponse) *model.BookRecord {
	if resp == nil || len(resp.Documents) == 0 {
		return nil
	}
	doc := resp.Documents[0]

	isbn10, isbn13 := isbn.Classify(strings.TrimSpace(doc.ISBN))

	publishedDate := ""
	if doc.Datetime != "" {
		publishedDate = strings.SplitN(doc.Datetime, "T", 2)[0]
	}

	return &model.BookRecord{
		ISBNKey:       isbnKey,
		IsUpdated:     "TRUE",
		Title:         doc.Title,
		Authors:       strings.Join(doc.Authors, ", "),
		Translators:   strings.Join(doc.Translators, ", "),
		Publisher:     doc.Publisher,
		PublishedDate: publishedDate,
		ISBN10:        isbn10,
		ISBN13:        isbn13,
		ThumbnailURL:  doc.Thumbnail,
		Description:   doc.Contents,
	}
}
