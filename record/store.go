// Package record owns the flat CSV file that tracks book metadata between
// the fetch and sync stages.
package record

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/hapinus/booksync/model"
)

// Header is the fixed on-disk column order. It is significant: rows are
// written and read positionally and the order must survive every rewrite.
var Header = []string{
	"ISBN_KEY",
	"IS_UPDATED",
	"TITLE",
	"SUBTITLE",
	"ORIGINAL_TITLE",
	"AUTHORS",
	"TRANSLATORS",
	"PUBLISHER",
	"PUBLISHED_DATE",
	"ISBN_10",
	"ISBN_13",
	"PAGES",
	"EDITION",
	"CATEGORY",
	"TAGS",
	"RATING",
	"REVIEW_TEXT",
	"HEX1",
	"HEX2",
	"HEX3",
	"HEX4",
	"HEX5",
	"HEX6",
	"THUMBNAIL_URL",
	"DESCRIPTION",
}

// Store reads and rewrites one record file as a whole. There is no index
// and no locking: upserts are read-modify-write over the entire file, so
// the store is safe for a single sequential process only. Two writers
// racing on the same file can lose one writer's update.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// LoadAll returns every record in file order. A missing file is not an
// error and yields an empty list; a row with the wrong column count is a
// fatal read error, the store does not guess at recovering a corrupt file.
func (s *Store) LoadAll() ([]*model.BookRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "unable to open record file %s", s.path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(Header)

	var records []*model.BookRecord
	line := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "record file %s is corrupt", s.path)
		}
		line++
		if line == 1 {
			// Header row.
			continue
		}
		records = append(records, fromRow(row))
	}
	return records, nil
}

// PendingKeys returns the ordered ISBN keys still waiting for a metadata
// fetch, i.e. the rows whose flag normalizes to FALSE.
func (s *Store) PendingKeys() ([]string, error) {
	records, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, rec := range records {
		if rec.Pending() {
			keys = append(keys, rec.ISBNKey)
		}
	}
	return keys, nil
}

// Upsert replaces the record with the same ISBN key in place, preserving
// its position, or appends a new one. The whole file is reread and
// rewritten; a missing file is created.
func (s *Store) Upsert(rec *model.BookRecord) error {
	records, err := s.LoadAll()
	if err != nil {
		return err
	}

	updated := false
	for i, existing := range records {
		if existing.ISBNKey == rec.ISBNKey {
			records[i] = rec
			updated = true
			break
		}
	}
	if !updated {
		records = append(records, rec)
	}

	return s.writeAll(records)
}

// writeAll serializes every record to a temp file in the same directory and
// renames it over the original, so a crash mid-write cannot leave a
// half-written file behind.
func (s *Store) writeAll(records []*model.BookRecord) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "unable to create record directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".book_info-*.csv")
	if err != nil {
		return errors.Wrap(err, "unable to create temp record file")
	}
	defer os.Remove(tmp.Name())

	writer := csv.NewWriter(tmp)
	if err := writer.Write(Header); err != nil {
		tmp.Close()
		return errors.Wrap(err, "unable to write record header")
	}
	for _, rec := range records {
		if err := writer.Write(toRow(rec)); err != nil {
			tmp.Close()
			return errors.Wrapf(err, "unable to write record %s", rec.ISBNKey)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "unable to flush record file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "unable to close temp record file")
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Wrapf(err, "unable to replace record file %s", s.path)
	}
	return nil
}

func fromRow(row []string) *model.BookRecord {
	return &model.BookRecord{
		ISBNKey:       row[0],
		IsUpdated:     row[1],
		Title:         row[2],
		Subtitle:      row[3],
		OriginalTitle: row[4],
		Authors:       row[5],
		Translators:   row[6],
		Publisher:     row[7],
		PublishedDate: row[8],
		ISBN10:        row[9],
		ISBN13:        row[10],
		Pages:         row[11],
		Edition:       row[12],
		Category:      row[13],
		Tags:          row[14],
		Rating:        row[15],
		ReviewText:    row[16],
		Hex1:          row[17],
		Hex2:          row[18],
		Hex3:          row[19],
		Hex4:          row[20],
		Hex5:          row[21],
		Hex6:          row[22],
		ThumbnailURL:  row[23],
		Description:   row[24],
	}
}

func toRow(rec *model.BookRecord) []string {
	return []string{
		rec.ISBNKey,
		rec.IsUpdated,
		rec.Title,
		rec.Subtitle,
		rec.OriginalTitle,
		rec.Authors,
		rec.Translators,
		rec.Publisher,
		rec.PublishedDate,
		rec.ISBN10,
		rec.ISBN13,
		rec.Pages,
		rec.Edition,
		rec.Category,
		rec.Tags,
		rec.Rating,
		rec.ReviewText,
		rec.Hex1,
		rec.Hex2,
		rec.Hex3,
		rec.Hex4,
		rec.Hex5,
		rec.Hex6,
		rec.ThumbnailURL,
		rec.Description,
	}
}
