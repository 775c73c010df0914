package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hapinus/booksync/log"
	"github.com/hapinus/booksync/model"
	"github.com/hapinus/booksync/util"
)

// SyncBook writes one updated record into the relational store as a single
// transaction: dimension names are resolved via get-or-create, the book row
// is upserted by isbn_key with a full overwrite of every mapped field, and
// the association rows are inserted ignoring duplicates. Either the whole
// record lands or none of it does.
func (s *Store) SyncBook(rec *model.BookRecord) error {
	rating, err := parseRating(rec.Rating)
	if err != nil {
		return errors.Wrapf(err, "invalid rating %q", rec.Rating)
	}

	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// An empty category or publisher name still resolves to a row keyed by
	// the empty string. Established behavior, kept as-is.
	categoryID, err := getOrCreate(tx, "category", rec.Category)
	if err != nil {
		return err
	}
	publisherID, err := getOrCreate(tx, "publisher", rec.Publisher)
	if err != nil {
		return err
	}

	tagIDs, err := getOrCreateAll(tx, "tag", util.SplitTrim(rec.Tags, ","))
	if err != nil {
		return err
	}
	authorIDs, err := getOrCreateAll(tx, "author", util.SplitTrim(rec.Authors, ","))
	if err != nil {
		return err
	}
	translatorIDs, err := getOrCreateAll(tx, "translator", util.SplitTrim(rec.Translators, ","))
	if err != nil {
		return err
	}

	stmt := tx.Rebind(`
		INSERT INTO book (
			isbn_key, title, subtitle, original_title,
			publisher_id, published_date, pages,
			edition, rating, review_text,
			description, thumbnail_url
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (isbn_key) DO UPDATE SET
			title = excluded.title,
			subtitle = excluded.subtitle,
			original_title = excluded.original_title,
			publisher_id = excluded.publisher_id,
			published_date = excluded.published_date,
			pages = excluded.pages,
			edition = excluded.edition,
			rating = excluded.rating,
			review_text = excluded.review_text,
			description = excluded.description,
			thumbnail_url = excluded.thumbnail_url
		RETURNING id`)

	var bookID int
	if err := tx.QueryRow(stmt,
		rec.ISBNKey,
		rec.Title,
		rec.Subtitle,
		rec.OriginalTitle,
		publisherID,
		rec.PublishedDate,
		rec.Pages,
		rec.Edition,
		rating,
		rec.ReviewText,
		rec.Description,
		rec.ThumbnailURL,
	).Scan(&bookID); err != nil {
		return errors.Wrapf(err, "unable to upsert book %s", rec.ISBNKey)
	}

	if err := linkBook(tx, "book_category", "category_id", bookID, []int{categoryID}); err != nil {
		return err
	}
	if err := linkBook(tx, "book_tag", "tag_id", bookID, tagIDs); err != nil {
		return err
	}
	if err := linkBook(tx, "book_author", "author_id", bookID, authorIDs); err != nil {
		return err
	}
	if err := linkBook(tx, "book_translator", "translator_id", bookID, translatorIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrapf(err, "unable to commit book %s", rec.ISBNKey)
	}

	log.Debug("book synchronized", zap.String("isbn_key", rec.ISBNKey), zap.Int("book_id", bookID))
	return nil
}

// GetBookByISBNKey returns the book row for the given key, or nil when
// there is none.
func (s *Store) GetBookByISBNKey(isbnKey string) (*model.Book, error) {
	stmt := s.db.Rebind(`
		SELECT id, isbn_key, title, subtitle, original_title,
		       publisher_id, published_date, pages, edition,
		       rating, review_text, description, thumbnail_url
		FROM book WHERE isbn_key = ?`)

	var book model.Book
	if err := s.db.Get(&book, stmt, isbnKey); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &book, nil
}

// getOrCreate resolves a dimension row id by exact name, inserting the name
// when it is not there yet. Name is the sole uniqueness key. Safe to call
// repeatedly for the same name, but the lookup-then-insert is only
// race-free because the sync batch is single-writer; concurrent writers
// would need the UNIQUE constraint plus a conflict-tolerant insert.
func getOrCreate(tx *sqlx.Tx, table, name string) (int, error) {
	var id int
	query := tx.Rebind(fmt.Sprintf("SELECT id FROM %s WHERE name = ?", table))
	err := tx.Get(&id, query, name)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, errors.Wrapf(err, "unable to look up %s %q", table, name)
	}

	insert := tx.Rebind(fmt.Sprintf("INSERT INTO %s (name) VALUES (?) RETURNING id", table))
	if err := tx.Get(&id, insert, name); err != nil {
		return 0, errors.Wrapf(err, "unable to insert %s %q", table, name)
	}
	return id, nil
}

func getOrCreateAll(tx *sqlx.Tx, table string, names []string) ([]int, error) {
	ids := make([]int, 0, len(names))
	for _, name := range names {
		id, err := getOrCreate(tx, table, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// linkBook inserts association rows, ignoring pairs that are already there.
func linkBook(tx *sqlx.Tx, table, column string, bookID int, ids []int) error {
	stmt := tx.Rebind(fmt.Sprintf(
		"INSERT INTO %s (book_id, %s) VALUES (?, ?) ON CONFLICT DO NOTHING", table, column))
	for _, id := range ids {
		if _, err := tx.Exec(stmt, bookID, id); err != nil {
			return errors.Wrapf(err, "unable to link %s %d to book %d", table, id, bookID)
		}
	}
	return nil
}

// parseRating coerces the record's free-text rating into the NUMERIC(3,2)
// column. Empty means no rating (NULL); anything unparseable is a
// per-record failure, not a fatal one.
func parseRating(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
