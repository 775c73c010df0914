package record

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hapinus/booksync/model"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "book_info.csv"))
}

func pendingRecord(key string) *model.BookRecord {
	return &model.BookRecord{ISBNKey: key, IsUpdated: "FALSE"}
}

func TestLoadAllMissingFile(t *testing.T) {
	s := testStore(t)

	records, err := s.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, records)

	keys, err := s.PendingKeys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestUpsertCreatesFile(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.Upsert(pendingRecord("9781234567890")))

	records, err := s.LoadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "9781234567890", records[0].ISBNKey)

	// The rewrite must not leave temp files behind.
	entries, err := os.ReadDir(filepath.Dir(s.path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "book_info.csv", entries[0].Name())
}

func TestUpsertIsIdempotent(t *testing.T) {
	s := testStore(t)

	rec := &model.BookRecord{
		ISBNKey:   "9781234567890",
		IsUpdated: "TRUE",
		Title:     "First Title",
		Authors:   "Kim, Lee",
	}
	require.NoError(t, s.Upsert(rec))
	require.NoError(t, s.Upsert(rec))

	records, err := s.LoadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "First Title", records[0].Title)
}

func TestUpsertPreservesOrderAndUnrelatedRows(t *testing.T) {
	s := testStore(t)

	first := &model.BookRecord{ISBNKey: "1111111111", IsUpdated: "TRUE", Title: "One", Tags: "fiction, drama"}
	second := &model.BookRecord{ISBNKey: "2222222222", IsUpdated: "FALSE"}
	third := &model.BookRecord{ISBNKey: "3333333333", IsUpdated: "TRUE", Title: "Three"}
	require.NoError(t, s.Upsert(first))
	require.NoError(t, s.Upsert(second))
	require.NoError(t, s.Upsert(third))

	// Overwrite the middle record in place.
	require.NoError(t, s.Upsert(&model.BookRecord{ISBNKey: "2222222222", IsUpdated: "TRUE", Title: "Two"}))

	records, err := s.LoadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "1111111111", records[0].ISBNKey)
	assert.Equal(t, "2222222222", records[1].ISBNKey)
	assert.Equal(t, "3333333333", records[2].ISBNKey)
	assert.Equal(t, "Two", records[1].Title)
	assert.Equal(t, "fiction, drama", records[0].Tags)
	assert.Equal(t, "Three", records[2].Title)
}

func TestPendingKeysFiltersByFlag(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.Upsert(&model.BookRecord{ISBNKey: "1111111111", IsUpdated: "TRUE"}))
	require.NoError(t, s.Upsert(&model.BookRecord{ISBNKey: "2222222222", IsUpdated: "FALSE"}))
	require.NoError(t, s.Upsert(&model.BookRecord{ISBNKey: "3333333333", IsUpdated: " false "}))
	require.NoError(t, s.Upsert(&model.BookRecord{ISBNKey: "4444444444", IsUpdated: "maybe"}))

	keys, err := s.PendingKeys()
	require.NoError(t, err)
	assert.Equal(t, []string{"2222222222", "3333333333"}, keys)

	// Pending-fetch selection and sync selection must never overlap.
	records, err := s.LoadAll()
	require.NoError(t, err)
	for _, rec := range records {
		assert.False(t, rec.Pending() && rec.Updated(), "record %s is both pending and updated", rec.ISBNKey)
	}
}

func TestLoadAllRejectsWrongColumnCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book_info.csv")
	content := strings.Join(Header, ",") + "\n9781234567890,TRUE,short row\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s := NewStore(path)
	_, err := s.LoadAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt")
}

func TestQuotedFieldsSurviveRewrite(t *testing.T) {
	s := testStore(t)

	rec := &model.BookRecord{
		ISBNKey:     "9781234567890",
		IsUpdated:   "TRUE",
		Title:       `A "quoted" title, with commas`,
		Description: "line one\nline two",
	}
	require.NoError(t, s.Upsert(rec))
	require.NoError(t, s.Upsert(&model.BookRecord{ISBNKey: "1111111111", IsUpdated: "FALSE"}))

	records, err := s.LoadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, rec.Title, records[0].Title)
	assert.Equal(t, rec.Description, records[0].Description)
}
