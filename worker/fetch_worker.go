// Package worker drives the batch stages: fetching provider metadata into
// the record file and synchronizing updated records into the database.
// Records are processed strictly one at a time in file order.
package worker

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hapinus/booksync/fetch"
	"github.com/hapinus/booksync/log"
	"github.com/hapinus/booksync/record"
)

type FetchWorker struct {
	records *record.Store
	client  *fetch.Client
}

func NewFetchWorker(records *record.Store, client *fetch.Client) *FetchWorker {
	return &FetchWorker{
		records: records,
		client:  client,
	}
}

// Run looks up every pending ISBN key against the provider and upserts the
// normalized record. A failed or empty lookup leaves the record's flag
// untouched so a future run retries it; only a record store failure aborts
// the batch.
func (w *FetchWorker) Run(ctx context.Context) error {
	runID := uuid.New().String()

	keys, err := w.records.PendingKeys()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		log.Info("no pending ISBN keys, nothing to fetch", zap.String("run_id", runID))
		return nil
	}

	log.Info("starting fetch run",
		zap.String("run_id", runID),
		zap.Int("pending", len(keys)))

	var fetched, empty, failed int
	for _, key := range keys {
		resp, err := w.client.Search(ctx, key)
		if err != nil {
			log.Error("failed to fetch book metadata",
				zap.String("isbn_key", key),
				zap.Error(err))
			failed++
			continue
		}

		rec := fetch.MapResponse(key, resp)
		if rec == nil {
			log.Warn("no documents returned for key", zap.String("isbn_key", key))
			empty++
			continue
		}

		if err := w.records.Upsert(rec); err != nil {
			return errors.Wrapf(err, "unable to save record %s", key)
		}
		fetched++
		log.Info("record updated", zap.String("isbn_key", key))
	}

	log.Info("fetch run finished",
		zap.String("run_id", runID),
		zap.Int("fetched", fetched),
		zap.Int("empty", empty),
		zap.Int("failed", failed))
	return nil
}
