package worker

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hapinus/booksync/log"
	"github.com/hapinus/booksync/record"
	"github.com/hapinus/booksync/store"
)

type SyncWorker struct {
	records *record.Store
	store   *store.Store
}

func NewSyncWorker(records *record.Store, store *store.Store) *SyncWorker {
	return &SyncWorker{
		records: records,
		store:   store,
	}
}

// Run writes every record flagged as updated into the relational store, in
// file order. A per-record failure is logged with its ISBN key and the run
// continues; the flag stays TRUE so a later run retries the record. Only a
// corrupt record file aborts the batch.
func (w *SyncWorker) Run() error {
	runID := uuid.New().String()

	records, err := w.records.LoadAll()
	if err != nil {
		return err
	}

	var synced, failed, skipped int
	for _, rec := range records {
		if !rec.Updated() {
			skipped++
			continue
		}
		if err := w.store.SyncBook(rec); err != nil {
			log.Error("failed to sync record",
				zap.String("isbn_key", rec.ISBNKey),
				zap.Error(err))
			failed++
			continue
		}
		synced++
		log.Info("record synced", zap.String("isbn_key", rec.ISBNKey))
	}

	if synced+failed == 0 {
		log.Info("no records ready to sync", zap.String("run_id", runID))
		return nil
	}

	log.Info("sync run finished",
		zap.String("run_id", runID),
		zap.Int("synced", synced),
		zap.Int("failed", failed),
		zap.Int("skipped", skipped))
	return nil
}
