package store

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/DaanHessen/predquest/internal/engine"
)

// entryWriter is the part of JournalRepo the recorder needs.
type entryWriter interface {
	Insert(ctx context.Context, e JournalEntry) error
}

// JournalRecorder writes every session event to the journal. Failures are
// logged and never reach the game.
type JournalRecorder struct {
	ctx     context.Context
	runID   uuid.UUID
	w       entryWriter
	log     *slog.Logger
	timeout time.Duration
	now     func() time.Time
}

func NewJournalRecorder(ctx context.Context, repo *JournalRepo, runID uuid.UUID, logger *slog.Logger) *JournalRecorder {
	return newJournalRecorder(ctx, repo, runID, logger)
}

func newJournalRecorder(ctx context.Context, w entryWriter, runID uuid.UUID, logger *slog.Logger) *JournalRecorder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &JournalRecorder{ctx: ctx, runID: runID, w: w, log: logger, timeout: 2 * time.Second, now: time.Now}
}

func (r *JournalRecorder) Record(j engine.Journal) {
	e, err := EntryFromJournal(r.runID, j, r.now())
	if err != nil {
		r.log.Error("journal encode", "seq", j.Seq, "err", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.ctx, r.timeout)
	defer cancel()
	if err := r.w.Insert(ctx, e); err != nil {
		r.log.Error("journal write", "run", r.runID, "seq", j.Seq, "err", err)
	}
}
