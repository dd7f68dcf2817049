package store

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/DaanHessen/predquest/internal/engine"
)

func TestEntryFromJournal(t *testing.T) {
	run := uuid.New()
	at := time.Date(2026, 3, 4, 10, 0, 0, 0, time.FixedZone("CET", 3600))
	j := engine.Journal{
		Seq:      4,
		Event:    engine.EventSubmitAnswer,
		Cell:     "B",
		Kind:     engine.ActivityChallenge,
		Scenario: 2,
		Notice:   engine.Notice{Level: engine.NoticePenalty, Text: "Mauvaise réponse !"},
		Tokens:   1,
		Impacts:  1,
		Ledger:   []engine.Impact{{Type: "Temps de traversée", Value: "2h", Position: "B"}},
	}
	e, err := EntryFromJournal(run, j, at)
	if err != nil {
		t.Fatal(err)
	}
	if e.RunID != run || e.Seq != 4 || e.Event != "submit_answer" || e.Kind != "challenge" || e.NoticeLevel != "penalty" {
		t.Fatalf("unexpected entry %+v", e)
	}
	if e.RecordedAt.Location() != time.UTC {
		t.Fatalf("timestamp not normalised to UTC")
	}
	var back []engine.Impact
	if err := json.Unmarshal(e.Ledger, &back); err != nil || len(back) != 1 || back[0].Position != "B" {
		t.Fatalf("ledger %s: %v", e.Ledger, err)
	}

	empty, _ := EntryFromJournal(run, engine.Journal{Seq: 1}, at)
	if string(empty.Ledger) != "[]" {
		t.Fatalf("empty ledger encoded as %s", empty.Ledger)
	}
}

func TestJournalEntryRecords(t *testing.T) {
	e, err := EntryFromJournal(uuid.New(), engine.Journal{Ledger: []engine.Impact{{Type: "Echanges inutiles", Value: "1h", Position: "A"}}}, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	recs, err := e.Records()
	if err != nil || len(recs) != 1 || recs[0].Position != "A" {
		t.Fatalf("records %+v: %v", recs, err)
	}
	if recs, err := (JournalEntry{}).Records(); err != nil || len(recs) != 0 {
		t.Fatalf("empty ledger %+v: %v", recs, err)
	}
	if _, err := (JournalEntry{Ledger: []byte("{")}).Records(); err == nil {
		t.Fatalf("expected decode error")
	}
}

type fakeWriter struct {
	got []JournalEntry
	err error
}

func (f *fakeWriter) Insert(ctx context.Context, e JournalEntry) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("no deadline")
	}
	f.got = append(f.got, e)
	return f.err
}

func TestJournalRecorderWithSession(t *testing.T) {
	w := &fakeWriter{}
	run := uuid.New()
	rec := newJournalRecorder(context.Background(), w, run, nil)
	cat := &engine.Catalog{Challenges: map[string]engine.Challenge{
		"A": {Title: "Saisie", Options: []string{"a", "b"}, CorrectAnswer: 1, Impact: engine.Penalty{Type: "Echanges inutiles", Value: "1h"}},
	}}
	s := engine.NewSession(cat, engine.WithRecorder(rec))
	s.Dispatch(engine.SelectCellEvent("A"))
	s.Dispatch(engine.SubmitAnswerEvent(0))
	if len(w.got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(w.got))
	}
	if w.got[1].Impacts != 1 || w.got[1].RunID != run || w.got[1].Seq != 2 {
		t.Fatalf("unexpected entry %+v", w.got[1])
	}
}

func TestJournalRecorderSwallowsErrors(t *testing.T) {
	w := &fakeWriter{err: errors.New("db down")}
	rec := newJournalRecorder(context.Background(), w, uuid.New(), nil)
	rec.Record(engine.Journal{Seq: 1})
	if len(w.got) != 1 {
		t.Fatalf("write not attempted")
	}
}

func TestEmbeddedMigrationsPaired(t *testing.T) {
	ups, _ := fs.Glob(migrationFS, "migrations/*.up.sql")
	downs, _ := fs.Glob(migrationFS, "migrations/*.down.sql")
	if len(ups) == 0 || len(ups) != len(downs) {
		t.Fatalf("migrations unpaired: %v / %v", ups, downs)
	}
}

func TestMissingDSN(t *testing.T) {
	if _, err := NewMigrator(""); err == nil {
		t.Fatal("expected error")
	}
	if _, err := Open(context.Background(), ""); err == nil {
		t.Fatal("expected error")
	}
}
