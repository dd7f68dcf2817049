package store

import (
	"context"
	"database/sql"
	"encoding/json"
	errs "errors"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DaanHessen/predquest/internal/engine"
)

var ErrNoChange = errs.New("no change")

// DB wraps gorm.DB for repositories and exposes Close.
type DB struct {
	gorm *gorm.DB
	sql  *sql.DB
}

func (d *DB) Close() error { return d.sql.Close() }

// Open connects to the journal database.
func Open(ctx context.Context, dsn string) (*DB, error) {
	if dsn == "" {
		return nil, errors.New("missing DSN")
	}
	// Postgres-only; gorm's own logger would write over the TUI
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, wrap(err, "open database")
	}
	sdb, err := gdb.DB()
	if err != nil {
		return nil, wrap(err, "database handle")
	}
	sdb.SetConnMaxLifetime(30 * time.Minute)
	sdb.SetMaxOpenConns(4)
	sdb.SetMaxIdleConns(2)
	if err := sdb.PingContext(ctx); err != nil {
		return nil, wrap(err, "ping database")
	}
	return &DB{gorm: gdb, sql: sdb}, nil
}

// Run is one play session.
type Run struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seed         string
	RulesVersion string
	Catalog      string
	Scenario     int
	StartedAt    time.Time
}

// JournalEntry is one recorded event with the state it left behind.
type JournalEntry struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RunID       uuid.UUID `gorm:"type:uuid;index"`
	Seq         int
	Event       string
	Cell        string
	Kind        string
	Scenario    int
	NoticeLevel string
	NoticeText  string
	Tokens      int
	Impacts     int
	Ledger      []byte `gorm:"type:jsonb"`
	RecordedAt  time.Time
}

// RunRepo basic operations.
type RunRepo struct{ db *DB }

func NewRunRepo(db *DB) *RunRepo { return &RunRepo{db: db} }

func (r *RunRepo) Create(ctx context.Context, seed, rulesVersion, catalog string, scenario int) (Run, error) {
	run := Run{ID: uuid.New(), Seed: seed, RulesVersion: rulesVersion, Catalog: catalog, Scenario: scenario, StartedAt: time.Now().UTC()}
	err := r.db.gorm.WithContext(ctx).Exec(`INSERT INTO runs(id, seed, rules_version, catalog, scenario, started_at) VALUES (?,?,?,?,?,?)`,
		run.ID, run.Seed, run.RulesVersion, run.Catalog, run.Scenario, run.StartedAt).Error
	if err != nil {
		return Run{}, wrap(err, "insert run")
	}
	return run, nil
}

func (r *RunRepo) Get(ctx context.Context, id uuid.UUID) (Run, error) {
	row := r.db.gorm.WithContext(ctx).Raw(`SELECT id, seed, rules_version, catalog, scenario, started_at FROM runs WHERE id = ?`, id).Row()
	var rr Run
	if err := row.Scan(&rr.ID, &rr.Seed, &rr.RulesVersion, &rr.Catalog, &rr.Scenario, &rr.StartedAt); err != nil {
		return Run{}, wrap(err, "get run")
	}
	return rr, nil
}

// JournalRepo persists journal entries.
type JournalRepo struct{ db *DB }

func NewJournalRepo(db *DB) *JournalRepo { return &JournalRepo{db: db} }

func (jr *JournalRepo) Insert(ctx context.Context, e JournalEntry) error {
	err := jr.db.gorm.WithContext(ctx).Exec(`INSERT INTO journal_entries(
		id, run_id, seq, event, cell, kind, scenario, notice_level, notice_text, tokens, impacts, ledger, recorded_at
	) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		e.ID, e.RunID, e.Seq, e.Event, e.Cell, e.Kind, e.Scenario, e.NoticeLevel, e.NoticeText, e.Tokens, e.Impacts, e.Ledger, e.RecordedAt,
	).Error
	return wrap(err, "insert journal entry")
}

// List returns a run's entries in sequence order.
func (jr *JournalRepo) List(ctx context.Context, runID uuid.UUID) ([]JournalEntry, error) {
	var out []JournalEntry
	err := jr.db.gorm.WithContext(ctx).Where("run_id = ?", runID).Order("seq").Find(&out).Error
	if err != nil {
		return nil, wrap(err, "list journal")
	}
	return out, nil
}

// WithTx executes fn within a database transaction. Repos built on tx share it.
func (d *DB) WithTx(ctx context.Context, fn func(tx *DB) error) error {
	return d.gorm.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		return fn(&DB{gorm: gtx, sql: d.sql})
	})
}

// StartRun registers a run together with its opening journal entry.
func StartRun(ctx context.Context, db *DB, seed, rulesVersion, catalog string, opening engine.Journal) (Run, error) {
	var run Run
	err := db.WithTx(ctx, func(tx *DB) error {
		var err error
		run, err = NewRunRepo(tx).Create(ctx, seed, rulesVersion, catalog, opening.Scenario)
		if err != nil {
			return err
		}
		e, err := EntryFromJournal(run.ID, opening, run.StartedAt)
		if err != nil {
			return err
		}
		return NewJournalRepo(tx).Insert(ctx, e)
	})
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

// EntryFromJournal maps an engine journal onto a row.
func EntryFromJournal(runID uuid.UUID, j engine.Journal, at time.Time) (JournalEntry, error) {
	ledger := j.Ledger
	if ledger == nil {
		ledger = []engine.Impact{}
	}
	raw, err := json.Marshal(ledger)
	if err != nil {
		return JournalEntry{}, wrap(err, "encode ledger")
	}
	return JournalEntry{
		ID:          uuid.New(),
		RunID:       runID,
		Seq:         j.Seq,
		Event:       string(j.Event),
		Cell:        j.Cell,
		Kind:        string(j.Kind),
		Scenario:    j.Scenario,
		NoticeLevel: string(j.Notice.Level),
		NoticeText:  j.Notice.Text,
		Tokens:      j.Tokens,
		Impacts:     j.Impacts,
		Ledger:      raw,
		RecordedAt:  at.UTC(),
	}, nil
}

// Records decodes the ledger stored with an entry.
func (e JournalEntry) Records() ([]engine.Impact, error) {
	var out []engine.Impact
	if len(e.Ledger) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(e.Ledger, &out); err != nil {
		return nil, wrap(err, "decode ledger")
	}
	return out, nil
}

// Helper error wrap
func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, msg)
}
