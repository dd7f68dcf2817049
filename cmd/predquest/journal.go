package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/DaanHessen/predquest/internal/engine"
	"github.com/DaanHessen/predquest/internal/store"
	"github.com/DaanHessen/predquest/internal/util"
)

// runJournal prints a recorded run: its events and the ledger it ended with.
func runJournal(cfg util.Config, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: journal <run-id>")
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return errors.Wrapf(err, "run id %q", args[0])
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	db, err := store.Open(ctx, cfg.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	run, err := store.NewRunRepo(db).Get(ctx, id)
	if err != nil {
		return err
	}
	entries, err := store.NewJournalRepo(db).List(ctx, id)
	if err != nil {
		return err
	}
	return printJournal(os.Stdout, run, entries)
}

func printJournal(w io.Writer, run store.Run, entries []store.JournalEntry) error {
	fmt.Fprintf(w, "Run %s  seed=%s  catalog=%s  rules=%s  scenario=%d  started=%s\n",
		run.ID, run.Seed, run.Catalog, run.RulesVersion, run.Scenario, run.StartedAt.Format(time.RFC3339))

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{strconv.Itoa(e.Seq), e.Event, e.Cell, e.NoticeText, strconv.Itoa(e.Tokens), strconv.Itoa(e.Impacts)})
	}
	events := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Événement", "Case", "Message", "Jetons", "Impacts").
		Rows(rows...)
	fmt.Fprintln(w, events.Render())

	if len(entries) == 0 {
		return nil
	}
	impacts, err := entries[len(entries)-1].Records()
	if err != nil {
		return err
	}
	var ledger engine.Ledger
	for _, imp := range impacts {
		ledger.Append(engine.Penalty{Type: imp.Type, Value: imp.Value}, imp.Position)
	}
	totals := ledger.Totals()
	fmt.Fprintf(w, "Impacts: %d  total %s\n", ledger.Len(), engine.FormatHours(totals.Total))
	for _, typ := range totals.Types() {
		fmt.Fprintf(w, "  %s: %s\n", typ, engine.FormatHours(totals.ByType[typ]))
	}
	for _, imp := range totals.Unparsed {
		fmt.Fprintf(w, "  %s: %s (non compté)\n", imp.Type, imp.Value)
	}
	return nil
}
