package ui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DaanHessen/predquest/internal/engine"
	"github.com/DaanHessen/predquest/internal/text"
	"github.com/DaanHessen/predquest/internal/util"
)

// Run boots the TUI program and blocks until it exits.
func Run(ctx context.Context, session *engine.Session, narrator text.Narrator, cfg util.Config, logger *slog.Logger, version string) error {
	m := newModel(ctx, session, narrator, cfg, logger, version)
	program := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
