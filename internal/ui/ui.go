package ui

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/DaanHessen/predquest/internal/engine"
	"github.com/DaanHessen/predquest/internal/text"
	"github.com/DaanHessen/predquest/internal/util"
)

const (
	viewBoard = "board"
	viewHelp  = "help"
	viewRecap = "recap"
)

const spinFrameInterval = 100 * time.Millisecond

// tickMsg carries the timer generation it was scheduled for.
type tickMsg struct{ gen int }

type spinFrameMsg struct{}

func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func spinFrameCmd() tea.Cmd {
	return tea.Tick(spinFrameInterval, func(time.Time) tea.Msg { return spinFrameMsg{} })
}

type model struct {
	ctx      context.Context
	session  *engine.Session
	narrator text.Narrator
	log      *slog.Logger
	version  string

	board      []string
	cursor     int
	roleCursor int

	theme        string
	pal          palette
	glamourStyle string
	renderer     *glamour.TermRenderer

	activityKey      []byte
	activityRendered string
	recapRendered    string

	view      string
	spinning  bool
	spinFrame int
	// timer generation that already has a tick in flight
	scheduled int

	width  int
	height int
}

func newModel(ctx context.Context, session *engine.Session, narrator text.Narrator, cfg util.Config, logger *slog.Logger, version string) model {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if narrator == nil {
		density, _ := text.ParseDensity(cfg.TextDensity)
		narrator = text.NewTemplateNarrator(session.Catalog(), density)
	}
	m := model{
		ctx:          ctx,
		session:      session,
		narrator:     narrator,
		log:          logger,
		version:      version,
		board:        session.Catalog().BoardCells(),
		theme:        cfg.Theme,
		pal:          paletteFor(cfg.Theme),
		glamourStyle: cfg.GlamourStyle,
		view:         viewBoard,
		width:        100,
	}
	for i, id := range m.board {
		if id == session.Cell() {
			m.cursor = i
		}
	}
	m.rebuildRenderer()
	m.refreshActivity()
	return m
}

func (m *model) rebuildRenderer() {
	wrap := m.mainWidth() - 2
	if wrap < 20 {
		wrap = 20
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(wrap)}
	if m.glamourStyle == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(m.glamourStyle))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		m.log.Warn("glamour renderer", "style", m.glamourStyle, "err", err)
		r = nil
	}
	m.renderer = r
	m.activityKey = nil
}

func (m *model) renderMarkdown(md string) string {
	if m.renderer == nil {
		return md
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		m.log.Warn("render markdown", "err", err)
		return md
	}
	return out
}

// refreshActivity re-renders the activity card when its content changed.
func (m *model) refreshActivity() {
	snap := m.session.Snapshot()
	key, err := text.ActivityCacheKey(snap)
	if err == nil && m.activityKey != nil && bytes.Equal(key, m.activityKey) {
		return
	}
	md, err := m.narrator.Activity(m.ctx, snap)
	if err != nil {
		m.log.Error("narrate activity", "cell", snap.Cell, "err", err)
		md = "_" + err.Error() + "_"
	}
	m.activityRendered = m.renderMarkdown(md)
	m.activityKey = key
}

func (m *model) refreshRecap() {
	md, err := m.narrator.Recap(m.ctx, m.session.Snapshot())
	if err != nil {
		m.log.Error("narrate recap", "err", err)
		md = "_" + err.Error() + "_"
	}
	m.recapRendered = m.renderMarkdown(md)
}

// dispatch feeds one event to the session and schedules a tick if a new
// countdown started.
func (m *model) dispatch(ev engine.Event) tea.Cmd {
	n := m.session.Dispatch(ev)
	if n.Empty() {
		m.log.Debug("event", "kind", ev.Kind, "cell", m.session.Cell())
	} else {
		m.log.Info("notice", "kind", ev.Kind, "cell", m.session.Cell(), "level", n.Level, "text", n.Text)
	}
	m.refreshActivity()
	return m.scheduleTick()
}

func (m *model) scheduleTick() tea.Cmd {
	t := m.session.Timer()
	if !t.Running() || m.scheduled == t.Generation() {
		return nil
	}
	m.scheduled = t.Generation()
	return tickCmd(m.scheduled)
}

func (m *model) moveCursor(step int) {
	if len(m.board) == 0 {
		return
	}
	m.cursor = (m.cursor + step) % len(m.board)
	if m.cursor < 0 {
		m.cursor += len(m.board)
	}
}

func (m *model) moveRoleCursor(step int) {
	n := len(m.session.Catalog().Roles)
	if n == 0 {
		return
	}
	m.roleCursor = (m.roleCursor + step) % n
	if m.roleCursor < 0 {
		m.roleCursor += n
	}
}

func (m *model) nextScenario() tea.Cmd {
	scs := m.session.Catalog().Scenarios
	if len(scs) == 0 {
		return nil
	}
	cur := m.session.Snapshot().Scenario.ID
	idx := 0
	for i, sc := range scs {
		if sc.ID == cur {
			idx = (i + 1) % len(scs)
			break
		}
	}
	return m.dispatch(engine.SelectScenarioEvent(scs[idx].ID))
}

// tea.Model implementation ---------------------------------------------------
func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rebuildRenderer()
		m.refreshActivity()
		return m, nil
	case tickMsg:
		t := m.session.Timer()
		if msg.gen != t.Generation() {
			return m, nil
		}
		if n := m.session.Dispatch(engine.TickEvent()); !n.Empty() {
			m.log.Info("timer expired", "cell", m.session.Cell(), "text", n.Text)
		}
		if t.Running() {
			return m, tickCmd(msg.gen)
		}
		return m, nil
	case spinFrameMsg:
		if !m.spinning {
			return m, nil
		}
		m.spinFrame++
		if m.spinFrame >= len(m.session.Snapshot().SpinFrames) {
			m.spinning = false
			return m, nil
		}
		return m, spinFrameCmd()
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m model) handleKey(k string) (tea.Model, tea.Cmd) {
	if k == "ctrl+c" || k == "q" {
		return m, tea.Quit
	}
	if m.view != viewBoard {
		switch k {
		case "esc", "?", "x":
			m.view = viewBoard
		}
		return m, nil
	}

	snap := m.session.Snapshot()
	switch k {
	case "left", "h":
		m.moveCursor(-1)
	case "right", "l":
		m.moveCursor(1)
	case "enter":
		if len(m.board) > 0 {
			m.spinning = false
			return m, m.dispatch(engine.SelectCellEvent(m.board[m.cursor]))
		}
	case " ":
		if m.spinning || snap.Kind != engine.ActivityNone {
			return m, nil
		}
		cmd := m.dispatch(engine.SpinEvent())
		m.spinning = true
		m.spinFrame = 0
		return m, tea.Batch(cmd, spinFrameCmd())
	case "s":
		return m, m.dispatch(engine.SubmitAnswerEvent(engine.SubmitPendingIndex))
	case "n":
		return m, m.dispatch(engine.AdvanceEvent())
	case "[":
		m.moveRoleCursor(-1)
	case "]":
		m.moveRoleCursor(1)
	case "t":
		if roles := m.session.Catalog().Roles; m.roleCursor < len(roles) {
			return m, m.dispatch(engine.ToggleRoleEvent(roles[m.roleCursor].ID))
		}
	case "v":
		if len(snap.SelectedRoles) > 0 {
			return m, m.dispatch(engine.CheckRolesEvent())
		}
	case "H":
		return m, m.dispatch(engine.SpendEvent(engine.SpendHint))
	case "U":
		return m, m.dispatch(engine.SpendEvent(engine.SpendRemoveImpact))
	case "R":
		return m, m.dispatch(engine.SpendEvent(engine.SpendResetTimer))
	case "p":
		return m, m.nextScenario()
	case "T":
		m.theme = nextThemeName(m.theme, 1)
		m.pal = paletteFor(m.theme)
	case "?":
		m.view = viewHelp
	case "x":
		m.refreshRecap()
		m.view = viewRecap
	default:
		if len(k) == 1 && k[0] >= '1' && k[0] <= '9' && snap.Kind == engine.ActivityChallenge {
			return m, m.dispatch(engine.ChooseAnswerEvent(int(k[0] - '1')))
		}
	}
	return m, nil
}
