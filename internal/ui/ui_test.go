package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DaanHessen/predquest/internal/content"
	"github.com/DaanHessen/predquest/internal/engine"
	"github.com/DaanHessen/predquest/internal/util"
)

func newTestModel(t *testing.T) model {
	t.Helper()
	cat, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	seed, _ := engine.NewRunSeed("ui-test")
	// chance 0 keeps token counts predictable
	s := engine.NewSession(cat, engine.WithRandom(seed.Stream("session")), engine.WithReward(engine.ChanceReward{Chance: 0}))
	return newModel(context.Background(), s, nil, util.Config{Theme: "dracula", GlamourStyle: "notty"}, nil, "test")
}

func key(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m model, keys ...string) (model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(model)
	}
	return m, cmd
}

func TestSelectAndAnswerChallenge(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(m, "right", "enter")
	if m.session.Cell() != "A" || m.session.Kind() != engine.ActivityChallenge {
		t.Fatalf("expected challenge A, got %s/%s", m.session.Cell(), m.session.Kind())
	}
	m, _ = press(m, "2", "s")
	if n := m.session.LastNotice(); n.Level != engine.NoticeSuccess {
		t.Fatalf("expected success, got %+v", n)
	}
	if len(m.session.Impacts()) != 0 {
		t.Fatalf("correct answer logged an impact")
	}
	if !strings.Contains(m.View(), "Bonne réponse") {
		t.Fatalf("notice not rendered")
	}
}

func TestQuestTicksDropStaleGenerations(t *testing.T) {
	m := newTestModel(t)
	// board order: DÉBUT A B 1
	m, cmd := press(m, "right", "right", "right", "enter")
	if m.session.Cell() != "1" || cmd == nil {
		t.Fatalf("expected quest 1 with a scheduled tick, cell=%s", m.session.Cell())
	}
	gen := m.session.Timer().Generation()

	next, cmd := m.Update(tickMsg{gen: gen - 1})
	m = next.(model)
	if rem, _ := m.session.Timer().Remaining(); rem != engine.QuestBudget || cmd != nil {
		t.Fatalf("stale tick applied: %d", rem)
	}
	next, cmd = m.Update(tickMsg{gen: gen})
	m = next.(model)
	if rem, _ := m.session.Timer().Remaining(); rem != engine.QuestBudget-1 || cmd == nil {
		t.Fatalf("current tick not applied: %d", rem)
	}
}

func TestQuestAdvanceToCompletion(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(m, "right", "right", "right", "enter")
	for i := 0; i < 7; i++ {
		m, _ = press(m, "n")
	}
	if m.session.Tokens() != 1 || len(m.session.Impacts()) != 1 {
		t.Fatalf("tokens=%d impacts=%d", m.session.Tokens(), len(m.session.Impacts()))
	}
	if !strings.Contains(m.View(), "IMPACTS") {
		t.Fatalf("side panel missing")
	}
}

func TestSpinAnimation(t *testing.T) {
	m := newTestModel(t)
	m, cmd := press(m, " ")
	if !m.spinning || cmd == nil {
		t.Fatalf("spin did not start")
	}
	res := m.session.Snapshot().SpinResult
	if res < 1 || res > 3 {
		t.Fatalf("spin result %d", res)
	}
	m, _ = press(m, " ")
	for i := 0; i < engine.SpinFrameCount; i++ {
		next, _ := m.Update(spinFrameMsg{})
		m = next.(model)
	}
	if m.spinning {
		t.Fatalf("animation did not finish")
	}
	if rem, _ := m.session.Timer().Remaining(); rem != engine.SpinBudget(res) {
		t.Fatalf("timer %d for level %d", rem, res)
	}
}

func TestVerifyRolesNeedsSelection(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(m, "right", "enter", "v")
	if len(m.session.Impacts()) != 0 || !m.session.LastNotice().Empty() {
		t.Fatalf("verify with empty selection should do nothing")
	}
	// role cursor starts on moniteur, the expected role for A
	m, _ = press(m, "t", "v")
	if n := m.session.LastNotice(); n.Level != engine.NoticeSuccess {
		t.Fatalf("expected success, got %+v", n)
	}
	m, _ = press(m, "]", "t", "v")
	if len(m.session.Impacts()) != 1 {
		t.Fatalf("wrong role should cost one impact")
	}
}

func TestOverlaysAndTheme(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(m, "?")
	if m.view != viewHelp || !strings.Contains(m.View(), "PredQuest test") {
		t.Fatalf("help view not shown")
	}
	m, _ = press(m, "esc", "x")
	if m.view != viewRecap || !strings.Contains(m.recapRendered, "Bilan") {
		t.Fatalf("recap not shown: %q", m.recapRendered)
	}
	m, _ = press(m, "esc", "T")
	if m.view != viewBoard || m.theme != nextThemeName("dracula", 1) {
		t.Fatalf("theme %q view %q", m.theme, m.view)
	}
	m, _ = press(m, "p")
	if m.session.Snapshot().Scenario.ID != 2 {
		t.Fatalf("scenario not cycled")
	}
	_, cmd := press(m, "q")
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
}

func TestNextThemeWraps(t *testing.T) {
	names := themeNames()
	if nextThemeName(names[len(names)-1], 1) != names[0] || nextThemeName(names[0], -1) != names[len(names)-1] {
		t.Fatalf("theme cycling does not wrap")
	}
	if paletteFor("nope") != palettes["catppuccin"] {
		t.Fatalf("unknown theme should fall back")
	}
}
