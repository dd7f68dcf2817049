package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/DaanHessen/predquest/internal/engine"
	"github.com/DaanHessen/predquest/internal/text"
)

// impactRows is how many of the latest impacts the side table shows.
const impactRows = 8

func (m model) View() string {
	switch m.view {
	case viewHelp:
		return m.renderHelp()
	case viewRecap:
		return m.renderRecap()
	default:
		return m.renderBoardLayout()
	}
}

func (m *model) sidebarWidth() int {
	if m.width < 90 {
		return 30
	}
	return 38
}

func (m *model) mainWidth() int {
	w := m.width
	if w <= 0 {
		w = 100
	}
	return w - m.sidebarWidth() - 1
}

func (m model) renderBoardLayout() string {
	snap := m.session.Snapshot()
	top := m.renderTopBar(snap)
	strip := m.renderBoard(snap)
	main := lipgloss.NewStyle().Width(m.mainWidth()).Render(m.activityRendered)
	side := lipgloss.NewStyle().
		Width(m.sidebarWidth()).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.pal.Border).
		Padding(0, 1).
		Render(m.buildSidebar(snap))
	body := lipgloss.JoinHorizontal(lipgloss.Top, main, side)
	return lipgloss.JoinVertical(lipgloss.Left, top, strip, body, m.renderBottomBar(snap))
}

func (m model) renderTopBar(snap engine.Snapshot) string {
	left := fmt.Sprintf("PREDQUEST • Scénario %d: %s", snap.Scenario.ID, snap.Scenario.Title)
	right := fmt.Sprintf("Case %s", snap.Cell)
	w := m.width
	if w <= 0 {
		w = 100
	}
	gap := w - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.NewStyle().Bold(true).Foreground(m.pal.Accent).Render(left + strings.Repeat(" ", gap) + right)
}

func (m model) renderBoard(snap engine.Snapshot) string {
	cells := make([]string, len(m.board))
	for i, id := range m.board {
		st := m.pal.cell(id).Padding(0, 1)
		if id == snap.Cell {
			st = st.Reverse(true)
		}
		if i == m.cursor {
			st = st.Underline(true)
		}
		cells[i] = st.Render(id)
	}
	w := m.width
	if w <= 0 {
		w = 100
	}
	return lipgloss.NewStyle().Width(w).Render(strings.Join(cells, " "))
}

func (m model) buildSidebar(snap engine.Snapshot) string {
	var b strings.Builder
	head := lipgloss.NewStyle().Bold(true).Foreground(m.pal.Accent)
	muted := lipgloss.NewStyle().Foreground(m.pal.Muted)

	gold := lipgloss.NewStyle().Foreground(m.pal.Gold).Bold(true)
	b.WriteString(head.Render("JETONS") + " " + gold.Render(fmt.Sprintf("● %d", snap.Tokens)) + "\n")

	clock := "--:--"
	clockStyle := muted
	if snap.TimerSet {
		clock = text.FormatClock(snap.Remaining)
		clockStyle = lipgloss.NewStyle().Foreground(m.pal.Text)
		if snap.TimerRunning && snap.Remaining <= 10 {
			clockStyle = lipgloss.NewStyle().Foreground(m.pal.Danger).Bold(true)
		}
	}
	b.WriteString(head.Render("TEMPS ") + " " + clockStyle.Render(clock) + "\n")

	if snap.Kind == engine.ActivityNone {
		level := "-"
		switch {
		case m.spinning && m.spinFrame < len(snap.SpinFrames):
			level = fmt.Sprintf("%d …", snap.SpinFrames[m.spinFrame])
		case snap.SpinResult > 0:
			level = fmt.Sprintf("%d", snap.SpinResult)
		}
		b.WriteString(head.Render("NIVEAU") + " " + level + "\n")
	}
	if snap.Kind == engine.ActivityQuest && len(snap.QuestSteps) > 0 {
		b.WriteString(head.Render("CARTE ") + " " + fmt.Sprintf("%d/%d", snap.QuestCursor+1, len(snap.QuestSteps)) + "\n")
	}

	b.WriteString("\n" + head.Render("RÔLES") + "\n")
	selected := map[string]bool{}
	for _, id := range snap.SelectedRoles {
		selected[id] = true
	}
	for i, r := range m.session.Catalog().Roles {
		mark := "[ ]"
		if selected[r.ID] {
			mark = "[x]"
		}
		pointer := "  "
		if i == m.roleCursor {
			pointer = "> "
		}
		name := lipgloss.NewStyle().Foreground(lipgloss.Color(r.Color)).Render(r.Name)
		b.WriteString(pointer + mark + " " + name + "\n")
	}

	b.WriteString("\n" + head.Render("IMPACTS") + "\n")
	if len(snap.Impacts) == 0 {
		b.WriteString(muted.Render("aucun") + "\n")
		return b.String()
	}
	b.WriteString(m.impactTable(snap.Impacts) + "\n")
	b.WriteString(fmt.Sprintf("Total %s", engine.FormatHours(snap.Totals.Total)))
	if len(snap.Impacts) > impactRows {
		b.WriteString(muted.Render(fmt.Sprintf("  (%d au total)", len(snap.Impacts))))
	}
	return b.String()
}

func (m model) impactTable(impacts []engine.Impact) string {
	start := 0
	if len(impacts) > impactRows {
		start = len(impacts) - impactRows
	}
	rows := make([][]string, 0, len(impacts)-start)
	for _, imp := range impacts[start:] {
		rows = append(rows, []string{imp.Position, imp.Type, "+" + imp.Value})
	}
	border := lipgloss.NewStyle().Foreground(m.pal.Border)
	header := lipgloss.NewStyle().Foreground(m.pal.Accent).Bold(true)
	cell := lipgloss.NewStyle().Foreground(m.pal.Text)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(border).
		BorderHeader(true).
		BorderRow(false).
		Headers("Case", "Type", "Valeur").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if col == 2 {
				return cell.Foreground(m.pal.Danger)
			}
			return cell
		})
	return t.Render()
}

func (m model) renderBottomBar(snap engine.Snapshot) string {
	var b strings.Builder
	if !snap.Notice.Empty() && !m.spinning {
		b.WriteString(m.pal.notice(snap.Notice.Level).Render(snap.Notice.Text) + "\n")
	}
	keys := "[←/→] case  [Entrée] aller  [Espace] roue  [1-9] choisir  [s] valider  [n] suivant  [[ ]] rôle  [t] cocher  [v] vérifier  [H/U/R] jeton  [x] bilan  [?] aide  [q] quitter"
	b.WriteString(lipgloss.NewStyle().Foreground(m.pal.Muted).Render(keys))
	return b.String()
}

func (m model) renderHelp() string {
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(m.pal.Border).Padding(1, 2).Width(64)
	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(m.pal.Accent).Render("PredQuest " + m.version),
		"",
		"←/→ ou h/l   déplacer le curseur sur le plateau",
		"Entrée       aller sur la case sélectionnée",
		"Espace       lancer la roue (case DÉBUT)",
		"1-9          choisir une réponse au défi",
		"s            valider la réponse choisie",
		"n            carte suivante / terminer la quête",
		"[ ]          parcourir les rôles",
		"t            cocher / décocher le rôle",
		"v            vérifier les rôles sélectionnés",
		"H            jeton: indice",
		"U            jeton: supprimer le dernier impact",
		"R            jeton: réinitialiser le temps",
		"p            scénario suivant",
		"T            thème suivant (" + m.theme + ")",
		"x            bilan des impacts",
		"q            quitter",
		"",
		"Échap pour revenir au plateau.",
	}
	return box.Render(strings.Join(lines, "\n"))
}

func (m model) renderRecap() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Foreground(m.pal.Accent).Render("BILAN"),
		m.recapRendered,
		lipgloss.NewStyle().Foreground(m.pal.Muted).Render("[Échap] retour  [q] quitter"),
	)
}
