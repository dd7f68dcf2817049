package ui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/DaanHessen/predquest/internal/engine"
)

type palette struct {
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Accent    lipgloss.Color
	AccentAlt lipgloss.Color
	Border    lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Danger    lipgloss.Color
	Gold      lipgloss.Color
	Challenge lipgloss.Color
	Quest     lipgloss.Color
}

var palettes = map[string]palette{
	"catppuccin": {
		Text:      lipgloss.Color("#cdd6f4"),
		Muted:     lipgloss.Color("#a6adc8"),
		Accent:    lipgloss.Color("#cba6f7"),
		AccentAlt: lipgloss.Color("#89b4fa"),
		Border:    lipgloss.Color("#585b70"),
		Success:   lipgloss.Color("#a6e3a1"),
		Warning:   lipgloss.Color("#f9e2af"),
		Danger:    lipgloss.Color("#f38ba8"),
		Gold:      lipgloss.Color("#fab387"),
		Challenge: lipgloss.Color("#89b4fa"),
		Quest:     lipgloss.Color("#94e2d5"),
	},
	"dracula": {
		Text:      lipgloss.Color("#f8f8f2"),
		Muted:     lipgloss.Color("#6272a4"),
		Accent:    lipgloss.Color("#ff79c6"),
		AccentAlt: lipgloss.Color("#bd93f9"),
		Border:    lipgloss.Color("#44475a"),
		Success:   lipgloss.Color("#50fa7b"),
		Warning:   lipgloss.Color("#f1fa8c"),
		Danger:    lipgloss.Color("#ff5555"),
		Gold:      lipgloss.Color("#ffb86c"),
		Challenge: lipgloss.Color("#8be9fd"),
		Quest:     lipgloss.Color("#50fa7b"),
	},
	"gruvbox": {
		Text:      lipgloss.Color("#ebdbb2"),
		Muted:     lipgloss.Color("#a89984"),
		Accent:    lipgloss.Color("#fabd2f"),
		AccentAlt: lipgloss.Color("#d3869b"),
		Border:    lipgloss.Color("#665c54"),
		Success:   lipgloss.Color("#b8bb26"),
		Warning:   lipgloss.Color("#fe8019"),
		Danger:    lipgloss.Color("#fb4934"),
		Gold:      lipgloss.Color("#fabd2f"),
		Challenge: lipgloss.Color("#83a598"),
		Quest:     lipgloss.Color("#8ec07c"),
	},
	"predtest": {
		Text:      lipgloss.Color("#1f2937"),
		Muted:     lipgloss.Color("#6b7280"),
		Accent:    lipgloss.Color("#2563eb"),
		AccentAlt: lipgloss.Color("#1e3a8a"),
		Border:    lipgloss.Color("#93c5fd"),
		Success:   lipgloss.Color("#16a34a"),
		Warning:   lipgloss.Color("#d97706"),
		Danger:    lipgloss.Color("#dc2626"),
		Gold:      lipgloss.Color("#eab308"),
		Challenge: lipgloss.Color("#2563eb"),
		Quest:     lipgloss.Color("#059669"),
	},
}

func paletteFor(name string) palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes["catppuccin"]
}

func themeNames() []string {
	names := make([]string, 0, len(palettes))
	for k := range palettes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func nextThemeName(current string, step int) string {
	names := themeNames()
	if len(names) == 0 {
		return current
	}
	idx := 0
	for i, name := range names {
		if name == current {
			idx = i
			break
		}
	}
	idx = (idx + step) % len(names)
	if idx < 0 {
		idx += len(names)
	}
	return names[idx]
}

func (p palette) notice(level engine.NoticeLevel) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	switch level {
	case engine.NoticeSuccess:
		return s.Foreground(p.Success)
	case engine.NoticeReward:
		return s.Foreground(p.Gold)
	case engine.NoticePenalty:
		return s.Foreground(p.Danger)
	default:
		return s.Foreground(p.AccentAlt)
	}
}

func (p palette) cell(id string) lipgloss.Style {
	switch engine.ClassifyCell(id) {
	case engine.ActivityChallenge:
		return lipgloss.NewStyle().Foreground(p.Challenge)
	case engine.ActivityQuest:
		return lipgloss.NewStyle().Foreground(p.Quest).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	}
}
