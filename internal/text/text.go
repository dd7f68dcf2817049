package text

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/DaanHessen/predquest/internal/engine"
)

// Narrator renders session state as markdown for the activity panel.
type Narrator interface {
	Activity(ctx context.Context, snap engine.Snapshot) (string, error)
	Recap(ctx context.Context, snap engine.Snapshot) (string, error)
}

// Density controls how much prose the template narrator emits.
type Density string

const (
	DensityConcise  Density = "concise"
	DensityStandard Density = "standard"
	DensityRich     Density = "rich"
)

func ParseDensity(s string) (Density, error) {
	switch d := Density(strings.ToLower(strings.TrimSpace(s))); d {
	case DensityConcise, DensityStandard, DensityRich:
		return d, nil
	case "":
		return DensityStandard, nil
	default:
		return "", fmt.Errorf("unknown text density %q", s)
	}
}

// templateNarrator is deterministic and offline.
type templateNarrator struct {
	cat     *engine.Catalog
	density Density
}

func NewTemplateNarrator(cat *engine.Catalog, density Density) Narrator {
	if density == "" {
		density = DensityStandard
	}
	return &templateNarrator{cat: cat, density: density}
}

func (t *templateNarrator) Activity(ctx context.Context, snap engine.Snapshot) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var b strings.Builder
	switch snap.Kind {
	case engine.ActivityChallenge:
		t.challenge(&b, snap)
	case engine.ActivityQuest:
		t.quest(&b, snap)
	default:
		t.wheel(&b, snap)
	}
	if t.density == DensityRich && snap.Kind == engine.ActivityChallenge {
		if ids := t.cat.RequiredRoles(snap.Cell); len(ids) > 0 {
			fmt.Fprintf(&b, "\n_Rôles attendus à cette étape: %d_\n", len(ids))
		}
	}
	return b.String(), nil
}

func (t *templateNarrator) wheel(b *strings.Builder, snap engine.Snapshot) {
	fmt.Fprintf(b, "## Scénario %d: %s\n\n", snap.Scenario.ID, snap.Scenario.Title)
	if t.density != DensityConcise && snap.Scenario.Description != "" {
		b.WriteString(snap.Scenario.Description + "\n\n")
	}
	b.WriteString("### Roue de la fortune\n\n")
	if snap.SpinResult == 0 {
		b.WriteString("Lancez la roue pour fixer le niveau de difficulté.\n")
		return
	}
	fmt.Fprintf(b, "**Niveau %d** · %s\n", snap.SpinResult, FormatClock(engine.SpinBudget(snap.SpinResult)))
}

func (t *templateNarrator) challenge(b *strings.Builder, snap engine.Snapshot) {
	if snap.Challenge == nil {
		fmt.Fprintf(b, "## Défi %s\n\n_Aucun défi n'est défini pour cette case._\n", snap.Cell)
		return
	}
	ch := snap.Challenge
	fmt.Fprintf(b, "## Défi %s: %s\n\n%s\n\n", snap.Cell, ch.Title, ch.Question)
	for i, opt := range ch.Options {
		if i == snap.PendingAnswer {
			fmt.Fprintf(b, "%d. **%s** ◀\n", i+1, opt)
		} else {
			fmt.Fprintf(b, "%d. %s\n", i+1, opt)
		}
	}
	if t.density != DensityConcise && ch.Submittable() {
		fmt.Fprintf(b, "\n_Mauvaise réponse: %s +%s_\n", ch.Impact.Type, ch.Impact.Value)
	}
}

func (t *templateNarrator) quest(b *strings.Builder, snap engine.Snapshot) {
	if snap.Quest == nil || len(snap.QuestSteps) == 0 {
		fmt.Fprintf(b, "## Quête %s\n\n_Aucune quête n'est définie pour cette case._\n", snap.Cell)
		return
	}
	q := snap.Quest
	fmt.Fprintf(b, "## Quête %s: %s\n\n", snap.Cell, q.Title)
	if t.density != DensityConcise && q.Description != "" {
		b.WriteString(q.Description + "\n\n")
	}
	card := 0
	for _, st := range snap.RevealedSteps() {
		switch st.Kind {
		case engine.StepInstruction:
			b.WriteString("### Consigne\n\n")
		case engine.StepCard:
			card++
			fmt.Fprintf(b, "### Carte n°%d\n\n", card)
		case engine.StepAnswer:
			b.WriteString("### Réponse\n\n")
		}
		b.WriteString(st.Content + "\n\n")
		if st.Impact != nil {
			fmt.Fprintf(b, "_Impact: %s +%s_\n\n", st.Impact.Type, st.Impact.Value)
		}
	}
	if snap.QuestDone {
		b.WriteString("**Quête terminée.**\n")
	}
}

// Recap summarises the impact ledger.
func (t *templateNarrator) Recap(ctx context.Context, snap engine.Snapshot) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "## Bilan: Scénario %d\n\n", snap.Scenario.ID)
	fmt.Fprintf(&b, "Jetons d'or: **%d**\n\n", snap.Tokens)
	if len(snap.Impacts) == 0 {
		b.WriteString("Aucun impact négatif enregistré.\n")
		return b.String(), nil
	}
	b.WriteString("| Type | Total |\n|---|---|\n")
	for _, typ := range snap.Totals.Types() {
		fmt.Fprintf(&b, "| %s | %s |\n", typ, engine.FormatHours(snap.Totals.ByType[typ]))
	}
	fmt.Fprintf(&b, "| **Total** | **%s** |\n", engine.FormatHours(snap.Totals.Total))
	if len(snap.Totals.Unparsed) > 0 {
		fmt.Fprintf(&b, "\n_%d impact(s) sans durée lisible._\n", len(snap.Totals.Unparsed))
	}
	if t.density == DensityRich {
		b.WriteString("\n### Détail\n\n")
		for _, imp := range snap.Impacts {
			fmt.Fprintf(&b, "- %s: %s +%s\n", imp.Position, imp.Type, imp.Value)
		}
	}
	return b.String(), nil
}

// FormatClock renders seconds as mm:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// ActivityCacheKey fingerprints the parts of a snapshot that change the
// rendered activity, so callers can skip re-rendering on timer ticks.
func ActivityCacheKey(snap engine.Snapshot) ([]byte, error) {
	payload := struct {
		Scenario int
		Cell     string
		Kind     engine.ActivityKind
		Pending  int
		Cursor   int
		Done     bool
		Spin     int
		Steps    int
	}{snap.Scenario.ID, snap.Cell, snap.Kind, snap.PendingAnswer, snap.QuestCursor, snap.QuestDone, snap.SpinResult, len(snap.QuestSteps)}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(raw)
	return sum[:], nil
}

// WithFallback returns a narrator that prefers primary and falls back to backup on error.
func WithFallback(primary, fallback Narrator) Narrator {
	return &fallbackNarrator{p: primary, f: fallback}
}

type fallbackNarrator struct{ p, f Narrator }

func (n *fallbackNarrator) Activity(ctx context.Context, snap engine.Snapshot) (string, error) {
	if n.p == nil {
		return n.f.Activity(ctx, snap)
	}
	if s, err := n.p.Activity(ctx, snap); err == nil {
		return s, nil
	}
	return n.f.Activity(ctx, snap)
}

func (n *fallbackNarrator) Recap(ctx context.Context, snap engine.Snapshot) (string, error) {
	if n.p == nil {
		return n.f.Recap(ctx, snap)
	}
	if s, err := n.p.Recap(ctx, snap); err == nil {
		return s, nil
	}
	return n.f.Recap(ctx, snap)
}
