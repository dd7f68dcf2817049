package engine

import (
	"fmt"
	"regexp"
)

// StartCell is the board origin; it opens the spinner view.
const StartCell = "DÉBUT"

var (
	challengeCellRe = regexp.MustCompile(`^[A-Z]$`)
	questCellRe     = regexp.MustCompile(`^[1-6]$`)
)

// Penalty describes an impact to log: a free-form type label and magnitude label ("1h").
type Penalty struct {
	Type  string `yaml:"type" json:"type"`
	Value string `yaml:"value" json:"value"`
}

// Challenge is a quiz prompt bound to a letter cell.
type Challenge struct {
	Title         string   `yaml:"title"`
	Question      string   `yaml:"question"`
	Options       []string `yaml:"options,omitempty"`
	CorrectAnswer int      `yaml:"correct_answer"`
	Impact        Penalty  `yaml:"impact"`
}

// Submittable reports whether the challenge offers options to answer.
func (c Challenge) Submittable() bool { return len(c.Options) > 0 }

type QuestStep struct {
	Kind    StepKind `yaml:"kind"`
	Content string   `yaml:"content"`
	Impact  *Penalty `yaml:"impact,omitempty"`
}

// Quest is a multi-card exercise bound to a digit cell.
type Quest struct {
	Title       string      `yaml:"title"`
	Description string      `yaml:"description"`
	Steps       []QuestStep `yaml:"steps"`
}

// AnswerStep returns the first step of kind answer.
func (q Quest) AnswerStep() (QuestStep, bool) {
	return answerStep(q.Steps)
}

func answerStep(steps []QuestStep) (QuestStep, bool) {
	for _, st := range steps {
		if st.Kind == StepAnswer {
			return st, true
		}
	}
	return QuestStep{}, false
}

type Role struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

type Scenario struct {
	ID          int    `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Catalog is the static game content. It is read-only once loaded.
type Catalog struct {
	Name       string               `yaml:"name"`
	Board      []string             `yaml:"board"`
	Challenges map[string]Challenge `yaml:"challenges"`
	Quests     map[string]Quest     `yaml:"quests"`
	Roles      []Role               `yaml:"roles"`
	StageRoles map[string][]string  `yaml:"stage_roles"`
	Scenarios  []Scenario           `yaml:"scenarios"`
}

func (c *Catalog) Challenge(cell string) (Challenge, bool) {
	ch, ok := c.Challenges[cell]
	return ch, ok
}

func (c *Catalog) Quest(cell string) (Quest, bool) {
	q, ok := c.Quests[cell]
	return q, ok
}

func (c *Catalog) Role(id string) (Role, bool) {
	for _, r := range c.Roles {
		if r.ID == id {
			return r, true
		}
	}
	return Role{}, false
}

// RoleName returns the display name, or the id when the role is unknown.
func (c *Catalog) RoleName(id string) string {
	if r, ok := c.Role(id); ok {
		return r.Name
	}
	return id
}

// RequiredRoles returns the ground-truth roles for a cell; absent entries yield nil.
func (c *Catalog) RequiredRoles(cell string) []string {
	return c.StageRoles[cell]
}

func (c *Catalog) Scenario(id int) (Scenario, bool) {
	for _, s := range c.Scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return Scenario{}, false
}

// ResolveScenario returns id when the catalog knows it, else the first scenario.
func (c *Catalog) ResolveScenario(id int) int {
	if _, ok := c.Scenario(id); !ok && len(c.Scenarios) > 0 {
		return c.Scenarios[0].ID
	}
	return id
}

// BoardCells returns the board in walking order. Without an explicit board,
// the start cell is followed by every letter and then every quest digit.
func (c *Catalog) BoardCells() []string {
	if len(c.Board) > 0 {
		return append([]string{}, c.Board...)
	}
	cells := []string{StartCell}
	for r := 'A'; r <= 'Z'; r++ {
		cells = append(cells, string(r))
	}
	for r := '1'; r <= '6'; r++ {
		cells = append(cells, string(r))
	}
	return cells
}

// Validate checks the structural rules the session relies on.
func (c *Catalog) Validate() error {
	for cell, ch := range c.Challenges {
		if !IsChallengeCell(cell) {
			return fmt.Errorf("challenge %q: not a letter cell", cell)
		}
		if ch.Submittable() && (ch.CorrectAnswer < 0 || ch.CorrectAnswer >= len(ch.Options)) {
			return fmt.Errorf("challenge %q: correct answer %d outside %d options", cell, ch.CorrectAnswer, len(ch.Options))
		}
	}
	for cell, q := range c.Quests {
		if !IsQuestCell(cell) {
			return fmt.Errorf("quest %q: not a quest cell", cell)
		}
		answers := 0
		for i, st := range q.Steps {
			if !st.Kind.Validate() {
				return fmt.Errorf("quest %q step %d: unknown kind %q", cell, i, st.Kind)
			}
			if st.Kind == StepAnswer {
				answers++
			}
		}
		if len(q.Steps) > 0 && answers != 1 {
			return fmt.Errorf("quest %q: expected exactly one answer step, got %d", cell, answers)
		}
	}
	seen := map[string]bool{}
	for _, r := range c.Roles {
		if r.ID == "" {
			return fmt.Errorf("role with empty id")
		}
		if seen[r.ID] {
			return fmt.Errorf("duplicate role %q", r.ID)
		}
		seen[r.ID] = true
	}
	for cell, ids := range c.StageRoles {
		if !IsChallengeCell(cell) {
			return fmt.Errorf("stage roles %q: not a letter cell", cell)
		}
		for _, id := range ids {
			if !seen[id] {
				return fmt.Errorf("stage roles %q: unknown role %q", cell, id)
			}
		}
	}
	return nil
}

// IsChallengeCell reports whether id is a single uppercase letter A-Z.
func IsChallengeCell(id string) bool { return challengeCellRe.MatchString(id) }

// IsQuestCell reports whether id is a single digit 1-6.
func IsQuestCell(id string) bool { return questCellRe.MatchString(id) }

// ClassifyCell maps a cell identifier to the activity it opens.
func ClassifyCell(id string) ActivityKind {
	switch {
	case IsChallengeCell(id):
		return ActivityChallenge
	case IsQuestCell(id):
		return ActivityQuest
	default:
		return ActivityNone
	}
}
