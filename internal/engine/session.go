package engine

import (
	"github.com/zyedidia/generic/mapset"
)

// Notice is the single user-visible message an operation may produce.
// The zero value means no notice.
type Notice struct {
	Level NoticeLevel
	Text  string
}

func (n Notice) Empty() bool { return n.Text == "" }

func info(text string) Notice    { return Notice{Level: NoticeInfo, Text: text} }
func success(text string) Notice { return Notice{Level: NoticeSuccess, Text: text} }
func reward(text string) Notice  { return Notice{Level: NoticeReward, Text: text} }
func penalty(text string) Notice { return Notice{Level: NoticePenalty, Text: text} }

// SpinFrameCount is how many transient values precede the committed spin result.
const SpinFrameCount = 10

// Session is the whole mutable game state for one player. It is not safe for
// concurrent use; the UI delivers events one at a time.
type Session struct {
	catalog  *Catalog
	rng      Random
	reward   RewardPolicy
	recorder Recorder

	scenario int
	cell     string
	kind     ActivityKind

	// challenge
	pending int

	// quest
	cursor    int
	steps     []QuestStep
	questDone bool

	roles mapset.Set[string]

	timer      *Countdown
	spin       int
	spinFrames []int

	tokens Tokens
	ledger Ledger
	seq    int
	last   Notice
	// notice of the expiry fired by the current tick, if any
	expiry Notice
}

// SessionOption configures a Session.
type SessionOption func(*Session)

func WithRandom(r Random) SessionOption { return func(s *Session) { s.rng = r } }

func WithReward(p RewardPolicy) SessionOption { return func(s *Session) { s.reward = p } }

func WithRecorder(r Recorder) SessionOption { return func(s *Session) { s.recorder = r } }

func WithScenario(id int) SessionOption { return func(s *Session) { s.scenario = id } }

// WithTokens seeds the gold token count, e.g. for facilitator-run sessions.
func WithTokens(n int) SessionOption {
	return func(s *Session) {
		if n > 0 {
			s.tokens.count = n
		}
	}
}

// NewSession starts a player at the board origin.
func NewSession(cat *Catalog, opts ...SessionOption) *Session {
	if cat == nil {
		cat = &Catalog{}
	}
	s := &Session{
		catalog:  cat,
		reward:   ChanceReward{Chance: DefaultRewardChance},
		recorder: NopRecorder{},
		scenario: 1,
		cell:     StartCell,
		kind:     ActivityNone,
		pending:  -1,
		roles:    newRoleSet(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed, _ := NewRunSeed("predquest")
		s.rng = seed.Stream("session")
	}
	s.scenario = cat.ResolveScenario(s.scenario)
	s.timer = NewCountdown(s.onExpire)
	return s
}

func (s *Session) Catalog() *Catalog { return s.catalog }

func (s *Session) Cell() string { return s.cell }

func (s *Session) Kind() ActivityKind { return s.kind }

func (s *Session) Tokens() int { return s.tokens.Count() }

func (s *Session) Impacts() []Impact { return s.ledger.Records() }

// Timer exposes the countdown for schedulers; callers must not Start it directly.
func (s *Session) Timer() *Countdown { return s.timer }

// LastNotice returns the notice produced by the most recent event, including expiry.
func (s *Session) LastNotice() Notice { return s.last }

// resetActivity discards all transient activity state.
func (s *Session) resetActivity() {
	s.kind = ActivityNone
	s.pending = -1
	s.cursor = 0
	s.steps = nil
	s.questDone = false
	s.roles = newRoleSet()
}

func newRoleSet() mapset.Set[string] { return mapset.New[string]() }

func (s *Session) currentChallenge() (Challenge, bool) {
	if s.kind != ActivityChallenge {
		return Challenge{}, false
	}
	return s.catalog.Challenge(s.cell)
}

func (s *Session) onExpire() {
	switch s.kind {
	case ActivityChallenge:
		s.ledger.Append(Penalty{Type: ImpactTransit, Value: "1h"}, s.cell)
		s.expiry = penalty("Temps écoulé ! Vous recevez un malus de temps de traversée +1h")
	case ActivityQuest:
		s.ledger.Append(Penalty{Type: ImpactTransit, Value: "2h"}, s.cell)
		s.expiry = penalty("Temps écoulé ! Vous recevez un malus de temps de traversée +2h")
	}
}

// Tick advances the countdown by one second. Only an expiry produces a
// notice; a plain tick leaves the last notice on screen.
func (s *Session) Tick() Notice {
	s.expiry = Notice{}
	s.timer.Tick()
	if !s.expiry.Empty() {
		s.last = s.expiry
	}
	return s.expiry
}

// Impact type labels produced by the session itself.
const (
	ImpactTransit   = "Temps de traversée"
	ImpactExchanges = "Échanges inutiles"
)
