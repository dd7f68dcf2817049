package engine

// Snapshot is a read-only copy of the session for rendering.
type Snapshot struct {
	Scenario      Scenario
	Cell          string
	Kind          ActivityKind
	Challenge     *Challenge
	Quest         *Quest
	PendingAnswer int
	QuestCursor   int
	QuestSteps    []QuestStep
	QuestDone     bool
	SelectedRoles []string
	Remaining     int
	TimerSet      bool
	TimerRunning  bool
	Tokens        int
	Impacts       []Impact
	Totals        Totals
	SpinResult    int
	SpinFrames    []int
	Notice        Notice
}

// RevealedSteps returns the quest cards up to and including the cursor.
func (s Snapshot) RevealedSteps() []QuestStep {
	if len(s.QuestSteps) == 0 {
		return nil
	}
	end := s.QuestCursor + 1
	if end > len(s.QuestSteps) {
		end = len(s.QuestSteps)
	}
	return s.QuestSteps[:end]
}

// OnLastStep reports whether the next advance completes the quest.
func (s Snapshot) OnLastStep() bool {
	return len(s.QuestSteps) > 0 && s.QuestCursor == len(s.QuestSteps)-1
}

func (s *Session) Snapshot() Snapshot {
	remaining, set := s.timer.Remaining()
	snap := Snapshot{
		Cell:          s.cell,
		Kind:          s.kind,
		PendingAnswer: s.pending,
		QuestCursor:   s.cursor,
		QuestSteps:    append([]QuestStep{}, s.steps...),
		QuestDone:     s.questDone,
		SelectedRoles: s.SelectedRoles(),
		Remaining:     remaining,
		TimerSet:      set,
		TimerRunning:  s.timer.Running(),
		Tokens:        s.tokens.Count(),
		Impacts:       s.ledger.Records(),
		Totals:        s.ledger.Totals(),
		SpinResult:    s.spin,
		SpinFrames:    append([]int{}, s.spinFrames...),
		Notice:        s.last,
	}
	if sc, ok := s.catalog.Scenario(s.scenario); ok {
		snap.Scenario = sc
	} else {
		snap.Scenario = Scenario{ID: s.scenario}
	}
	switch s.kind {
	case ActivityChallenge:
		if ch, ok := s.catalog.Challenge(s.cell); ok {
			snap.Challenge = &ch
		}
	case ActivityQuest:
		if q, ok := s.catalog.Quest(s.cell); ok {
			snap.Quest = &q
		}
	}
	return snap
}
