package engine

import "fmt"

// SelectCell moves the token. It always discards the open activity and timer,
// then opens whatever the new cell designates.
func (s *Session) SelectCell(id string) Notice {
	s.resetActivity()
	s.timer.Clear()
	s.spin = 0
	s.spinFrames = nil
	s.cell = id

	switch ClassifyCell(id) {
	case ActivityChallenge:
		s.kind = ActivityChallenge
	case ActivityQuest:
		s.kind = ActivityQuest
		if q, ok := s.catalog.Quest(id); ok && len(q.Steps) > 0 {
			s.steps = append([]QuestStep{}, q.Steps...)
			s.timer.Start(QuestBudget)
		}
	}
	return Notice{}
}

// SpinResult is one roll of the difficulty spinner.
type SpinResult struct {
	Frames []int
	Value  int
	Budget int
}

// SpinBudget maps a spinner value to its countdown budget in seconds.
func SpinBudget(value int) int {
	if value <= 2 {
		return ShortSpinBudget
	}
	return LongSpinBudget
}

// Spin rolls the difficulty spinner and starts the countdown at the matching
// budget. It is ignored while a challenge or quest is open.
func (s *Session) Spin() (SpinResult, bool) {
	if s.kind != ActivityNone {
		return SpinResult{}, false
	}
	frames := make([]int, SpinFrameCount)
	for i := range frames {
		frames[i] = s.rng.Intn(3) + 1
	}
	value := s.rng.Intn(3) + 1
	s.spin = value
	s.spinFrames = frames
	budget := SpinBudget(value)
	s.timer.Start(budget)
	return SpinResult{Frames: append([]int{}, frames...), Value: value, Budget: budget}, true
}

// spinNotice wraps Spin for event dispatch.
func (s *Session) spinNotice() Notice {
	res, ok := s.Spin()
	if !ok {
		return Notice{}
	}
	return info(fmt.Sprintf("Résultat: Niveau %d", res.Value))
}

// SelectScenario switches the narrative frame; unknown ids are ignored.
func (s *Session) SelectScenario(id int) Notice {
	sc, ok := s.catalog.Scenario(id)
	if !ok {
		return Notice{}
	}
	s.scenario = id
	return info(fmt.Sprintf("Scénario %d: %s", sc.ID, sc.Title))
}
