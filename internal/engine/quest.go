package engine

// Advance reveals the next quest card, or completes the quest when the last
// card is showing. Completion always logs the answer card's penalty and earns
// one token; the quest models inherent process cost, not player accuracy.
func (s *Session) Advance() Notice {
	if s.kind != ActivityQuest || len(s.steps) == 0 || s.questDone {
		return Notice{}
	}
	if s.cursor < len(s.steps)-1 {
		s.cursor++
		return Notice{}
	}
	if st, ok := answerStep(s.steps); ok && st.Impact != nil {
		s.ledger.Append(*st.Impact, s.cell)
	}
	s.timer.Stop()
	s.tokens.Earn()
	s.questDone = true
	return reward("Quête terminée ! Vous recevez un jeton d'or.")
}

// QuestCursor returns the index of the card currently shown.
func (s *Session) QuestCursor() int { return s.cursor }

// QuestCompleted reports whether the open quest has been finished.
func (s *Session) QuestCompleted() bool { return s.questDone }
