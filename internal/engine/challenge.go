package engine

import "fmt"

// ChooseAnswer records the player's pending option for the open challenge.
func (s *Session) ChooseAnswer(idx int) Notice {
	ch, ok := s.currentChallenge()
	if !ok || !ch.Submittable() || idx < 0 || idx >= len(ch.Options) {
		return Notice{}
	}
	s.pending = idx
	return Notice{}
}

// PendingAnswer returns the chosen option, or -1.
func (s *Session) PendingAnswer() int { return s.pending }

// SubmitPending submits the pending option; without one it does nothing.
func (s *Session) SubmitPending() Notice {
	if s.pending < 0 {
		return Notice{}
	}
	return s.SubmitAnswer(s.pending)
}

// SubmitAnswer evaluates an option against the open challenge. A wrong answer
// logs the challenge's own penalty; a right one may earn a token. Either way
// the countdown stops and the pending answer clears. Retries are unlimited.
func (s *Session) SubmitAnswer(idx int) Notice {
	ch, ok := s.currentChallenge()
	if !ok || !ch.Submittable() {
		return Notice{}
	}
	defer func() {
		s.timer.Stop()
		s.pending = -1
	}()

	if idx == ch.CorrectAnswer {
		if s.reward.Observe(true, s.rng) {
			s.tokens.Earn()
			return reward("Bonne réponse ! Vous avez gagné un jeton d'or !")
		}
		return success("Bonne réponse !")
	}
	s.reward.Observe(false, s.rng)
	s.ledger.Append(ch.Impact, s.cell)
	return penalty(fmt.Sprintf("Mauvaise réponse ! Vous recevez un malus: %s +%s", ch.Impact.Type, ch.Impact.Value))
}
