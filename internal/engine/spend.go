package engine

import (
	"fmt"
	"strings"
)

// Spend uses one gold token on a special action. Without tokens nothing happens.
// Removing from an empty ledger refunds the token. Hint and timer reset still
// consume the token when no activity is open; an idle reset leaves the
// countdown untouched but still confirms.
func (s *Session) Spend(action SpendAction) Notice {
	if !action.Validate() || !s.tokens.Take() {
		return Notice{}
	}
	switch action {
	case SpendHint:
		return s.hint()
	case SpendRemoveImpact:
		if _, ok := s.ledger.RemoveLast(); ok {
			return success("Dernier impact négatif supprimé !")
		}
		s.tokens.Refund()
		return info("Aucun impact à supprimer.")
	case SpendResetTimer:
		switch s.kind {
		case ActivityChallenge:
			s.timer.Reset(s.challengeBudget())
		case ActivityQuest:
			s.timer.Reset(QuestBudget)
		}
		return info("Le temps a été réinitialisé !")
	}
	return Notice{}
}

func (s *Session) hint() Notice {
	switch s.kind {
	case ActivityChallenge:
		ch, ok := s.catalog.Challenge(s.cell)
		if !ok {
			return Notice{}
		}
		return info(fmt.Sprintf("Indice pour le défi %s: La réponse est liée à %s.", s.cell, strings.ToLower(ch.Title)))
	case ActivityQuest:
		return info(fmt.Sprintf("Indice pour la quête %s: Regardez attentivement chaque carte et concentrez-vous sur les détails clés.", s.cell))
	}
	return Notice{}
}

// challengeBudget is the budget of the retained spin, or the long budget without one.
func (s *Session) challengeBudget() int {
	if s.spin == 0 {
		return DefaultResetSpin
	}
	return SpinBudget(s.spin)
}
