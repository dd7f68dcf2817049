package engine

import (
	"strings"
	"testing"
)

func TestSpendWithoutTokensIsNoop(t *testing.T) {
	s := newTestSession()
	s.SelectCell("A")
	s.SubmitAnswer(0)
	for _, a := range ListSpendActions() {
		if n := s.Spend(a); !n.Empty() {
			t.Fatalf("%s: expected no-op, got %q", a, n.Text)
		}
	}
	if s.Tokens() != 0 || len(s.Impacts()) != 1 {
		t.Fatalf("state changed without tokens")
	}
}

func TestSpendUnknownActionKeepsToken(t *testing.T) {
	s := newTestSession(WithTokens(1))
	if n := s.Spend("bribe"); !n.Empty() || s.Tokens() != 1 {
		t.Fatalf("unknown action consumed a token")
	}
}

func TestRemoveImpact(t *testing.T) {
	s := newTestSession(WithTokens(2))
	s.SelectCell("A")
	s.SubmitAnswer(0)
	s.SelectCell("B")
	s.SubmitAnswer(1)

	n := s.Spend(SpendRemoveImpact)
	if n.Text != "Dernier impact négatif supprimé !" {
		t.Fatalf("unexpected notice %q", n.Text)
	}
	imps := s.Impacts()
	if len(imps) != 1 || imps[0].Position != "A" {
		t.Fatalf("expected only the older impact to remain: %+v", imps)
	}
	if s.Tokens() != 1 {
		t.Fatalf("expected 1 token left, got %d", s.Tokens())
	}
}

func TestRemoveImpactOnEmptyLedgerRefunds(t *testing.T) {
	s := newTestSession(WithTokens(1))
	n := s.Spend(SpendRemoveImpact)
	if n.Level != NoticeInfo || n.Text != "Aucun impact à supprimer." {
		t.Fatalf("unexpected notice %+v", n)
	}
	if s.Tokens() != 1 {
		t.Fatalf("token not refunded: %d", s.Tokens())
	}
}

func TestHintMessages(t *testing.T) {
	s := newTestSession(WithTokens(3))
	s.SelectCell("A")
	n := s.Spend(SpendHint)
	if n.Text != "Indice pour le défi A: La réponse est liée à saisie de la demande." {
		t.Fatalf("challenge hint %q", n.Text)
	}
	s.SelectCell("1")
	n = s.Spend(SpendHint)
	if !strings.HasPrefix(n.Text, "Indice pour la quête 1:") {
		t.Fatalf("quest hint %q", n.Text)
	}
	s.SelectCell(StartCell)
	if n = s.Spend(SpendHint); !n.Empty() {
		t.Fatalf("idle hint should have no notice")
	}
	if s.Tokens() != 0 {
		t.Fatalf("idle hint still costs a token, got %d left", s.Tokens())
	}
}

func TestResetTimerBudgets(t *testing.T) {
	s := newTestSession(WithTokens(3))
	s.SelectCell("1")
	for i := 0; i < 100; i++ {
		s.Tick()
	}
	n := s.Spend(SpendResetTimer)
	if n.Text != "Le temps a été réinitialisé !" {
		t.Fatalf("unexpected notice %q", n.Text)
	}
	if rem, _ := s.Timer().Remaining(); rem != QuestBudget || !s.Timer().Running() {
		t.Fatalf("quest reset to %d", rem)
	}

	s.SelectCell("A")
	s.Spend(SpendResetTimer)
	if rem, _ := s.Timer().Remaining(); rem != DefaultResetSpin {
		t.Fatalf("challenge reset without spin should use %d, got %d", DefaultResetSpin, rem)
	}

	s.SelectCell(StartCell)
	if n := s.Spend(SpendResetTimer); n.Text != "Le temps a été réinitialisé !" {
		t.Fatalf("idle reset notice %q", n.Text)
	}
	if _, set := s.Timer().Remaining(); set {
		t.Fatalf("idle reset must not start a countdown")
	}
	if s.Tokens() != 0 {
		t.Fatalf("expected all tokens spent, got %d", s.Tokens())
	}
}

func TestTokensNeverNegative(t *testing.T) {
	s := newTestSession(WithTokens(1))
	for i := 0; i < 5; i++ {
		s.Spend(SpendHint)
		if s.Tokens() < 0 {
			t.Fatalf("token count went negative")
		}
	}
	var tk Tokens
	if tk.Take() {
		t.Fatalf("empty counter allowed a take")
	}
}
