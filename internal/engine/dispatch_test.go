package engine

import "testing"

func TestDispatchRecordsEvents(t *testing.T) {
	var got []Journal
	s := newTestSession(WithRecorder(RecorderFunc(func(j Journal) { got = append(got, j) })))
	s.Dispatch(SelectCellEvent("B"))
	s.Dispatch(ChooseAnswerEvent(1))
	n := s.Dispatch(SubmitAnswerEvent(SubmitPendingIndex))
	if s.LastNotice() != n {
		t.Fatalf("last notice not tracked: %+v", s.LastNotice())
	}
	s.Dispatch(TickEvent())
	s.Dispatch(Event{Kind: "bogus"})

	if len(got) != 3 {
		t.Fatalf("expected 3 journal entries, got %d", len(got))
	}
	last := got[2]
	if last.Seq != 3 || last.Event != EventSubmitAnswer || last.Cell != "B" || last.Impacts != 1 {
		t.Fatalf("unexpected journal %+v", last)
	}
	if last.Notice.Level != NoticePenalty {
		t.Fatalf("expected penalty in journal, got %+v", last.Notice)
	}
}

func TestDispatchRoutesEveryKind(t *testing.T) {
	s := newTestSession(WithTokens(5))
	s.Dispatch(SelectScenarioEvent(2))
	s.Dispatch(SpinEvent())
	s.Dispatch(SelectCellEvent("C"))
	s.Dispatch(ToggleRoleEvent("operateur"))
	s.Dispatch(ToggleRoleEvent("equipeTom"))
	if n := s.Dispatch(CheckRolesEvent()); n.Level != NoticeSuccess {
		t.Fatalf("roles check: %+v", n)
	}
	s.Dispatch(SelectCellEvent("1"))
	s.Dispatch(AdvanceEvent())
	if s.QuestCursor() != 1 {
		t.Fatalf("advance not routed")
	}
	if n := s.Dispatch(SpendEvent(SpendHint)); n.Empty() {
		t.Fatalf("spend not routed")
	}
	if s.Snapshot().Scenario.ID != 2 {
		t.Fatalf("scenario not routed")
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	s := newTestSession()
	s.SelectCell("1")
	snap := s.Snapshot()
	snap.QuestSteps[0].Content = "changed"
	if s.Snapshot().QuestSteps[0].Content == "changed" {
		t.Fatalf("snapshot shares quest steps with the session")
	}
	if snap.Quest == nil || snap.Quest.Title != "Tri" {
		t.Fatalf("snapshot missing quest: %+v", snap.Quest)
	}
}

func TestTickKeepsLastNotice(t *testing.T) {
	s := newTestSession(WithTokens(1))
	s.Dispatch(SelectCellEvent("1"))
	hint := s.Dispatch(SpendEvent(SpendHint))
	if hint.Empty() {
		t.Fatalf("expected a hint")
	}
	if n := s.Dispatch(TickEvent()); !n.Empty() {
		t.Fatalf("plain tick produced %+v", n)
	}
	if got := s.Snapshot().Notice; got != hint {
		t.Fatalf("hint replaced by tick: %+v", got)
	}
}

func TestStaleTickAfterSubmitKeepsPenalty(t *testing.T) {
	s := newTestSession(WithTokens(1))
	s.Dispatch(SelectCellEvent("A"))
	s.Dispatch(SpendEvent(SpendResetTimer))
	wrong := s.Dispatch(SubmitAnswerEvent(0))
	if wrong.Level != NoticePenalty {
		t.Fatalf("expected penalty, got %+v", wrong)
	}
	s.Dispatch(TickEvent())
	if got := s.Snapshot().Notice; got != wrong {
		t.Fatalf("penalty replaced by tick: %+v", got)
	}
}

func TestExpiryTickBecomesLastNotice(t *testing.T) {
	s := newTestSession(WithTokens(1))
	s.Dispatch(SelectCellEvent("1"))
	s.Dispatch(SpendEvent(SpendHint))
	var n Notice
	for i := 0; i < QuestBudget; i++ {
		n = s.Dispatch(TickEvent())
	}
	if n.Level != NoticePenalty || s.Snapshot().Notice != n {
		t.Fatalf("expiry notice not shown: %+v / %+v", n, s.Snapshot().Notice)
	}
}

func TestOpeningJournalMatchesNewSession(t *testing.T) {
	cat := testCatalog()
	j := OpeningJournal(cat, 42, 2)
	s := NewSession(cat, WithScenario(42), WithTokens(2))
	snap := s.Snapshot()
	if j.Event != EventStart || j.Seq != 0 || j.Cell != snap.Cell || j.Kind != snap.Kind {
		t.Fatalf("unexpected opening %+v", j)
	}
	if j.Scenario != snap.Scenario.ID || j.Tokens != snap.Tokens || j.Impacts != 0 {
		t.Fatalf("opening %+v disagrees with session %+v", j, snap)
	}
}
