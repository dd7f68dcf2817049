package engine

// Event is one discrete input from the presentation layer. Only the fields
// relevant to Kind are read.
type Event struct {
	Kind     EventKind
	Cell     string
	Index    int
	Role     string
	Action   SpendAction
	Scenario int
}

func SelectCellEvent(id string) Event  { return Event{Kind: EventSelectCell, Cell: id} }
func SpinEvent() Event                 { return Event{Kind: EventSpin} }
func ChooseAnswerEvent(idx int) Event  { return Event{Kind: EventChooseAnswer, Index: idx} }
func SubmitAnswerEvent(idx int) Event  { return Event{Kind: EventSubmitAnswer, Index: idx} }
func AdvanceEvent() Event              { return Event{Kind: EventAdvance} }
func ToggleRoleEvent(id string) Event  { return Event{Kind: EventToggleRole, Role: id} }
func CheckRolesEvent() Event           { return Event{Kind: EventCheckRoles} }
func SpendEvent(a SpendAction) Event   { return Event{Kind: EventSpend, Action: a} }
func TickEvent() Event                 { return Event{Kind: EventTick} }
func SelectScenarioEvent(id int) Event { return Event{Kind: EventSelectScenario, Scenario: id} }

// SubmitPendingIndex asks SubmitAnswerEvent to use the pending choice.
const SubmitPendingIndex = -1

// Dispatch applies an event and returns its notice. A silent tick neither
// replaces the last notice nor reaches the recorder.
func (s *Session) Dispatch(ev Event) Notice {
	var n Notice
	switch ev.Kind {
	case EventSelectCell:
		n = s.SelectCell(ev.Cell)
	case EventSpin:
		n = s.spinNotice()
	case EventChooseAnswer:
		n = s.ChooseAnswer(ev.Index)
	case EventSubmitAnswer:
		if ev.Index == SubmitPendingIndex {
			n = s.SubmitPending()
		} else {
			n = s.SubmitAnswer(ev.Index)
		}
	case EventAdvance:
		n = s.Advance()
	case EventToggleRole:
		n = s.ToggleRole(ev.Role)
	case EventCheckRoles:
		n = s.CheckRoles()
	case EventSpend:
		n = s.Spend(ev.Action)
	case EventTick:
		n = s.Tick()
	case EventSelectScenario:
		n = s.SelectScenario(ev.Scenario)
	default:
		return Notice{}
	}
	if ev.Kind == EventTick && n.Empty() {
		return n
	}
	s.last = n
	s.record(ev.Kind, n)
	return n
}

func (s *Session) record(kind EventKind, n Notice) {
	s.seq++
	s.recorder.Record(Journal{
		Seq:      s.seq,
		Event:    kind,
		Cell:     s.cell,
		Kind:     s.kind,
		Scenario: s.scenario,
		Notice:   n,
		Tokens:   s.tokens.Count(),
		Impacts:  s.ledger.Len(),
		Ledger:   s.ledger.Records(),
	})
}
