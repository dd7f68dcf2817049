package engine

// Journal is what a Recorder receives after each dispatched event.
type Journal struct {
	Seq      int
	Event    EventKind
	Cell     string
	Kind     ActivityKind
	Scenario int
	Notice   Notice
	Tokens   int
	Impacts  int
	Ledger   []Impact
}

// OpeningJournal describes a fresh session before any event, as NewSession
// would build it from the same catalog, scenario and starting tokens.
func OpeningJournal(cat *Catalog, scenario, tokens int) Journal {
	if tokens < 0 {
		tokens = 0
	}
	return Journal{
		Event:    EventStart,
		Cell:     StartCell,
		Kind:     ActivityNone,
		Scenario: cat.ResolveScenario(scenario),
		Tokens:   tokens,
		Ledger:   []Impact{},
	}
}

// Recorder observes the session, e.g. to keep a training journal.
type Recorder interface {
	Record(j Journal)
}

// NopRecorder discards everything.
type NopRecorder struct{}

func (NopRecorder) Record(Journal) {}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(Journal)

func (f RecorderFunc) Record(j Journal) { f(j) }
