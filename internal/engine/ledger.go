package engine

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Impact is one logged penalty.
type Impact struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Position string `json:"position"`
}

// Ledger is an ordered impact log; most recent is last.
type Ledger struct {
	records []Impact
}

func (l *Ledger) Append(p Penalty, cell string) {
	l.records = append(l.records, Impact{Type: p.Type, Value: p.Value, Position: cell})
}

// RemoveLast drops the most recent record; false when the ledger is empty.
func (l *Ledger) RemoveLast() (Impact, bool) {
	if len(l.records) == 0 {
		return Impact{}, false
	}
	last := l.records[len(l.records)-1]
	l.records = l.records[:len(l.records)-1]
	return last, true
}

func (l *Ledger) Len() int { return len(l.records) }

// Records returns a copy in insertion order.
func (l *Ledger) Records() []Impact { return append([]Impact{}, l.records...) }

// Totals sums impact durations per type.
type Totals struct {
	ByType   map[string]time.Duration
	Total    time.Duration
	Unparsed []Impact
}

// Types returns the summed types sorted by name.
func (t Totals) Types() []string {
	names := make([]string, 0, len(t.ByType))
	for k := range t.ByType {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (l *Ledger) Totals() Totals {
	t := Totals{ByType: map[string]time.Duration{}}
	for _, rec := range l.records {
		d, ok := ParseImpactValue(rec.Value)
		if !ok {
			t.Unparsed = append(t.Unparsed, rec)
			continue
		}
		t.ByType[rec.Type] += d
		t.Total += d
	}
	return t
}

// ParseImpactValue reads labels such as "1h", "1.5h" or "30min".
func ParseImpactValue(v string) (time.Duration, bool) {
	s := strings.ToLower(strings.TrimSpace(v))
	s = strings.TrimPrefix(s, "+")
	unit := time.Hour
	switch {
	case strings.HasSuffix(s, "min"):
		unit = time.Minute
		s = strings.TrimSuffix(s, "min")
	case strings.HasSuffix(s, "h"):
		s = strings.TrimSuffix(s, "h")
	default:
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return time.Duration(f * float64(unit)), true
}

// FormatHours renders a duration as a compact hour label ("2h", "1.5h").
func FormatHours(d time.Duration) string {
	return strconv.FormatFloat(d.Hours(), 'f', -1, 64) + "h"
}
