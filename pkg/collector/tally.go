package collector

import (
	"context"
	"sort"
	"sync"

	"github.com/trackable-go/trackable/pkg/ixid"
)

// Tally aggregates events in memory: a count per value for every tracking
// field. It is safe for concurrent use.
type Tally struct {
	mu        sync.Mutex
	total     int
	untracked int
	invalid   int
	counts    map[ixid.Field]map[string]int
}

// NewTally creates an empty Tally.
func NewTally() *Tally {
	return &Tally{counts: make(map[ixid.Field]map[string]int)}
}

// LogEvent adds event to the tally.
func (t *Tally) LogEvent(ctx context.Context, event *Event) error {
	t.Add(event.Tracked, event.Tracking)
	return nil
}

// Add counts one URL. Untracked URLs only bump the total and untracked counts.
func (t *Tally) Add(tracked bool, tr ixid.Tracking) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total++
	if !tracked {
		t.untracked++
		return
	}
	for _, f := range ixid.SchemaV2.Fields {
		v := tr.Get(f)
		if v == nil {
			continue
		}
		byValue, ok := t.counts[f]
		if !ok {
			byValue = make(map[string]int)
			t.counts[f] = byValue
		}
		byValue[*v]++
	}
}

// AddInvalid counts a URL whose token could not be decoded.
func (t *Tally) AddInvalid() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total++
	t.invalid++
}

// Count is the number of events seen with one field value.
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FieldSummary is the per-value breakdown for one field.
type FieldSummary struct {
	Field  string  `json:"field"`
	Counts []Count `json:"counts"`
}

// Summary is a point-in-time snapshot of a Tally.
type Summary struct {
	Total     int            `json:"total"`
	Tracked   int            `json:"tracked"`
	Untracked int            `json:"untracked"`
	Invalid   int            `json:"invalid"`
	Fields    []FieldSummary `json:"fields"`
}

// Snapshot returns the current counts. Fields follow schema order; values are
// sorted by descending count, then by value.
func (t *Tally) Snapshot() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Summary{
		Total:     t.total,
		Tracked:   t.total - t.untracked - t.invalid,
		Untracked: t.untracked,
		Invalid:   t.invalid,
		Fields:    []FieldSummary{},
	}
	for _, f := range ixid.SchemaV2.Fields {
		byValue, ok := t.counts[f]
		if !ok {
			continue
		}
		fs := FieldSummary{Field: string(f)}
		for v, n := range byValue {
			fs.Counts = append(fs.Counts, Count{Value: v, Count: n})
		}
		sort.Slice(fs.Counts, func(i, j int) bool {
			if fs.Counts[i].Count != fs.Counts[j].Count {
				return fs.Counts[i].Count > fs.Counts[j].Count
			}
			return fs.Counts[i].Value < fs.Counts[j].Value
		})
		s.Fields = append(s.Fields, fs)
	}
	return s
}
