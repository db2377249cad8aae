package harness

import (
	"sort"
	"strconv"
	"sync"
)

// Tally counts scored cases.
type Tally struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Accuracy is the share of correct cases in percent; 0 when empty.
func (t Tally) Accuracy() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Total) * 100
}

func (t *Tally) add(correct bool) {
	t.Total++
	if correct {
		t.Correct++
	}
}

// Bucket is one value of a dimension.
type Bucket struct {
	Value string `json:"value"`
	Tally
}

// Dimension is a reporting axis such as "order".
type Dimension struct {
	Name    string   `json:"name"`
	Buckets []Bucket `json:"buckets"`
}

// Report summarizes a run.
type Report struct {
	Dataset    string      `json:"dataset"`
	Method     string      `json:"method"`
	Overall    Tally       `json:"overall"`
	Errors     int         `json:"errors"`
	Skipped    int         `json:"skipped"`
	Dimensions []Dimension `json:"dimensions,omitempty"`
	LogPath    string      `json:"log_path,omitempty"`
}

type stats struct {
	mu       sync.Mutex
	overall  Tally
	errors   int
	skipped  int
	dimOrder []string
	dims     map[string]map[string]*Tally
}

func newStats() *stats {
	return &stats{dims: make(map[string]map[string]*Tally)}
}

func (s *stats) record(c Case, out Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch out {
	case OutcomeError:
		s.errors++
		return
	case OutcomeSkipped:
		s.skipped++
		return
	}

	correct := out == OutcomeCorrect
	s.overall.add(correct)
	for _, cat := range c.Categories {
		buckets, ok := s.dims[cat.Dimension]
		if !ok {
			buckets = make(map[string]*Tally)
			s.dims[cat.Dimension] = buckets
			s.dimOrder = append(s.dimOrder, cat.Dimension)
		}
		t, ok := buckets[cat.Value]
		if !ok {
			t = &Tally{}
			buckets[cat.Value] = t
		}
		t.add(correct)
	}
}

func (s *stats) report() *Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := &Report{Overall: s.overall, Errors: s.errors, Skipped: s.skipped}
	for _, name := range s.dimOrder {
		d := Dimension{Name: name}
		for value, t := range s.dims[name] {
			d.Buckets = append(d.Buckets, Bucket{Value: value, Tally: *t})
		}
		sort.Slice(d.Buckets, func(i, j int) bool {
			return lessValue(d.Buckets[i].Value, d.Buckets[j].Value)
		})
		r.Dimensions = append(r.Dimensions, d)
	}
	return r
}

// lessValue orders numeric bucket values numerically and the rest
// lexically.
func lessValue(a, b string) bool {
	ai, errA := strconv.Atoi(a)
	bi, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return ai < bi
	}
	return a < b
}
