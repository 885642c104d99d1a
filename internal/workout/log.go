package workout

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownExercise is returned by SeriesFor for a name outside the catalog
var ErrUnknownExercise = errors.New("unknown exercise")

// Log is the loaded, read-only workout history. It serves the exercise
// catalog and per-exercise metric series to the navigator and chart views.
type Log struct {
	sets       []Set
	catalog    []string
	byExercise map[string][]int

	mu     sync.Mutex
	series map[seriesKey]Series
}

type seriesKey struct {
	exercise string
	metric   Metric
}

// NewLog indexes sets by exercise and builds the sorted, deduplicated catalog.
// Sets with a blank exercise name are skipped.
func NewLog(sets []Set) *Log {
	l := &Log{
		sets:       sets,
		byExercise: make(map[string][]int),
		series:     make(map[seriesKey]Series),
	}

	for i := range sets {
		name := strings.TrimSpace(sets[i].Exercise)
		if name == "" {
			continue
		}
		if _, seen := l.byExercise[name]; !seen {
			l.catalog = append(l.catalog, name)
		}
		l.byExercise[name] = append(l.byExercise[name], i)
	}
	sort.Strings(l.catalog)

	return l
}

// Exercises returns the catalog in ascending order. Callers must not modify it.
func (l *Log) Exercises() []string {
	return l.catalog
}

// SetCount returns the number of sets in the log
func (l *Log) SetCount() int {
	return len(l.sets)
}

// Sets returns the underlying sets. Callers must not modify them.
func (l *Log) Sets() []Set {
	return l.sets
}

// ResolveMetric picks the primary metric for an exercise when m is
// MetricAuto: weight when any weight is positive, else duration, else
// distance, else reps. Concrete metrics are returned unchanged.
func (l *Log) ResolveMetric(name string, m Metric) Metric {
	if m != MetricAuto {
		return m
	}
	for _, candidate := range ConcreteMetrics[:3] {
		for _, idx := range l.byExercise[name] {
			if v, ok := l.sets[idx].Value(candidate); ok && v > 0 {
				return candidate
			}
		}
	}
	return MetricReps
}

// SeriesFor returns the time-ordered series of metric m for an exercise,
// skipping sets where the metric was not recorded. Results are memoised for
// the lifetime of the log.
func (l *Log) SeriesFor(name string, m Metric) (Series, error) {
	indexes, ok := l.byExercise[name]
	if !ok {
		return Series{}, fmt.Errorf("%w: %q", ErrUnknownExercise, name)
	}

	metric := l.ResolveMetric(name, m)
	key := seriesKey{exercise: name, metric: metric}

	l.mu.Lock()
	defer l.mu.Unlock()

	if s, ok := l.series[key]; ok {
		return s, nil
	}

	s := Series{Exercise: name, Metric: metric}
	for _, idx := range indexes {
		set := l.sets[idx]
		if v, ok := set.Value(metric); ok {
			s.Points = append(s.Points, Point{At: set.Start, Value: v})
		}
	}
	sort.SliceStable(s.Points, func(i, j int) bool {
		return s.Points[i].At.Before(s.Points[j].At)
	})

	l.series[key] = s
	return s, nil
}
