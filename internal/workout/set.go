package workout

import "time"

// Set is a single logged row from the workout export
type Set struct {
	Row      int // 1-based data row in the source file (header excluded)
	Start    time.Time
	Exercise string

	values  [metricCount]float64
	present [metricCount]bool
}

// Value returns the value for a concrete metric and whether it was recorded
func (s Set) Value(m Metric) (float64, bool) {
	i := m.index()
	if i < 0 {
		return 0, false
	}
	return s.values[i], s.present[i]
}

// SetValue records a value for a concrete metric. MetricAuto is ignored.
func (s *Set) SetValue(m Metric, v float64) {
	i := m.index()
	if i < 0 {
		return
	}
	s.values[i] = v
	s.present[i] = true
}
