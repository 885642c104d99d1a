package workout

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// Point is one (timestamp, value) sample of a series
type Point struct {
	At    time.Time
	Value float64
}

// Series is the time-ordered history of one metric for one exercise
type Series struct {
	Exercise string
	Metric   Metric
	Points   []Point
}

// Len returns the number of points in the series
func (s Series) Len() int {
	return len(s.Points)
}

// Values returns the point values in time order
func (s Series) Values() []float64 {
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Value
	}
	return values
}

// DailyMax collapses the series to one point per calendar day, keeping the
// best value of the day. The point time is midnight of that day.
func (s Series) DailyMax() Series {
	out := Series{Exercise: s.Exercise, Metric: s.Metric}
	for _, p := range s.Points {
		day := time.Date(p.At.Year(), p.At.Month(), p.At.Day(), 0, 0, 0, 0, p.At.Location())
		n := len(out.Points)
		if n > 0 && out.Points[n-1].At.Equal(day) {
			if p.Value > out.Points[n-1].Value {
				out.Points[n-1].Value = p.Value
			}
			continue
		}
		out.Points = append(out.Points, Point{At: day, Value: p.Value})
	}
	return out
}

// Stats summarises a series for the chart footer
type Stats struct {
	Min         float64
	Max         float64
	First       float64
	Latest      float64
	From        time.Time
	To          time.Time
	Sessions    int
	Progress    float64
	ProgressPct float64 // zero when the first value is zero
}

// Stats computes summary statistics. The zero Stats is returned for an empty series.
func (s Series) Stats() Stats {
	if len(s.Points) == 0 {
		return Stats{}
	}

	first := s.Points[0]
	last := s.Points[len(s.Points)-1]
	st := Stats{
		Min:      first.Value,
		Max:      first.Value,
		First:    first.Value,
		Latest:   last.Value,
		From:     first.At,
		To:       last.At,
		Sessions: len(s.Points),
	}
	for _, p := range s.Points[1:] {
		if p.Value < st.Min {
			st.Min = p.Value
		}
		if p.Value > st.Max {
			st.Max = p.Value
		}
	}

	st.Progress = st.Latest - st.First
	if st.First != 0 {
		st.ProgressPct = st.Progress / st.First * 100
	}
	return st
}

// TrendPerWeek fits a least-squares line through the series and returns its
// slope in metric units per week. It reports false for fewer than two
// points or when every point shares one timestamp.
func (s Series) TrendPerWeek() (float64, bool) {
	if len(s.Points) < 2 {
		return 0, false
	}

	origin := s.Points[0].At
	xs := make([]float64, len(s.Points))
	ys := make([]float64, len(s.Points))
	for i, p := range s.Points {
		xs[i] = p.At.Sub(origin).Hours() / 24
		ys[i] = p.Value
	}
	if xs[len(xs)-1] == xs[0] {
		return 0, false
	}

	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return slope * 7, true
}
