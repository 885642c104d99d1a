package workout

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"
)

const sampleCSV = `Workout Start,Exercise,Weight,Reps,Duration,Distance
2024-01-01 08:00:00,Squat,100,5,,
2024-01-03 08:00:00,Squat,105,5,,
2024-01-03 08:10:00,Squat,110,3,,
2024-01-02 09:00:00,Bench Press,60,8,,
2024-01-05 09:00:00,Bench Press,,8,,
2024-01-04 07:00:00,Running,,,1800,5.2
2024-01-06 07:00:00,Running,,,1700,5.4
2024-01-02 09:30:00,Deadlift,140,5,,
2024-01-02 09:40:00,Plank,,,60,
2024-01-07 09:40:00,  ,50,5,,
`

func mustParse(t *testing.T, csv string) []Set {
	t.Helper()
	sets, err := ParseCSV(strings.NewReader(csv), DefaultColumns(), nil)
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}
	return sets
}

func TestParseCSV(t *testing.T) {
	sets := mustParse(t, sampleCSV)

	// The blank exercise row is skipped
	if len(sets) != 9 {
		t.Fatalf("len(sets) = %d; want 9", len(sets))
	}

	first := sets[0]
	if first.Exercise != "Squat" || first.Row != 1 {
		t.Errorf("first set = %+v", first)
	}
	if v, ok := first.Value(MetricWeight); !ok || v != 100 {
		t.Errorf("weight = %v, %v; want 100, true", v, ok)
	}
	if _, ok := first.Value(MetricDuration); ok {
		t.Error("empty duration cell should be missing")
	}
	if want := time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local); !first.Start.Equal(want) {
		t.Errorf("start = %v; want %v", first.Start, want)
	}
}

func TestParseCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		wantRow int
	}{
		{"empty", "", ErrEmptyFile, 0},
		{"no exercise column", "Workout Start,Weight\n2024-01-01,5\n", ErrMissingColumn, 0},
		{"no start column", "Exercise,Weight\nSquat,5\n", ErrMissingColumn, 0},
		{"bad date", "Workout Start,Exercise\n2024-01-01,Squat\nyesterday,Squat\n", nil, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(tt.input), DefaultColumns(), nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v; want %v", err, tt.wantErr)
			}
			if tt.wantRow > 0 {
				var rowErr *RowError
				if !errors.As(err, &rowErr) {
					t.Fatalf("error %v is not a *RowError", err)
				}
				if rowErr.Row != tt.wantRow {
					t.Errorf("row = %d; want %d", rowErr.Row, tt.wantRow)
				}
			}
		})
	}
}

func TestParseCSV_CustomColumnsAndBOM(t *testing.T) {
	input := "\ufeffdate , Exercise Name,Weight (kg)\n3/4/2024,Row,\"1,000\"\n"
	cols := Columns{Start: "Date", Exercise: "exercise name", Weight: "Weight (kg)"}

	sets, err := ParseCSV(strings.NewReader(input), cols, nil)
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}
	if len(sets) != 1 {
		t.Fatalf("len(sets) = %d; want 1", len(sets))
	}
	if v, ok := sets[0].Value(MetricWeight); !ok || v != 1000 {
		t.Errorf("weight = %v, %v; want 1000, true", v, ok)
	}
	if sets[0].Start.Month() != time.March || sets[0].Start.Day() != 4 {
		t.Errorf("start = %v; want March 4", sets[0].Start)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"", 0, false},
		{"  ", 0, false},
		{"42", 42, true},
		{" 2.5 ", 2.5, true},
		{"0", 0, true},
		{"1,250", 1250, true},
		{"NaN", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseNumber(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseNumber(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNewLog_Catalog(t *testing.T) {
	log := NewLog(mustParse(t, sampleCSV))

	want := []string{"Bench Press", "Deadlift", "Plank", "Running", "Squat"}
	if got := log.Exercises(); !reflect.DeepEqual(got, want) {
		t.Errorf("Exercises() = %v; want %v", got, want)
	}

	for i := 1; i < len(log.Exercises()); i++ {
		if log.Exercises()[i-1] >= log.Exercises()[i] {
			t.Errorf("catalog not strictly ascending at %d", i)
		}
	}
}

func TestNewLog_Dedup(t *testing.T) {
	sets := []Set{
		{Exercise: "Squat"},
		{Exercise: " Squat "},
		{Exercise: "squat"},
	}
	log := NewLog(sets)

	// Case is preserved, so "squat" is a distinct exercise
	want := []string{"Squat", "squat"}
	if got := log.Exercises(); !reflect.DeepEqual(got, want) {
		t.Errorf("Exercises() = %v; want %v", got, want)
	}
}

func TestResolveMetric(t *testing.T) {
	log := NewLog(mustParse(t, sampleCSV))

	tests := []struct {
		exercise string
		want     Metric
	}{
		{"Squat", MetricWeight},
		{"Running", MetricDuration},
		{"Plank", MetricDuration},
		{"Deadlift", MetricWeight},
	}
	for _, tt := range tests {
		if got := log.ResolveMetric(tt.exercise, MetricAuto); got != tt.want {
			t.Errorf("ResolveMetric(%q) = %v; want %v", tt.exercise, got, tt.want)
		}
	}

	if got := log.ResolveMetric("Squat", MetricReps); got != MetricReps {
		t.Errorf("concrete metric changed to %v", got)
	}
}

func TestSeriesFor(t *testing.T) {
	log := NewLog(mustParse(t, sampleCSV))

	s, err := log.SeriesFor("Squat", MetricAuto)
	if err != nil {
		t.Fatalf("SeriesFor() error = %v", err)
	}
	if s.Metric != MetricWeight {
		t.Errorf("metric = %v; want weight", s.Metric)
	}
	if want := []float64{100, 105, 110}; !reflect.DeepEqual(s.Values(), want) {
		t.Errorf("values = %v; want %v", s.Values(), want)
	}

	// Missing weights are filtered out
	bench, _ := log.SeriesFor("Bench Press", MetricWeight)
	if bench.Len() != 1 {
		t.Errorf("bench len = %d; want 1", bench.Len())
	}

	// Points come back sorted by time even when the file is not
	for i := 1; i < s.Len(); i++ {
		if s.Points[i].At.Before(s.Points[i-1].At) {
			t.Errorf("series not sorted at %d", i)
		}
	}

	again, _ := log.SeriesFor("Squat", MetricAuto)
	if !reflect.DeepEqual(s, again) {
		t.Error("memoised series differs from first result")
	}
}

func TestSeriesFor_Unknown(t *testing.T) {
	log := NewLog(mustParse(t, sampleCSV))
	if _, err := log.SeriesFor("Curl", MetricWeight); !errors.Is(err, ErrUnknownExercise) {
		t.Errorf("error = %v; want ErrUnknownExercise", err)
	}
}

func TestDailyMax(t *testing.T) {
	log := NewLog(mustParse(t, sampleCSV))
	s, _ := log.SeriesFor("Squat", MetricWeight)

	daily := s.DailyMax()
	if want := []float64{100, 110}; !reflect.DeepEqual(daily.Values(), want) {
		t.Errorf("daily values = %v; want %v", daily.Values(), want)
	}
	if daily.Points[1].At.Hour() != 0 {
		t.Errorf("daily point not at midnight: %v", daily.Points[1].At)
	}
}

func TestStats(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := Series{Points: []Point{
		{At: base, Value: 100},
		{At: base.AddDate(0, 0, 1), Value: 90},
		{At: base.AddDate(0, 0, 2), Value: 120},
	}}

	st := s.Stats()
	if st.Min != 90 || st.Max != 120 || st.Latest != 120 || st.Sessions != 3 {
		t.Errorf("stats = %+v", st)
	}
	if st.Progress != 20 || st.ProgressPct != 20 {
		t.Errorf("progress = %v (%v%%); want 20 (20%%)", st.Progress, st.ProgressPct)
	}
	if got := FormatProgress(st); got != "+20.0 (+20.0%)" {
		t.Errorf("FormatProgress() = %q", got)
	}

	if (Series{}).Stats() != (Stats{}) {
		t.Error("empty series should give zero stats")
	}

	zero := Series{Points: []Point{{At: base, Value: 0}, {At: base, Value: 5}}}
	if zero.Stats().ProgressPct != 0 {
		t.Error("progress percent from zero should be 0")
	}
}

func TestParseMetric(t *testing.T) {
	tests := []struct {
		input   string
		want    Metric
		wantErr bool
	}{
		{"", MetricAuto, false},
		{"auto", MetricAuto, false},
		{"Weight", MetricWeight, false},
		{"reps", MetricReps, false},
		{"seconds", MetricDuration, false},
		{"distance", MetricDistance, false},
		{"volume", MetricAuto, true},
	}

	for _, tt := range tests {
		got, err := ParseMetric(tt.input)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseMetric(%q) = %v, %v", tt.input, got, err)
		}
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		metric Metric
		value  float64
		want   string
	}{
		{MetricWeight, 102.5, "102.5"},
		{MetricReps, 8, "8"},
		{MetricReps, 8.5, "8.5"},
		{MetricDistance, 5, "5.0"},
		{MetricDuration, 45, "45s"},
		{MetricDuration, 125, "2m05s"},
		{MetricDuration, 3900, "1h05m"},
	}

	for _, tt := range tests {
		if got := FormatValue(tt.metric, tt.value); got != tt.want {
			t.Errorf("FormatValue(%v, %v) = %q; want %q", tt.metric, tt.value, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.bytes); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q; want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestTrendPerWeek(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, 1+d, 0, 0, 0, 0, time.UTC) }

	rising := Series{Points: []Point{{day(0), 100}, {day(7), 110}, {day(14), 120}}}
	if got, ok := rising.TrendPerWeek(); !ok || math.Abs(got-10) > 1e-9 {
		t.Errorf("TrendPerWeek() = %v, %v; want 10", got, ok)
	}

	falling := Series{Points: []Point{{day(0), 60}, {day(1), 59}}}
	if got, ok := falling.TrendPerWeek(); !ok || math.Abs(got+7) > 1e-9 {
		t.Errorf("TrendPerWeek() = %v, %v; want -7", got, ok)
	}

	for _, s := range []Series{
		{},
		{Points: []Point{{day(0), 1}}},
		{Points: []Point{{day(0), 1}, {day(0), 2}}},
	} {
		if _, ok := s.TrendPerWeek(); ok {
			t.Errorf("TrendPerWeek(%v) reported a trend", s.Points)
		}
	}
}
