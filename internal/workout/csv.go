package workout

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// Columns maps workout fields to CSV header names
type Columns struct {
	Start    string `yaml:"start"`
	Exercise string `yaml:"exercise"`
	Weight   string `yaml:"weight"`
	Reps     string `yaml:"reps"`
	Duration string `yaml:"duration"`
	Distance string `yaml:"distance"`
}

// DefaultColumns returns the header names of the standard workout export
func DefaultColumns() Columns {
	return Columns{
		Start:    "Workout Start",
		Exercise: "Exercise",
		Weight:   "Weight",
		Reps:     "Reps",
		Duration: "Duration",
		Distance: "Distance",
	}
}

// DefaultDateLayouts are tried in order when parsing the start column
var DefaultDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"1/2/2006 15:04",
	"1/2/2006",
	"Jan 2, 2006, 3:04 PM",
}

var (
	// ErrMissingColumn is returned when a required header is absent
	ErrMissingColumn = errors.New("missing required column")
	// ErrEmptyFile is returned when the input has no header row
	ErrEmptyFile = errors.New("empty workout file")
)

// RowError reports a data row that could not be parsed
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// ParseCSV reads workout sets from a CSV export. Rows with a blank exercise
// name are skipped; rows with an unparsable start time fail the parse.
// Metric cells that are empty or not numeric are recorded as missing.
func ParseCSV(r io.Reader, cols Columns, layouts []string) ([]Set, error) {
	if len(layouts) == 0 {
		layouts = DefaultDateLayouts
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := headerIndex(header)
	startCol, ok := index[normalizeHeader(cols.Start)]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrMissingColumn, cols.Start)
	}
	exerciseCol, ok := index[normalizeHeader(cols.Exercise)]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrMissingColumn, cols.Exercise)
	}

	metricCols := map[Metric]int{}
	for m, name := range map[Metric]string{
		MetricWeight:   cols.Weight,
		MetricReps:     cols.Reps,
		MetricDuration: cols.Duration,
		MetricDistance: cols.Distance,
	} {
		if col, ok := index[normalizeHeader(name)]; ok && name != "" {
			metricCols[m] = col
		}
	}

	var sets []Set
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, &RowError{Row: row, Err: err}
		}

		exercise := strings.TrimSpace(field(record, exerciseCol))
		if exercise == "" {
			continue
		}

		start, err := parseTime(field(record, startCol), layouts)
		if err != nil {
			return nil, &RowError{Row: row, Err: err}
		}

		set := Set{Row: row, Start: start, Exercise: exercise}
		for m, col := range metricCols {
			if v, ok := parseNumber(field(record, col)); ok {
				set.SetValue(m, v)
			}
		}
		sets = append(sets, set)
	}

	return sets, nil
}

func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		// The first column of some exports carries a UTF-8 BOM
		h = strings.TrimPrefix(h, "\ufeff")
		key := normalizeHeader(h)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	return index
}

func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func field(record []string, col int) string {
	if col < 0 || col >= len(record) {
		return ""
	}
	return record[col]
}

func parseTime(s string, layouts []string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty start time")
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised start time %q", s)
}

func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
