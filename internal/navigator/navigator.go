// Package navigator holds the terminal-agnostic core of the exercise
// browser: the incremental search filter, the scroll window over the
// filtered list, the per-row sparkline encoder and the state machine that
// ties them together on every key press. It draws nothing; callers render
// the Frame it produces.
package navigator

import (
	"unicode"
	"unicode/utf8"

	"github.com/jedarden/liftlog/internal/logger"
	"github.com/jedarden/liftlog/internal/workout"
)

// State is the navigator's interaction mode
type State int

const (
	// Browsing is the default mode: typing filters, arrows move
	Browsing State = iota
	// Confirmed means a row was committed and the chart view owns the screen
	Confirmed
	// Exiting is terminal
	Exiting
)

func (s State) String() string {
	switch s {
	case Browsing:
		return "browsing"
	case Confirmed:
		return "confirmed"
	case Exiting:
		return "exiting"
	}
	return "unknown"
}

// KeyKind classifies a decoded key press
type KeyKind int

const (
	KeyUnknown KeyKind = iota
	KeyPrintable
	KeyBackspace
	KeyEscape
	KeyUp
	KeyDown
	KeyEnter
	KeyQuit
)

// KeyEvent is a decoded key press. Rune is set for KeyPrintable only.
type KeyEvent struct {
	Kind KeyKind
	Rune rune
}

// Printable returns the event for typing r
func Printable(r rune) KeyEvent {
	return KeyEvent{Kind: KeyPrintable, Rune: r}
}

// Key returns a non-printable event of the given kind
func Key(kind KeyKind) KeyEvent {
	return KeyEvent{Kind: kind}
}

// DataSource supplies the exercise catalog and metric history
type DataSource interface {
	Exercises() []string
	SeriesFor(name string, metric workout.Metric) (workout.Series, error)
}

// DefaultSparkWidth is the sparkline column width used when none is configured
const DefaultSparkWidth = 20

// Options configures a Navigator
type Options struct {
	Metric     workout.Metric
	Rows       int // visible list rows
	SparkWidth int
}

// Navigator owns the search query and list position. All state changes go
// through Handle and Resume; Frame only reads (and re-clamps) the state.
type Navigator struct {
	source     DataSource
	catalog    []string
	metric     workout.Metric
	sparkWidth int

	query  string
	view   Viewport
	state  State
	chosen string

	values map[string][]float64
}

// New creates a navigator in the Browsing state with an empty query
func New(source DataSource, opts Options) *Navigator {
	if opts.SparkWidth <= 0 {
		opts.SparkWidth = DefaultSparkWidth
	}
	return &Navigator{
		source:     source,
		catalog:    source.Exercises(),
		metric:     opts.Metric,
		sparkWidth: opts.SparkWidth,
		view:       NewViewport(opts.Rows),
		state:      Browsing,
		values:     make(map[string][]float64),
	}
}

// State returns the current interaction mode
func (n *Navigator) State() State {
	return n.state
}

// Query returns the current search text
func (n *Navigator) Query() string {
	return n.query
}

// Viewport returns a copy of the current list position
func (n *Navigator) Viewport() Viewport {
	return n.view
}

// Metric returns the metric rendered in sparklines and charts
func (n *Navigator) Metric() workout.Metric {
	return n.metric
}

// Chosen returns the exercise committed with Enter while in Confirmed
func (n *Navigator) Chosen() string {
	return n.chosen
}

// Filtered returns the catalog entries matching the current query
func (n *Navigator) Filtered() []string {
	return Filter(n.catalog, n.query)
}

// Selected returns the highlighted exercise, if the filtered list is non-empty
func (n *Navigator) Selected() (string, bool) {
	filtered := n.Filtered()
	n.view.Clamp(len(filtered))
	if len(filtered) == 0 {
		return "", false
	}
	return filtered[n.view.Selected], true
}

// SetRows changes the number of visible list rows and re-clamps the window
func (n *Navigator) SetRows(rows int) {
	n.view.SetRows(rows)
	n.view.Clamp(len(n.Filtered()))
}

// Handle applies one key press and returns the resulting state
func (n *Navigator) Handle(ev KeyEvent) State {
	switch n.state {
	case Exiting:
		return n.state
	case Confirmed:
		if ev.Kind == KeyQuit {
			n.state = Exiting
		}
		return n.state
	}

	switch ev.Kind {
	case KeyPrintable:
		if !unicode.IsPrint(ev.Rune) {
			return n.state
		}
		n.setQuery(n.query + string(ev.Rune))

	case KeyBackspace:
		q := n.query
		if q != "" {
			_, size := utf8.DecodeLastRuneInString(q)
			q = q[:len(q)-size]
		}
		n.setQuery(q)

	case KeyEscape:
		n.setQuery("")

	case KeyUp:
		n.view.MoveUp(len(n.Filtered()))

	case KeyDown:
		n.view.MoveDown(len(n.Filtered()))

	case KeyEnter:
		if name, ok := n.Selected(); ok {
			n.chosen = name
			n.state = Confirmed
			logger.Debug("Committed %q (query %q)", name, n.query)
		}

	case KeyQuit:
		n.state = Exiting

	default:
		// Unrecognised keys leave the state untouched
	}

	return n.state
}

// setQuery replaces the query; any query change invalidates the position
func (n *Navigator) setQuery(q string) {
	n.query = q
	n.view.Reset()
}

// Resume returns from the chart view to Browsing. The query is kept and the
// list position starts again from the top.
func (n *Navigator) Resume() {
	if n.state != Confirmed {
		return
	}
	n.state = Browsing
	n.chosen = ""
	n.view.Reset()
}

// sparkValues returns the memoised series values for an exercise. Lookup
// failures render as an empty sparkline; they surface properly on commit.
func (n *Navigator) sparkValues(name string) []float64 {
	if v, ok := n.values[name]; ok {
		return v
	}
	series, err := n.source.SeriesFor(name, n.metric)
	if err != nil {
		logger.Warn("No series for %q: %v", name, err)
	}
	v := series.Values()
	n.values[name] = v
	return v
}
