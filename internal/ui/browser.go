// Package ui is the bubbletea front end of the exercise browser. It turns
// terminal messages into navigator events and draws the navigator's frames.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jedarden/liftlog/internal/chart"
	"github.com/jedarden/liftlog/internal/navigator"
	"github.com/jedarden/liftlog/internal/workout"
	"github.com/mattn/go-runewidth"
)

// chromeLines is the number of screen lines around the exercise list:
// title, rule, two instruction lines, blank, search, blank, blank, status, help
const chromeLines = 10

const (
	defaultRows = 10
	cursor      = "❯ "
	noCursor    = "  "
	caret       = "▏"
	minNameCols = 8
)

// Options configures a Browser
type Options struct {
	Metric     workout.Metric
	SparkWidth int
	Chart      chart.Options
}

// Browser is the main Bubble Tea model
type Browser struct {
	width  int
	height int

	source   navigator.DataSource
	nav      *navigator.Navigator
	renderer chart.Renderer

	keys keyMap
	help help.Model

	err error
}

// NewBrowser creates a browser over the exercises of source
func NewBrowser(source navigator.DataSource, opts Options) *Browser {
	return &Browser{
		source: source,
		nav: navigator.New(source, navigator.Options{
			Metric:     opts.Metric,
			Rows:       defaultRows,
			SparkWidth: opts.SparkWidth,
		}),
		renderer: chart.Renderer{Options: opts.Chart},
		keys:     defaultKeys(),
		help:     help.New(),
	}
}

// Err returns the failure that ended the program, if any
func (b *Browser) Err() error {
	return b.err
}

// Navigator exposes the underlying state machine
func (b *Browser) Navigator() *navigator.Navigator {
	return b.nav
}

// Init initializes the browser
func (b *Browser) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.help.Width = msg.Width
		b.nav.SetRows(b.height - chromeLines)
		return b, nil

	case tea.KeyMsg:
		for _, ev := range b.keys.decodeKey(msg) {
			switch b.nav.Handle(ev) {
			case navigator.Exiting:
				return b, tea.Quit
			case navigator.Confirmed:
				// Keys after a commit in the same burst are dropped
				return b, b.showChart()
			}
		}
		return b, nil

	case chartClosedMsg:
		return b.chartClosed(msg)
	}

	return b, nil
}

// View renders the browser
func (b *Browser) View() string {
	if b.width == 0 {
		return "Initializing..."
	}
	if b.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", b.err)) + "\n"
	}

	f := b.nav.Frame()

	var lines []string
	lines = append(lines, titleStyle.Render(f.Header[0]))
	lines = append(lines, ruleStyle.Render(strings.Repeat("─", min(b.width, 60))))
	lines = append(lines, f.Header[1])
	lines = append(lines, hintStyle.Render(f.Header[2]))
	lines = append(lines, "")
	lines = append(lines, searchLabelStyle.Render("Search: ")+f.Query+caret)
	lines = append(lines, "")

	for _, row := range f.Rows {
		lines = append(lines, b.renderRow(row))
	}
	// Keep the footer anchored when the list is short
	for i := len(f.Rows); i < f.Height; i++ {
		lines = append(lines, "")
	}

	lines = append(lines, "")
	lines = append(lines, statusStyle.Render(statusLine(f)))
	lines = append(lines, b.help.View(b.keys))

	return strings.Join(lines, "\n")
}

// renderRow draws one list entry: cursor, highlighted name, sparkline
func (b *Browser) renderRow(row navigator.Row) string {
	spark := runewidth.StringWidth(row.Sparkline)
	nameCols := max(minNameCols, b.width-runewidth.StringWidth(cursor)-spark-2)

	before, match, after := row.Parts()
	before, match, after = fitParts(before, match, after, nameCols)
	used := runewidth.StringWidth(before + match + after)

	nameStyle := plainStyle
	prefix := noCursor
	if row.Selected {
		nameStyle = selectedStyle
		prefix = cursor
	}

	var sb strings.Builder
	sb.WriteString(nameStyle.Render(prefix + before))
	if match != "" {
		sb.WriteString(matchStyle.Render(match))
	}
	if after != "" {
		sb.WriteString(nameStyle.Render(after))
	}
	sb.WriteString(strings.Repeat(" ", nameCols-used+2))
	sb.WriteString(sparkStyle.Render(row.Sparkline))
	return sb.String()
}

// fitParts truncates the concatenation of the three parts to cols display
// columns, ending with an ellipsis when anything was cut
func fitParts(before, match, after string, cols int) (string, string, string) {
	full := before + match + after
	if runewidth.StringWidth(full) <= cols {
		return before, match, after
	}

	const tail = "…"
	budget := cols - runewidth.StringWidth(tail)
	parts := []string{before, match, after}
	for i, p := range parts {
		w := runewidth.StringWidth(p)
		if w <= budget {
			budget -= w
			continue
		}
		parts[i] = runewidth.Truncate(p, budget, "") + tail
		for j := i + 1; j < len(parts); j++ {
			parts[j] = ""
		}
		break
	}
	return parts[0], parts[1], parts[2]
}

func statusLine(f navigator.Frame) string {
	switch {
	case f.Total == 0:
		return "No exercises found"
	case f.Matched == 0:
		return fmt.Sprintf("No exercises match %q", f.Query)
	}
	return fmt.Sprintf("Showing %d of %d exercises", f.Matched, f.Total)
}
