// Package chart draws the full-screen progression chart shown when an
// exercise is picked in the browser.
package chart

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/jedarden/liftlog/internal/workout"
	"github.com/mattn/go-runewidth"
)

const (
	// DefaultHeight is the plot height in lines
	DefaultHeight = 12
	// MaxAutoWidth caps the automatic plot width
	MaxAutoWidth = 80

	dateLayout   = "01/02"
	periodLayout = "2006-01-02"

	clearScreen = "\033[H\033[J"
	returnHint  = "Press Enter to return..."
)

// Options controls the plot size. Zero values pick the defaults.
type Options struct {
	Height int
	Width  int // 0 sizes the plot from the number of sessions
}

// Enough reports whether a series has enough distinct days to plot
func Enough(series workout.Series) bool {
	return series.Len() >= 2 && series.DailyMax().Len() >= 2
}

// Plot renders the daily-best progression of a series with its summary
// statistics. Series with fewer than two training days render as a short
// notice instead of a chart.
func Plot(series workout.Series, opts Options) string {
	if !Enough(series) {
		return fmt.Sprintf("Not enough data points for %s", series.Exercise)
	}

	daily := series.DailyMax()
	values := daily.Values()

	height := opts.Height
	if height <= 0 {
		height = DefaultHeight
	}
	width := opts.Width
	if width <= 0 {
		width = min(MaxAutoWidth, 2*len(values)+10)
	}

	graph := asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(1),
		asciigraph.Caption(fmt.Sprintf("%s - %s Progression", series.Exercise, daily.Metric.Title())),
	)

	st := daily.Stats()
	m := daily.Metric

	var sb strings.Builder
	sb.WriteString(graph)
	sb.WriteString("\n")
	sb.WriteString(dateLine(daily, axisOffset(graph), width))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "📊 Stats: Min: %s | Max: %s | Latest: %s\n",
		workout.FormatValue(m, st.Min), workout.FormatValue(m, st.Max), workout.FormatValue(m, st.Latest))
	fmt.Fprintf(&sb, "📅 Period: %s to %s\n", st.From.Format(periodLayout), st.To.Format(periodLayout))
	fmt.Fprintf(&sb, "📈 Total Sessions: %d\n", st.Sessions)
	fmt.Fprintf(&sb, "🚀 Progress: %s", workout.FormatProgress(st))
	if trend, ok := daily.TrendPerWeek(); ok {
		fmt.Fprintf(&sb, "\n📐 Trend: %+.1f per week", trend)
	}

	return sb.String()
}

// axisOffset returns the display column of the plot's y axis
func axisOffset(graph string) int {
	first, _, _ := strings.Cut(graph, "\n")
	for i, r := range first {
		if r == '┤' || r == '┼' {
			return runewidth.StringWidth(first[:i])
		}
	}
	return 0
}

// dateLine labels the first, middle and last day under a plot of the given width
func dateLine(daily workout.Series, offset, width int) string {
	pts := daily.Points
	first := pts[0].At.Format(dateLayout)
	last := pts[len(pts)-1].At.Format(dateLayout)
	label := len(first)

	if width < 2*label+1 {
		return strings.Repeat(" ", offset) + first + " " + last
	}

	line := []rune(strings.Repeat(" ", width))
	copy(line, []rune(first))
	copy(line[width-label:], []rune(last))

	if len(pts) > 3 {
		mid := (width - label) / 2
		if mid > label && mid+label < width-label {
			copy(line[mid:], []rune(pts[len(pts)/2].At.Format(dateLayout)))
		}
	}

	return strings.Repeat(" ", offset) + strings.TrimRight(string(line), " ")
}

// Renderer shows a chart on a released terminal and waits for the user
type Renderer struct {
	Options
}

// Render clears the screen, draws the chart for series and blocks until a
// line (or EOF) is read from r. title, when set, is printed above the chart.
func (cr Renderer) Render(w io.Writer, r io.Reader, series workout.Series, title string) error {
	var sb strings.Builder
	sb.WriteString(clearScreen)
	if title != "" {
		sb.WriteString(title)
		sb.WriteString("\n\n")
	}
	sb.WriteString(Plot(series, cr.Options))
	sb.WriteString("\n\n")
	sb.WriteString(returnHint)

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}

	if r == nil {
		return nil
	}
	if _, err := bufio.NewReader(r).ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}
