package ui

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jedarden/liftlog/internal/chart"
	"github.com/jedarden/liftlog/internal/logger"
	"github.com/jedarden/liftlog/internal/workout"
)

// chartClosedMsg is sent when the chart view is dismissed
type chartClosedMsg struct {
	exercise string
	err      error
	fatal    bool
}

// chartCommand shows one chart on the released terminal. It satisfies
// tea.ExecCommand so bubbletea leaves the alternate screen and raw mode
// for the duration of Run and restores both afterwards.
type chartCommand struct {
	renderer chart.Renderer
	series   workout.Series
	title    string

	stdin  io.Reader
	stdout io.Writer
}

func (c *chartCommand) Run() error {
	var out io.Writer = os.Stdout
	if c.stdout != nil {
		out = c.stdout
	}
	var in io.Reader = os.Stdin
	if c.stdin != nil {
		in = c.stdin
	}
	return c.renderer.Render(out, in, c.series, c.title)
}

func (c *chartCommand) SetStdin(r io.Reader)  { c.stdin = r }
func (c *chartCommand) SetStdout(w io.Writer) { c.stdout = w }
func (c *chartCommand) SetStderr(io.Writer)   {}

// chartFor fetches the full series of an exercise and builds the command
// that charts it under the exercise name
func (b *Browser) chartFor(name string) (*chartCommand, error) {
	series, err := b.source.SeriesFor(name, b.nav.Metric())
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	return &chartCommand{
		renderer: b.renderer,
		series:   series,
		title:    name,
	}, nil
}

// showChart hands the committed exercise to the chart renderer
func (b *Browser) showChart() tea.Cmd {
	name := b.nav.Chosen()
	cmd, err := b.chartFor(name)
	if err != nil {
		return func() tea.Msg {
			return chartClosedMsg{exercise: name, err: err, fatal: true}
		}
	}

	logger.Info("Charting %s (%s, %d points)", name, cmd.series.Metric, cmd.series.Len())
	return tea.Exec(cmd, func(err error) tea.Msg {
		return chartClosedMsg{exercise: name, err: err}
	})
}

// chartClosed resumes browsing, or ends the program when the data source failed
func (b *Browser) chartClosed(msg chartClosedMsg) (tea.Model, tea.Cmd) {
	if msg.fatal {
		logger.Error("Data source failure: %v", msg.err)
		b.err = msg.err
		return b, tea.Quit
	}
	if msg.err != nil {
		logger.Warn("Chart for %s: %v", msg.exercise, msg.err)
	}
	b.nav.Resume()
	return b, nil
}
