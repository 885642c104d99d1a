package navigator

// HeaderLines are the fixed instruction lines at the top of every frame
var HeaderLines = []string{
	"🏋️  WORKOUT PROGRESSION VISUALIZER 🏋️",
	"Select an exercise to visualize:",
	"(Type to search, ↑/↓ to navigate, Enter to select, Esc to clear, Ctrl+C to quit)",
}

// Frame is one fully computed screen of the browser
type Frame struct {
	Header  []string
	Query   string
	Rows    []Row
	Total   int // catalog size
	Matched int // filtered list size
	Offset  int // index of Rows[0] within the filtered list
	Height  int // visible rows; len(Rows) may be smaller
}

// Row is one visible list entry
type Row struct {
	Index     int // position in the filtered list
	Name      string
	Match     Span // empty when the query is empty or does not occur
	Selected  bool
	Sparkline string
}

// Parts splits the name around the highlighted match
func (r Row) Parts() (before, match, after string) {
	if r.Match.Empty() {
		return r.Name, "", ""
	}
	return r.Name[:r.Match.Start], r.Name[r.Match.Start:r.Match.End], r.Name[r.Match.End:]
}

// Frame recomputes the filtered list, corrects the viewport against it and
// builds the rows currently in view with their sparklines
func (n *Navigator) Frame() Frame {
	filtered := n.Filtered()
	n.view.Clamp(len(filtered))

	f := Frame{
		Header:  HeaderLines,
		Query:   n.query,
		Total:   len(n.catalog),
		Matched: len(filtered),
		Offset:  n.view.Offset,
		Height:  n.view.Rows,
	}

	start, end := n.view.Visible(len(filtered))
	for i := start; i < end; i++ {
		name := filtered[i]
		row := Row{
			Index:     i,
			Name:      name,
			Selected:  i == n.view.Selected,
			Sparkline: Sparkline(n.sparkValues(name), n.sparkWidth),
		}
		if span, ok := FindMatch(name, n.query); ok {
			row.Match = span
		}
		f.Rows = append(f.Rows, row)
	}

	return f
}
