package navigator

// Viewport tracks the selected row and the first visible row of a list
// shown through a window of Rows lines.
//
// After Clamp, for a list of n items:
//
//	0 <= Selected < n (Selected == 0 when n == 0)
//	0 <= Offset <= Selected < Offset+Rows
type Viewport struct {
	Selected int
	Offset   int
	Rows     int
}

// NewViewport creates a viewport showing rows lines
func NewViewport(rows int) Viewport {
	v := Viewport{}
	v.SetRows(rows)
	return v
}

// SetRows changes the window height. Heights below 1 are treated as 1.
func (v *Viewport) SetRows(rows int) {
	if rows < 1 {
		rows = 1
	}
	v.Rows = rows
}

// Reset moves the selection and the window back to the top
func (v *Viewport) Reset() {
	v.Selected = 0
	v.Offset = 0
}

// Clamp brings the selection inside a list of n items and scrolls the
// window so the selection is visible
func (v *Viewport) Clamp(n int) {
	if v.Rows < 1 {
		v.Rows = 1
	}

	if n <= 0 || v.Selected < 0 {
		v.Selected = 0
	} else if v.Selected > n-1 {
		v.Selected = n - 1
	}

	if v.Offset < 0 {
		v.Offset = 0
	}
	if v.Selected < v.Offset {
		v.Offset = v.Selected
	} else if v.Selected >= v.Offset+v.Rows {
		v.Offset = v.Selected - v.Rows + 1
	}
}

// MoveUp selects the previous item, stopping at the top
func (v *Viewport) MoveUp(n int) {
	if v.Selected > 0 {
		v.Selected--
	}
	v.Clamp(n)
}

// MoveDown selects the next item, stopping at the bottom
func (v *Viewport) MoveDown(n int) {
	if v.Selected < n-1 {
		v.Selected++
	}
	v.Clamp(n)
}

// Visible returns the half-open index range [start, end) of the items of a
// list of n that fall inside the window
func (v Viewport) Visible(n int) (start, end int) {
	start = v.Offset
	if start > n {
		start = n
	}
	end = v.Offset + v.Rows
	if end > n {
		end = n
	}
	return start, end
}
