package navigator

import (
	"math/rand"
	"testing"
)

func checkViewport(t *testing.T, v Viewport, n int) {
	t.Helper()
	if n == 0 {
		if v.Selected != 0 || v.Offset != 0 {
			t.Fatalf("empty list viewport = %+v; want 0/0", v)
		}
		return
	}
	if v.Selected < 0 || v.Selected >= n {
		t.Fatalf("selected %d outside [0,%d)", v.Selected, n)
	}
	if v.Offset < 0 || v.Offset > v.Selected || v.Selected >= v.Offset+v.Rows {
		t.Fatalf("selection not visible: %+v", v)
	}
}

func TestViewport_ScrollDown(t *testing.T) {
	v := NewViewport(2)
	for i := 0; i < 4; i++ {
		v.MoveDown(5)
	}
	if v.Selected != 4 || v.Offset != 3 {
		t.Errorf("viewport = %+v; want selected 4 offset 3", v)
	}

	start, end := v.Visible(5)
	if start != 3 || end != 5 {
		t.Errorf("Visible = [%d,%d); want [3,5)", start, end)
	}
}

func TestViewport_EdgesAreNoOps(t *testing.T) {
	v := NewViewport(3)
	v.MoveUp(4)
	if v.Selected != 0 || v.Offset != 0 {
		t.Errorf("MoveUp at top = %+v", v)
	}

	for i := 0; i < 3; i++ {
		v.MoveDown(4)
	}
	at := v
	v.MoveDown(4)
	if v != at {
		t.Errorf("MoveDown at bottom = %+v; want %+v", v, at)
	}

	empty := NewViewport(3)
	empty.MoveDown(0)
	empty.MoveUp(0)
	checkViewport(t, empty, 0)
}

func TestViewport_ScrollUpPullsWindow(t *testing.T) {
	v := Viewport{Selected: 6, Offset: 4, Rows: 3}
	v.MoveUp(10)
	v.MoveUp(10)
	v.MoveUp(10)
	if v.Selected != 3 || v.Offset != 3 {
		t.Errorf("viewport = %+v; want 3/3", v)
	}
}

func TestViewport_ClampShrunkList(t *testing.T) {
	v := Viewport{Selected: 8, Offset: 6, Rows: 3}
	v.Clamp(4)
	if v.Selected != 3 || v.Offset != 3 {
		t.Errorf("Clamp(4) = %+v; want 3/3", v)
	}

	v.Clamp(0)
	checkViewport(t, v, 0)
}

func TestViewport_SetRows(t *testing.T) {
	v := NewViewport(-2)
	if v.Rows != 1 {
		t.Errorf("Rows = %d; want 1", v.Rows)
	}
	v.SetRows(7)
	if v.Rows != 7 {
		t.Errorf("Rows = %d; want 7", v.Rows)
	}
}

func TestViewport_Visible(t *testing.T) {
	tests := []struct {
		v          Viewport
		n          int
		start, end int
	}{
		{Viewport{Rows: 5}, 3, 0, 3},
		{Viewport{Rows: 5}, 0, 0, 0},
		{Viewport{Selected: 9, Offset: 5, Rows: 5}, 10, 5, 10},
		{Viewport{Offset: 5, Rows: 5}, 2, 2, 2},
	}
	for _, tt := range tests {
		start, end := tt.v.Visible(tt.n)
		if start != tt.start || end != tt.end {
			t.Errorf("%+v.Visible(%d) = [%d,%d); want [%d,%d)", tt.v, tt.n, start, end, tt.start, tt.end)
		}
	}
}

// Random move sequences against random list sizes keep the selection inside
// the list and inside the window after every step.
func TestViewport_RandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		rows := 1 + rng.Intn(8)
		n := rng.Intn(30)
		v := NewViewport(rows)

		for step := 0; step < 100; step++ {
			switch rng.Intn(5) {
			case 0, 1:
				v.MoveDown(n)
			case 2, 3:
				v.MoveUp(n)
			case 4:
				n = rng.Intn(30)
				v.Clamp(n)
			}
			checkViewport(t, v, n)

			start, end := v.Visible(n)
			if n > 0 && (end-start > rows || start > v.Selected || v.Selected >= end) {
				t.Fatalf("window [%d,%d) does not show selection %+v", start, end, v)
			}
		}
	}
}
