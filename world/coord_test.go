package world

import (
	"errors"
	"math"
	"testing"
)

func TestDirectionRotateSequence(t *testing.T) {
	want := []Direction{North, East, South, West, North}
	d := North
	got := []Direction{d}
	for i := 0; i < 4; i++ {
		d = d.Rotate(1)
		got = append(got, d)
	}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("step %d: got %s, want %s", i, got[i], w)
		}
	}
}

func TestDirectionRotateMultiStep(t *testing.T) {
	tests := []struct {
		start Direction
		k     int
		want  Direction
	}{
		{East, 6, West},
		{West, -1, South},
		{South, -5, East},
	}
	for _, tt := range tests {
		if got := tt.start.Rotate(tt.k); got != tt.want {
			t.Fatalf("rotate(%s, %d) = %s, want %s", tt.start, tt.k, got, tt.want)
		}
	}
}

func TestDirectionOppositeMatchesRotateTwo(t *testing.T) {
	for d := North; d <= West; d++ {
		if d.Opposite() != d.Rotate(2) {
			t.Fatalf("%s: Opposite() != Rotate(2)", d)
		}
	}
}

func TestCoordOf(t *testing.T) {
	pos, err := CoordOf(3, 4)
	if err != nil || pos != (GridCoord{X: 3, Y: 4}) {
		t.Fatalf("CoordOf(3, 4) = %v, %v", pos, err)
	}
	for _, tt := range []struct{ x, y float64 }{
		{1.5, 1},
		{1, -0.25},
		{math.NaN(), 0},
		{0, math.Inf(1)},
	} {
		if _, err := CoordOf(tt.x, tt.y); !errors.Is(err, ErrInvalidCoord) {
			t.Fatalf("CoordOf(%v, %v) = %v, want InvalidCoord", tt.x, tt.y, err)
		}
	}
}

func TestForwardBehind(t *testing.T) {
	pos := GridCoord{X: 2, Y: 2}
	fwd := Forward(pos, East)
	if fwd != (GridCoord{X: 3, Y: 2}) {
		t.Fatalf("Forward(east) = %v, want (3,2)", fwd)
	}
	behind := Behind(pos, East)
	if behind != (GridCoord{X: 1, Y: 2}) {
		t.Fatalf("Behind(east) = %v, want (1,2)", behind)
	}
}
