package geom

import "testing"

func TestRectOverlaps(t *testing.T) {
	base := Rect{X: 0, Y: 0, W: 10, H: 10}
	tests := []struct {
		name string
		o    Rect
		want bool
	}{
		{"inside", Rect{X: 2, Y: 2, W: 2, H: 2}, true},
		{"touching edge", Rect{X: 10, Y: 0, W: 5, H: 5}, false},
		{"below", Rect{X: 0, Y: 11, W: 10, H: 10}, false},
		{"partial", Rect{X: 5, Y: 5, W: 10, H: 10}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.o); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectUnion(t *testing.T) {
	got := Rect{X: 0, Y: 5, W: 10, H: 10}.Union(Rect{X: -5, Y: 0, W: 5, H: 5})
	want := Rect{X: -5, Y: 0, W: 15, H: 15}
	if got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}
}

func TestSide(t *testing.T) {
	tests := []struct {
		side       Side
		name       string
		horizontal bool
		sign       float64
	}{
		{Left, "left", true, -1},
		{Right, "right", true, 1},
		{Top, "top", false, -1},
		{Bottom, "bottom", false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.side.String() != tt.name {
				t.Errorf("String() = %q, want %q", tt.side.String(), tt.name)
			}
			if tt.side.Horizontal() != tt.horizontal {
				t.Errorf("Horizontal() = %v, want %v", tt.side.Horizontal(), tt.horizontal)
			}
			if tt.side.Sign() != tt.sign {
				t.Errorf("Sign() = %v, want %v", tt.side.Sign(), tt.sign)
			}
		})
	}
}
