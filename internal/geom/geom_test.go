package geom

import (
	"math"
	"testing"
)

func TestFromAngle(t *testing.T) {
	v := FromAngle(math.Pi/2, 10)
	if math.Abs(v.X) > 1e-9 || math.Abs(v.Y-10) > 1e-9 {
		t.Fatalf("FromAngle(π/2, 10) = %+v, want (0, 10)", v)
	}
}

func TestCirclesOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec
		want bool
	}{
		{"inside", V(0, 0), V(5, 0), true},
		{"touching", V(0, 0), V(20, 0), false},
		{"apart", V(0, 0), V(30, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CirclesOverlap(tt.a, 10, tt.b, 10); got != tt.want {
				t.Errorf("CirclesOverlap = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegmentCircle(t *testing.T) {
	tests := []struct {
		name   string
		dir    Vec
		length float64
		center Vec
		want   bool
	}{
		{"hit along axis", V(1, 0), 100, V(50, 5), true},
		{"beyond length", V(1, 0), 100, V(130, 0), false},
		{"behind start", V(1, 0), 100, V(-30, 0), false},
		{"grazes end cap", V(1, 0), 100, V(108, 0), true},
		{"zero direction", V(0, 0), 100, V(0, 0), false},
		{"zero length", V(1, 0), 0, V(0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentCircle(V(0, 0), tt.dir, tt.length, tt.center, 10); got != tt.want {
				t.Errorf("SegmentCircle = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInCone(t *testing.T) {
	half := 30 * math.Pi / 180
	if !InCone(V(0, 0), 0, V(100, 20), half) {
		t.Error("target 11° off heading should be inside a 60° cone")
	}
	if InCone(V(0, 0), 0, V(100, 100), half) {
		t.Error("target 45° off heading should be outside a 60° cone")
	}
	if InCone(V(0, 0), 0, V(-100, 0), half) {
		t.Error("target behind should be outside the cone")
	}
}

func TestNormalizeAngle(t *testing.T) {
	if got := NormalizeAngle(3 * math.Pi); math.Abs(got-math.Pi) > 1e-9 {
		t.Errorf("NormalizeAngle(3π) = %v, want π", got)
	}
	if got := NormalizeAngle(-3 * math.Pi / 2); math.Abs(got-math.Pi/2) > 1e-9 {
		t.Errorf("NormalizeAngle(-3π/2) = %v, want π/2", got)
	}
}
