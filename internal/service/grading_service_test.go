package service

import "testing"

func TestCapPoints(t *testing.T) {
	tests := []struct {
		name   string
		points float64
		max    float64
		want   float64
	}{
		{name: "within range", points: 3, max: 5, want: 3},
		{name: "full marks", points: 5, max: 5, want: 5},
		{name: "over-award clamps to question worth", points: 7, max: 5, want: 5},
		{name: "negative clamps to zero", points: -2, max: 5, want: 0},
		{name: "zero stays zero", points: 0, max: 5, want: 0},
		{name: "fractional award", points: 2.5, max: 5, want: 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := capPoints(tt.points, tt.max); got != tt.want {
				t.Errorf("capPoints(%v, %v) = %v, want %v", tt.points, tt.max, got, tt.want)
			}
		})
	}
}
