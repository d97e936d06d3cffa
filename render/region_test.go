package render

import (
	"errors"
	"image"
	"testing"
)

func TestSelectionToRegion(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 int
		scale          float64
		want           image.Rectangle
		wantErr        bool
	}{
		{
			name: "no scaling",
			x1:   10, y1: 10, x2: 110, y2: 60,
			scale: 1.0,
			want:  image.Rect(10, 10, 110, 60),
		},
		{
			name: "half-size preview maps back to base space",
			x1:   10, y1: 10, x2: 110, y2: 60,
			scale: 0.5,
			want:  image.Rect(20, 20, 220, 120),
		},
		{
			name: "fractional scale rounds to integer pixels",
			x1:   10, y1: 10, x2: 110, y2: 60,
			scale: 0.4,
			want:  image.Rect(25, 25, 275, 150),
		},
		{
			name: "points in reverse order are normalized",
			x1:   110, y1: 60, x2: 10, y2: 10,
			scale: 1.0,
			want:  image.Rect(10, 10, 110, 60),
		},
		{
			name: "equal points rejected",
			x1:   50, y1: 50, x2: 50, y2: 50,
			scale:   1.0,
			wantErr: true,
		},
		{
			name: "zero height rejected",
			x1:   10, y1: 40, x2: 90, y2: 40,
			scale:   1.0,
			wantErr: true,
		},
		{
			name: "non-positive scale rejected",
			x1:   10, y1: 10, x2: 110, y2: 60,
			scale:   0,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectionToRegion(tt.x1, tt.y1, tt.x2, tt.y2, tt.scale)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRegion) {
					t.Fatalf("expected ErrInvalidRegion, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("SelectionToRegion() = %v, want %v", got, tt.want)
			}
		})
	}
}
