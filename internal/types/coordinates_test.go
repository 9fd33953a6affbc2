package types

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestCoords_OnGlobe(t *testing.T) {
	tests := []struct {
		name   string
		coords Coords
		want   bool
	}{
		{name: "london", coords: NewCoords(51.5074, -0.1278), want: true},
		{name: "north pole", coords: NewCoords(90, 0), want: true},
		{name: "antimeridian", coords: NewCoords(0, -180), want: true},
		{name: "latitude too high", coords: NewCoords(90.1, 0), want: false},
		{name: "longitude too low", coords: NewCoords(0, -180.5), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.coords.OnGlobe(); got != tt.want {
				t.Errorf("OnGlobe() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCoords_Point(t *testing.T) {
	got := NewCoords(35.6762, 139.6503).Point()
	if want := (orb.Point{139.6503, 35.6762}); got != want {
		t.Errorf("Point() = %v, want %v", got, want)
	}
}

func TestLocation_Coords(t *testing.T) {
	loc := Location{Latitude: -33.8688, Longitude: 151.2093}
	if got := loc.Coords().String(); got != "(-33.868800, 151.209300)" {
		t.Errorf("Coords().String() = %q", got)
	}
}
