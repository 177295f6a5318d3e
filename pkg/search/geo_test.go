package search_test

import (
	"math"
	"testing"

	"github.com/ykhknw/pocketnavi/pkg/search"
)

func TestHaversineKm(t *testing.T) {
	tests := []struct {
		name      string
		lat1      float64
		lng1      float64
		lat2      float64
		lng2      float64
		want      float64
		tolerance float64
	}{
		{
			name: "same point",
			lat1: 35.6812, lng1: 139.7671,
			lat2: 35.6812, lng2: 139.7671,
			want: 0, tolerance: 0.001,
		},
		{
			name: "tokyo station to osaka station",
			lat1: 35.6812, lng1: 139.7671,
			lat2: 34.7025, lng2: 135.4959,
			want: 403, tolerance: 5,
		},
		{
			name: "tokyo station to shinjuku station",
			lat1: 35.6812, lng1: 139.7671,
			lat2: 35.6896, lng2: 139.7006,
			want: 6.1, tolerance: 0.3,
		},
		{
			name: "symmetric in argument order",
			lat1: 43.0621, lng1: 141.3544,
			lat2: 26.2124, lng2: 127.6809,
			want: search.HaversineKm(26.2124, 127.6809, 43.0621, 141.3544),
			tolerance: 0.000001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := search.HaversineKm(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("HaversineKm = %f, want %f (±%f)", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestWithinRadius(t *testing.T) {
	coord := func(v float64) *float64 { return &v }

	originLat, originLng := 35.6812, 139.7671 // Tokyo Station

	tests := []struct {
		name     string
		row      search.BuildingRow
		radiusKm float64
		want     bool
	}{
		{
			name:     "inside radius",
			row:      search.BuildingRow{Lat: coord(35.6896), Lng: coord(139.7006)},
			radiusKm: 10,
			want:     true,
		},
		{
			name:     "outside radius",
			row:      search.BuildingRow{Lat: coord(34.7025), Lng: coord(135.4959)},
			radiusKm: 100,
			want:     false,
		},
		{
			name:     "radius bound is inclusive",
			row:      search.BuildingRow{Lat: coord(originLat), Lng: coord(originLng)},
			radiusKm: 0,
			want:     true,
		},
		{
			name:     "missing coordinates",
			row:      search.BuildingRow{},
			radiusKm: 1000,
			want:     false,
		},
		{
			name:     "one missing coordinate",
			row:      search.BuildingRow{Lat: coord(35.0)},
			radiusKm: 1000,
			want:     false,
		},
		{
			name:     "zero coordinates are not searchable",
			row:      search.BuildingRow{Lat: coord(0), Lng: coord(0)},
			radiusKm: 100000,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := search.WithinRadius(&tt.row, originLat, originLng, tt.radiusKm)
			if got != tt.want {
				t.Errorf("WithinRadius = %v, want %v", got, tt.want)
			}
		})
	}
}
