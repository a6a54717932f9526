package geo

import "math"

// Station is a rapid-transit stop.
type Station struct {
	Name string
	Line string
	Lat  float64
	Lng  float64
}

// Point returns the station's coordinate.
func (s Station) Point() Point { return Point{Lat: s.Lat, Lng: s.Lng} }

// TransitIndex answers nearest-station queries over a fixed station list.
// Inputs are assumed to lie within one metro area; there is no antimeridian
// handling.
type TransitIndex struct {
	stations []Station
}

// NewTransitIndex copies stations into a read-only index.
func NewTransitIndex(stations []Station) *TransitIndex {
	return &TransitIndex{stations: append([]Station(nil), stations...)}
}

// Len returns the number of stations.
func (t *TransitIndex) Len() int { return len(t.stations) }

// Nearest returns the station closest to (lat, lng) by great-circle distance.
// On equal distances the earlier station in list order wins. ok is false when
// the index is empty.
func (t *TransitIndex) Nearest(lat, lng float64) (best Station, ok bool) {
	bestDist := math.Inf(1)
	for _, s := range t.stations {
		if d := HaversineKm(lat, lng, s.Lat, s.Lng); d < bestDist {
			bestDist = d
			best = s
			ok = true
		}
	}
	return best, ok
}
