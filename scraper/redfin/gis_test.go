package redfin

import (
	"errors"
	"testing"

	"redfin-finder/models"
)

const samplePayload = `{}&&{"version":8,"resultCode":0,"payload":{"homes":[
	{"propertyId":12345,"price":{"value":549000,"level":1},"streetLine":{"value":"12 Elm St #2","level":1},
	 "city":"Somerville","state":"MA","zip":"02143","url":"/MA/Somerville/12-Elm-St-02143/unit-2/home/12345",
	 "beds":2,"baths":1.5,"sqFt":{"value":950,"level":1},"hoa":{"level":3},
	 "latLong":{"value":{"latitude":42.3875,"longitude":-71.0995},"level":1},"skParkingSpaces":{"value":1}},
	{"propertyId":"678","price":"$480,000","streetLine":{"level":1},"city":"Medford","state":"MA","zip":"02155",
	 "beds":{"value":3},"hoa":{"value":"425"},"latLong":{"latitude":42.41,"longitude":-71.11},"skParkingSpaces":2},
	{"propertyId":999,"streetLine":{"value":"no price"}},
	{"price":{"value":1}}
]}}`

func TestDecodeAndExtract(t *testing.T) {
	homes, err := decodeGIS([]byte(samplePayload))
	if err != nil {
		t.Fatalf("decodeGIS: %v", err)
	}
	if len(homes) != 4 {
		t.Fatalf("homes: got %d, want 4", len(homes))
	}

	a, ok := extractListing(homes[0], "Somerville")
	if !ok {
		t.Fatal("first home should extract")
	}
	if a.ID != "12345" || *a.Price != 549000 {
		t.Errorf("id/price: %s %v", a.ID, *a.Price)
	}
	if a.Address != "12 Elm St #2, Somerville, MA 02143" {
		t.Errorf("address: %q", a.Address)
	}
	if a.URL != "https://www.redfin.com/MA/Somerville/12-Elm-St-02143/unit-2/home/12345" {
		t.Errorf("url: %q", a.URL)
	}
	if *a.Beds != 2 || *a.Baths != 1.5 || *a.Sqft != 950 {
		t.Errorf("size fields: beds %v baths %v sqft %v", *a.Beds, *a.Baths, *a.Sqft)
	}
	if a.HOA != nil {
		t.Errorf("level-only hoa should be missing, got %v", *a.HOA)
	}
	if a.Latitude == nil || *a.Latitude != 42.3875 || *a.Longitude != -71.0995 {
		t.Errorf("coordinates: %v %v", a.Latitude, a.Longitude)
	}
	if a.Parking != "1 space" || a.Town != "Somerville" {
		t.Errorf("parking/town: %q %q", a.Parking, a.Town)
	}
	if a.InUnitLaundry != nil || a.RentEstimate != nil {
		t.Error("search results carry no laundry or rent estimate")
	}

	b, ok := extractListing(homes[1], "Medford")
	if !ok {
		t.Fatal("second home should extract")
	}
	if b.ID != "678" || *b.Price != 480000 || *b.HOA != 425 || *b.Beds != 3 {
		t.Errorf("string-typed fields: %+v", b)
	}
	if b.Address != ", Medford, MA 02155" {
		t.Errorf("address without street: %q", b.Address)
	}
	if b.URL != "" || b.Parking != "2 spaces" {
		t.Errorf("url/parking: %q %q", b.URL, b.Parking)
	}
	if b.Latitude == nil || *b.Latitude != 42.41 {
		t.Error("bare latLong should decode")
	}

	if _, ok := extractListing(homes[2], "x"); ok {
		t.Error("home without price should be skipped")
	}
	if _, ok := extractListing(homes[3], "x"); ok {
		t.Error("home without id should be skipped")
	}
}

func TestDecodeWithoutPrefix(t *testing.T) {
	homes, err := decodeGIS([]byte(`{"resultCode":0,"payload":{"homes":[]}}`))
	if err != nil || len(homes) != 0 {
		t.Errorf("got %v %v", homes, err)
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, body := range []string{
		`{}&&<html>`,
		`{}&&{"resultCode":101,"errorMessage":"Invalid argument"}`,
	} {
		if _, err := decodeGIS([]byte(body)); !errors.Is(err, errBadPayload) {
			t.Errorf("%s: expected errBadPayload, got %v", body, err)
		}
	}
}

func TestParkingDescriptor(t *testing.T) {
	num := func(f float64) field[flexNumber] {
		n := flexNumber(f)
		return field[flexNumber]{V: &n}
	}
	tests := []struct {
		name   string
		spaces field[flexNumber]
		want   string
	}{
		{"missing", field[flexNumber]{}, models.ParkingUnknown},
		{"zero", num(0), models.ParkingNone},
		{"one", num(1), "1 space"},
		{"several", num(3), "3 spaces"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parkingDescriptor(tt.spaces); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
