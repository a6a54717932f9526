package redfin

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"redfin-finder/models"
)

// jsonPrefix guards the GIS payload against JSON hijacking.
const jsonPrefix = "{}&&"

const siteURL = "https://www.redfin.com"

// field decodes a GIS attribute that may arrive bare, wrapped as
// {"value": X}, or as a {"level": N} marker with no value. Anything that
// does not decode into T is treated as missing.
type field[T any] struct {
	V *T
}

func (f *field[T]) UnmarshalJSON(b []byte) error {
	f.V = nil
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '{' {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(b, &obj); err != nil {
			return nil
		}
		if inner, ok := obj["value"]; ok {
			b = bytes.TrimSpace(inner)
			if len(b) == 0 || bytes.Equal(b, []byte("null")) {
				return nil
			}
		}
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	f.V = &v
	return nil
}

// flexNumber accepts 450000, 450000.0 or "$450,000".
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	s := string(bytes.TrimSpace(b))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(str)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	*n = flexNumber(v)
	return nil
}

// flexString accepts a JSON string or a bare number.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = flexString(str)
		return nil
	}
	if _, err := strconv.ParseFloat(string(b), 64); err != nil {
		return fmt.Errorf("not a string or number: %s", b)
	}
	*s = flexString(b)
	return nil
}

type gisLatLong struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type gisHome struct {
	PropertyID    field[flexString] `json:"propertyId"`
	Price         field[flexNumber] `json:"price"`
	StreetLine    field[flexString] `json:"streetLine"`
	City          field[flexString] `json:"city"`
	State         field[flexString] `json:"state"`
	Zip           field[flexString] `json:"zip"`
	URL           field[flexString] `json:"url"`
	Beds          field[flexNumber] `json:"beds"`
	Baths         field[flexNumber] `json:"baths"`
	SqFt          field[flexNumber] `json:"sqFt"`
	HOA           field[flexNumber] `json:"hoa"`
	LatLong       field[gisLatLong] `json:"latLong"`
	ParkingSpaces field[flexNumber] `json:"skParkingSpaces"`
}

type gisResponse struct {
	ResultCode   int    `json:"resultCode"`
	ErrorMessage string `json:"errorMessage"`
	Payload      struct {
		Homes []gisHome `json:"homes"`
	} `json:"payload"`
}

var errBadPayload = errors.New("malformed GIS payload")

// decodeGIS strips the anti-hijacking prefix and returns the homes array.
func decodeGIS(body []byte) ([]gisHome, error) {
	body = bytes.TrimSpace(body)
	body = bytes.TrimPrefix(body, []byte(jsonPrefix))

	var resp gisResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadPayload, err)
	}
	if resp.ResultCode != 0 {
		return nil, fmt.Errorf("%w: result code %d: %s", errBadPayload, resp.ResultCode, resp.ErrorMessage)
	}
	return resp.Payload.Homes, nil
}

// extractListing maps one GIS home onto a RawListing. Homes without a
// property id or a price are skipped.
func extractListing(h gisHome, town string) (*models.RawListing, bool) {
	if h.PropertyID.V == nil || *h.PropertyID.V == "" || h.Price.V == nil {
		return nil, false
	}

	raw := &models.RawListing{
		ID:      string(*h.PropertyID.V),
		Address: joinAddress(str(h.StreetLine), str(h.City), str(h.State), str(h.Zip)),
		Town:    town,
		Price:   intOf(h.Price),
		Beds:    intOf(h.Beds),
		Sqft:    intOf(h.SqFt),
		HOA:     intOf(h.HOA),
		Parking: parkingDescriptor(h.ParkingSpaces),
	}
	if path := str(h.URL); path != "" {
		raw.URL = siteURL + path
	}
	if h.Baths.V != nil {
		v := float64(*h.Baths.V)
		raw.Baths = &v
	}
	if ll := h.LatLong.V; ll != nil {
		raw.Latitude = ll.Latitude
		raw.Longitude = ll.Longitude
	}
	return raw, true
}

func joinAddress(street, city, state, zip string) string {
	addr := fmt.Sprintf("%s, %s, %s %s", street, city, state, zip)
	addr = strings.TrimSpace(addr)
	addr = strings.TrimRight(addr, ",")
	return strings.TrimSpace(addr)
}

func parkingDescriptor(spaces field[flexNumber]) string {
	if spaces.V == nil {
		return models.ParkingUnknown
	}
	n := int(*spaces.V)
	if n <= 0 {
		return models.ParkingNone
	}
	if n == 1 {
		return "1 space"
	}
	return fmt.Sprintf("%d spaces", n)
}

func str(f field[flexString]) string {
	if f.V == nil {
		return ""
	}
	return strings.TrimSpace(string(*f.V))
}

func intOf(f field[flexNumber]) *int {
	if f.V == nil {
		return nil
	}
	v := int(math.Round(float64(*f.V)))
	return &v
}
