package config

// Town is an allowed search area.
type Town struct {
	Name       string
	RegionID   string
	RegionType string
	Zips       []string
	// FallbackRent is the median full 1BR rent used when no rental estimate
	// exists for a listing.
	FallbackRent int
}

// Destination is a fixed commute target.
type Destination struct {
	Label string
	Lat   float64
	Lng   float64
}

// MetroFallbackRent is used for towns without a FallbackRent.
const MetroFallbackRent = 1_800

// Towns lists every allowed town. RegionType "2" is a ZIP-code region search.
var Towns = []Town{
	{Name: "Quincy", RegionID: "660", RegionType: "2", Zips: []string{"02169", "02170", "02171"}, FallbackRent: 1_800},
	{Name: "Waltham", RegionID: "750", RegionType: "2", Zips: []string{"02451", "02452", "02453", "02454"}, FallbackRent: 1_900},
	{Name: "Newton", RegionID: "757", RegionType: "2", Zips: []string{"02458", "02459", "02460", "02461", "02462", "02464", "02465", "02466", "02467", "02468"}, FallbackRent: 2_200},
	{Name: "Watertown", RegionID: "767", RegionType: "2", Zips: []string{"02471", "02472"}, FallbackRent: 2_100},
	{Name: "Brighton", RegionID: "640", RegionType: "2", Zips: []string{"02135"}, FallbackRent: 2_000},
	{Name: "Allston", RegionID: "639", RegionType: "2", Zips: []string{"02134"}, FallbackRent: 1_900},
	{Name: "Somerville", RegionID: "648", RegionType: "2", Zips: []string{"02143", "02144", "02145"}, FallbackRent: 2_300},
	{Name: "Cambridge", RegionID: "643", RegionType: "2", Zips: []string{"02138", "02139", "02140", "02141", "02142"}, FallbackRent: 2_500},
	{Name: "Brookline", RegionID: "747", RegionType: "2", Zips: []string{"02445", "02446", "02447"}, FallbackRent: 2_400},
	{Name: "Medford", RegionID: "657", RegionType: "2", Zips: []string{"02155", "02156"}, FallbackRent: 1_900},
	{Name: "Arlington", RegionID: "769", RegionType: "2", Zips: []string{"02474", "02476"}, FallbackRent: 2_000},
	{Name: "Belmont", RegionID: "773", RegionType: "2", Zips: []string{"02478"}, FallbackRent: 2_100},
}

// BlockedNeighborhoods reject a listing when found in its address or town.
var BlockedNeighborhoods = []string{
	"dorchester",
	"jamaica plain",
	"east boston",
	"revere",
	"roxbury",
	"mattapan",
	"hyde park",
}

// BlockedZips reject a listing outright.
var BlockedZips = []string{
	// Dorchester
	"02121", "02122", "02124", "02125",
	// Jamaica Plain, East Boston, Revere
	"02130", "02128", "02151",
	// Roxbury, Mattapan, Hyde Park
	"02119", "02120", "02126", "02136",
}

// Reference commute destinations.
var (
	Destination1 = Destination{Label: "Seaport (200 Pier 4 Blvd)", Lat: 42.3519, Lng: -71.0446}
	Destination2 = Destination{Label: "Google Cambridge", Lat: 42.3625, Lng: -71.0847}
)

// FallbackRents maps town name to its FallbackRent.
func FallbackRents() map[string]int {
	rents := make(map[string]int, len(Towns))
	for _, t := range Towns {
		if t.FallbackRent > 0 {
			rents[t.Name] = t.FallbackRent
		}
	}
	return rents
}
