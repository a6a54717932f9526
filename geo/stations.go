package geo

// MBTAStations covers the Red, Orange, Blue and Green lines. Coordinates are
// approximate station centroids; stations shared by two lines appear once per line.
var MBTAStations = []Station{
	{Name: "Alewife", Line: "Red", Lat: 42.3954, Lng: -71.1425},
	{Name: "Davis", Line: "Red", Lat: 42.3967, Lng: -71.1218},
	{Name: "Porter", Line: "Red", Lat: 42.3884, Lng: -71.1191},
	{Name: "Harvard", Line: "Red", Lat: 42.3734, Lng: -71.1189},
	{Name: "Central", Line: "Red", Lat: 42.3653, Lng: -71.1037},
	{Name: "Kendall/MIT", Line: "Red", Lat: 42.3625, Lng: -71.0862},
	{Name: "Charles/MGH", Line: "Red", Lat: 42.3613, Lng: -71.0707},
	{Name: "Park Street", Line: "Red", Lat: 42.3564, Lng: -71.0624},
	{Name: "Downtown Crossing", Line: "Red", Lat: 42.3555, Lng: -71.0602},
	{Name: "South Station", Line: "Red", Lat: 42.3523, Lng: -71.0553},
	{Name: "Broadway", Line: "Red", Lat: 42.3426, Lng: -71.0569},
	{Name: "Andrew", Line: "Red", Lat: 42.3302, Lng: -71.0570},
	{Name: "JFK/UMass", Line: "Red", Lat: 42.3209, Lng: -71.0524},
	{Name: "North Quincy", Line: "Red", Lat: 42.2754, Lng: -71.0300},
	{Name: "Wollaston", Line: "Red", Lat: 42.2665, Lng: -71.0198},
	{Name: "Quincy Center", Line: "Red", Lat: 42.2516, Lng: -71.0052},
	{Name: "Quincy Adams", Line: "Red", Lat: 42.2330, Lng: -71.0073},
	{Name: "Braintree", Line: "Red", Lat: 42.2078, Lng: -71.0011},
	{Name: "Savin Hill", Line: "Red", Lat: 42.3112, Lng: -71.0534},
	{Name: "Fields Corner", Line: "Red", Lat: 42.3000, Lng: -71.0616},
	{Name: "Shawmut", Line: "Red", Lat: 42.2932, Lng: -71.0658},
	{Name: "Ashmont", Line: "Red", Lat: 42.2840, Lng: -71.0637},
	{Name: "Oak Grove", Line: "Orange", Lat: 42.4367, Lng: -71.0710},
	{Name: "Malden Center", Line: "Orange", Lat: 42.4268, Lng: -71.0740},
	{Name: "Wellington", Line: "Orange", Lat: 42.4046, Lng: -71.0770},
	{Name: "Assembly", Line: "Orange", Lat: 42.3924, Lng: -71.0770},
	{Name: "Sullivan Square", Line: "Orange", Lat: 42.3840, Lng: -71.0770},
	{Name: "Community College", Line: "Orange", Lat: 42.3736, Lng: -71.0695},
	{Name: "North Station", Line: "Orange", Lat: 42.3655, Lng: -71.0614},
	{Name: "Haymarket", Line: "Orange", Lat: 42.3630, Lng: -71.0583},
	{Name: "State", Line: "Orange", Lat: 42.3587, Lng: -71.0576},
	{Name: "Downtown Crossing", Line: "Orange", Lat: 42.3555, Lng: -71.0602},
	{Name: "Chinatown", Line: "Orange", Lat: 42.3524, Lng: -71.0625},
	{Name: "Tufts Medical Center", Line: "Orange", Lat: 42.3497, Lng: -71.0638},
	{Name: "Back Bay", Line: "Orange", Lat: 42.3474, Lng: -71.0753},
	{Name: "Massachusetts Ave", Line: "Orange", Lat: 42.3414, Lng: -71.0835},
	{Name: "Ruggles", Line: "Orange", Lat: 42.3365, Lng: -71.0890},
	{Name: "Roxbury Crossing", Line: "Orange", Lat: 42.3313, Lng: -71.0954},
	{Name: "Jackson Square", Line: "Orange", Lat: 42.3233, Lng: -71.0998},
	{Name: "Stony Brook", Line: "Orange", Lat: 42.3170, Lng: -71.1042},
	{Name: "Green Street", Line: "Orange", Lat: 42.3104, Lng: -71.1074},
	{Name: "Forest Hills", Line: "Orange", Lat: 42.3006, Lng: -71.1139},
	{Name: "Wonderland", Line: "Blue", Lat: 42.4135, Lng: -70.9917},
	{Name: "Revere Beach", Line: "Blue", Lat: 42.4077, Lng: -70.9925},
	{Name: "Beachmont", Line: "Blue", Lat: 42.3975, Lng: -70.9923},
	{Name: "Suffolk Downs", Line: "Blue", Lat: 42.3903, Lng: -70.9972},
	{Name: "Orient Heights", Line: "Blue", Lat: 42.3867, Lng: -71.0046},
	{Name: "Wood Island", Line: "Blue", Lat: 42.3796, Lng: -71.0230},
	{Name: "Airport", Line: "Blue", Lat: 42.3742, Lng: -71.0302},
	{Name: "Maverick", Line: "Blue", Lat: 42.3691, Lng: -71.0396},
	{Name: "Aquarium", Line: "Blue", Lat: 42.3597, Lng: -71.0517},
	{Name: "Government Center", Line: "Blue", Lat: 42.3594, Lng: -71.0592},
	{Name: "Bowdoin", Line: "Blue", Lat: 42.3614, Lng: -71.0620},
	{Name: "Lechmere", Line: "Green", Lat: 42.3708, Lng: -71.0769},
	{Name: "Science Park", Line: "Green", Lat: 42.3665, Lng: -71.0681},
	{Name: "North Station", Line: "Green", Lat: 42.3655, Lng: -71.0614},
	{Name: "Haymarket", Line: "Green", Lat: 42.3630, Lng: -71.0583},
	{Name: "Government Center", Line: "Green", Lat: 42.3594, Lng: -71.0592},
	{Name: "Park Street", Line: "Green", Lat: 42.3564, Lng: -71.0624},
	{Name: "Boylston", Line: "Green", Lat: 42.3529, Lng: -71.0646},
	{Name: "Arlington", Line: "Green", Lat: 42.3519, Lng: -71.0707},
	{Name: "Copley", Line: "Green", Lat: 42.3500, Lng: -71.0774},
	{Name: "Hynes Convention Center", Line: "Green", Lat: 42.3479, Lng: -71.0874},
	{Name: "Kenmore", Line: "Green", Lat: 42.3487, Lng: -71.0952},
	{Name: "Blandford Street", Line: "Green-B", Lat: 42.3492, Lng: -71.1003},
	{Name: "Boston University East", Line: "Green-B", Lat: 42.3500, Lng: -71.1040},
	{Name: "Boston University Central", Line: "Green-B", Lat: 42.3503, Lng: -71.1068},
	{Name: "Boston University West", Line: "Green-B", Lat: 42.3508, Lng: -71.1132},
	{Name: "Packards Corner", Line: "Green-B", Lat: 42.3515, Lng: -71.1161},
	{Name: "Harvard Avenue", Line: "Green-B", Lat: 42.3504, Lng: -71.1312},
	{Name: "Allston Street", Line: "Green-B", Lat: 42.3487, Lng: -71.1372},
	{Name: "Warren Street", Line: "Green-B", Lat: 42.3484, Lng: -71.1404},
	{Name: "Washington Street", Line: "Green-B", Lat: 42.3434, Lng: -71.1498},
	{Name: "Sutherland Road", Line: "Green-B", Lat: 42.3418, Lng: -71.1462},
	{Name: "Chiswick Road", Line: "Green-B", Lat: 42.3407, Lng: -71.1528},
	{Name: "Chestnut Hill Avenue", Line: "Green-B", Lat: 42.3386, Lng: -71.1534},
	{Name: "South Street", Line: "Green-B", Lat: 42.3398, Lng: -71.1575},
	{Name: "Boston College", Line: "Green-B", Lat: 42.3396, Lng: -71.1664},
	{Name: "Saint Marys Street", Line: "Green-C", Lat: 42.3459, Lng: -71.1049},
	{Name: "Hawes Street", Line: "Green-C", Lat: 42.3442, Lng: -71.1111},
	{Name: "Kent Street", Line: "Green-C", Lat: 42.3424, Lng: -71.1146},
	{Name: "Saint Paul Street", Line: "Green-C", Lat: 42.3404, Lng: -71.1165},
	{Name: "Coolidge Corner", Line: "Green-C", Lat: 42.3387, Lng: -71.1209},
	{Name: "Summit Avenue", Line: "Green-C", Lat: 42.3400, Lng: -71.1274},
	{Name: "Brandon Hall", Line: "Green-C", Lat: 42.3397, Lng: -71.1310},
	{Name: "Fairbanks Street", Line: "Green-C", Lat: 42.3391, Lng: -71.1345},
	{Name: "Washington Square", Line: "Green-C", Lat: 42.3393, Lng: -71.1386},
	{Name: "Tappan Street", Line: "Green-C", Lat: 42.3383, Lng: -71.1418},
	{Name: "Dean Road", Line: "Green-C", Lat: 42.3373, Lng: -71.1445},
	{Name: "Englewood Avenue", Line: "Green-C", Lat: 42.3365, Lng: -71.1481},
	{Name: "Cleveland Circle", Line: "Green-C", Lat: 42.3362, Lng: -71.1511},
	{Name: "Fenway", Line: "Green-D", Lat: 42.3450, Lng: -71.1004},
	{Name: "Longwood", Line: "Green-D", Lat: 42.3416, Lng: -71.1097},
	{Name: "Brookline Village", Line: "Green-D", Lat: 42.3326, Lng: -71.1168},
	{Name: "Brookline Hills", Line: "Green-D", Lat: 42.3312, Lng: -71.1264},
	{Name: "Beaconsfield", Line: "Green-D", Lat: 42.3310, Lng: -71.1410},
	{Name: "Reservoir", Line: "Green-D", Lat: 42.3352, Lng: -71.1488},
	{Name: "Chestnut Hill", Line: "Green-D", Lat: 42.3268, Lng: -71.1646},
	{Name: "Newton Centre", Line: "Green-D", Lat: 42.3293, Lng: -71.1921},
	{Name: "Newton Highlands", Line: "Green-D", Lat: 42.3219, Lng: -71.2060},
	{Name: "Eliot", Line: "Green-D", Lat: 42.3190, Lng: -71.2163},
	{Name: "Waban", Line: "Green-D", Lat: 42.3260, Lng: -71.2305},
	{Name: "Woodland", Line: "Green-D", Lat: 42.3330, Lng: -71.2430},
	{Name: "Riverside", Line: "Green-D", Lat: 42.3372, Lng: -71.2523},
	{Name: "Prudential", Line: "Green-E", Lat: 42.3458, Lng: -71.0819},
	{Name: "Symphony", Line: "Green-E", Lat: 42.3425, Lng: -71.0854},
	{Name: "Northeastern University", Line: "Green-E", Lat: 42.3400, Lng: -71.0888},
	{Name: "Museum of Fine Arts", Line: "Green-E", Lat: 42.3375, Lng: -71.0958},
	{Name: "Longwood Medical Area", Line: "Green-E", Lat: 42.3354, Lng: -71.0993},
	{Name: "Brigham Circle", Line: "Green-E", Lat: 42.3343, Lng: -71.1044},
	{Name: "Fenwood Road", Line: "Green-E", Lat: 42.3333, Lng: -71.1056},
	{Name: "Mission Park", Line: "Green-E", Lat: 42.3319, Lng: -71.1089},
	{Name: "Riverway", Line: "Green-E", Lat: 42.3319, Lng: -71.1089},
	{Name: "Back of the Hill", Line: "Green-E", Lat: 42.3299, Lng: -71.1107},
	{Name: "Heath Street", Line: "Green-E", Lat: 42.3285, Lng: -71.1111},
	{Name: "East Somerville", Line: "Green-Ext", Lat: 42.3793, Lng: -71.0870},
	{Name: "Gilman Square", Line: "Green-Ext", Lat: 42.3880, Lng: -71.0960},
	{Name: "Magoun Square", Line: "Green-Ext", Lat: 42.3934, Lng: -71.1061},
	{Name: "Ball Square", Line: "Green-Ext", Lat: 42.3987, Lng: -71.1107},
	{Name: "Medford/Tufts", Line: "Green-Ext", Lat: 42.4074, Lng: -71.1166},
	{Name: "Union Square", Line: "Green-Ext", Lat: 42.3770, Lng: -71.0930},
}
