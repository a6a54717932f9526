package services

import (
	"regexp"
	"strings"
	"unicode"

	"redfin-finder/config"
	"redfin-finder/models"
)

var zipRegexp = regexp.MustCompile(`\b(\d{5})\b`)

// Filter outcomes.
const (
	FilterPassed   = "passed"
	FilterPrice    = "price"
	FilterHOA      = "hoa"
	FilterLocation = "location"
)

// Filter applies the price and fee ceilings and the location allow/block
// lists. Town resolution is memoized for the life of the Filter.
type Filter struct {
	limits      config.FilterLimits
	towns       []config.Town
	blockedHood []string
	blockedZip  map[string]struct{}
	allowedZip  map[string]string
	townCache   map[string]townResult
}

type townResult struct {
	name string
	ok   bool
}

// NewFilter builds a Filter from the configured towns and block lists.
func NewFilter(limits config.FilterLimits, towns []config.Town, blockedNeighborhoods, blockedZips []string) *Filter {
	f := &Filter{
		limits:     limits,
		towns:      towns,
		blockedZip: make(map[string]struct{}, len(blockedZips)),
		allowedZip: make(map[string]string),
		townCache:  make(map[string]townResult),
	}
	for _, n := range blockedNeighborhoods {
		f.blockedHood = append(f.blockedHood, normaliseText(n))
	}
	for _, z := range blockedZips {
		f.blockedZip[z] = struct{}{}
	}
	for _, t := range towns {
		for _, z := range t.Zips {
			if _, taken := f.allowedZip[z]; !taken {
				f.allowedZip[z] = t.Name
			}
		}
	}
	return f
}

// Passes reports whether l should be kept.
func (f *Filter) Passes(l *models.Listing) bool {
	return f.Check(l) == FilterPassed
}

// Check returns FilterPassed or the first rule that rejected l.
func (f *Filter) Check(l *models.Listing) string {
	if l.Price > f.limits.MaxPrice {
		return FilterPrice
	}
	if l.HOA != 0 && l.HOA > f.limits.MaxHOAMonthly {
		return FilterHOA
	}
	if !f.LocationAllowed(l.Address, l.TownName()) {
		return FilterLocation
	}
	return FilterPassed
}

// LocationAllowed applies, in order: blocked neighborhood name, blocked
// ZIP, allowed ZIP, allowed town by hint, allowed town named in the
// address. Anything else is rejected.
func (f *Filter) LocationAllowed(address, townHint string) bool {
	addr := normaliseText(address)
	hint := normaliseText(townHint)

	for _, hood := range f.blockedHood {
		if strings.Contains(addr, hood) || (hint != "" && strings.Contains(hint, hood)) {
			return false
		}
	}

	zip := extractZip(address)
	if zip != "" {
		if _, blocked := f.blockedZip[zip]; blocked {
			return false
		}
		if _, allowed := f.allowedZip[zip]; allowed {
			return true
		}
	}

	for _, t := range f.towns {
		if hint != "" && hint == strings.ToLower(t.Name) {
			return true
		}
	}
	for _, t := range f.towns {
		if strings.Contains(addr, strings.ToLower(t.Name)) {
			return true
		}
	}
	return false
}

// ResolveTown maps an address (and optional hint) to a canonical town name:
// by ZIP first, then by exact hint, then by town name in the address.
func (f *Filter) ResolveTown(address, townHint string) (string, bool) {
	key := address + "\x00" + townHint
	if r, ok := f.townCache[key]; ok {
		return r.name, r.ok
	}
	name, ok := f.resolveTown(address, townHint)
	f.townCache[key] = townResult{name: name, ok: ok}
	return name, ok
}

func (f *Filter) resolveTown(address, townHint string) (string, bool) {
	if zip := extractZip(address); zip != "" {
		if name, ok := f.allowedZip[zip]; ok {
			return name, true
		}
	}
	hint := normaliseText(townHint)
	for _, t := range f.towns {
		if hint != "" && hint == strings.ToLower(t.Name) {
			return t.Name, true
		}
	}
	addr := normaliseText(address)
	for _, t := range f.towns {
		if strings.Contains(addr, strings.ToLower(t.Name)) {
			return t.Name, true
		}
	}
	return "", false
}

func extractZip(address string) string {
	m := zipRegexp.FindStringSubmatch(address)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// normaliseText lowercases s and collapses runs of whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), unicode.IsSpace)
	return strings.Join(fields, " ")
}
