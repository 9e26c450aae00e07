package finder

import (
	"math"
	"regexp"
	"sort"
	"strconv"

	"parkscout/models"
)

// earthRadiusMiles is the fixed haversine radius used throughout.
const earthRadiusMiles = 3958.7613

// latLongRe matches the upstream combined coordinate field, literally of
// the form "lat: <num>, long: <num>".
var latLongRe = regexp.MustCompile(`(?i)lat:\s*([-0-9.]+)\s*,\s*long:\s*([-0-9.]+)`)

// ParseLatLong extracts a coordinate pair from the combined string field.
// Returns nil for an empty or malformed value.
func ParseLatLong(latLong string) *models.Origin {
	m := latLongRe.FindStringSubmatch(latLong)
	if m == nil {
		return nil
	}
	lat, err1 := strconv.ParseFloat(m[1], 64)
	lon, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil {
		return nil
	}
	return &models.Origin{Lat: lat, Lon: lon}
}

// HaversineMiles computes the great-circle distance between two coordinates.
func HaversineMiles(a, b models.Origin) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)
	lat1 := toRad(a.Lat)
	lat2 := toRad(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMiles * math.Asin(math.Sqrt(h))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// FilterByRadius keeps the codes whose park lies within radiusMiles of
// origin (inclusive). Parks without a parseable coordinate are filtered out.
// byCode maps normalized park code to its detail record.
func FilterByRadius(codes []string, byCode map[string]models.Park, origin models.Origin, radiusMiles float64) []string {
	within := make([]string, 0, len(codes))
	for _, code := range codes {
		park, ok := byCode[code]
		if !ok {
			continue
		}
		ll := ParseLatLong(park.LatLong)
		if ll == nil {
			continue
		}
		if HaversineMiles(origin, *ll) <= radiusMiles {
			within = append(within, code)
		}
	}
	return within
}

// SortByDistance orders codes ascending by great-circle distance from
// origin. A park without a coordinate sorts as infinitely distant; equal
// distances break ties by lexicographic code order for determinism.
func SortByDistance(codes []string, byCode map[string]models.Park, origin models.Origin) []string {
	type scored struct {
		code string
		dist float64
	}
	ranked := make([]scored, 0, len(codes))
	for _, code := range codes {
		dist := math.Inf(1)
		if park, ok := byCode[code]; ok {
			if ll := ParseLatLong(park.LatLong); ll != nil {
				dist = HaversineMiles(origin, *ll)
			}
		}
		ranked = append(ranked, scored{code: code, dist: dist})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].dist != ranked[j].dist {
			return ranked[i].dist < ranked[j].dist
		}
		return ranked[i].code < ranked[j].code
	})

	out := make([]string, len(ranked))
	for i, s := range ranked {
		out[i] = s.code
	}
	return out
}
