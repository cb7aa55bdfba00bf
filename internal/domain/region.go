package domain

// Region is an ocean basin label derived from a reading's longitude.
type Region string

const (
	Atlantic Region = "Atlantic"
	Pacific  Region = "Pacific"
	Indian   Region = "Indian"
)

// Regions lists every region in rule order.
func Regions() []Region {
	return []Region{Atlantic, Pacific, Indian}
}

// Valid reports whether r is one of the known regions.
func (r Region) Valid() bool {
	switch r {
	case Atlantic, Pacific, Indian:
		return true
	default:
		return false
	}
}

func (r Region) String() string { return string(r) }

// ClassifyRegion maps a coordinate pair to its ocean basin. Only the longitude is
// consulted. The function is total: out-of-range and NaN longitudes land in
// Indian, as do the exact boundary values.
func ClassifyRegion(_, lon float64) Region {
	switch {
	case lon > -70 && lon < 20:
		return Atlantic
	case (lon > 100 && lon < 180) || (lon > -180 && lon < -100):
		return Pacific
	default:
		return Indian
	}
}
