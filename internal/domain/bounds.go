package domain

// Bounds is an axis-aligned bounding box over coordinates.
type Bounds struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// BoundsOf computes the bounding box covering all given coordinates.
// The zero Bounds is returned for an empty input.
func BoundsOf(coords ...Coordinate) Bounds {
	if len(coords) == 0 {
		return Bounds{}
	}

	b := Bounds{
		MinLat: coords[0].Lat,
		MaxLat: coords[0].Lat,
		MinLon: coords[0].Lon,
		MaxLon: coords[0].Lon,
	}
	for _, c := range coords[1:] {
		b = b.Extend(c)
	}
	return b
}

// Extend grows the box to include c.
func (b Bounds) Extend(c Coordinate) Bounds {
	if c.Lat < b.MinLat {
		b.MinLat = c.Lat
	}
	if c.Lat > b.MaxLat {
		b.MaxLat = c.Lat
	}
	if c.Lon < b.MinLon {
		b.MinLon = c.Lon
	}
	if c.Lon > b.MaxLon {
		b.MaxLon = c.Lon
	}
	return b
}

// Pad expands the box by factor of its extent on each side, used to fit
// the viewport with breathing room around the route.
func (b Bounds) Pad(factor float64) Bounds {
	latPad := (b.MaxLat - b.MinLat) * factor
	lonPad := (b.MaxLon - b.MinLon) * factor

	return Bounds{
		MinLat: b.MinLat - latPad,
		MinLon: b.MinLon - lonPad,
		MaxLat: b.MaxLat + latPad,
		MaxLon: b.MaxLon + lonPad,
	}
}
