package domain

// Coordinate represents a WGS-84 geographic point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// IsZero reports whether the coordinate is the zero value. Place validation
// treats the zero value as "no coordinate entered"; navigation instead
// models absence with a nil pointer, since (0, 0) is a legal point.
func (c Coordinate) IsZero() bool {
	return c.Lat == 0 && c.Lon == 0
}
