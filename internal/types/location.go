package types

// Location is a persisted named point, optionally tagged with country,
// population and capital type.
type Location struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Country     *string `json:"country,omitempty"`
	Population  *int64  `json:"population,omitempty"`
	CapitalType *string `json:"capitalType,omitempty"`
}

// Coords returns the location's coordinates
func (l Location) Coords() Coords {
	return NewCoords(l.Latitude, l.Longitude)
}

// NewLocation holds the fields accepted when creating a location
type NewLocation struct {
	Name        string
	Latitude    float64
	Longitude   float64
	Country     *string
	Population  *int64
	CapitalType *string
}
