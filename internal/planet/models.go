package planet

// Planet is a catalog entry. The JSON field set is the full wire contract:
// exactly these seven fields, always present.
type Planet struct {
	PlanetID   int     `json:"planet_id"`
	PlanetName string  `json:"planet_name"`
	PlanetType string  `json:"planet_type"`
	HomeStar   string  `json:"home_star"`
	Mass       float64 `json:"mass"`
	Radius     float64 `json:"radius"`
	Distance   float64 `json:"distance"`
}

// Changes carries a partial update. A nil field is left untouched; a set
// field is applied even when it is zero or empty.
type Changes struct {
	PlanetName *string
	PlanetType *string
	HomeStar   *string
	Mass       *float64
	Radius     *float64
	Distance   *float64
}
