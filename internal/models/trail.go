package models

// Trail represents a hydrated trail record with stats in both unit
// systems, associated features, image paths and coordinate geometry
type Trail struct {
	ID         int64   `json:"id" db:"id"`
	Name       string  `json:"name" db:"name"`
	City       string  `json:"city" db:"city"`
	State      string  `json:"state" db:"state"`
	Difficulty string  `json:"difficulty" db:"difficulty"` // easy, moderate, hard
	RouteType  string  `json:"type" db:"route_type"`       // loop, out-and-back, point-to-point
	Rating     float64 `json:"rating" db:"rating"`         // 0-5

	DogFriendly bool `json:"dog_friendly" db:"dog_friendly"`
	KidFriendly bool `json:"kid_friendly" db:"kid_friendly"`

	// Stats, stored pre-converted per unit system
	Miles           float64 `json:"miles" db:"miles"`
	Kilometers      float64 `json:"kilometers" db:"kilometers"`
	ElevationFt     float64 `json:"elevation_ft" db:"elevation_ft"`
	ElevationM      float64 `json:"elevation_m" db:"elevation_m"`
	ElevationGainFt float64 `json:"elevation_gain_ft" db:"elevation_gain_ft"`
	ElevationGainM  float64 `json:"elevation_gain_m" db:"elevation_gain_m"`
	ElevationLossFt float64 `json:"elevation_loss_ft" db:"elevation_loss_ft"`
	ElevationLossM  float64 `json:"elevation_loss_m" db:"elevation_loss_m"`

	// Trailhead location
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`

	Description string `json:"description,omitempty" db:"description"`

	Features []string     `json:"features"`
	Images   []string     `json:"images"`
	Coords   []Coordinate `json:"coords,omitempty"`

	// Per-user flags, only populated when an acting user is known
	Wishlisted *bool `json:"wishlisted,omitempty"`
	Completed  *bool `json:"completed,omitempty"`

	CreatedAt string `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt string `json:"updated_at,omitempty" db:"updated_at"`
}

// Coordinate is one point of a trail's route geometry
type Coordinate struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Elevation float64 `json:"elevation,omitempty"` // meters
}
