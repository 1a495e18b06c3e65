package search

// Unit selects which unit-qualified columns participate in
// distance/elevation filtering
type Unit string

const (
	UnitImperial Unit = "Imperial"
	UnitMetric   Unit = "Metric"
)

// rangeColumns maps unit-qualified min/max filter keys to their storage
// column expressions. Initialized once; read-only after that.
var rangeColumns = map[string]string{
	"minDistanceImperial": "t.miles",
	"maxDistanceImperial": "t.miles",
	"minDistanceMetric":   "t.kilometers",
	"maxDistanceMetric":   "t.kilometers",

	"minElevationImperial": "t.elevation_ft",
	"maxElevationImperial": "t.elevation_ft",
	"minElevationMetric":   "t.elevation_m",
	"maxElevationMetric":   "t.elevation_m",

	"minElevationGainImperial": "t.elevation_gain_ft",
	"maxElevationGainImperial": "t.elevation_gain_ft",
	"minElevationGainMetric":   "t.elevation_gain_m",
	"maxElevationGainMetric":   "t.elevation_gain_m",

	"minElevationLossImperial": "t.elevation_loss_ft",
	"maxElevationLossImperial": "t.elevation_loss_ft",
	"minElevationLossMetric":   "t.elevation_loss_m",
	"maxElevationLossMetric":   "t.elevation_loss_m",
}

// directColumn describes a client-facing filter key that maps straight
// onto a single column equality predicate
type directColumn struct {
	Expr    string
	Numeric bool
}

var directColumns = map[string]directColumn{
	"city":        {Expr: "t.city"},
	"state":       {Expr: "t.state"},
	"rating":      {Expr: "t.rating", Numeric: true},
	"dogFriendly": {Expr: "t.dog_friendly", Numeric: true},
	"kidFriendly": {Expr: "t.kid_friendly", Numeric: true},
}

// enumColumns maps multi-value enumeration filter keys to their columns
var enumColumns = map[string]string{
	"difficulty": "t.difficulty",
	"type":       "t.route_type",
}
