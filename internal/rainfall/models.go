package rainfall

// Query identifies a single rainfall lookup: a free-text place name
// and an ISO-8601 date-time whose calendar day is the day of interest.
type Query struct {
	Location string `json:"location"`
	Date     string `json:"date"`
}

// GeoLocation is the first geocoding match for a query location.
// It lives for one pipeline invocation and is never cached.
type GeoLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
}

// Amount is a daily precipitation sum in millimeters.
type Amount struct {
	Amount float64 `json:"amount"`
}
