package domain

// Place is one record returned by a nearby search.
// The backfill core only accumulates these; it never inspects or validates them.
type Place struct {
	PlaceID  string   `json:"place_id"`
	Name     string   `json:"name"`
	Location Point    `json:"location"`
	Icon     string   `json:"icon"`
	Types    []string `json:"types,omitempty"`
	Vicinity string   `json:"vicinity,omitempty"`
	Rating   *float64 `json:"rating,omitempty"`
}
