// Package transport defines the data shapes exchanged by the geocode module.
package transport

// Coordinates is a resolved latitude/longitude pair.
// Invariant: both fields are finite and inside the valid geographic ranges;
// unparseable upstream values are rejected by the resolver, never propagated.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Candidate is one raw lookup result from the postal geocoding service.
// The upstream API reports coordinates as strings.
type Candidate struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}
