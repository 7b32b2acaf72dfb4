package models

// Place is a single geocoder hit: a coordinate pair plus the label shown
// in the picker. Results are ephemeral and belong to exactly one query
// generation.
type Place struct {
	Lat   float64
	Lng   float64
	Label string
}
