package storage

import "math"

// nullableFloat maps NaN ("no signal") to SQL NULL so downstream queries
// never mistake missing coverage for a zero score.
func nullableFloat(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

// nullablePtr is the pointer form of nullableFloat for ORM models.
func nullablePtr(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
