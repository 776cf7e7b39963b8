package models

import "github.com/UnknownOlympus/haversine"

// Task represents a geocoded task waiting for its dispatch proximity.
type Task struct {
	ID       int             // ID is the unique identifier for the task.
	Location haversine.Point // Location is the geocoded position of the task address.
}

// Proximity is the position of a task relative to the dispatch origin.
type Proximity struct {
	Distance float64 // Distance is the great-circle distance from the origin, in the configured unit.
	Bearing  float64 // Bearing is the initial compass bearing from the origin, in degrees.
}
