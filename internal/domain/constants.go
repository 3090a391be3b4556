package domain

// Utilization tier thresholds (percent)
const (
	HighUtilizationThreshold = 70
	NearCapacityThreshold    = 90
	FullUtilization          = 100
)

// Business validation constants
const (
	MinMaxPerDay           = 1
	MinMaxPerRotation      = 1
	MaxCapacityNotesLength = 2000
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultSaveErrorMessage is shown when a failed save carries no server message
const DefaultSaveErrorMessage = "failed to save capacity"
