package domain

import "strconv"

// Utilization is the derived occupancy of a site
type Utilization struct {
	Percentage int
	IsOver     bool
}

// Classify derives the utilization percentage and over-capacity flag.
// A limit <= 0 means the site is unconfigured: 0% and never over capacity.
// Percentage is round-half-up of current/max*100 and may exceed 100.
// IsOver compares raw counts, so 100.4% (rounded to 100) is still over.
func Classify(current, max int) Utilization {
	if current < 0 {
		current = 0
	}
	if max <= 0 {
		return Utilization{}
	}

	// floor(100*current/max + 1/2) without floating point
	percentage := (200*current + max) / (2 * max)

	return Utilization{
		Percentage: percentage,
		IsOver:     current > max,
	}
}

// BarWidth clamps a percentage to the [0, 100] range of a progress bar
func BarWidth(percentage int) int {
	if percentage < 0 {
		return 0
	}
	if percentage > FullUtilization {
		return FullUtilization
	}
	return percentage
}

// FormatPercentage prints the true, unclamped percentage, e.g. "134%"
func FormatPercentage(percentage int) string {
	return strconv.Itoa(percentage) + "%"
}
