package domain

// StatusLabel is the per-site capacity status
type StatusLabel string

const (
	StatusOverCapacity    StatusLabel = "Over Capacity"
	StatusNearCapacity    StatusLabel = "Near Capacity"
	StatusHighUtilization StatusLabel = "High Utilization"
	StatusAvailable       StatusLabel = "Available"
)

// ColorTier is the color family used to render a status
type ColorTier string

const (
	TierRedStrong ColorTier = "red-strong"
	TierRed       ColorTier = "red"
	TierYellow    ColorTier = "yellow"
	TierGreen     ColorTier = "green"
)

// Status is the presentation of a (percentage, isOver) pair
type Status struct {
	Label StatusLabel
	Tier  ColorTier
	Badge string
}

var (
	statusOver      = Status{Label: StatusOverCapacity, Tier: TierRedStrong, Badge: "badge-over"}
	statusNear      = Status{Label: StatusNearCapacity, Tier: TierRed, Badge: "badge-near"}
	statusHigh      = Status{Label: StatusHighUtilization, Tier: TierYellow, Badge: "badge-high"}
	statusAvailable = Status{Label: StatusAvailable, Tier: TierGreen, Badge: "badge-available"}
)

// Present maps a utilization to its status, first match wins.
// isOver and percentage > 100 are checked together because the percentage is
// rounded while isOver comes from raw counts.
func Present(percentage int, isOver bool) Status {
	switch {
	case isOver || percentage > FullUtilization:
		return statusOver
	case percentage >= NearCapacityThreshold:
		return statusNear
	case percentage >= HighUtilizationThreshold:
		return statusHigh
	default:
		return statusAvailable
	}
}
