package domain

import (
	"fmt"
	"strings"
)

// Category is the tab filter applied to the aggregated site list
type Category string

const (
	CategoryAll          Category = "all"
	CategoryEMS          Category = "ems"
	CategoryHospital     Category = "hospital"
	CategoryClinicalSite Category = "clinical_site"
)

// ParseCategory parses a category name, empty means CategoryAll
func ParseCategory(value string) (Category, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return CategoryAll, nil
	}
	switch c := Category(value); c {
	case CategoryAll, CategoryEMS, CategoryHospital, CategoryClinicalSite:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, value)
	}
}

// Matches returns true if the site belongs to the category
func (c Category) Matches(site *CapacitySite) bool {
	switch c {
	case CategoryAll:
		return true
	case CategoryEMS:
		return site.Source == SourceAgency && site.Type == AgencyTypeEMS
	case CategoryHospital:
		return site.Source == SourceAgency && site.Type == AgencyTypeHospital
	case CategoryClinicalSite:
		return site.Source == SourceClinicalSite
	default:
		return false
	}
}

// CapacityCounts is the roll-up shown on the summary tiles.
// Near merges "High Utilization" and "Near Capacity".
type CapacityCounts struct {
	Available int
	Near      int
	Over      int
}

// Total returns the number of counted sites
func (c CapacityCounts) Total() int {
	return c.Available + c.Near + c.Over
}

// Aggregation is the merged site list with its roll-up counts
type Aggregation struct {
	All    []CapacitySite
	Counts CapacityCounts
}

// Aggregate concatenates agencies then clinical sites, keeping their order,
// and counts over the full unfiltered set
func Aggregate(agencies, clinicalSites []CapacitySite) Aggregation {
	all := make([]CapacitySite, 0, len(agencies)+len(clinicalSites))
	all = append(all, agencies...)
	all = append(all, clinicalSites...)

	return Aggregation{
		All:    all,
		Counts: CountCapacity(all),
	}
}

// CountCapacity computes the roll-up counts of a site list
func CountCapacity(sites []CapacitySite) CapacityCounts {
	var counts CapacityCounts
	for i := range sites {
		switch {
		case sites[i].IsOverCapacity:
			counts.Over++
		case sites[i].UtilizationPercentage >= HighUtilizationThreshold:
			counts.Near++
		default:
			counts.Available++
		}
	}
	return counts
}

// Filter returns the sites matching the category, in their original order
func Filter(sites []CapacitySite, category Category) []CapacitySite {
	filtered := make([]CapacitySite, 0, len(sites))
	for i := range sites {
		if category.Matches(&sites[i]) {
			filtered = append(filtered, sites[i])
		}
	}
	return filtered
}
