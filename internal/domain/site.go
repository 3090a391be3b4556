package domain

import (
	"fmt"
	"strings"
)

// Source identifies the backing collection a capacity site comes from
type Source string

const (
	SourceAgency       Source = "agency"
	SourceClinicalSite Source = "clinical_site"
)

// IsValid returns true for known sources
func (s Source) IsValid() bool {
	return s == SourceAgency || s == SourceClinicalSite
}

// ParseSource parses a source name
func ParseSource(value string) (Source, error) {
	s := Source(strings.TrimSpace(value))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSource, value)
	}
	return s, nil
}

// AgencyType is the sub-classification of an agency (empty for clinical sites)
type AgencyType string

const (
	AgencyTypeEMS      AgencyType = "ems"
	AgencyTypeHospital AgencyType = "hospital"
)

// SiteKey is the real identity of a capacity site: ids are unique only within a source
type SiteKey struct {
	Source Source
	ID     string
}

// String renders the composite key as "source-id"
func (k SiteKey) String() string {
	return string(k.Source) + "-" + k.ID
}

// CapacitySite is the merged read model of an agency or a clinical site
type CapacitySite struct {
	ID                    string
	Name                  string
	Source                Source
	Type                  AgencyType // only meaningful for SourceAgency
	MaxPerDay             int
	MaxPerRotation        *int
	CurrentStudentCount   int // supplied by the scheduling subsystem, read-only here
	UtilizationPercentage int
	IsOverCapacity        bool
	CapacityNotes         *string
}

// Key returns the (source, id) identity of the site
func (s *CapacitySite) Key() SiteKey {
	return SiteKey{Source: s.Source, ID: s.ID}
}

// Recalculate refreshes the derived utilization fields from the raw counts
func (s *CapacitySite) Recalculate() {
	u := Classify(s.CurrentStudentCount, s.MaxPerDay)
	s.UtilizationPercentage = u.Percentage
	s.IsOverCapacity = u.IsOver
}

// Status returns the presented status of the site
func (s *CapacitySite) Status() Status {
	return Present(s.UtilizationPercentage, s.IsOverCapacity)
}

// TypeLabel returns a human readable classification used by listings and exports
func (s *CapacitySite) TypeLabel() string {
	if s.Source == SourceClinicalSite {
		return "Clinical Site"
	}
	switch s.Type {
	case AgencyTypeEMS:
		return "EMS"
	case AgencyTypeHospital:
		return "Hospital"
	default:
		return "Agency"
	}
}

// SiteSources holds the two heterogeneous collections before aggregation
type SiteSources struct {
	Agencies      []CapacitySite
	ClinicalSites []CapacitySite
}

// CapacityUpdate carries the editable capacity fields of a site
// MaxPerRotation and CapacityNotes set to nil clear the stored value
type CapacityUpdate struct {
	MaxPerDay      int
	MaxPerRotation *int
	CapacityNotes  *string
}

// ApplyTo writes the update onto a site and refreshes derived fields
func (u *CapacityUpdate) ApplyTo(site *CapacitySite) {
	site.MaxPerDay = u.MaxPerDay
	site.MaxPerRotation = u.MaxPerRotation
	site.CapacityNotes = u.CapacityNotes
	site.Recalculate()
}
