package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func site(source Source, id string, agencyType AgencyType, current, max int) CapacitySite {
	s := CapacitySite{
		ID:                  id,
		Name:                "Site " + id,
		Source:              source,
		Type:                agencyType,
		MaxPerDay:           max,
		CurrentStudentCount: current,
	}
	s.Recalculate()
	return s
}

func fixtureSources() ([]CapacitySite, []CapacitySite) {
	agencies := []CapacitySite{
		site(SourceAgency, "A1", AgencyTypeEMS, 2, 10),       // 20% available
		site(SourceAgency, "A2", AgencyTypeHospital, 8, 10),  // 80% high
		site(SourceAgency, "A3", AgencyTypeEMS, 12, 10),      // over
		site(SourceAgency, "A4", AgencyTypeHospital, 19, 20), // 95% near
	}
	clinical := []CapacitySite{
		site(SourceClinicalSite, "A1", "", 5, 0), // unconfigured
		site(SourceClinicalSite, "C2", "", 4, 4), // 100% near
	}
	return agencies, clinical
}

func TestAggregate_PreservesOrder(t *testing.T) {
	agencies, clinical := fixtureSources()

	result := Aggregate(agencies, clinical)

	require.Len(t, result.All, 6)
	keys := make([]string, 0, len(result.All))
	for i := range result.All {
		keys = append(keys, result.All[i].Key().String())
	}
	assert.Equal(t, []string{
		"agency-A1", "agency-A2", "agency-A3", "agency-A4",
		"clinical_site-A1", "clinical_site-C2",
	}, keys)
}

func TestAggregate_Counts(t *testing.T) {
	agencies, clinical := fixtureSources()

	result := Aggregate(agencies, clinical)

	assert.Equal(t, CapacityCounts{Available: 2, Near: 3, Over: 1}, result.Counts)
	assert.Equal(t, len(result.All), result.Counts.Total())
}

func TestAggregate_Empty(t *testing.T) {
	result := Aggregate(nil, nil)

	assert.Empty(t, result.All)
	assert.Equal(t, CapacityCounts{}, result.Counts)
}

func TestFilter_Categories(t *testing.T) {
	agencies, clinical := fixtureSources()
	all := Aggregate(agencies, clinical).All

	tests := []struct {
		category Category
		expected []string
	}{
		{CategoryAll, []string{"agency-A1", "agency-A2", "agency-A3", "agency-A4", "clinical_site-A1", "clinical_site-C2"}},
		{CategoryEMS, []string{"agency-A1", "agency-A3"}},
		{CategoryHospital, []string{"agency-A2", "agency-A4"}},
		{CategoryClinicalSite, []string{"clinical_site-A1", "clinical_site-C2"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			filtered := Filter(all, tt.category)
			keys := make([]string, 0, len(filtered))
			for i := range filtered {
				keys = append(keys, filtered[i].Key().String())
			}
			assert.Equal(t, tt.expected, keys)
		})
	}
}

func TestFilter_DoesNotChangeCounts(t *testing.T) {
	agencies, clinical := fixtureSources()
	result := Aggregate(agencies, clinical)

	before := result.Counts
	for _, c := range []Category{CategoryAll, CategoryEMS, CategoryHospital, CategoryClinicalSite} {
		_ = Filter(result.All, c)
		assert.Equal(t, before, result.Counts)
	}
}

func TestFilter_TypedClinicalSiteIsNotAgency(t *testing.T) {
	// type is ignored for clinical sites
	odd := site(SourceClinicalSite, "X", AgencyTypeEMS, 1, 10)

	assert.False(t, CategoryEMS.Matches(&odd))
	assert.True(t, CategoryClinicalSite.Matches(&odd))
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("")
	require.NoError(t, err)
	assert.Equal(t, CategoryAll, c)

	c, err = ParseCategory("hospital")
	require.NoError(t, err)
	assert.Equal(t, CategoryHospital, c)

	_, err = ParseCategory("fire")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}
