package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhartnell/pmi-scheduler/internal/domain"
	"github.com/bhartnell/pmi-scheduler/pkg/capacityclient"
	"github.com/bhartnell/pmi-scheduler/pkg/logger"
)

type fakeAPI struct {
	sites    []domain.CapacitySite
	canEdit  bool
	updates  []capacityclient.UpdateRequest
	category domain.Category
}

func (f *fakeAPI) GetOverview(_ context.Context, _ time.Time, category domain.Category) (*capacityclient.Overview, error) {
	f.category = category
	agg := domain.Aggregate(f.sites, nil)
	return &capacityclient.Overview{
		Date:     "2026-03-02",
		Category: category,
		Sites:    domain.Filter(agg.All, category),
		Counts:   agg.Counts,
		Total:    len(agg.All),
		CanEdit:  f.canEdit,
	}, nil
}

func (f *fakeAPI) UpdateCapacity(_ context.Context, key domain.SiteKey, _ time.Time, body capacityclient.UpdateRequest) (*domain.CapacitySite, error) {
	f.updates = append(f.updates, body)
	for _, s := range f.sites {
		if s.Key() == key {
			update := domain.CapacityUpdate{MaxPerDay: body.MaxPerDay, MaxPerRotation: body.MaxPerRotation, CapacityNotes: body.CapacityNotes}
			update.ApplyTo(&s)
			return &s, nil
		}
	}
	return nil, &capacityclient.APIError{StatusCode: 404, Message: "site not found"}
}

func (f *fakeAPI) Export(context.Context, time.Time, string) (*capacityclient.ExportFile, error) {
	return &capacityclient.ExportFile{Filename: "site-capacity-2026-03-02.csv", Content: []byte("Name\n")}, nil
}

func newFakeAPI(canEdit bool) *fakeAPI {
	medic := domain.CapacitySite{ID: "A1", Name: "Metro Medic", Source: domain.SourceAgency,
		Type: domain.AgencyTypeEMS, MaxPerDay: 4, CurrentStudentCount: 3}
	lab := domain.CapacitySite{ID: "A1", Name: "Sim Lab", Source: domain.SourceClinicalSite,
		MaxPerDay: 10, CurrentStudentCount: 2}
	medic.Recalculate()
	lab.Recalculate()
	return &fakeAPI{sites: []domain.CapacitySite{medic, lab}, canEdit: canEdit}
}

func run(t *testing.T, build func(*AppContext) *cobra.Command, api *fakeAPI, args ...string) (string, error) {
	t.Helper()
	app := &AppContext{Ctx: context.Background(), API: api, UserID: "admin-1", Logger: logger.NewNop()}

	cmd := build(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	api := newFakeAPI(false)

	out, err := run(t, ListCmd, api, "--category", "ems")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryEMS, api.category)
	assert.Contains(t, out, "agency-A1")
	assert.NotContains(t, out, "clinical_site-A1")
	assert.Contains(t, out, "Available: 1  Near capacity: 1  Over capacity: 0  (total 2)")
}

func TestList_BadCategory(t *testing.T) {
	_, err := run(t, ListCmd, newFakeAPI(false), "--category", "pharmacy")
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
}

func TestEdit_SavesOnlyChangedFlags(t *testing.T) {
	api := newFakeAPI(true)

	out, err := run(t, EditCmd, api, "clinical_site", "A1", "--max-per-rotation", "3")
	require.NoError(t, err)

	require.Len(t, api.updates, 1)
	assert.Equal(t, 10, api.updates[0].MaxPerDay)
	require.NotNil(t, api.updates[0].MaxPerRotation)
	assert.Equal(t, 3, *api.updates[0].MaxPerRotation)
	assert.Contains(t, out, "Saved:")
	assert.Contains(t, out, "Sim Lab (clinical_site-A1)")
}

func TestEdit_DryRunDoesNotSave(t *testing.T) {
	api := newFakeAPI(true)

	out, err := run(t, EditCmd, api, "agency", "A1", "--max-per-day", "2", "--dry-run")
	require.NoError(t, err)
	assert.Empty(t, api.updates)
	assert.Contains(t, out, "150% (Over Capacity)")
}

func TestEdit_ValidationBeforeRequest(t *testing.T) {
	api := newFakeAPI(true)

	_, err := run(t, EditCmd, api, "agency", "A1", "--max-per-day", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maxPerDay must be a whole number of at least 1")
	assert.Empty(t, api.updates)
}

func TestEdit_ReadOnly(t *testing.T) {
	api := newFakeAPI(false)

	_, err := run(t, EditCmd, api, "agency", "A1", "--max-per-day", "5")
	assert.Error(t, err)
	assert.Empty(t, api.updates)
}

func TestEdit_UnknownSite(t *testing.T) {
	_, err := run(t, EditCmd, newFakeAPI(true), "clinical_site", "Z9", "--max-per-day", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clinical_site-Z9")
}

func TestExport_WritesFile(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, ExportCmd, newFakeAPI(false), "-o", dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "site-capacity-2026-03-02.csv")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Name\n", string(content))
	assert.Contains(t, out, path)
}
