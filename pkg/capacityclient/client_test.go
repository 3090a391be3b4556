package capacityclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhartnell/pmi-scheduler/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestGetOverview(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/capacity", r.URL.Path)
		assert.Equal(t, "2026-03-02", r.URL.Query().Get("date"))
		assert.Equal(t, "ems", r.URL.Query().Get("category"))
		assert.Equal(t, "admin-1", r.Header.Get("X-User-ID"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"date": "2026-03-02",
			"category": "ems",
			"sites": [{"id":"A1","key":"agency-A1","name":"Metro Medic","source":"agency","type":"ems",
				"maxPerDay":4,"maxPerRotation":2,"currentStudentCount":5,"utilizationPercentage":125,
				"isOverCapacity":true,"capacityNotes":null}],
			"counts": {"available": 3, "near": 1, "over": 1},
			"total": 5,
			"canEdit": true
		}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "admin-1", time.Second)
	overview, err := c.GetOverview(context.Background(), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), domain.CategoryEMS)
	require.NoError(t, err)

	require.Len(t, overview.Sites, 1)
	site := overview.Sites[0]
	assert.Equal(t, domain.SiteKey{Source: domain.SourceAgency, ID: "A1"}, site.Key())
	assert.Equal(t, 125, site.UtilizationPercentage)
	assert.True(t, site.IsOverCapacity)
	require.NotNil(t, site.MaxPerRotation)
	assert.Equal(t, 2, *site.MaxPerRotation)
	assert.Equal(t, domain.CapacityCounts{Available: 3, Near: 1, Over: 1}, overview.Counts)
	assert.Equal(t, 5, overview.Total)
	assert.True(t, overview.CanEdit)
}

func TestUpdateCapacity_SendsFullBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/v1/capacity/clinical_site/A1", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(6), body["maxPerDay"])
		assert.Contains(t, body, "maxPerRotation")
		assert.Nil(t, body["maxPerRotation"])
		assert.Contains(t, body, "capacityNotes")

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"A1","key":"clinical_site-A1","name":"Sim Lab","source":"clinical_site",
			"maxPerDay":6,"maxPerRotation":null,"currentStudentCount":3,"utilizationPercentage":50,
			"isOverCapacity":false,"capacityNotes":null}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "admin-1", time.Second)
	site, err := c.UpdateCapacity(context.Background(),
		domain.SiteKey{Source: domain.SourceClinicalSite, ID: "A1"}, time.Time{},
		UpdateRequest{MaxPerDay: 6})
	require.NoError(t, err)
	assert.Equal(t, domain.SourceClinicalSite, site.Source)
	assert.Equal(t, 6, site.MaxPerDay)
	assert.Equal(t, 50, site.UtilizationPercentage)
}

func TestUpdateCapacity_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"maxPerDay must be a whole number of at least 1"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "admin-1", time.Second)
	_, err := c.UpdateCapacity(context.Background(),
		domain.SiteKey{Source: domain.SourceAgency, ID: "A1"}, time.Time{},
		UpdateRequest{MaxPerDay: 0, MaxPerRotation: intPtr(1)})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "maxPerDay must be a whole number of at least 1", apiErr.Message)
}

func TestUpdateCapacity_APIErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "admin-1", time.Second)
	_, err := c.UpdateCapacity(context.Background(),
		domain.SiteKey{Source: domain.SourceAgency, ID: "A1"}, time.Time{}, UpdateRequest{MaxPerDay: 2})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Empty(t, apiErr.Message)
}

func TestUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, "admin-1", time.Second)
	_, err := c.GetOverview(context.Background(), time.Time{}, "")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestExport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/capacity/export", r.URL.Path)
		assert.Equal(t, "csv", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="site-capacity-2026-03-02.csv"`)
		_, _ = io.WriteString(w, "Name,Type\n")
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "admin-1", time.Second)
	file, err := c.Export(context.Background(), time.Time{}, "csv")
	require.NoError(t, err)
	assert.Equal(t, "site-capacity-2026-03-02.csv", file.Filename)
	assert.Equal(t, "Name,Type\n", string(file.Content))
}
