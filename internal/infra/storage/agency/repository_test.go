package agency

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhartnell/pmi-scheduler/internal/domain"
)

var (
	testDate    = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	siteColumns = []string{"id", "name", "type", "max_students_per_day", "max_students_per_rotation", "capacity_notes", "student_count"}
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *Repository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return db, mock, NewRepository(db)
}

func TestListWithOccupancy_Success(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows(siteColumns).
		AddRow("A1", "Desert Valley EMS", "ems", 20, 4, "no overnights", 18).
		AddRow("A2", "Sunrise Hospital", "hospital", 10, nil, nil, 12).
		AddRow("A3", "New Agency", "hospital", nil, nil, nil, 3)

	mock.ExpectQuery(regexp.QuoteMeta("FROM agencies a LEFT JOIN site_daily_occupancy o ON o.site_id = a.id AND o.source = $1 AND o.occupancy_date = $2 WHERE a.is_active = $3")).
		WithArgs("agency", "2025-10-15", true).
		WillReturnRows(rows)

	sites, err := repo.ListWithOccupancy(context.Background(), testDate)

	require.NoError(t, err)
	require.Len(t, sites, 3)

	assert.Equal(t, "A1", sites[0].ID)
	assert.Equal(t, domain.SourceAgency, sites[0].Source)
	assert.Equal(t, domain.AgencyTypeEMS, sites[0].Type)
	assert.Equal(t, 20, sites[0].MaxPerDay)
	require.NotNil(t, sites[0].MaxPerRotation)
	assert.Equal(t, 4, *sites[0].MaxPerRotation)
	require.NotNil(t, sites[0].CapacityNotes)
	assert.Equal(t, "no overnights", *sites[0].CapacityNotes)
	assert.Equal(t, 90, sites[0].UtilizationPercentage)
	assert.False(t, sites[0].IsOverCapacity)

	assert.Nil(t, sites[1].MaxPerRotation)
	assert.Nil(t, sites[1].CapacityNotes)
	assert.Equal(t, 120, sites[1].UtilizationPercentage)
	assert.True(t, sites[1].IsOverCapacity)

	// unconfigured limit
	assert.Equal(t, 0, sites[2].MaxPerDay)
	assert.Equal(t, 0, sites[2].UtilizationPercentage)
	assert.False(t, sites[2].IsOverCapacity)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListWithOccupancy_QueryError(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection refused"))

	_, err := repo.ListWithOccupancy(context.Background(), testDate)

	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_Success(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows(siteColumns).AddRow("A1", "Desert Valley EMS", "ems", 20, nil, nil, 22)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.id = $3 AND a.is_active = $4")).
		WithArgs("agency", "2025-10-15", "A1", true).
		WillReturnRows(rows)

	site, err := repo.GetByID(context.Background(), "A1", testDate)

	require.NoError(t, err)
	assert.Equal(t, domain.SiteKey{Source: domain.SourceAgency, ID: "A1"}, site.Key())
	assert.Equal(t, 110, site.UtilizationPercentage)
	assert.True(t, site.IsOverCapacity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery("SELECT").
		WithArgs("agency", "2025-10-15", "missing", true).
		WillReturnRows(sqlmock.NewRows(siteColumns))

	_, err := repo.GetByID(context.Background(), "missing", testDate)

	assert.ErrorIs(t, err, ErrAgencyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCapacity_Success(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	rotation := 3
	notes := "weekdays only"

	mock.ExpectExec(regexp.QuoteMeta("UPDATE agencies SET max_students_per_day = $1, max_students_per_rotation = $2, capacity_notes = $3, updated_at = NOW() WHERE id = $4 AND is_active = $5")).
		WithArgs(12, 3, "weekdays only", "A1", true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateCapacity(context.Background(), "A1", domain.CapacityUpdate{
		MaxPerDay:      12,
		MaxPerRotation: &rotation,
		CapacityNotes:  &notes,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCapacity_ClearsOptionalFields(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec("UPDATE agencies").
		WithArgs(5, nil, nil, "A1", true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateCapacity(context.Background(), "A1", domain.CapacityUpdate{MaxPerDay: 5})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCapacity_NotFound(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec("UPDATE agencies").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateCapacity(context.Background(), "missing", domain.CapacityUpdate{MaxPerDay: 5})

	assert.ErrorIs(t, err, ErrAgencyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCapacity_InactiveAgencyNotFound(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	// Неактивное агентство не попадает в список, поэтому не обновляется
	mock.ExpectExec(regexp.QuoteMeta("WHERE id = $4 AND is_active = $5")).
		WithArgs(5, nil, nil, "A7", true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateCapacity(context.Background(), "A7", domain.CapacityUpdate{MaxPerDay: 5})

	assert.ErrorIs(t, err, ErrAgencyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
