package clinicalsite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/bhartnell/pmi-scheduler/internal/domain"
	"github.com/bhartnell/pmi-scheduler/pkg/psqlbuilder"
)

const (
	tableClinicalSites = "clinical_sites c"
	occupancyJoin      = "site_daily_occupancy o ON o.site_id = c.id AND o.source = ? AND o.occupancy_date = ?"
)

var columns = []string{
	"c.id",
	"c.name",
	"c.max_students_per_day",
	"c.max_students_per_rotation",
	"c.capacity_notes",
	"COALESCE(o.student_count, 0)",
}

// Repository репозиторий клинических площадок
// ID площадок уникальны только внутри clinical_sites и могут совпадать с ID агентств
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клинических площадок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListWithOccupancy возвращает активные клинические площадки с количеством студентов на дату
func (r *Repository) ListWithOccupancy(ctx context.Context, date time.Time) ([]domain.CapacitySite, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(tableClinicalSites).
		LeftJoin(occupancyJoin, string(domain.SourceClinicalSite), date.Format(domain.DateFormat)).
		Where(squirrel.Eq{"c.is_active": true}).
		OrderBy("c.name ASC", "c.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithOccupancy - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithOccupancy - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	sites := make([]domain.CapacitySite, 0)
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWithOccupancy - scan row: %v", ErrScanRow, err)
		}
		sites = append(sites, *site)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWithOccupancy - rows error: %v", ErrScanRow, err)
	}

	return sites, nil
}

// GetByID получает активную клиническую площадку по ID с количеством студентов на дату
func (r *Repository) GetByID(ctx context.Context, id string, date time.Time) (*domain.CapacitySite, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(tableClinicalSites).
		LeftJoin(occupancyJoin, string(domain.SourceClinicalSite), date.Format(domain.DateFormat)).
		Where(squirrel.Eq{"c.id": id, "c.is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	site, err := scanSite(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrClinicalSiteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan clinical site: %v", ErrScanRow, err)
	}

	return site, nil
}

// UpdateCapacity обновляет лимиты и заметки активной клинической площадки
func (r *Repository) UpdateCapacity(ctx context.Context, id string, update domain.CapacityUpdate) error {
	var maxPerRotation, notes interface{}
	if update.MaxPerRotation != nil {
		maxPerRotation = int64(*update.MaxPerRotation)
	}
	if update.CapacityNotes != nil {
		notes = *update.CapacityNotes
	}

	query, args, err := psqlbuilder.Update("clinical_sites").
		Set("max_students_per_day", update.MaxPerDay).
		Set("max_students_per_rotation", maxPerRotation).
		Set("capacity_notes", notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "is_active": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateCapacity - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateCapacity - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateCapacity - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrClinicalSiteNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSite(row scanner) (*domain.CapacitySite, error) {
	var (
		site           domain.CapacitySite
		maxPerDay      sql.NullInt64
		maxPerRotation sql.NullInt64
		notes          sql.NullString
	)

	if err := row.Scan(
		&site.ID,
		&site.Name,
		&maxPerDay,
		&maxPerRotation,
		&notes,
		&site.CurrentStudentCount,
	); err != nil {
		return nil, err
	}

	site.Source = domain.SourceClinicalSite
	site.MaxPerDay = int(maxPerDay.Int64)
	if maxPerRotation.Valid {
		v := int(maxPerRotation.Int64)
		site.MaxPerRotation = &v
	}
	if notes.Valid {
		site.CapacityNotes = &notes.String
	}
	site.Recalculate()

	return &site, nil
}
