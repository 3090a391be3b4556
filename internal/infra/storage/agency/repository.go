package agency

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
	tableAgencies  = "agencies a"
	occupancyJoin  = "site_daily_occupancy o ON o.site_id = a.id AND o.source = ? AND o.occupancy_date = ?"
	occupancyCount = "COALESCE(o.student_count, 0)"
)

var columns = []string{
	"a.id",
	"a.name",
	"a.type",
	"a.max_students_per_day",
	"a.max_students_per_rotation",
	"a.capacity_notes",
	occupancyCount,
}

// Repository репозиторий агентств (EMS и больницы)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория агентств
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListWithOccupancy возвращает активные агентства с количеством студентов на дату
// Количество студентов ведёт подсистема расписания (site_daily_occupancy), здесь только читаем
func (r *Repository) ListWithOccupancy(ctx context.Context, date time.Time) ([]domain.CapacitySite, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(tableAgencies).
		LeftJoin(occupancyJoin, string(domain.SourceAgency), date.Format(domain.DateFormat)).
		Where(squirrel.Eq{"a.is_active": true}).
		OrderBy("a.name ASC", "a.id ASC").
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

// GetByID получает активное агентство по ID с количеством студентов на дату
func (r *Repository) GetByID(ctx context.Context, id string, date time.Time) (*domain.CapacitySite, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(tableAgencies).
		LeftJoin(occupancyJoin, string(domain.SourceAgency), date.Format(domain.DateFormat)).
		Where(squirrel.Eq{"a.id": id, "a.is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	site, err := scanSite(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAgencyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan agency: %v", ErrScanRow, err)
	}

	return site, nil
}

// UpdateCapacity обновляет лимиты и заметки активного агентства
func (r *Repository) UpdateCapacity(ctx context.Context, id string, update domain.CapacityUpdate) error {
	query, args, err := psqlbuilder.Update("agencies").
		Set("max_students_per_day", update.MaxPerDay).
		Set("max_students_per_rotation", nullableInt(update.MaxPerRotation)).
		Set("capacity_notes", nullableString(update.CapacityNotes)).
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
		return ErrAgencyNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSite(row scanner) (*domain.CapacitySite, error) {
	var (
		site           domain.CapacitySite
		agencyType     sql.NullString
		maxPerDay      sql.NullInt64
		maxPerRotation sql.NullInt64
		notes          sql.NullString
	)

	if err := row.Scan(
		&site.ID,
		&site.Name,
		&agencyType,
		&maxPerDay,
		&maxPerRotation,
		&notes,
		&site.CurrentStudentCount,
	); err != nil {
		return nil, err
	}

	site.Source = domain.SourceAgency
	site.Type = domain.AgencyType(agencyType.String)
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

func nullableInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func nullableString(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
