package capacity

import (
	"context"
	"time"

	"github.com/bhartnell/pmi-scheduler/internal/domain"
	capacityCache "github.com/bhartnell/pmi-scheduler/internal/infra/cache/capacity"
)

// AgencyRepository интерфейс репозитория агентств
type AgencyRepository interface {
	ListWithOccupancy(ctx context.Context, date time.Time) ([]domain.CapacitySite, error)
	GetByID(ctx context.Context, id string, date time.Time) (*domain.CapacitySite, error)
	UpdateCapacity(ctx context.Context, id string, update domain.CapacityUpdate) error
}

// ClinicalSiteRepository интерфейс репозитория клинических площадок
type ClinicalSiteRepository interface {
	ListWithOccupancy(ctx context.Context, date time.Time) ([]domain.CapacitySite, error)
	GetByID(ctx context.Context, id string, date time.Time) (*domain.CapacitySite, error)
	UpdateCapacity(ctx context.Context, id string, update domain.CapacityUpdate) error
}

// SourcesCache интерфейс кэша коллекций площадок
// Get возвращает версию кэша и при промахе; Set с версией, устаревшей после InvalidateAll, не виден читателям
type SourcesCache interface {
	Get(ctx context.Context, date time.Time) (*domain.SiteSources, capacityCache.Generation, error)
	Set(ctx context.Context, gen capacityCache.Generation, date time.Time, sources *domain.SiteSources) error
	InvalidateAll(ctx context.Context) error
}

// CacheMetrics интерфейс метрик кэша (может быть nil, если метрики выключены)
type CacheMetrics interface {
	ObserveCache(cache, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
