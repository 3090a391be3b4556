package capacity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bhartnell/pmi-scheduler/internal/domain"
	capacityCache "github.com/bhartnell/pmi-scheduler/internal/infra/cache/capacity"
	agencyRepo "github.com/bhartnell/pmi-scheduler/internal/infra/storage/agency"
	clinicalSiteRepo "github.com/bhartnell/pmi-scheduler/internal/infra/storage/clinicalsite"
	"github.com/bhartnell/pmi-scheduler/internal/service/capacity/models"
)

const sourcesCacheName = "capacity_sources"

// Service сервис загрузки площадок и изменения их вместимости
type Service struct {
	agencyRepo       AgencyRepository
	clinicalSiteRepo ClinicalSiteRepository
	cache            SourcesCache
	metrics          CacheMetrics
	logger           Logger
	now              func() time.Time
}

// NewService создает новый экземпляр сервиса вместимости
// metrics может быть nil
func NewService(
	agencyRepo AgencyRepository,
	clinicalSiteRepo ClinicalSiteRepository,
	cache SourcesCache,
	metrics CacheMetrics,
	logger Logger,
) *Service {
	if cache == nil {
		cache = capacityCache.NoopCache{}
	}
	return &Service{
		agencyRepo:       agencyRepo,
		clinicalSiteRepo: clinicalSiteRepo,
		cache:            cache,
		metrics:          metrics,
		logger:           logger,
		now:              time.Now,
	}
}

// GetSources возвращает коллекции агентств и клинических площадок на дату
// Сначала читает кэш, при промахе или ошибке кэша загружает обе коллекции из БД параллельно
func (s *Service) GetSources(ctx context.Context, date time.Time) (*domain.SiteSources, error) {
	day := date.Format(domain.DateFormat)

	cached, gen, err := s.cache.Get(ctx, date)
	cacheable := false
	switch {
	case err == nil:
		s.observeCache("hit")
		return cached, nil
	case errors.Is(err, capacityCache.ErrCacheMiss):
		s.observeCache("miss")
		cacheable = true
	default:
		s.observeCache("error")
		s.logger.Warn("GetSources: cache read failed for date=%s: %v", day, err)
	}

	sources, err := s.loadSources(ctx, date)
	if err != nil {
		s.logger.Error("GetSources: failed to load sources for date=%s: %v", day, err)
		return nil, fmt.Errorf("%w: GetSources - repository error: %v", ErrInternal, err)
	}

	// Версия gen прочитана до БД: если между чтением и записью прошел PATCH, запись уйдет в старую версию
	if cacheable {
		if err := s.cache.Set(ctx, gen, date, sources); err != nil {
			s.logger.Warn("GetSources: cache write failed for date=%s: %v", day, err)
		}
	}

	return sources, nil
}

func (s *Service) loadSources(ctx context.Context, date time.Time) (*domain.SiteSources, error) {
	var sources domain.SiteSources

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		agencies, err := s.agencyRepo.ListWithOccupancy(gctx, date)
		if err != nil {
			return fmt.Errorf("agencies: %w", err)
		}
		sources.Agencies = agencies
		return nil
	})
	g.Go(func() error {
		sites, err := s.clinicalSiteRepo.ListWithOccupancy(gctx, date)
		if err != nil {
			return fmt.Errorf("clinical sites: %w", err)
		}
		sources.ClinicalSites = sites
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &sources, nil
}

// UpdateCapacity изменяет лимиты и заметки площадки, определяемой парой (source, id)
// Возвращает обновленную площадку с загрузкой на дату date (нулевая - сегодня)
func (s *Service) UpdateCapacity(
	ctx context.Context,
	key domain.SiteKey,
	date time.Time,
	req *models.UpdateCapacityRequest,
) (*models.SiteResponse, error) {
	s.logger.Info("UpdateCapacity: updating site=%s", key)

	// 1. Валидируем входные данные
	update, err := validateUpdate(req)
	if err != nil {
		s.logger.Warn("UpdateCapacity: validation failed for site=%s: %v", key, err)
		return nil, err
	}

	if date.IsZero() {
		now := s.now()
		date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	// 2. Обновляем запись в коллекции, выбранной по source
	site, err := s.applyUpdate(ctx, key, date, update)
	if err != nil {
		return nil, err
	}

	// 3. Сбрасываем кэш, лимиты влияют на утилизацию во все даты
	if err := s.cache.InvalidateAll(ctx); err != nil {
		s.logger.Warn("UpdateCapacity: cache invalidation failed: %v", err)
	}

	s.logger.Info("UpdateCapacity: successfully updated site=%s, maxPerDay=%d", key, site.MaxPerDay)
	return models.FromDomainSite(site), nil
}

func (s *Service) applyUpdate(
	ctx context.Context,
	key domain.SiteKey,
	date time.Time,
	update domain.CapacityUpdate,
) (*domain.CapacitySite, error) {
	var (
		site *domain.CapacitySite
		err  error
	)

	switch key.Source {
	case domain.SourceAgency:
		if err = s.agencyRepo.UpdateCapacity(ctx, key.ID, update); err == nil {
			site, err = s.agencyRepo.GetByID(ctx, key.ID, date)
		}
	case domain.SourceClinicalSite:
		if err = s.clinicalSiteRepo.UpdateCapacity(ctx, key.ID, update); err == nil {
			site, err = s.clinicalSiteRepo.GetByID(ctx, key.ID, date)
		}
	default:
		s.logger.Warn("UpdateCapacity: unknown source=%q", key.Source)
		return nil, fmt.Errorf("%w: unknown source %q", ErrInvalidInput, key.Source)
	}

	if err != nil {
		if errors.Is(err, agencyRepo.ErrAgencyNotFound) || errors.Is(err, clinicalSiteRepo.ErrClinicalSiteNotFound) {
			s.logger.Warn("UpdateCapacity: site=%s not found", key)
			return nil, ErrSiteNotFound
		}
		s.logger.Error("UpdateCapacity: repository error for site=%s: %v", key, err)
		return nil, fmt.Errorf("%w: UpdateCapacity - repository error: %v", ErrInternal, err)
	}

	return site, nil
}

func (s *Service) observeCache(result string) {
	if s.metrics != nil {
		s.metrics.ObserveCache(sourcesCacheName, result)
	}
}
