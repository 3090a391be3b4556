package get_capacity_overview

import (
	"context"
	"fmt"
	"time"

	"github.com/bhartnell/pmi-scheduler/internal/domain"
)

// UseCase use case для получения сводки вместимости всех площадок на дату
type UseCase struct {
	sourcesService SourcesService
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(sourcesService SourcesService, logger Logger) *UseCase {
	return &UseCase{
		sourcesService: sourcesService,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case получения сводки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetCapacityOverview: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем дату
	date := req.Date
	if date.IsZero() {
		date = today(uc.timeProvider.Now())
	}

	uc.logger.Info("GetCapacityOverview: user=%s, date=%s, category=%s",
		req.Capability.UserID, date.Format(domain.DateFormat), req.Category)

	// 3. Загружаем обе коллекции
	sources, err := uc.sourcesService.GetSources(ctx, date)
	if err != nil {
		uc.logger.Error("GetCapacityOverview: failed to get sources: %v", err)
		return nil, fmt.Errorf("%w: failed to get sources: %v", ErrInternal, err)
	}

	// 4. Объединяем и считаем по полному списку, фильтр применяется только к выдаче
	aggregation := domain.Aggregate(sources.Agencies, sources.ClinicalSites)

	return &Response{
		Date:     date,
		Category: req.Category,
		Sites:    domain.Filter(aggregation.All, req.Category),
		Counts:   aggregation.Counts,
		Total:    len(aggregation.All),
		CanEdit:  req.Capability.CanEdit,
	}, nil
}

// today отбрасывает время, оставляя календарную дату в UTC
func today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
