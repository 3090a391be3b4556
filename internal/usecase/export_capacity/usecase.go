package export_capacity

import (
	"context"
	"fmt"
	"time"

	"github.com/bhartnell/pmi-scheduler/internal/domain"
)

// UseCase use case для выгрузки всех площадок в CSV или XLSX
type UseCase struct {
	sourcesService SourcesService
	filenamePrefix string
	sheetName      string
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(sourcesService SourcesService, filenamePrefix, sheetName string, logger Logger) *UseCase {
	return &UseCase{
		sourcesService: sourcesService,
		filenamePrefix: filenamePrefix,
		sheetName:      sheetName,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет выгрузку
// Фильтр по категории к выгрузке не применяется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация формата
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ExportCapacity: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем дату
	date := req.Date
	if date.IsZero() {
		now := uc.timeProvider.Now()
		date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	day := date.Format(domain.DateFormat)

	// 3. Загружаем и объединяем коллекции
	sources, err := uc.sourcesService.GetSources(ctx, date)
	if err != nil {
		uc.logger.Error("ExportCapacity: failed to get sources for date=%s: %v", day, err)
		return nil, fmt.Errorf("%w: failed to get sources: %v", ErrInternal, err)
	}
	aggregation := domain.Aggregate(sources.Agencies, sources.ClinicalSites)

	rows := make([]row, len(aggregation.All))
	for i := range aggregation.All {
		rows[i] = toRow(&aggregation.All[i])
	}

	// 4. Формируем файл
	var content []byte
	switch req.Format {
	case FormatXLSX:
		content, err = writeXLSX(uc.sheetName, rows)
	default:
		content, err = writeCSV(rows)
	}
	if err != nil {
		uc.logger.Error("ExportCapacity: failed to build %s for date=%s: %v", req.Format, day, err)
		return nil, fmt.Errorf("%w: failed to build file: %v", ErrInternal, err)
	}

	uc.logger.Info("ExportCapacity: exported %d sites for date=%s as %s", len(rows), day, req.Format)
	return &Response{
		Filename:    fmt.Sprintf("%s-%s.%s", uc.filenamePrefix, day, req.Format),
		ContentType: req.Format.ContentType(),
		Content:     content,
		Rows:        len(rows),
	}, nil
}
