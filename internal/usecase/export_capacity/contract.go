package export_capacity

import (
	"context"
	"time"

	"github.com/bhartnell/pmi-scheduler/internal/domain"
)

// SourcesService интерфейс сервиса загрузки коллекций площадок
type SourcesService interface {
	GetSources(ctx context.Context, date time.Time) (*domain.SiteSources, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
