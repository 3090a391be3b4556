package capacity

import (
	"context"
	"time"

	"github.com/bhartnell/pmi-scheduler/internal/domain"
)

// NoopCache используется, когда кэш выключен в конфигурации: всегда промах
type NoopCache struct{}

func (NoopCache) Get(context.Context, time.Time) (*domain.SiteSources, Generation, error) {
	return nil, 0, ErrCacheMiss
}

func (NoopCache) Set(context.Context, Generation, time.Time, *domain.SiteSources) error {
	return nil
}

func (NoopCache) InvalidateAll(context.Context) error {
	return nil
}
