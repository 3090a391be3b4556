package editor

import (
	"context"

	"github.com/bhartnell/pmi-scheduler/internal/domain"
)

// Saver отправляет изменение вместимости площадки и возвращает обновленную запись
type Saver interface {
	UpdateCapacity(ctx context.Context, key domain.SiteKey, update domain.CapacityUpdate) (*domain.CapacitySite, error)
}
