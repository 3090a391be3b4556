package update_capacity

import (
	"context"
	"time"

	"github.com/bhartnell/pmi-scheduler/internal/domain"
	"github.com/bhartnell/pmi-scheduler/internal/service/capacity/models"
)

type CapacityService interface {
	UpdateCapacity(ctx context.Context, key domain.SiteKey, date time.Time, req *models.UpdateCapacityRequest) (*models.SiteResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
