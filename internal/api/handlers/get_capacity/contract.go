package get_capacity

import (
	"context"

	getCapacityOverview "github.com/bhartnell/pmi-scheduler/internal/usecase/get_capacity_overview"
)

type GetCapacityOverviewUseCase interface {
	Execute(ctx context.Context, req *getCapacityOverview.Request) (*getCapacityOverview.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
