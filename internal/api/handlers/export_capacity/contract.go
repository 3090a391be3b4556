package export_capacity

import (
	"context"

	exportCapacity "github.com/bhartnell/pmi-scheduler/internal/usecase/export_capacity"
)

type ExportCapacityUseCase interface {
	Execute(ctx context.Context, req *exportCapacity.Request) (*exportCapacity.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
