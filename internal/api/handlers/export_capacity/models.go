package export_capacity

import (
	"github.com/bhartnell/pmi-scheduler/internal/api/handlers"
	exportCapacity "github.com/bhartnell/pmi-scheduler/internal/usecase/export_capacity"
)

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(dateStr, format string) (*exportCapacity.Request, error) {
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &exportCapacity.Request{
		Date:   date,
		Format: exportCapacity.Format(format),
	}, nil
}
