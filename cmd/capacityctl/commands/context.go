package commands

import (
	"context"
	"time"

	"github.com/bhartnell/pmi-scheduler/internal/domain"
	"github.com/bhartnell/pmi-scheduler/internal/editor"
	"github.com/bhartnell/pmi-scheduler/pkg/capacityclient"
)

// CapacityAPI операции HTTP API, которые использует CLI
type CapacityAPI interface {
	GetOverview(ctx context.Context, date time.Time, category domain.Category) (*capacityclient.Overview, error)
	UpdateCapacity(ctx context.Context, key domain.SiteKey, date time.Time, body capacityclient.UpdateRequest) (*domain.CapacitySite, error)
	Export(ctx context.Context, date time.Time, format string) (*capacityclient.ExportFile, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AppContext зависимости команд
type AppContext struct {
	Ctx    context.Context
	API    CapacityAPI
	UserID string
	Logger Logger
}

// apiSaver привязывает дату ответа к запросу сохранения формы
type apiSaver struct {
	api  CapacityAPI
	date time.Time
}

var _ editor.Saver = apiSaver{}

func (s apiSaver) UpdateCapacity(ctx context.Context, key domain.SiteKey, update domain.CapacityUpdate) (*domain.CapacitySite, error) {
	return s.api.UpdateCapacity(ctx, key, s.date, capacityclient.UpdateRequest{
		MaxPerDay:      update.MaxPerDay,
		MaxPerRotation: update.MaxPerRotation,
		CapacityNotes:  update.CapacityNotes,
	})
}

// parseDateFlag пустое значение означает "сегодня" на стороне сервера
func parseDateFlag(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(domain.DateFormat, value)
}
