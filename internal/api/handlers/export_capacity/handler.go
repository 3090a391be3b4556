package export_capacity

import (
	"errors"
	"net/http"

	"github.com/bhartnell/pmi-scheduler/internal/api/handlers"
	"github.com/bhartnell/pmi-scheduler/internal/api/middleware"
	exportCapacity "github.com/bhartnell/pmi-scheduler/internal/usecase/export_capacity"
)

const (
	msgUnauthorized  = "authentication required"
	msgInvalidDate   = "invalid date format, expected YYYY-MM-DD"
	msgInvalidFormat = "invalid format, expected csv or xlsx"
)

type Handler struct {
	useCase ExportCapacityUseCase
	logger  Logger
}

func NewHandler(useCase ExportCapacityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/capacity/export
// Query params: date (optional, YYYY-MM-DD), format (optional, csv|xlsx)
// Параметр category игнорируется: выгружаются все площадки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	capability, ok := middleware.GetCapability(r.Context())
	if !ok {
		h.logger.Warn("GET /capacity/export - Missing capability in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	query := r.URL.Query()
	useCaseReq, err := ToUseCaseRequest(query.Get("date"), query.Get("format"))
	if err != nil {
		h.logger.Warn("GET /capacity/export - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, exportCapacity.ErrUnsupportedFormat):
			h.logger.Warn("GET /capacity/export - Unsupported format: format=%q", query.Get("format"))
			handlers.RespondBadRequest(w, msgInvalidFormat)

		default:
			h.logger.Error("GET /capacity/export - Failed to export capacity: user_id=%s, error=%v",
				capability.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /capacity/export - Export generated: user_id=%s, file=%s, rows=%d",
		capability.UserID, result.Filename, result.Rows)
	handlers.RespondFile(w, result.Filename, result.ContentType, result.Content)
}
