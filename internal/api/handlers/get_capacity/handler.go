package get_capacity

import (
	"errors"
	"net/http"

	"github.com/bhartnell/pmi-scheduler/internal/api/handlers"
	"github.com/bhartnell/pmi-scheduler/internal/api/middleware"
	getCapacityOverview "github.com/bhartnell/pmi-scheduler/internal/usecase/get_capacity_overview"
)

const (
	msgUnauthorized    = "authentication required"
	msgInvalidDate     = "invalid date format, expected YYYY-MM-DD"
	msgInvalidCategory = "invalid category, expected one of: all, ems, hospital, clinical_site"
)

type Handler struct {
	useCase GetCapacityOverviewUseCase
	logger  Logger
}

func NewHandler(useCase GetCapacityOverviewUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/capacity
// Query params: date (optional, YYYY-MM-DD), category (optional, all|ems|hospital|clinical_site)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	capability, ok := middleware.GetCapability(r.Context())
	if !ok {
		h.logger.Warn("GET /capacity - Missing capability in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	query := r.URL.Query()
	useCaseReq, err := ToUseCaseRequest(query.Get("date"), query.Get("category"), capability)
	if err != nil {
		h.logger.Warn("GET /capacity - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getCapacityOverview.ErrInvalidInput):
			h.logger.Warn("GET /capacity - Invalid category: category=%q", query.Get("category"))
			handlers.RespondBadRequest(w, msgInvalidCategory)

		default:
			h.logger.Error("GET /capacity - Failed to get capacity overview: user_id=%s, error=%v",
				capability.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /capacity - Overview retrieved successfully: user_id=%s, category=%s, sites_count=%d, total=%d",
		capability.UserID, result.Category, len(result.Sites), result.Total)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
