package update_capacity

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bhartnell/pmi-scheduler/internal/api/handlers"
	"github.com/bhartnell/pmi-scheduler/internal/api/middleware"
	"github.com/bhartnell/pmi-scheduler/internal/domain"
	"github.com/bhartnell/pmi-scheduler/internal/service/capacity"
)

const (
	msgUnauthorized       = "authentication required"
	msgForbidden          = "only administrators can edit site capacity"
	msgInvalidSource      = "invalid source, expected agency or clinical_site"
	msgInvalidSiteID      = "invalid site id"
	msgInvalidDate        = "invalid date format, expected YYYY-MM-DD"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidData        = "invalid capacity data"
	msgNotFound           = "site not found"
)

type Handler struct {
	service CapacityService
	logger  Logger
}

func NewHandler(service CapacityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/capacity/{source}/{id}
// Query params: date (optional, YYYY-MM-DD) - дата загрузки в ответе
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	capability, ok := middleware.GetCapability(r.Context())
	if !ok {
		h.logger.Warn("PATCH /capacity/{source}/{id} - Missing capability in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Права на редактирование проверяются до разбора запроса
	if !capability.CanEdit {
		h.logger.Warn("PATCH /capacity/{source}/{id} - Access denied: user_id=%s, role=%s",
			capability.UserID, capability.Role)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	vars := mux.Vars(r)

	source, err := domain.ParseSource(vars["source"])
	if err != nil {
		h.logger.Warn("PATCH /capacity/{source}/{id} - Invalid source: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSource)
		return
	}

	siteID := vars["id"]
	if siteID == "" {
		h.logger.Warn("PATCH /capacity/{source}/{id} - Empty site ID")
		handlers.RespondBadRequest(w, msgInvalidSiteID)
		return
	}
	key := domain.SiteKey{Source: source, ID: siteID}

	date, err := handlers.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("PATCH /capacity/{source}/{id} - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var req UpdateCapacityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /capacity/{source}/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateCapacity(r.Context(), key, date, req.ToServiceRequest())
	if err != nil {
		var validationErr *capacity.ValidationError
		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("PATCH /capacity/{source}/{id} - Validation failed: site=%s, field=%s",
				key, validationErr.Field)
			handlers.RespondBadRequest(w, validationErr.Message)

		case errors.Is(err, capacity.ErrInvalidInput):
			h.logger.Warn("PATCH /capacity/{source}/{id} - Invalid data: site=%s, error=%v", key, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, capacity.ErrSiteNotFound):
			h.logger.Warn("PATCH /capacity/{source}/{id} - Site not found: site=%s", key)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /capacity/{source}/{id} - Failed to update capacity: site=%s, error=%v", key, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /capacity/{source}/{id} - Capacity updated successfully: site=%s, user_id=%s",
		key, capability.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
