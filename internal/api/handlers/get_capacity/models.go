package get_capacity

import (
	"github.com/bhartnell/pmi-scheduler/internal/api/handlers"
	"github.com/bhartnell/pmi-scheduler/internal/domain"
	"github.com/bhartnell/pmi-scheduler/internal/service/capacity/models"
	getCapacityOverview "github.com/bhartnell/pmi-scheduler/internal/usecase/get_capacity_overview"
)

// CapacityOverviewResponse HTTP response model
type CapacityOverviewResponse struct {
	Date     string                `json:"date"`
	Category string                `json:"category"`
	Sites    []models.SiteResponse `json:"sites"`
	Counts   CountsResponse        `json:"counts"`
	Total    int                   `json:"total"`
	CanEdit  bool                  `json:"canEdit"`
}

// CountsResponse счетчики по всем площадкам независимо от категории
type CountsResponse struct {
	Available int `json:"available"`
	Near      int `json:"near"`
	Over      int `json:"over"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCapacityOverview.Response) *CapacityOverviewResponse {
	return &CapacityOverviewResponse{
		Date:     resp.Date.Format(domain.DateFormat),
		Category: string(resp.Category),
		Sites:    models.FromDomainSiteList(resp.Sites),
		Counts: CountsResponse{
			Available: resp.Counts.Available,
			Near:      resp.Counts.Near,
			Over:      resp.Counts.Over,
		},
		Total:   resp.Total,
		CanEdit: resp.CanEdit,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(dateStr, category string, capability domain.Capability) (*getCapacityOverview.Request, error) {
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getCapacityOverview.Request{
		Date:       date,
		Category:   domain.Category(category),
		Capability: capability,
	}, nil
}
