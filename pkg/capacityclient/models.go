package capacityclient

import (
	"github.com/bhartnell/pmi-scheduler/internal/domain"
	"github.com/bhartnell/pmi-scheduler/internal/service/capacity/models"
)

// Overview сводка вместимости, как ее вернул сервис
type Overview struct {
	Date     string
	Category domain.Category
	Sites    []domain.CapacitySite
	Counts   domain.CapacityCounts
	Total    int
	CanEdit  bool
}

// UpdateRequest тело PATCH запроса; отправляется целиком
type UpdateRequest struct {
	MaxPerDay      int     `json:"maxPerDay"`
	MaxPerRotation *int    `json:"maxPerRotation"`
	CapacityNotes  *string `json:"capacityNotes"`
}

// ExportFile файл выгрузки
type ExportFile struct {
	Filename string
	Content  []byte
}

type overviewPayload struct {
	Date     string                `json:"date"`
	Category string                `json:"category"`
	Sites    []models.SiteResponse `json:"sites"`
	Counts   struct {
		Available int `json:"available"`
		Near      int `json:"near"`
		Over      int `json:"over"`
	} `json:"counts"`
	Total   int  `json:"total"`
	CanEdit bool `json:"canEdit"`
}

type errorPayload struct {
	Error string `json:"error"`
}

func (p *overviewPayload) toOverview() *Overview {
	sites := make([]domain.CapacitySite, len(p.Sites))
	for i := range p.Sites {
		sites[i] = p.Sites[i].ToDomainSite()
	}
	return &Overview{
		Date:     p.Date,
		Category: domain.Category(p.Category),
		Sites:    sites,
		Counts: domain.CapacityCounts{
			Available: p.Counts.Available,
			Near:      p.Counts.Near,
			Over:      p.Counts.Over,
		},
		Total:   p.Total,
		CanEdit: p.CanEdit,
	}
}
