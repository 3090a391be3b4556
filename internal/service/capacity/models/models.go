package models

import "github.com/bhartnell/pmi-scheduler/internal/domain"

// Request модели

// UpdateCapacityRequest запрос на изменение вместимости площадки
// Форма редактирования всегда отправляет все три поля:
// maxPerRotation = null и пустые capacityNotes очищают значение
type UpdateCapacityRequest struct {
	MaxPerDay      *int    `json:"maxPerDay" validate:"required,min=1"`
	MaxPerRotation *int    `json:"maxPerRotation" validate:"omitempty,min=1"`
	CapacityNotes  *string `json:"capacityNotes" validate:"omitempty,max=2000"`
}

// Response модели

// SiteResponse площадка с производными полями утилизации и статуса
type SiteResponse struct {
	ID                    string  `json:"id"`
	Key                   string  `json:"key"`
	Name                  string  `json:"name"`
	Source                string  `json:"source"`
	Type                  string  `json:"type,omitempty"`
	MaxPerDay             int     `json:"maxPerDay"`
	MaxPerRotation        *int    `json:"maxPerRotation"`
	CurrentStudentCount   int     `json:"currentStudentCount"`
	UtilizationPercentage int     `json:"utilizationPercentage"`
	IsOverCapacity        bool    `json:"isOverCapacity"`
	CapacityNotes         *string `json:"capacityNotes"`
	StatusLabel           string  `json:"statusLabel"`
	StatusTier            string  `json:"statusTier"`
	StatusBadge           string  `json:"statusBadge"`
	BarWidth              int     `json:"barWidth"`
}

// Методы конвертации

// FromDomainSite конвертирует domain модель в DTO
func FromDomainSite(s *domain.CapacitySite) *SiteResponse {
	if s == nil {
		return nil
	}

	status := s.Status()
	return &SiteResponse{
		ID:                    s.ID,
		Key:                   s.Key().String(),
		Name:                  s.Name,
		Source:                string(s.Source),
		Type:                  string(s.Type),
		MaxPerDay:             s.MaxPerDay,
		MaxPerRotation:        s.MaxPerRotation,
		CurrentStudentCount:   s.CurrentStudentCount,
		UtilizationPercentage: s.UtilizationPercentage,
		IsOverCapacity:        s.IsOverCapacity,
		CapacityNotes:         s.CapacityNotes,
		StatusLabel:           string(status.Label),
		StatusTier:            string(status.Tier),
		StatusBadge:           status.Badge,
		BarWidth:              domain.BarWidth(s.UtilizationPercentage),
	}
}

// FromDomainSiteList конвертирует список domain моделей в DTO
func FromDomainSiteList(sites []domain.CapacitySite) []SiteResponse {
	resp := make([]SiteResponse, len(sites))
	for i := range sites {
		resp[i] = *FromDomainSite(&sites[i])
	}
	return resp
}

// ToDomainSite восстанавливает domain модель из DTO (используется клиентами API)
// Производные поля берутся из ответа сервера, а не пересчитываются
func (r *SiteResponse) ToDomainSite() domain.CapacitySite {
	return domain.CapacitySite{
		ID:                    r.ID,
		Name:                  r.Name,
		Source:                domain.Source(r.Source),
		Type:                  domain.AgencyType(r.Type),
		MaxPerDay:             r.MaxPerDay,
		MaxPerRotation:        r.MaxPerRotation,
		CurrentStudentCount:   r.CurrentStudentCount,
		UtilizationPercentage: r.UtilizationPercentage,
		IsOverCapacity:        r.IsOverCapacity,
		CapacityNotes:         r.CapacityNotes,
	}
}
