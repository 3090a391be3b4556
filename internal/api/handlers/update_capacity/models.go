package update_capacity

import (
	"github.com/bhartnell/pmi-scheduler/internal/service/capacity/models"
)

// UpdateCapacityRequest HTTP request model
// Все три поля отправляются всегда: null в maxPerRotation или capacityNotes очищает значение
type UpdateCapacityRequest struct {
	MaxPerDay      *int    `json:"maxPerDay"`
	MaxPerRotation *int    `json:"maxPerRotation"`
	CapacityNotes  *string `json:"capacityNotes"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateCapacityRequest) ToServiceRequest() *models.UpdateCapacityRequest {
	return &models.UpdateCapacityRequest{
		MaxPerDay:      r.MaxPerDay,
		MaxPerRotation: r.MaxPerRotation,
		CapacityNotes:  r.CapacityNotes,
	}
}
