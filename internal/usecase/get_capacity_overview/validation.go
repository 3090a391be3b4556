package get_capacity_overview

import (
	"fmt"

	"github.com/bhartnell/pmi-scheduler/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Пустая категория приводится к domain.CategoryAll
func validateRequest(req *Request) error {
	category, err := domain.ParseCategory(string(req.Category))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	req.Category = category
	return nil
}
