package get_capacity_overview

import (
	"time"

	"github.com/bhartnell/pmi-scheduler/internal/domain"
)

// Request модель запроса на получение сводки вместимости площадок
type Request struct {
	Date       time.Time         // Дата загрузки (нулевая - сегодня)
	Category   domain.Category   // Вкладка-фильтр списка
	Capability domain.Capability // Права текущего пользователя
}

// Response модель ответа со сводкой вместимости
type Response struct {
	Date     time.Time             // Дата, на которую посчитана загрузка
	Category domain.Category       // Примененный фильтр
	Sites    []domain.CapacitySite // Площадки выбранной категории, агентства первыми
	Counts   domain.CapacityCounts // Счетчики по всем площадкам без учета фильтра
	Total    int                   // Общее число площадок без учета фильтра
	CanEdit  bool                  // Может ли пользователь менять лимиты
}
