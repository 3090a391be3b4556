package editor

import (
	"sync"

	"github.com/bhartnell/pmi-scheduler/internal/domain"
)

// SiteList объединенный список площадок, которым владеет экран вместимости
type SiteList struct {
	mu    sync.RWMutex
	sites []domain.CapacitySite
}

// NewSiteList объединяет агентства и клинические площадки, агентства первыми
func NewSiteList(agencies, clinicalSites []domain.CapacitySite) *SiteList {
	return &SiteList{sites: domain.Aggregate(agencies, clinicalSites).All}
}

// Replace заменяет запись с тем же ключом (source, id) на месте
// Возвращает false, если такой записи нет
func (l *SiteList) Replace(site domain.CapacitySite) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := site.Key()
	for i := range l.sites {
		if l.sites[i].Key() == key {
			l.sites[i] = site
			return true
		}
	}
	return false
}

// Find ищет площадку по ключу
func (l *SiteList) Find(key domain.SiteKey) (domain.CapacitySite, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for i := range l.sites {
		if l.sites[i].Key() == key {
			return l.sites[i], true
		}
	}
	return domain.CapacitySite{}, false
}

// Visible возвращает площадки выбранной категории
func (l *SiteList) Visible(category domain.Category) []domain.CapacitySite {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return domain.Filter(l.sites, category)
}

// Counts считает по всему списку, без учета категории
func (l *SiteList) Counts() domain.CapacityCounts {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return domain.CountCapacity(l.sites)
}

// Len число площадок в списке
func (l *SiteList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.sites)
}
