package capacity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bhartnell/pmi-scheduler/internal/domain"
)

// Generation версия содержимого кэша, увеличивается при каждой инвалидации
// Запись, загруженная из БД до инвалидации, сохраняется под старой версией и не читается
type Generation int64

// Cache кэш коллекций площадок (агентства и клинические площадки) по дате
type Cache struct {
	kv     KV
	prefix string
	ttl    time.Duration
}

// NewCache создает кэш с префиксом ключей и временем жизни записей
func NewCache(kv KV, prefix string, ttl time.Duration) *Cache {
	return &Cache{kv: kv, prefix: prefix, ttl: ttl}
}

type cachedSite struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Type                string  `json:"type,omitempty"`
	MaxPerDay           int     `json:"maxPerDay"`
	MaxPerRotation      *int    `json:"maxPerRotation,omitempty"`
	CurrentStudentCount int     `json:"currentStudentCount"`
	CapacityNotes       *string `json:"capacityNotes,omitempty"`
}

type cachedSources struct {
	Agencies      []cachedSite `json:"agencies"`
	ClinicalSites []cachedSite `json:"clinicalSites"`
}

// Get возвращает закэшированные коллекции на дату или ErrCacheMiss
// Generation текущей версии возвращается и при промахе, ее нужно передать в Set
func (c *Cache) Get(ctx context.Context, date time.Time) (*domain.SiteSources, Generation, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, 0, err
	}

	raw, err := c.kv.Get(ctx, c.key(gen, date))
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, gen, ErrCacheMiss
		}
		return nil, 0, fmt.Errorf("%w: Get: %v", ErrStorage, err)
	}

	var cached cachedSources
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil, gen, fmt.Errorf("%w: Get - decode: %v", ErrCodec, err)
	}

	return &domain.SiteSources{
		Agencies:      fromCached(cached.Agencies, domain.SourceAgency),
		ClinicalSites: fromCached(cached.ClinicalSites, domain.SourceClinicalSite),
	}, gen, nil
}

// Set сохраняет коллекции на дату под версией gen, полученной из Get до чтения БД
func (c *Cache) Set(ctx context.Context, gen Generation, date time.Time, sources *domain.SiteSources) error {
	payload, err := json.Marshal(cachedSources{
		Agencies:      toCached(sources.Agencies),
		ClinicalSites: toCached(sources.ClinicalSites),
	})
	if err != nil {
		return fmt.Errorf("%w: Set - encode: %v", ErrCodec, err)
	}

	if err := c.kv.Set(ctx, c.key(gen, date), string(payload), c.ttl); err != nil {
		return fmt.Errorf("%w: Set: %v", ErrStorage, err)
	}
	return nil
}

// InvalidateAll делает недействительными коллекции на все даты
// Сначала увеличивается версия, затем удаляются записи прошлых версий
func (c *Cache) InvalidateAll(ctx context.Context) error {
	if _, err := c.kv.Incr(ctx, c.generationKey()); err != nil {
		return fmt.Errorf("%w: InvalidateAll - bump generation: %v", ErrStorage, err)
	}

	keys, err := c.kv.ScanKeys(ctx, c.prefix+":sources:*")
	if err != nil {
		return fmt.Errorf("%w: InvalidateAll - scan: %v", ErrStorage, err)
	}

	if err := c.kv.Del(ctx, keys...); err != nil {
		return fmt.Errorf("%w: InvalidateAll - delete: %v", ErrStorage, err)
	}
	return nil
}

func (c *Cache) generation(ctx context.Context) (Generation, error) {
	raw, err := c.kv.Get(ctx, c.generationKey())
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: generation: %v", ErrStorage, err)
	}

	gen, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: generation - decode %q: %v", ErrCodec, raw, err)
	}
	return Generation(gen), nil
}

func (c *Cache) generationKey() string {
	return c.prefix + ":generation"
}

func (c *Cache) key(gen Generation, date time.Time) string {
	return c.prefix + ":sources:" + strconv.FormatInt(int64(gen), 10) + ":" + date.Format(domain.DateFormat)
}

func toCached(sites []domain.CapacitySite) []cachedSite {
	result := make([]cachedSite, len(sites))
	for i, s := range sites {
		result[i] = cachedSite{
			ID:                  s.ID,
			Name:                s.Name,
			Type:                string(s.Type),
			MaxPerDay:           s.MaxPerDay,
			MaxPerRotation:      s.MaxPerRotation,
			CurrentStudentCount: s.CurrentStudentCount,
			CapacityNotes:       s.CapacityNotes,
		}
	}
	return result
}

// fromCached восстанавливает площадки; производные поля пересчитываются, а не берутся из кэша
func fromCached(cached []cachedSite, source domain.Source) []domain.CapacitySite {
	result := make([]domain.CapacitySite, len(cached))
	for i, s := range cached {
		result[i] = domain.CapacitySite{
			ID:                  s.ID,
			Name:                s.Name,
			Source:              source,
			Type:                domain.AgencyType(s.Type),
			MaxPerDay:           s.MaxPerDay,
			MaxPerRotation:      s.MaxPerRotation,
			CurrentStudentCount: s.CurrentStudentCount,
			CapacityNotes:       s.CapacityNotes,
		}
		result[i].Recalculate()
	}
	return result
}
