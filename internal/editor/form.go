package editor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/bhartnell/pmi-scheduler/internal/domain"
	"github.com/bhartnell/pmi-scheduler/pkg/capacityclient"
)

const (
	fieldMaxPerDay      = "maxPerDay"
	fieldMaxPerRotation = "maxPerRotation"
	fieldCapacityNotes  = "capacityNotes"
)

// Form состояние формы редактирования вместимости одной площадки
// Поля хранятся как введенный текст; разбор выполняется при проверке и отправке
type Form struct {
	mu sync.Mutex

	site  domain.CapacitySite
	saver Saver
	list  *SiteList

	maxPerDay      string
	maxPerRotation string
	notes          string

	saving   bool
	closed   bool
	errorMsg string
}

// NewForm открывает форму для площадки; list может быть nil
func NewForm(site domain.CapacitySite, capability domain.Capability, saver Saver, list *SiteList) (*Form, error) {
	if !capability.CanEdit {
		return nil, ErrReadOnly
	}

	f := &Form{
		site:      site,
		saver:     saver,
		list:      list,
		maxPerDay: strconv.Itoa(site.MaxPerDay),
	}
	if site.MaxPerRotation != nil {
		f.maxPerRotation = strconv.Itoa(*site.MaxPerRotation)
	}
	if site.CapacityNotes != nil {
		f.notes = *site.CapacityNotes
	}
	return f, nil
}

func (f *Form) SetMaxPerDay(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.maxPerDay = value
}

func (f *Form) SetMaxPerRotation(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.maxPerRotation = value
}

func (f *Form) SetNotes(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notes = value
}

// Values возвращает введенный текст полей
func (f *Form) Values() (maxPerDay, maxPerRotation, notes string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxPerDay, f.maxPerRotation, f.notes
}

// Site возвращает исходную запись формы
func (f *Form) Site() domain.CapacitySite {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.site
}

// CanSave false, пока maxPerDay пуст, идет сохранение или форма закрыта
func (f *Form) CanSave() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.closed && !f.saving && strings.TrimSpace(f.maxPerDay) != ""
}

// Saving true, пока запрос сохранения не завершился
func (f *Form) Saving() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saving
}

// Validate разбирает поля формы в изменение вместимости
func (f *Form) Validate() (domain.CapacityUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

func (f *Form) validateLocked() (domain.CapacityUpdate, error) {
	var update domain.CapacityUpdate

	maxPerDay := strings.TrimSpace(f.maxPerDay)
	if maxPerDay == "" {
		return update, &ValidationError{Field: fieldMaxPerDay, Message: "maxPerDay is required"}
	}
	perDay, err := parseLimit(maxPerDay, domain.MinMaxPerDay)
	if err != nil {
		return update, &ValidationError{Field: fieldMaxPerDay, Message: "maxPerDay " + err.Error()}
	}
	update.MaxPerDay = perDay

	if rotation := strings.TrimSpace(f.maxPerRotation); rotation != "" {
		perRotation, err := parseLimit(rotation, domain.MinMaxPerRotation)
		if err != nil {
			return update, &ValidationError{Field: fieldMaxPerRotation, Message: "maxPerRotation " + err.Error()}
		}
		update.MaxPerRotation = &perRotation
	}

	if notes := strings.TrimSpace(f.notes); notes != "" {
		if utf8.RuneCountInString(notes) > domain.MaxCapacityNotesLength {
			return update, &ValidationError{
				Field:   fieldCapacityNotes,
				Message: fmt.Sprintf("capacityNotes must be at most %d characters", domain.MaxCapacityNotesLength),
			}
		}
		update.CapacityNotes = &notes
	}

	return update, nil
}

func parseLimit(value string, min int) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < min {
		return 0, fmt.Errorf("must be a whole number of at least %d", min)
	}
	return n, nil
}

// Preview локальная проекция записи с введенными лимитами, до ответа сервера
func (f *Form) Preview() (domain.CapacitySite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	update, err := f.validateLocked()
	if err != nil {
		return domain.CapacitySite{}, err
	}

	projected := f.site
	update.ApplyTo(&projected)
	return projected, nil
}

// Submit проверяет форму и отправляет изменение
// При успехе запись заменяется в списке и форма закрывается.
// При ошибке форма остается открытой с введенными значениями.
func (f *Form) Submit(ctx context.Context) (*domain.CapacitySite, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, ErrFormClosed
	}
	if f.saving {
		f.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	update, err := f.validateLocked()
	if err != nil {
		f.mu.Unlock()
		return nil, err
	}
	key := f.site.Key()
	f.saving = true
	f.errorMsg = ""
	f.mu.Unlock()

	updated, err := f.saver.UpdateCapacity(ctx, key, update)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.saving = false

	// Ответ после закрытия формы отбрасывается
	if f.closed {
		return nil, ErrFormClosed
	}

	if err != nil {
		saveErr := &SaveError{Message: saveErrorMessage(err), Err: err}
		f.errorMsg = saveErr.Message
		return nil, saveErr
	}
	if updated == nil {
		saveErr := &SaveError{Message: domain.DefaultSaveErrorMessage, Err: errors.New("empty response")}
		f.errorMsg = saveErr.Message
		return nil, saveErr
	}

	if f.list != nil {
		f.list.Replace(*updated)
	}
	f.site = *updated
	f.closed = true
	return updated, nil
}

func saveErrorMessage(err error) string {
	var apiErr *capacityclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return domain.DefaultSaveErrorMessage
}

// ErrorMessage сообщение последней ошибки сохранения, пустое если ошибки нет
func (f *Form) ErrorMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errorMsg
}

// DismissError скрывает сообщение об ошибке
func (f *Form) DismissError() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errorMsg = ""
}

// Close закрывает форму; ответ на запрос в полете будет отброшен
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

// Closed true после Close или успешного сохранения
func (f *Form) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
