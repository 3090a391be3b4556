package capacity

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bhartnell/pmi-scheduler/internal/domain"
	"github.com/bhartnell/pmi-scheduler/internal/service/capacity/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// В сообщениях используем имена полей из JSON
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// validateUpdate проверяет запрос и приводит его к domain модели
// Пустые заметки сохраняются как NULL
func validateUpdate(req *models.UpdateCapacityRequest) (domain.CapacityUpdate, error) {
	if req == nil {
		return domain.CapacityUpdate{}, &ValidationError{Field: "maxPerDay", Message: "maxPerDay is required"}
	}

	if req.CapacityNotes != nil {
		trimmed := strings.TrimSpace(*req.CapacityNotes)
		if trimmed == "" {
			req.CapacityNotes = nil
		} else {
			req.CapacityNotes = &trimmed
		}
	}

	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return domain.CapacityUpdate{}, toValidationError(fieldErrs[0])
		}
		return domain.CapacityUpdate{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return domain.CapacityUpdate{
		MaxPerDay:      *req.MaxPerDay,
		MaxPerRotation: req.MaxPerRotation,
		CapacityNotes:  req.CapacityNotes,
	}, nil
}

func toValidationError(fe validator.FieldError) *ValidationError {
	field := fe.Field()

	var message string
	switch fe.Tag() {
	case "required":
		message = fmt.Sprintf("%s is required", field)
	case "min":
		message = fmt.Sprintf("%s must be a whole number of at least %s", field, fe.Param())
	case "max":
		message = fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		message = fmt.Sprintf("%s is invalid", field)
	}

	return &ValidationError{Field: field, Message: message}
}
