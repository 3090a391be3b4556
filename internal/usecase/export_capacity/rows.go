package export_capacity

import (
	"strconv"
	"strings"

	"github.com/bhartnell/pmi-scheduler/internal/domain"
)

var header = []string{
	"Name",
	"Type",
	"Max Per Day",
	"Max Per Rotation",
	"Current Students",
	"Utilization",
	"Status",
	"Notes",
}

// row одна строка выгрузки; числовые поля остаются числами для XLSX
type row struct {
	name           string
	typeLabel      string
	maxPerDay      int
	maxPerRotation *int
	current        int
	utilization    string
	status         string
	notes          string
}

func toRow(site *domain.CapacitySite) row {
	r := row{
		name:           site.Name,
		typeLabel:      site.TypeLabel(),
		maxPerDay:      site.MaxPerDay,
		maxPerRotation: site.MaxPerRotation,
		current:        site.CurrentStudentCount,
		utilization:    domain.FormatPercentage(site.UtilizationPercentage),
		status:         string(site.Status().Label),
	}
	if site.CapacityNotes != nil {
		r.notes = *site.CapacityNotes
	}
	return r
}

func (r row) strings() []string {
	rotation := ""
	if r.maxPerRotation != nil {
		rotation = strconv.Itoa(*r.maxPerRotation)
	}
	return []string{
		escapeFormula(r.name),
		r.typeLabel,
		strconv.Itoa(r.maxPerDay),
		rotation,
		strconv.Itoa(r.current),
		r.utilization,
		r.status,
		escapeFormula(r.notes),
	}
}

// escapeFormula экранирует свободный текст, который табличный редактор принял бы за формулу
// XLSX не затрагивается: excelize записывает строки как текстовые ячейки
func escapeFormula(value string) string {
	if value != "" && strings.ContainsRune("=+-@\t\r", rune(value[0])) {
		return "'" + value
	}
	return value
}

func (r row) values() []interface{} {
	var rotation interface{}
	if r.maxPerRotation != nil {
		rotation = *r.maxPerRotation
	}
	return []interface{}{
		r.name,
		r.typeLabel,
		r.maxPerDay,
		rotation,
		r.current,
		r.utilization,
		r.status,
		r.notes,
	}
}
