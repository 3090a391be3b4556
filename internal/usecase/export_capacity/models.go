package export_capacity

import "time"

// Format формат файла выгрузки
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ContentType возвращает MIME тип для формата
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Request модель запроса на выгрузку
// Категория не передается: выгрузка всегда содержит все площадки
type Request struct {
	Date   time.Time // Дата загрузки (нулевая - сегодня)
	Format Format    // Формат файла (пустой - CSV)
}

// Response модель ответа с готовым файлом
type Response struct {
	Filename    string
	ContentType string
	Content     []byte
	Rows        int // Число строк данных без заголовка
}
