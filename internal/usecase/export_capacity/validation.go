package export_capacity

import (
	"fmt"
	"strings"
)

// validateRequest нормализует формат выгрузки
func validateRequest(req *Request) error {
	format := Format(strings.ToLower(strings.TrimSpace(string(req.Format))))
	switch format {
	case "":
		req.Format = FormatCSV
	case FormatCSV, FormatXLSX:
		req.Format = format
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, req.Format)
	}
	return nil
}
