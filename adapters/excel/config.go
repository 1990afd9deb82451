package excel

import (
	"quantix/adapters/datareadiness/coercer"
)

// ExcelConfig holds configuration for the spreadsheet data source
type ExcelConfig struct {
	FilePath       string                 `json:"file_path"`
	Sheet          string                 `json:"sheet"` // XLSX only
	CoercionConfig coercer.CoercionConfig `json:"coercion_config"`
}

// DefaultExcelConfig returns sensible defaults for spreadsheet processing
func DefaultExcelConfig(filePath string) ExcelConfig {
	return ExcelConfig{
		FilePath:       filePath,
		Sheet:          DefaultSheet,
		CoercionConfig: coercer.DefaultCoercionConfig(),
	}
}
