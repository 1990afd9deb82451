package excel

// RawRowData represents one data row as cells keyed by trimmed header
type RawRowData map[string]string

// ExcelData represents a whole sheet before coercion
type ExcelData struct {
	Headers []string     // Column headers
	Rows    []RawRowData // Data rows
}

// Column returns the cells under header, in row order. Rows shorter than
// the header row yield "".
func (d *ExcelData) Column(header string) []string {
	cells := make([]string, len(d.Rows))
	for i, row := range d.Rows {
		cells[i] = row[header]
	}
	return cells
}
