package data

import (
	"github.com/xuri/excelize/v2"

	svmerrors "github.com/ducminhle1904/evosvm/internal/errors"
	"github.com/ducminhle1904/evosvm/pkg/types"
)

// ExcelProvider implements DataProvider for .xlsx workbooks. Rows are read from
// the named sheet, or the first sheet when none is given.
type ExcelProvider struct {
	format DatasetFormat
	sheet  string
}

// NewExcelProvider creates an Excel provider for the given layout
func NewExcelProvider(format DatasetFormat) *ExcelProvider {
	return &ExcelProvider{format: format}
}

// WithSheet selects the sheet to read
func (p *ExcelProvider) WithSheet(sheet string) *ExcelProvider {
	p.sheet = sheet
	return p
}

// GetName returns the name of the data provider
func (p *ExcelProvider) GetName() string {
	return "Excel Provider"
}

// LoadData loads a dataset from an Excel workbook
func (p *ExcelProvider) LoadData(source string) (*types.Dataset, error) {
	f, err := excelize.OpenFile(source)
	if err != nil {
		return nil, svmerrors.NewIOError("excel provider", "open", err).WithContext("source", source)
	}
	defer f.Close()

	sheet := p.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, svmerrors.NewIOError("excel provider", "read", err).
			WithContext("source", source).
			WithContext("sheet", sheet)
	}

	return parseRecords(source, rows, p.format)
}

// ValidateData validates the integrity of a loaded dataset
func (p *ExcelProvider) ValidateData(dataset *types.Dataset) error {
	return validateDataset(dataset)
}
