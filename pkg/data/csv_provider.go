package data

import (
	"encoding/csv"
	"os"

	svmerrors "github.com/ducminhle1904/evosvm/internal/errors"
	"github.com/ducminhle1904/evosvm/pkg/types"
)

// CSVProvider implements DataProvider for comma separated files
type CSVProvider struct {
	format DatasetFormat
}

// NewCSVProvider creates a new CSV data provider with the Wisconsin format
func NewCSVProvider() *CSVProvider {
	return &CSVProvider{
		format: WisconsinFormat,
	}
}

// NewCSVProviderWithFormat creates a new CSV data provider with custom format
func NewCSVProviderWithFormat(format DatasetFormat) *CSVProvider {
	return &CSVProvider{
		format: format,
	}
}

// GetName returns the name of the data provider
func (p *CSVProvider) GetName() string {
	return "CSV Provider"
}

// LoadData loads a dataset from a CSV file
func (p *CSVProvider) LoadData(source string) (*types.Dataset, error) {
	file, err := os.Open(source)
	if err != nil {
		return nil, svmerrors.NewIOError("csv provider", "open", err).WithContext("source", source)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, svmerrors.NewIOError("csv provider", "read", err).WithContext("source", source)
	}

	return parseRecords(source, records, p.format)
}

// ValidateData validates the integrity of a loaded dataset
func (p *CSVProvider) ValidateData(dataset *types.Dataset) error {
	return validateDataset(dataset)
}

func validateDataset(dataset *types.Dataset) error {
	if dataset == nil || dataset.Len() == 0 {
		return svmerrors.NewInvalidInputError("data", "validate", "no data provided")
	}
	return dataset.Validate()
}
