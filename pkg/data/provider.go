package data

import (
	"path/filepath"
	"strings"

	svmerrors "github.com/ducminhle1904/evosvm/internal/errors"
	"github.com/ducminhle1904/evosvm/pkg/types"
)

// ProviderFor picks a provider by file extension: .xlsx reads a workbook,
// everything else (.csv, .data, .txt) is treated as comma separated
func ProviderFor(path string, format DatasetFormat) DataProvider {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return NewExcelProvider(format)
	default:
		return NewCSVProviderWithFormat(format)
	}
}

// LoadDataset loads and validates a dataset with the provider matching its extension
func LoadDataset(path string, format DatasetFormat) (*types.Dataset, error) {
	if path == "" {
		return nil, svmerrors.NewInvalidInputError("data", "load", "dataset path is empty")
	}

	provider := ProviderFor(path, format)
	dataset, err := provider.LoadData(path)
	if err != nil {
		return nil, err
	}
	if err := provider.ValidateData(dataset); err != nil {
		return nil, err
	}
	return dataset, nil
}
