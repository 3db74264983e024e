package data

import (
	"github.com/ducminhle1904/evosvm/pkg/types"
)

// DataProvider interface for loading labelled datasets from various sources
type DataProvider interface {
	// LoadData loads a dataset from the specified source
	LoadData(source string) (*types.Dataset, error)

	// ValidateData validates the integrity of the loaded data
	ValidateData(dataset *types.Dataset) error

	// GetName returns the name of the data provider
	GetName() string
}

// DataCache interface for caching loaded datasets
type DataCache interface {
	// Get retrieves a dataset from cache if available
	Get(key string) (*types.Dataset, bool)

	// Set stores a dataset in cache
	Set(key string, dataset *types.Dataset)

	// Clear removes all cached data
	Clear()

	// Size returns the number of cached entries
	Size() int
}

// DatasetFormat describes the column layout of a delimited dataset file
type DatasetFormat struct {
	// HasIDColumn drops the first column (a sample identifier)
	HasIDColumn bool `json:"has_id_column"`

	// HasHeader skips the first row
	HasHeader bool `json:"has_header"`

	// MissingToken marks a missing value; rows containing it anywhere are skipped
	MissingToken string `json:"missing_token"`

	// NegativeClass is the class token mapped to -1. Every other token maps to +1.
	NegativeClass string `json:"negative_class"`

	// Limit caps the number of rows read from the file, skipped rows included. 0 reads everything.
	Limit int `json:"limit"`
}

// Predefined dataset formats
var (
	// WisconsinFormat is the layout of breast-cancer-wisconsin.data:
	// id, nine integer attributes, class (2 benign, 4 malignant)
	WisconsinFormat = DatasetFormat{
		HasIDColumn:   true,
		MissingToken:  "?",
		NegativeClass: "2",
	}

	// PlainFormat is features followed by a class column, with no id or header
	PlainFormat = DatasetFormat{
		MissingToken:  "?",
		NegativeClass: "-1",
	}
)
