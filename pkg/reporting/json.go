package reporting

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ducminhle1904/evosvm/pkg/svm"
)

// DefaultJSONFormatter implements JSON output functionality
type DefaultJSONFormatter struct{}

// NewDefaultJSONFormatter creates a new JSON formatter
func NewDefaultJSONFormatter() *DefaultJSONFormatter {
	return &DefaultJSONFormatter{}
}

// FormatModel formats a model as indented JSON
func (f *DefaultJSONFormatter) FormatModel(model *svm.Model) ([]byte, error) {
	return json.MarshalIndent(model, "", "  ")
}

// PrintModel prints a model as JSON to stdout
func (f *DefaultJSONFormatter) PrintModel(model *svm.Model) {
	data, err := f.FormatModel(model)
	if err != nil {
		fmt.Printf("failed to format model: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

// WriteModelJSON writes the model to path, creating the directory if needed
func WriteModelJSON(model *svm.Model, path string) error {
	data, err := NewDefaultJSONFormatter().FormatModel(model)
	if err != nil {
		return err
	}

	if err := ensureDir(path); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadModelJSON loads a model written by WriteModelJSON
func ReadModelJSON(path string) (*svm.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var model svm.Model
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("failed to parse model %s: %w", path, err)
	}
	return &model, nil
}
