package data

import (
	"strconv"
	"strings"

	"k8s.io/klog/v2"

	svmerrors "github.com/ducminhle1904/evosvm/internal/errors"
	"github.com/ducminhle1904/evosvm/pkg/types"
)

// parseRecords turns raw rows into a dataset. Rows with a missing value, an
// unparsable attribute or the wrong width are skipped with a warning.
func parseRecords(source string, records [][]string, format DatasetFormat) (*types.Dataset, error) {
	start := 0
	if format.HasHeader {
		start = 1
	}

	end := len(records)
	if format.Limit > 0 && start+format.Limit < end {
		end = start + format.Limit
	}

	firstFeature := 0
	if format.HasIDColumn {
		firstFeature = 1
	}

	var labels []int
	var instances [][]float64
	width := -1
	skipped := 0

	for i := start; i < end; i++ {
		record := records[i]
		lineNum := i + 1

		if isBlank(record) {
			continue
		}
		if format.MissingToken != "" && containsToken(record, format.MissingToken) {
			klog.V(2).InfoS("Skipping row with missing value", "source", source, "line", lineNum)
			skipped++
			continue
		}
		if len(record) < firstFeature+2 {
			klog.InfoS("Skipping row with too few columns", "source", source, "line", lineNum, "columns", len(record))
			skipped++
			continue
		}

		features := make([]float64, 0, len(record)-firstFeature-1)
		valid := true
		for _, cell := range record[firstFeature : len(record)-1] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				klog.InfoS("Skipping row with invalid attribute", "source", source, "line", lineNum, "value", cell)
				valid = false
				break
			}
			features = append(features, v)
		}
		if !valid {
			skipped++
			continue
		}

		if width == -1 {
			width = len(features)
		} else if len(features) != width {
			klog.InfoS("Skipping row with inconsistent width", "source", source, "line", lineNum,
				"expected", width, "got", len(features))
			skipped++
			continue
		}

		labels = append(labels, mapLabel(record[len(record)-1], format.NegativeClass))
		instances = append(instances, features)
	}

	if len(instances) == 0 {
		return nil, svmerrors.NewInvalidInputError("data", "parse", "no usable rows in %s", source)
	}

	if skipped > 0 {
		klog.InfoS("Skipped unusable rows", "source", source, "skipped", skipped, "kept", len(instances))
	}

	return &types.Dataset{Labels: labels, Instances: instances}, nil
}

func mapLabel(token, negativeClass string) int {
	if strings.TrimSpace(token) == negativeClass {
		return types.NegativeLabel
	}
	return types.PositiveLabel
}

func containsToken(record []string, token string) bool {
	for _, cell := range record {
		if strings.Contains(cell, token) {
			return true
		}
	}
	return false
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
