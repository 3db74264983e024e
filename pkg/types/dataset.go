package types

import svmerrors "github.com/ducminhle1904/evosvm/internal/errors"

const (
	// PositiveLabel and NegativeLabel are the only class values the trainer accepts
	PositiveLabel = 1
	NegativeLabel = -1
)

// Dataset is a labeled feature matrix. Labels and Instances are index-aligned.
type Dataset struct {
	Labels    []int       `json:"labels"`
	Instances [][]float64 `json:"instances"`
}

// NewDataset copies labels and instances into a new dataset
func NewDataset(labels []int, instances [][]float64) *Dataset {
	ds := &Dataset{
		Labels:    make([]int, len(labels)),
		Instances: make([][]float64, len(instances)),
	}
	copy(ds.Labels, labels)
	for i, row := range instances {
		ds.Instances[i] = append([]float64(nil), row...)
	}
	return ds
}

// Len returns the number of instances
func (d *Dataset) Len() int {
	return len(d.Labels)
}

// Dimension returns the feature count of the first row, or 0 for an empty dataset
func (d *Dataset) Dimension() int {
	if len(d.Instances) == 0 {
		return 0
	}
	return len(d.Instances[0])
}

// Validate checks label values, label/instance alignment and that the matrix is rectangular
func (d *Dataset) Validate() error {
	if len(d.Labels) != len(d.Instances) {
		return svmerrors.NewInvalidInputError("dataset", "validate",
			"labels (%d) and instances (%d) differ in length", len(d.Labels), len(d.Instances))
	}

	for i, label := range d.Labels {
		if label != PositiveLabel && label != NegativeLabel {
			return svmerrors.NewInvalidInputError("dataset", "validate",
				"label at row %d must be +1 or -1, got: %d", i, label).WithContext("row", i)
		}
	}

	dim := d.Dimension()
	for i, row := range d.Instances {
		if len(row) != dim {
			return svmerrors.NewInvalidInputError("dataset", "validate",
				"ragged feature row %d: expected %d features, got %d", i, dim, len(row)).WithContext("row", i)
		}
	}

	return nil
}

// Subset returns a new dataset holding the given rows in the given order
func (d *Dataset) Subset(indices []int) (*Dataset, error) {
	sub := &Dataset{
		Labels:    make([]int, 0, len(indices)),
		Instances: make([][]float64, 0, len(indices)),
	}
	for _, idx := range indices {
		if idx < 0 || idx >= d.Len() {
			return nil, svmerrors.NewInvalidInputError("dataset", "subset",
				"index %d out of range [0, %d)", idx, d.Len()).WithContext("index", idx)
		}
		sub.Labels = append(sub.Labels, d.Labels[idx])
		sub.Instances = append(sub.Instances, append([]float64(nil), d.Instances[idx]...))
	}
	return sub, nil
}

// CountByLabel returns the number of positive and negative instances
func (d *Dataset) CountByLabel() (positive, negative int) {
	for _, label := range d.Labels {
		if label == PositiveLabel {
			positive++
		} else if label == NegativeLabel {
			negative++
		}
	}
	return positive, negative
}
