package evaluation

import (
	"k8s.io/klog/v2"

	svmerrors "github.com/ducminhle1904/evosvm/internal/errors"
	"github.com/ducminhle1904/evosvm/pkg/svm"
	"github.com/ducminhle1904/evosvm/pkg/types"
)

// Mode selects how a model is scored against a test set
type Mode string

const (
	// ModeIndexed scores only the support-vector indices, pairing the training-side
	// score InstanceWeights[i] + bias with the test label at the same index
	ModeIndexed Mode = "indexed"

	// ModeDecision classifies every test row with sign(W.x + b)
	ModeDecision Mode = "decision"
)

// ParseMode validates a mode name. An empty name selects ModeIndexed.
func ParseMode(name string) (Mode, error) {
	switch Mode(name) {
	case "", ModeIndexed:
		return ModeIndexed, nil
	case ModeDecision:
		return ModeDecision, nil
	default:
		return "", svmerrors.NewConfigurationError("evaluation", "parse mode",
			"unknown evaluation mode %q (want %q or %q)", name, ModeIndexed, ModeDecision)
	}
}

// ConfusionMatrix counts predictions against actual labels for the +1 class
type ConfusionMatrix struct {
	TruePositives  int `json:"true_positives"`
	FalsePositives int `json:"false_positives"`
	FalseNegatives int `json:"false_negatives"`
	TrueNegatives  int `json:"true_negatives"`
}

// Add records one prediction
func (m *ConfusionMatrix) Add(predicted, actual int) {
	switch {
	case predicted == types.PositiveLabel && actual == types.PositiveLabel:
		m.TruePositives++
	case predicted == types.PositiveLabel && actual == types.NegativeLabel:
		m.FalsePositives++
	case predicted == types.NegativeLabel && actual == types.PositiveLabel:
		m.FalseNegatives++
	case predicted == types.NegativeLabel && actual == types.NegativeLabel:
		m.TrueNegatives++
	}
}

// Total returns the number of recorded predictions
func (m ConfusionMatrix) Total() int {
	return m.TruePositives + m.FalsePositives + m.FalseNegatives + m.TrueNegatives
}

// Precision is TP / (TP + FP), or 0 without positive predictions
func (m ConfusionMatrix) Precision() float64 {
	return ratio(m.TruePositives, m.TruePositives+m.FalsePositives)
}

// Recall is TP / (TP + FN), or 0 without positive instances
func (m ConfusionMatrix) Recall() float64 {
	return ratio(m.TruePositives, m.TruePositives+m.FalseNegatives)
}

// Specificity is TN / (TN + FP), or 0 without negative instances
func (m ConfusionMatrix) Specificity() float64 {
	return ratio(m.TrueNegatives, m.TrueNegatives+m.FalsePositives)
}

// Accuracy is (TP + TN) / total, or 0 for an empty matrix
func (m ConfusionMatrix) Accuracy() float64 {
	return ratio(m.TruePositives+m.TrueNegatives, m.Total())
}

func ratio(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0.0
	}
	return float64(numerator) / float64(denominator)
}

// Metrics is the set of ratios derived from a confusion matrix
type Metrics struct {
	Precision   float64 `json:"precision"`
	Recall      float64 `json:"recall"`
	Specificity float64 `json:"specificity"`
	Accuracy    float64 `json:"accuracy"`
}

// Metrics computes every ratio at once
func (m ConfusionMatrix) Metrics() Metrics {
	return Metrics{
		Precision:   m.Precision(),
		Recall:      m.Recall(),
		Specificity: m.Specificity(),
		Accuracy:    m.Accuracy(),
	}
}

// Result is the outcome of scoring a model on a test set
type Result struct {
	Mode      Mode            `json:"mode"`
	Confusion ConfusionMatrix `json:"confusion"`
	Metrics   Metrics         `json:"metrics"`

	// Skipped counts support-vector indices beyond the end of the test set
	Skipped int `json:"skipped"`
}

// Evaluate scores the model with the selected mode
func Evaluate(mode Mode, model *svm.Model, test *types.Dataset) (*Result, error) {
	switch mode {
	case ModeIndexed, "":
		return EvaluateIndexed(model, test)
	case ModeDecision:
		return EvaluateDecision(model, test)
	default:
		_, err := ParseMode(string(mode))
		return nil, err
	}
}

// EvaluateIndexed scores each support vector i with the model's indexed score and
// compares it with the test label at index i
func EvaluateIndexed(model *svm.Model, test *types.Dataset) (*Result, error) {
	if err := checkInputs(model, test); err != nil {
		return nil, err
	}

	result := &Result{Mode: ModeIndexed}
	for _, index := range model.SupportVectors {
		if index >= test.Len() {
			result.Skipped++
			continue
		}

		predicted, err := model.ClassifyIndex(index)
		if err != nil {
			return nil, err
		}
		result.Confusion.Add(predicted, test.Labels[index])
	}

	if result.Skipped > 0 {
		klog.V(2).InfoS("Support vectors outside the test set were not scored",
			"skipped", result.Skipped, "testSize", test.Len())
	}

	result.Metrics = result.Confusion.Metrics()
	return result, nil
}

// EvaluateDecision classifies every test row with the feature-space decision function
func EvaluateDecision(model *svm.Model, test *types.Dataset) (*Result, error) {
	if err := checkInputs(model, test); err != nil {
		return nil, err
	}

	result := &Result{Mode: ModeDecision}
	for i, x := range test.Instances {
		predicted, err := model.Classify(x)
		if err != nil {
			return nil, err
		}
		result.Confusion.Add(predicted, test.Labels[i])
	}

	result.Metrics = result.Confusion.Metrics()
	return result, nil
}

func checkInputs(model *svm.Model, test *types.Dataset) error {
	if model == nil {
		return svmerrors.NewInvalidInputError("evaluation", "evaluate", "model is required")
	}
	if test == nil {
		return svmerrors.NewInvalidInputError("evaluation", "evaluate", "test dataset is required")
	}
	return test.Validate()
}
