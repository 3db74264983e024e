package svm

import (
	"gonum.org/v1/gonum/floats"

	svmerrors "github.com/ducminhle1904/evosvm/internal/errors"
	"github.com/ducminhle1904/evosvm/pkg/optimization"
)

// Model is the decision function derived from the best chromosome. It is owned by the caller.
type Model struct {
	// Weights is W[j] = sum_i alpha_i * y_i * x_i[j], one entry per feature
	Weights []float64 `json:"weights"`

	// InstanceWeights is w_i = alpha_i * y_i * sum_k x_i[k], one entry per training instance.
	// ClassifyIndex scores with it.
	InstanceWeights []float64 `json:"instance_weights"`

	Bias           float64   `json:"bias"`
	Margin         float64   `json:"margin"`
	SupportVectors []int     `json:"support_vectors"`
	Alphas         []float64 `json:"alphas"`
	SumAlphaY      float64   `json:"sum_alpha_y"`
	Fitness        float64   `json:"fitness"`
}

// Extract derives the full model from a chromosome
func (p *Problem) Extract(best *optimization.Chromosome) *Model {
	weights := p.Weight(best)
	return &Model{
		Weights:         weights,
		InstanceWeights: p.InstanceWeights(best),
		Bias:            p.Bias(best),
		Margin:          Margin(weights),
		SupportVectors:  SupportVectors(best),
		Alphas:          append([]float64(nil), best.Genes...),
		SumAlphaY:       p.SumAlphaY(best),
		Fitness:         best.Fitness,
	}
}

// Weight computes the feature-space weight vector
func (p *Problem) Weight(best *optimization.Chromosome) []float64 {
	w := make([]float64, p.dataset.Dimension())
	for i, alpha := range best.Genes {
		if alpha == 0 {
			continue
		}
		floats.AddScaled(w, alpha*float64(p.dataset.Labels[i]), p.dataset.Instances[i])
	}
	return w
}

// InstanceWeights computes alpha_i * y_i * sum_k x_i[k] for every training instance
func (p *Problem) InstanceWeights(best *optimization.Chromosome) []float64 {
	w := make([]float64, len(best.Genes))
	for i, alpha := range best.Genes {
		w[i] = alpha * float64(p.dataset.Labels[i]) * floats.Sum(p.dataset.Instances[i])
	}
	return w
}

// Bias computes b = 1/n * sum_i (y_i - sum_j y_j * alpha_j * K(x_i, x_j)).
//
// The inner sum is only taken when the first multiplier is non-zero; otherwise the
// bias reduces to the mean label.
func (p *Problem) Bias(best *optimization.Chromosome) float64 {
	n := len(best.Genes)
	if n == 0 {
		return 0
	}

	// TODO: gate on each alpha_j instead of genes[0] once models trained with the
	// current rule no longer need to be reproduced.
	gated := best.Genes[0] != 0

	total := 0.0
	for i := 0; i < n; i++ {
		inner := 0.0
		if gated {
			for j := 0; j < n; j++ {
				inner += float64(p.dataset.Labels[j]) * best.Genes[j] * p.gram.At(i, j)
			}
		}
		total += float64(p.dataset.Labels[i]) - inner
	}

	return (1.0 / float64(n)) * total
}

// SumAlphaY returns sum(alpha_i * y_i); zero means the equality constraint holds
func (p *Problem) SumAlphaY(best *optimization.Chromosome) float64 {
	sum := 0.0
	for i, alpha := range best.Genes {
		sum += alpha * float64(p.dataset.Labels[i])
	}
	return sum
}

// SupportVectors returns the indices of non-zero multipliers
func SupportVectors(best *optimization.Chromosome) []int {
	indices := make([]int, 0)
	for i, alpha := range best.Genes {
		if alpha != 0.0 {
			indices = append(indices, i)
		}
	}
	return indices
}

// Margin returns 1/||W||, or 0 when W vanishes
func Margin(weights []float64) float64 {
	norm := floats.Norm(weights, 2)
	if norm == 0 {
		return 0
	}
	return 1 / norm
}

// Classify returns +1 when W.x + b > 0 and -1 otherwise
func Classify(x, weights []float64, bias float64) (int, error) {
	if len(x) != len(weights) {
		return 0, svmerrors.NewInvalidInputError("svm", "classify",
			"feature vector has %d values, weights have %d", len(x), len(weights))
	}
	if floats.Dot(weights, x)+bias > 0 {
		return 1, nil
	}
	return -1, nil
}

// Classify applies the decision function to a feature vector
func (m *Model) Classify(x []float64) (int, error) {
	return Classify(x, m.Weights, m.Bias)
}

// ClassifyIndex scores instance i with InstanceWeights[i] + bias instead of a dot product
func (m *Model) ClassifyIndex(i int) (int, error) {
	if i < 0 || i >= len(m.InstanceWeights) {
		return 0, svmerrors.NewInvalidInputError("svm", "classify index",
			"index %d out of range [0, %d)", i, len(m.InstanceWeights))
	}
	if m.InstanceWeights[i]+m.Bias > 0 {
		return 1, nil
	}
	return -1, nil
}
