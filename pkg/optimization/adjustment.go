package optimization

import (
	"math"
	"math/rand"
)

const (
	// DefaultRepairTolerance is the |sum(alpha_i * y_i)| below which a chromosome counts as feasible
	DefaultRepairTolerance = 1e-6

	// DefaultRepairMaxIterations caps a single repair
	DefaultRepairMaxIterations = 1000
)

// RepairResult describes one repair. Converged false means the iteration cap was hit,
// which is a normal outcome: the chromosome is used as it is.
type RepairResult struct {
	Iterations int     `json:"iterations"`
	Residual   float64 `json:"residual"`
	Converged  bool    `json:"converged"`
}

// Adjuster pushes chromosomes toward the dual equality constraint sum(alpha_i * y_i) = 0
// by repeatedly shrinking one randomly chosen multiplier of the heavier class.
type Adjuster struct {
	labels        []int
	positive      []int
	negative      []int
	tolerance     float64
	maxIterations int
}

// NewAdjuster creates an adjuster for the given per-gene labels
func NewAdjuster(labels []int, tolerance float64, maxIterations int) *Adjuster {
	a := &Adjuster{
		labels:        append([]int(nil), labels...),
		tolerance:     tolerance,
		maxIterations: maxIterations,
	}
	for i, label := range labels {
		switch label {
		case 1:
			a.positive = append(a.positive, i)
		case -1:
			a.negative = append(a.negative, i)
		}
	}
	return a
}

// Adjust repairs the chromosome in place
func (a *Adjuster) Adjust(alpha *Chromosome, rng *rand.Rand) RepairResult {
	iterations := 0
	var difference float64

	for {
		positiveSum, negativeSum := a.classSums(alpha)
		difference = positiveSum - negativeSum

		// The heavier class loses mass. Ties go to the negative class.
		candidates := a.negative
		if math.Abs(positiveSum) > math.Abs(negativeSum) {
			candidates = a.positive
		}
		if len(candidates) > 0 {
			geneIndex := candidates[rng.Intn(len(candidates))]
			updateGeneValue(alpha, geneIndex, math.Abs(difference))
		}

		positiveSum, negativeSum = a.classSums(alpha)
		difference = positiveSum - negativeSum
		iterations++

		if math.Abs(difference) <= a.tolerance || iterations >= a.maxIterations {
			break
		}
	}

	return RepairResult{
		Iterations: iterations,
		Residual:   difference,
		Converged:  math.Abs(difference) <= a.tolerance,
	}
}

// Residual returns sum(alpha_i * y_i) for the chromosome
func (a *Adjuster) Residual(alpha *Chromosome) float64 {
	positiveSum, negativeSum := a.classSums(alpha)
	return positiveSum - negativeSum
}

func (a *Adjuster) classSums(alpha *Chromosome) (positiveSum, negativeSum float64) {
	for _, i := range a.positive {
		positiveSum += alpha.Genes[i]
	}
	for _, i := range a.negative {
		negativeSum += alpha.Genes[i]
	}
	return positiveSum, negativeSum
}

// updateGeneValue subtracts difference from the gene, clamping at zero
func updateGeneValue(alpha *Chromosome, geneIndex int, difference float64) {
	if alpha.Genes[geneIndex] > difference {
		alpha.Genes[geneIndex] -= difference
	} else {
		alpha.Genes[geneIndex] = 0
	}
}
