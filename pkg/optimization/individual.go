package optimization

import (
	"math/rand"
)

// Chromosome is one candidate solution: gene i is the Lagrange multiplier of training instance i.
//
// Chromosomes are treated as values. Crossover always returns a fresh chromosome,
// and only the offspring under construction is mutated or repaired in place.
type Chromosome struct {
	Genes     []float64 `json:"genes"`
	MinValues []float64 `json:"min_values"`
	MaxValues []float64 `json:"max_values"`
	Fitness   float64   `json:"fitness"`
}

// NewChromosome creates a chromosome whose genes are drawn uniformly inside the given bounds
func NewChromosome(minValues, maxValues []float64, rng *rand.Rand) *Chromosome {
	n := len(minValues)
	c := &Chromosome{
		Genes:     make([]float64, n),
		MinValues: make([]float64, n),
		MaxValues: make([]float64, n),
	}

	for i := 0; i < n; i++ {
		c.MinValues[i] = minValues[i]
		c.MaxValues[i] = maxValues[i]
		c.Genes[i] = minValues[i] + rng.Float64()*(maxValues[i]-minValues[i])
	}

	return c
}

// NewUniformChromosome creates a chromosome with every gene bounded by [min, max]
func NewUniformChromosome(numberOfGenes int, min, max float64, rng *rand.Rand) *Chromosome {
	minValues := make([]float64, numberOfGenes)
	maxValues := make([]float64, numberOfGenes)
	for i := range minValues {
		minValues[i] = min
		maxValues[i] = max
	}
	return NewChromosome(minValues, maxValues, rng)
}

// Clone creates a deep copy of this chromosome, fitness included
func (c *Chromosome) Clone() *Chromosome {
	return &Chromosome{
		Genes:     append([]float64(nil), c.Genes...),
		MinValues: append([]float64(nil), c.MinValues...),
		MaxValues: append([]float64(nil), c.MaxValues...),
		Fitness:   c.Fitness,
	}
}

// NumberOfGenes returns the gene count
func (c *Chromosome) NumberOfGenes() int {
	return len(c.Genes)
}

// InBounds reports whether every gene lies within its own [min, max]
func (c *Chromosome) InBounds() bool {
	if len(c.MinValues) != len(c.Genes) || len(c.MaxValues) != len(c.Genes) {
		return false
	}
	for i, g := range c.Genes {
		if g < c.MinValues[i] || g > c.MaxValues[i] {
			return false
		}
	}
	return true
}
