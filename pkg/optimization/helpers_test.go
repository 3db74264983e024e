package optimization

import (
	"math/rand"
)

// targetProblem rewards genes close to 0.5 and labels genes alternately +1/-1
type targetProblem struct {
	labels []int
}

func newTargetProblem(n int) *targetProblem {
	labels := make([]int, n)
	for i := range labels {
		if i%2 == 0 {
			labels[i] = 1
		} else {
			labels[i] = -1
		}
	}
	return &targetProblem{labels: labels}
}

func (p *targetProblem) ComputeFitness(c *Chromosome) {
	sum := 0.0
	for _, g := range c.Genes {
		d := g - 0.5
		sum += d * d
	}
	c.Fitness = -sum
}

func (p *targetProblem) NumberOfGenes() int { return len(p.labels) }

func (p *targetProblem) Labels() []int { return p.labels }

func (p *targetProblem) Populate(size int, rng *rand.Rand) Population {
	population := make(Population, size)
	for i := range population {
		population[i] = NewUniformChromosome(len(p.labels), 0, 1, rng)
	}
	return population
}

func withFitness(fitness ...float64) Population {
	population := make(Population, len(fitness))
	for i, f := range fitness {
		population[i] = &Chromosome{
			Genes:     []float64{f},
			MinValues: []float64{0},
			MaxValues: []float64{1},
			Fitness:   f,
		}
	}
	return population
}

func testConfig(genes int) OptimizationConfig {
	cfg := GetDefaultOptimizationConfig()
	cfg.NumberOfGenes = genes
	cfg.PopulationSize = 12
	cfg.MaxGenerations = 15
	return cfg
}
