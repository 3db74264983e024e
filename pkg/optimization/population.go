package optimization

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Population is a fixed-size collection of chromosomes. Slot 0 holds the elite after each generation.
type Population []*Chromosome

// GetBest returns a copy of the individual with the highest fitness.
// Ties resolve to the first maximal individual in slice order.
func (p Population) GetBest() *Chromosome {
	if len(p) == 0 {
		return nil
	}

	best := p[0]
	for _, individual := range p[1:] {
		if individual.Fitness > best.Fitness {
			best = individual
		}
	}
	return best.Clone()
}

// BestFitness returns the highest fitness without copying
func (p Population) BestFitness() float64 {
	if len(p) == 0 {
		return 0.0
	}
	return floats.Max(p.Fitnesses())
}

// WorstFitness returns the lowest fitness
func (p Population) WorstFitness() float64 {
	if len(p) == 0 {
		return 0.0
	}
	return floats.Min(p.Fitnesses())
}

// AverageFitness calculates the average fitness of all individuals
func (p Population) AverageFitness() float64 {
	if len(p) == 0 {
		return 0.0
	}
	return stat.Mean(p.Fitnesses(), nil)
}

// FitnessStdDev returns the sample standard deviation of fitness
func (p Population) FitnessStdDev() float64 {
	if len(p) < 2 {
		return 0.0
	}
	return stat.StdDev(p.Fitnesses(), nil)
}

// Fitnesses returns the fitness of every individual in slice order
func (p Population) Fitnesses() []float64 {
	values := make([]float64, len(p))
	for i, individual := range p {
		values[i] = individual.Fitness
	}
	return values
}

// Clone deep-copies every individual
func (p Population) Clone() Population {
	out := make(Population, len(p))
	for i, individual := range p {
		out[i] = individual.Clone()
	}
	return out
}

