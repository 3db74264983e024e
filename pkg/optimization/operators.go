package optimization

import (
	"math/rand"
)

// TournamentSelection draws two distinct individuals and returns the fitter one.
// Ties favour the first draw. The returned chromosome is shared with the population
// and must not be modified; crossover copies it.
func TournamentSelection(population Population, rng *rand.Rand) *Chromosome {
	n := len(population)
	if n == 0 {
		return nil
	}
	if n == 1 {
		return population[0]
	}

	first := rng.Intn(n)
	second := rng.Intn(n)
	for second == first {
		second = rng.Intn(n)
	}

	if population[first].Fitness >= population[second].Fitness {
		return population[first]
	}
	return population[second]
}

// ArithmeticCrossover blends two parents gene by gene with a random coefficient a:
// child = a*mother + (1-a)*father. When crossover does not happen the child is a copy
// of a randomly chosen parent. The child never shares gene storage with a parent.
func ArithmeticCrossover(mother, father *Chromosome, rate float64, rng *rand.Rand) *Chromosome {
	if rng.Float64() <= rate {
		a := rng.Float64()

		child := mother.Clone()
		for i := range mother.Genes {
			child.Genes[i] = a*mother.Genes[i] + (1-a)*father.Genes[i]
		}
		return child
	}

	if rng.Intn(2) == 0 {
		return mother.Clone()
	}
	return father.Clone()
}

// ResetMutation replaces each gene, with probability rate, by a fresh uniform value in its own bounds
func ResetMutation(child *Chromosome, rate float64, rng *rand.Rand) {
	for i := range child.Genes {
		if rng.Float64() <= rate {
			child.Genes[i] = child.MinValues[i] + rng.Float64()*(child.MaxValues[i]-child.MinValues[i])
		}
	}
}
