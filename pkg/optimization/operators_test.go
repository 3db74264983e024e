package optimization

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTournamentSelection_SingleMember tests that a population of one returns its only member
func TestTournamentSelection_SingleMember(t *testing.T) {
	population := withFitness(1)

	assert.Same(t, population[0], TournamentSelection(population, rand.New(rand.NewSource(1))))
	assert.Nil(t, TournamentSelection(Population{}, rand.New(rand.NewSource(1))))
}

// TestTournamentSelection_PairAlwaysPicksFitter tests that two distinct contestants always meet in a pair
func TestTournamentSelection_PairAlwaysPicksFitter(t *testing.T) {
	population := withFitness(1, 2)
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 50; i++ {
		assert.Same(t, population[1], TournamentSelection(population, rng))
	}
}

// TestTournamentSelection_NeverPicksWorst tests that the weakest individual cannot win
func TestTournamentSelection_NeverPicksWorst(t *testing.T) {
	population := withFitness(5, -10, 3, 4)
	rng := rand.New(rand.NewSource(4))

	for i := 0; i < 200; i++ {
		winner := TournamentSelection(population, rng)
		assert.NotSame(t, population[1], winner)
	}
	assert.Equal(t, []float64{5, -10, 3, 4}, population.Fitnesses())
}

// TestArithmeticCrossover_Blend tests that offspring genes lie between the parents
func TestArithmeticCrossover_Blend(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	mother := &Chromosome{Genes: []float64{0, 1, 0.5}, MinValues: []float64{0, 0, 0}, MaxValues: []float64{1, 1, 1}}
	father := &Chromosome{Genes: []float64{1, 0, 0.5}, MinValues: []float64{0, 0, 0}, MaxValues: []float64{1, 1, 1}}

	for i := 0; i < 20; i++ {
		child := ArithmeticCrossover(mother, father, 1.0, rng)
		require.Len(t, child.Genes, 3)
		assert.InDelta(t, 1.0, child.Genes[0]+child.Genes[1], 1e-12)
		assert.InDelta(t, 0.5, child.Genes[2], 1e-12)
		assert.NotSame(t, &mother.Genes[0], &child.Genes[0])
	}
	assert.Equal(t, []float64{0, 1, 0.5}, mother.Genes)
	assert.Equal(t, []float64{1, 0, 0.5}, father.Genes)
}

// TestArithmeticCrossover_NoCrossover tests that the child copies one parent when crossover is skipped
func TestArithmeticCrossover_NoCrossover(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	mother := &Chromosome{Genes: []float64{0.1, 0.2}, MinValues: []float64{0, 0}, MaxValues: []float64{1, 1}}
	father := &Chromosome{Genes: []float64{0.7, 0.8}, MinValues: []float64{0, 0}, MaxValues: []float64{1, 1}}

	sawMother, sawFather := false, false
	for i := 0; i < 50; i++ {
		child := ArithmeticCrossover(mother, father, 0.0, rng)
		switch child.Genes[0] {
		case 0.1:
			sawMother = true
			assert.Equal(t, mother.Genes, child.Genes)
		case 0.7:
			sawFather = true
			assert.Equal(t, father.Genes, child.Genes)
		default:
			t.Fatalf("unexpected blended gene %v", child.Genes[0])
		}
		child.Genes[1] = 9
	}
	assert.True(t, sawMother)
	assert.True(t, sawFather)
	assert.Equal(t, 0.2, mother.Genes[1])
	assert.Equal(t, 0.8, father.Genes[1])
}

// TestResetMutation tests the mutation rate extremes
func TestResetMutation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := &Chromosome{
		Genes:     []float64{5, 5, 5, 5},
		MinValues: []float64{0, 0, 0, 0},
		MaxValues: []float64{1, 1, 1, 1},
		Fitness:   2,
	}

	ResetMutation(c, 0.0, rng)
	assert.Equal(t, []float64{5, 5, 5, 5}, c.Genes)

	ResetMutation(c, 1.0, rng)
	assert.True(t, c.InBounds())
	assert.Equal(t, 2.0, c.Fitness)
}
