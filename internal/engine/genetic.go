package engine

import (
	"math/rand"
	"sort"

	"github.com/wajenzi/fundicut/internal/model"
)

// GeneticConfig holds parameters for the placement-order search.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
	Seed           int64
}

// DefaultGeneticConfig returns sensible default parameters.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 40,
		Generations:    80,
		MutationRate:   0.15,
		TournamentSize: 3,
		EliteCount:     2,
		Seed:           42,
	}
}

// candidate is one member of the population: an order to offer pieces
// to the packer in, with the plan it decodes to.
type candidate struct {
	order []int
	plan  model.GlassCuttingPlan
}

// betterPlan ranks two plans: fewer sheets wins, and at equal sheet
// count the plan whose last sheet carries less piece area wins, since
// packing earlier sheets denser leaves a bigger reusable remnant.
func betterPlan(a, b *model.GlassCuttingPlan) bool {
	if a.TotalSheets != b.TotalSheets {
		return a.TotalSheets < b.TotalSheets
	}
	if a.TotalSheets == 0 {
		return false
	}
	return a.Sheets[a.TotalSheets-1].PieceAreaMM2 < b.Sheets[b.TotalSheets-1].PieceAreaMM2
}

// PackBest searches placement orders with a small genetic algorithm and
// returns the best plan found. The strip rules, rotation decisions and
// cut derivation are exactly Pack's; only the order pieces are offered
// in varies. The population is seeded with Pack's widest-first order,
// so the result never uses more sheets than Pack, and the random source
// is fixed so identical input yields an identical plan.
func (p *AreaPacker) PackBest(materialID string, pieces []model.LabeledPiece, config GeneticConfig) model.GlassCuttingPlan {
	expanded := expandAreaPieces(pieces)
	greedy := candidate{order: greedyOrder(expanded)}
	greedy.plan = p.packOrder(materialID, expanded, greedy.order)

	// Nothing to reorder with fewer than three pieces.
	if len(expanded) < 3 {
		return greedy.plan
	}

	config = scaleConfig(config, len(expanded))
	g := &geneticSearch{
		packer:     p,
		materialID: materialID,
		expanded:   expanded,
		config:     config,
		rng:        rand.New(rand.NewSource(config.Seed)),
	}
	best := g.run(greedy)

	if betterPlan(&greedy.plan, &best.plan) {
		return greedy.plan
	}
	return best.plan
}

// scaleConfig grows the search for larger piece counts.
func scaleConfig(config GeneticConfig, n int) GeneticConfig {
	if n > 20 {
		config.Generations = 120
	}
	if n > 50 {
		config.Generations = 160
		config.PopulationSize = 60
	}
	return config
}

// geneticSearch evolves piece orders for one material.
type geneticSearch struct {
	packer     *AreaPacker
	materialID string
	expanded   []areaPiece
	config     GeneticConfig
	rng        *rand.Rand
}

func (g *geneticSearch) run(greedy candidate) candidate {
	population := g.initPopulation(greedy)

	for gen := 0; gen < g.config.Generations; gen++ {
		sort.SliceStable(population, func(i, j int) bool {
			return betterPlan(&population[i].plan, &population[j].plan)
		})

		newPop := make([]candidate, 0, g.config.PopulationSize)

		// Elitism: the best orders survive unchanged.
		elite := g.config.EliteCount
		if elite > len(population) {
			elite = len(population)
		}
		for i := 0; i < elite; i++ {
			newPop = append(newPop, population[i])
		}

		for len(newPop) < g.config.PopulationSize {
			parent1 := g.tournamentSelect(population)
			parent2 := g.tournamentSelect(population)

			child := candidate{order: g.orderCrossover(parent1.order, parent2.order)}
			g.mutate(child.order)
			child.plan = g.decode(child.order)
			newPop = append(newPop, child)
		}

		population = newPop
	}

	sort.SliceStable(population, func(i, j int) bool {
		return betterPlan(&population[i].plan, &population[j].plan)
	})
	return population[0]
}

func (g *geneticSearch) decode(order []int) model.GlassCuttingPlan {
	return g.packer.packOrder(g.materialID, g.expanded, order)
}

// initPopulation seeds the greedy order plus random permutations.
func (g *geneticSearch) initPopulation(greedy candidate) []candidate {
	population := make([]candidate, g.config.PopulationSize)
	population[0] = greedy
	for i := 1; i < len(population); i++ {
		order := g.rng.Perm(len(g.expanded))
		population[i] = candidate{order: order, plan: g.decode(order)}
	}
	return population
}

// tournamentSelect picks the best of a random tournament.
func (g *geneticSearch) tournamentSelect(population []candidate) candidate {
	best := population[g.rng.Intn(len(population))]
	for i := 1; i < g.config.TournamentSize; i++ {
		c := population[g.rng.Intn(len(population))]
		if betterPlan(&c.plan, &best.plan) {
			best = c
		}
	}
	return best
}

// orderCrossover implements Order Crossover (OX1): the child keeps a
// random segment of parent1 and fills the rest with parent2's pieces in
// parent2's order.
func (g *geneticSearch) orderCrossover(parent1, parent2 []int) []int {
	n := len(parent1)
	if n <= 2 {
		child := make([]int, n)
		copy(child, parent1)
		return child
	}

	point1 := g.rng.Intn(n)
	point2 := g.rng.Intn(n)
	if point1 > point2 {
		point1, point2 = point2, point1
	}

	child := make([]int, n)
	inSegment := make(map[int]bool, point2-point1+1)
	for i := point1; i <= point2; i++ {
		child[i] = parent1[i]
		inSegment[parent1[i]] = true
	}

	childIdx := (point2 + 1) % n
	for _, idx := range parent2 {
		if !inSegment[idx] {
			child[childIdx] = idx
			childIdx = (childIdx + 1) % n
		}
	}
	return child
}

// mutate applies swap and segment-inversion mutations in place.
func (g *geneticSearch) mutate(order []int) {
	n := len(order)
	if n < 2 {
		return
	}

	if g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		order[i], order[j] = order[j], order[i]
	}

	if g.rng.Float64() < g.config.MutationRate*0.5 {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		if i > j {
			i, j = j, i
		}
		for i < j {
			order[i], order[j] = order[j], order[i]
			i++
			j--
		}
	}
}
