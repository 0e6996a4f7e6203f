package progression

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"
)

// Generator builds random problems from a tier table.
// It is not safe for concurrent use; the session owns one.
type Generator struct {
	table *TierTable
	rng   *rand.Rand
}

// NewGenerator creates a Generator. A nil table means the embedded
// default; a nil src seeds from the clock.
func NewGenerator(table *TierTable, src rand.Source) *Generator {
	if table == nil {
		table = DefaultTierTable()
	}
	if src == nil {
		now := uint64(time.Now().UnixNano())
		src = rand.NewPCG(now, now>>32|1)
	}
	return &Generator{table: table, rng: rand.New(src)}
}

// NewSeededGenerator returns a Generator whose draws are fully
// determined by seed.
func NewSeededGenerator(table *TierTable, seed uint64) *Generator {
	return NewGenerator(table, rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Table returns the tier table the generator draws from.
func (g *Generator) Table() *TierTable {
	return g.table
}

// Generate draws a new problem for tier. The only failure is a tier
// missing from the table; generation never falls back to other bounds.
func (g *Generator) Generate(tier Tier) (*Problem, error) {
	cfg, err := g.table.Config(tier)
	if err != nil {
		return nil, err
	}

	kind := KindArithmetic
	if g.rng.IntN(2) == 1 {
		kind = KindGeometric
	}

	reason, band := g.drawReason(cfg.Bands(kind))
	start := float64((band.Start.Min + g.rng.IntN(band.Start.Max-band.Start.Min+1)) * band.Start.scale())

	hiddenCount := cfg.Hidden[g.rng.IntN(len(cfg.Hidden))]
	hidden := g.drawHidden(cfg.Length, hiddenCount)

	p, err := Build(kind, start, reason, cfg.Length, hidden)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", tier, err)
	}
	p.Tier = tier
	return p, nil
}

// drawReason picks uniformly among the candidates of all bands and
// returns the band the pick came from.
func (g *Generator) drawReason(bands []ReasonBand) (float64, ReasonBand) {
	total := 0
	for _, b := range bands {
		total += b.Reasons.Size()
	}
	n := g.rng.IntN(total)
	for _, b := range bands {
		if n < b.Reasons.Size() {
			return b.Reasons.At(n), b
		}
		n -= b.Reasons.Size()
	}
	// unreachable: n < total
	last := bands[len(bands)-1]
	return last.Reasons.At(last.Reasons.Size() - 1), last
}

// drawHidden samples count distinct indices from [1, length-1] and
// returns them sorted. Index 0 stays visible as the player's anchor.
func (g *Generator) drawHidden(length, count int) []int {
	perm := g.rng.Perm(length - 1)
	hidden := make([]int, count)
	for i := range hidden {
		hidden[i] = perm[i] + 1
	}
	slices.Sort(hidden)
	return hidden
}

// Sequence computes length terms starting at start. Each term after the
// first is the previous term plus (arithmetic) or times (geometric)
// reason, rounded with Round15.
func Sequence(kind Kind, start, reason float64, length int) []float64 {
	if length <= 0 {
		return nil
	}
	terms := make([]float64, length)
	terms[0] = start
	for i := 1; i < length; i++ {
		var next float64
		if kind == KindGeometric {
			next = terms[i-1] * reason
		} else {
			next = terms[i-1] + reason
		}
		terms[i] = Round15(next)
	}
	return terms
}

// Build assembles a problem from fixed parameters. Generate uses it after
// its random draws; tests and the preview command call it directly.
func Build(kind Kind, start, reason float64, length int, hidden []int) (*Problem, error) {
	if kind != KindArithmetic && kind != KindGeometric {
		return nil, fmt.Errorf("build problem: kind must be arithmetic or geometric")
	}
	if reason == 0 {
		return nil, fmt.Errorf("build problem: reason must not be zero")
	}
	if length < 2 {
		return nil, fmt.Errorf("build problem: length %d too short", length)
	}
	if len(hidden) == 0 || len(hidden) > length-1 {
		return nil, fmt.Errorf("build problem: %d hidden positions for length %d", len(hidden), length)
	}

	sorted := slices.Clone(hidden)
	slices.Sort(sorted)
	for i, h := range sorted {
		if h < 1 || h >= length {
			return nil, fmt.Errorf("build problem: hidden index %d outside [1, %d]", h, length-1)
		}
		if i > 0 && sorted[i-1] == h {
			return nil, fmt.Errorf("build problem: duplicate hidden index %d", h)
		}
	}

	full := Sequence(kind, start, reason, length)
	display := make([]Slot, length)
	next := 0
	for i, v := range full {
		if next < len(sorted) && sorted[next] == i {
			display[i] = Hidden()
			next++
			continue
		}
		display[i] = Visible(v)
	}

	return &Problem{
		Kind:    kind,
		Reason:  reason,
		Full:    full,
		Display: display,
		Hidden:  sorted,
	}, nil
}
