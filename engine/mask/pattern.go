package mask

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/memmaker/voxedit/engine/geom"
	"github.com/memmaker/voxedit/engine/voxel"
)

// Pattern supplies the replacement block for a position.
type Pattern interface {
	Next(pos geom.Vector) voxel.Block
}

type SingleBlockPattern struct {
	Block voxel.Block
}

func (p SingleBlockPattern) Next(geom.Vector) voxel.Block {
	return p.Block
}

type WeightedBlock struct {
	Block  voxel.Block
	Weight float64
}

// RandomFillPattern picks blocks by weight. It owns its random source and
// is not safe for concurrent use.
type RandomFillPattern struct {
	rng     *rand.Rand
	entries []WeightedBlock
	total   float64
}

func NewRandomFillPattern(rng *rand.Rand, entries ...WeightedBlock) (*RandomFillPattern, error) {
	if len(entries) == 0 {
		return nil, errors.New("random pattern needs at least one block")
	}
	p := &RandomFillPattern{rng: rng}
	for _, entry := range entries {
		if !(entry.Weight > 0) || math.IsInf(entry.Weight, 0) {
			return nil, errors.Errorf("weight %g for %s must be positive and finite", entry.Weight, entry.Block)
		}
		p.entries = append(p.entries, entry)
		p.total += entry.Weight
	}
	return p, nil
}

func (p *RandomFillPattern) Next(geom.Vector) voxel.Block {
	roll := p.rng.Float64() * p.total
	for _, entry := range p.entries {
		if roll < entry.Weight {
			return entry.Block
		}
		roll -= entry.Weight
	}
	return p.entries[len(p.entries)-1].Block
}
