// Package region describes sets of voxels by geometric containment and
// the selectors that build them from user clicks.
package region

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/memmaker/voxedit/engine/geom"
)

var (
	ErrIncompleteRegion  = errors.New("region selection is incomplete")
	ErrInvertedRange     = errors.New("minimum height is above maximum height")
	ErrSelectionComplete = errors.New("selection is already complete")
)

// WorldBounds is the part of a world a selector needs: its identity and
// the highest valid block Y.
type WorldBounds interface {
	GetID() uuid.UUID
	MaxHeight() int
}

// Region is an immutable set of voxels in exactly one world.
type Region interface {
	GetWorld() uuid.UUID
	GetMinimumPoint() geom.Vector
	GetMaximumPoint() geom.Vector
	// GetArea is the horizontal footprint in blocks.
	GetArea() int
	GetVolume() int
	GetWidth() int
	GetHeight() int
	GetLength() int
	Contains(pt geom.Vector) bool
	// Iterate calls fn for every contained block position inside the
	// bounding box, X outermost. Returning false from fn stops iteration.
	Iterate(fn func(pt geom.Vector) bool)
}

// Selector accumulates points into a Region.
type Selector interface {
	AddPoint(pt geom.Vector) error
	SetComplete()
	IsComplete() bool
	GetRegion() (Region, error)
	GetIncompleteRegion() Region
	Clear()
}

func iterateBox(r Region, fn func(pt geom.Vector) bool) {
	lo, hi := r.GetMinimumPoint(), r.GetMaximumPoint()
	for x := lo.BlockX(); x <= hi.BlockX(); x++ {
		for y := lo.BlockY(); y <= hi.BlockY(); y++ {
			for z := lo.BlockZ(); z <= hi.BlockZ(); z++ {
				pt := geom.NewBlockVector(x, y, z)
				if !r.Contains(pt) {
					continue
				}
				if !fn(pt) {
					return
				}
			}
		}
	}
}
