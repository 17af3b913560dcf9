// Package clipboard copies blocks out of a region, transforms them and
// pastes them back through an edit session.
package clipboard

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/memmaker/voxedit/engine/edit"
	"github.com/memmaker/voxedit/engine/geom"
	"github.com/memmaker/voxedit/engine/region"
	"github.com/memmaker/voxedit/engine/util"
	"github.com/memmaker/voxedit/engine/voxel"
)

// Entry is one copied block at an offset from the copy origin.
type Entry struct {
	Offset geom.Vector
	Block  voxel.Block
}

// Clipboard is an ordered set of blocks relative to an origin. Offsets
// are unique block positions.
type Clipboard struct {
	entries []Entry
	index   map[geom.Vector]int
}

// Copy snapshots every block r contains, air included, relative to origin
// floored onto the block grid.
func Copy(extent voxel.BlockReader, r region.Region, origin geom.Vector) *Clipboard {
	origin = origin.ToBlockPoint()
	var entries []Entry
	r.Iterate(func(pt geom.Vector) bool {
		entries = append(entries, Entry{Offset: pt.Subtract(origin), Block: extent.GetBlock(pt)})
		return true
	})
	c := FromEntries(entries)
	util.LogClipboardInfo("copied region", zap.Int("blocks", len(c.entries)), zap.Stringer("origin", origin))
	return c
}

// FromEntries builds a clipboard from offsets, flooring them. A later
// entry replaces an earlier one at the same position.
func FromEntries(entries []Entry) *Clipboard {
	c := &Clipboard{}
	c.setEntries(entries)
	return c
}

func (c *Clipboard) setEntries(entries []Entry) {
	c.index = make(map[geom.Vector]int, len(entries))
	c.entries = make([]Entry, 0, len(entries))
	for _, entry := range entries {
		entry.Offset = entry.Offset.ToBlockPoint()
		if i, seen := c.index[entry.Offset]; seen {
			c.entries[i] = entry
			continue
		}
		c.index[entry.Offset] = len(c.entries)
		c.entries = append(c.entries, entry)
	}
}

// Entries returns a copy of the clipboard contents.
func (c *Clipboard) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

func (c *Clipboard) Len() int {
	return len(c.entries)
}

// Bounds returns the minimum and maximum offsets. Both are zero for an
// empty clipboard.
func (c *Clipboard) Bounds() (geom.Vector, geom.Vector) {
	if len(c.entries) == 0 {
		return geom.Zero, geom.Zero
	}
	lo, hi := c.entries[0].Offset, c.entries[0].Offset
	for _, entry := range c.entries[1:] {
		lo = geom.GetMinimum(lo, entry.Offset)
		hi = geom.GetMaximum(hi, entry.Offset)
	}
	return lo, hi
}

// GetBlock reads the clipboard like a world: offsets are positions and
// missing positions are air.
func (c *Clipboard) GetBlock(pos geom.Vector) voxel.Block {
	if i, ok := c.index[pos.ToBlockPoint()]; ok {
		return c.entries[i].Block
	}
	return voxel.NewAirBlock()
}

func (c *Clipboard) GetBlockType(pos geom.Vector) int {
	return c.GetBlock(pos).ID
}

// Transform returns a copy with every offset mapped through t and snapped
// to the block grid by rounding half up.
func (c *Clipboard) Transform(t geom.Transform) *Clipboard {
	moved := make([]Entry, len(c.entries))
	for i, entry := range c.entries {
		moved[i] = Entry{Offset: t.Apply(entry.Offset).Round(), Block: entry.Block}
	}
	return FromEntries(moved)
}

// Rotate turns the clipboard around its origin.
func (c *Clipboard) Rotate(degrees float64, axis geom.Vector) (*Clipboard, error) {
	rotation, err := geom.RotationQuaternion(degrees, axis)
	if err != nil {
		return nil, errors.Wrap(err, "rotate clipboard")
	}
	return c.Transform(geom.RotationAround{Rotation: rotation, Center: geom.Zero}), nil
}

// Paste writes the clipboard with its origin at to. It stops at the first
// session error and returns the changes made up to then.
func (c *Clipboard) Paste(session *edit.Session, to geom.Vector, skipAir bool) (int, error) {
	to = to.ToBlockPoint()
	changed := 0
	for _, entry := range c.entries {
		if skipAir && entry.Block.IsAir() {
			continue
		}
		ok, err := session.SetBlock(to.Add(entry.Offset), entry.Block)
		if err != nil {
			return changed, errors.Wrapf(err, "paste at %s", to)
		}
		if ok {
			changed++
		}
	}
	util.LogClipboardDebug("pasted clipboard", zap.Stringer("to", to), zap.Int("changed", changed))
	return changed, nil
}
