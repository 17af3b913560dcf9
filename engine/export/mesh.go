// Package export turns selected blocks into meshes and preview images.
package export

import (
	"go.uber.org/zap"

	"github.com/memmaker/voxedit/engine/geom"
	"github.com/memmaker/voxedit/engine/region"
	"github.com/memmaker/voxedit/engine/util"
	"github.com/memmaker/voxedit/engine/voxel"
)

type FaceType int32

const (
	XP FaceType = iota
	XN
	YP
	YN
	ZP
	ZN
)

var faceDirections = [6]geom.Vector{
	XP: {X: 1}, XN: {X: -1},
	YP: {Y: 1}, YN: {Y: -1},
	ZP: {Z: 1}, ZN: {Z: -1},
}

// faceCorners lists the unit cube corners of each face counter clockwise
// seen from outside.
var faceCorners = [6][4][3]float32{
	XP: {{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}},
	XN: {{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
	YP: {{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}},
	YN: {{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
	ZP: {{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}},
	ZN: {{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}},
}

// MeshBuffer is an indexed triangle mesh with one normal and color per
// vertex.
type MeshBuffer struct {
	Positions [][3]float32
	Normals   [][3]float32
	Colors    [][4]uint8
	Indices   []uint32
}

func (m *MeshBuffer) TriangleCount() int {
	return len(m.Indices) / 3
}

func (m *MeshBuffer) IsEmpty() bool {
	return len(m.Indices) == 0
}

// AppendQuad adds the face of the block at pos as two triangles.
func (m *MeshBuffer) AppendQuad(pos [3]float32, side FaceType, color [4]uint8) {
	base := uint32(len(m.Positions))
	dir := faceDirections[side]
	normal := [3]float32{float32(dir.X), float32(dir.Y), float32(dir.Z)}
	for _, corner := range faceCorners[side] {
		m.Positions = append(m.Positions, [3]float32{pos[0] + corner[0], pos[1] + corner[1], pos[2] + corner[2]})
		m.Normals = append(m.Normals, normal)
		m.Colors = append(m.Colors, color)
	}
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}

// ColorFunc picks the vertex color of a block.
type ColorFunc func(block voxel.Block) [4]uint8

// DefaultColors gives the known block types fixed colors and spreads all
// other ids over a hue wheel.
func DefaultColors(block voxel.Block) [4]uint8 {
	switch block.ID {
	case voxel.STONE:
		return [4]uint8{125, 125, 125, 255}
	case voxel.GRASS:
		return [4]uint8{95, 159, 53, 255}
	case voxel.DIRT:
		return [4]uint8{134, 96, 67, 255}
	case voxel.BEDROCK:
		return [4]uint8{40, 40, 40, 255}
	case voxel.WATER:
		return [4]uint8{47, 67, 244, 180}
	case voxel.SAND:
		return [4]uint8{219, 207, 163, 255}
	case voxel.GLASS:
		return [4]uint8{200, 230, 240, 100}
	}
	hue := float64((block.ID*47+block.Data*13)%360) / 360
	r, g, b := hueToRGB(hue)
	return [4]uint8{r, g, b, 255}
}

func hueToRGB(hue float64) (uint8, uint8, uint8) {
	channel := func(offset float64) uint8 {
		h := hue + offset
		h -= float64(int(h))
		var v float64
		switch {
		case h < 1.0/6:
			v = 6 * h
		case h < 0.5:
			v = 1
		case h < 2.0/3:
			v = (2.0/3 - h) * 6
		}
		return uint8(util.Clamp(v, 0, 1) * 255)
	}
	return channel(1.0 / 3), channel(0), channel(2.0 / 3)
}

// BuildMesh emits every block face inside r that borders air or the
// outside of r. Positions are relative to the minimum point of r.
func BuildMesh(extent voxel.BlockReader, r region.Region, colors ColorFunc) *MeshBuffer {
	if colors == nil {
		colors = DefaultColors
	}
	origin := r.GetMinimumPoint()
	mesh := &MeshBuffer{}
	r.Iterate(func(pt geom.Vector) bool {
		block := extent.GetBlock(pt)
		if block.IsAir() {
			return true
		}
		local := pt.Subtract(origin)
		pos := [3]float32{float32(local.X), float32(local.Y), float32(local.Z)}
		for side, dir := range faceDirections {
			neighbour := pt.Add(dir)
			if r.Contains(neighbour) && !extent.GetBlock(neighbour).IsAir() {
				continue
			}
			mesh.AppendQuad(pos, FaceType(side), colors(block))
		}
		return true
	})
	util.LogIOInfo("built mesh", zap.Int("triangles", mesh.TriangleCount()), zap.Int("vertices", len(mesh.Positions)))
	return mesh
}
