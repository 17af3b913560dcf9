package voxel

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/memmaker/voxedit/engine/geom"
	"github.com/memmaker/voxedit/engine/util"
)

// Map is an in-memory chunked world. It spans width×height×depth chunks
// starting at the block origin; reads outside of it return air and writes
// outside of it are ignored.
type Map struct {
	id     uuid.UUID
	chunks []*Chunk
	width  int32
	height int32
	depth  int32
}

func NewMap(width, height, depth int32) *Map {
	return NewMapWithID(uuid.New(), width, height, depth)
}

func NewMapWithID(id uuid.UUID, width, height, depth int32) *Map {
	m := &Map{
		id:     id,
		chunks: make([]*Chunk, width*height*depth),
		width:  width,
		height: height,
		depth:  depth,
	}
	util.LogVoxelDebug("created map",
		zap.Stringer("world", id),
		zap.String("chunks", fmt.Sprintf("%dx%dx%d", width, height, depth)))
	return m
}

func (m *Map) GetID() uuid.UUID {
	return m.id
}

// MaxHeight is the highest valid block Y coordinate.
func (m *Map) MaxHeight() int {
	return int(m.height*CHUNK_SIZE) - 1
}

// Size returns the map extent in blocks.
func (m *Map) Size() Int3 {
	return Int3{m.width * CHUNK_SIZE, m.height * CHUNK_SIZE, m.depth * CHUNK_SIZE}
}

func (m *Map) chunkIndex(x, y, z int32) int32 {
	return x + y*m.width + z*m.width*m.height
}

func (m *Map) GetChunk(x, y, z int32) *Chunk {
	if x < 0 || y < 0 || z < 0 || x >= m.width || y >= m.height || z >= m.depth {
		return nil
	}
	return m.chunks[m.chunkIndex(x, y, z)]
}

func (m *Map) SetChunk(x, y, z int32, c *Chunk) {
	m.chunks[m.chunkIndex(x, y, z)] = c
}

func (m *Map) ChunkExists(x, y, z int32) bool {
	return m.GetChunk(x, y, z) != nil
}

func (m *Map) Contains(x, y, z int32) bool {
	return x >= 0 && x < m.width*CHUNK_SIZE && y >= 0 && y < m.height*CHUNK_SIZE && z >= 0 && z < m.depth*CHUNK_SIZE
}

func (m *Map) ContainsGrid(position Int3) bool {
	return m.Contains(position.X, position.Y, position.Z)
}

func (m *Map) GetGlobalBlock(x, y, z int32) Block {
	if !m.Contains(x, y, z) {
		return NewAirBlock()
	}
	chunk := m.GetChunk(x/CHUNK_SIZE, y/CHUNK_SIZE, z/CHUNK_SIZE)
	if chunk == nil {
		return NewAirBlock()
	}
	block, _ := chunk.GetLocalBlock(x%CHUNK_SIZE, y%CHUNK_SIZE, z%CHUNK_SIZE)
	return block
}

// SetGlobalBlock creates the owning chunk on demand.
func (m *Map) SetGlobalBlock(x, y, z int32, block Block) bool {
	if !m.Contains(x, y, z) {
		return false
	}
	chunkX, chunkY, chunkZ := x/CHUNK_SIZE, y/CHUNK_SIZE, z/CHUNK_SIZE
	chunk := m.GetChunk(chunkX, chunkY, chunkZ)
	if chunk == nil {
		if block.IsAir() {
			return false
		}
		chunk = NewChunk(chunkX, chunkY, chunkZ)
		m.SetChunk(chunkX, chunkY, chunkZ, chunk)
	}
	return chunk.SetBlock(x%CHUNK_SIZE, y%CHUNK_SIZE, z%CHUNK_SIZE, block)
}

func (m *Map) GetBlock(pos geom.Vector) Block {
	grid := ToGridInt3(pos)
	return m.GetGlobalBlock(grid.X, grid.Y, grid.Z)
}

func (m *Map) GetBlockType(pos geom.Vector) int {
	return m.GetBlock(pos).ID
}

func (m *Map) SetBlock(pos geom.Vector, block Block) bool {
	grid := ToGridInt3(pos)
	return m.SetGlobalBlock(grid.X, grid.Y, grid.Z, block)
}

func (m *Map) IsSolidBlockAt(x, y, z int32) bool {
	return !m.GetGlobalBlock(x, y, z).IsAir()
}

// Fill sets every block in the inclusive box between min and max.
func (m *Map) Fill(min, max geom.Vector, block Block) int {
	lo, hi := ToGridInt3(geom.GetMinimum(min, max)), ToGridInt3(geom.GetMaximum(min, max))
	changed := 0
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for z := lo.Z; z <= hi.Z; z++ {
				if m.SetGlobalBlock(x, y, z, block) {
					changed++
				}
			}
		}
	}
	return changed
}

func (m *Map) SetFloorAtHeight(yLevel int, block Block) {
	size := m.Size()
	for x := int32(0); x < size.X; x++ {
		for z := int32(0); z < size.Z; z++ {
			m.SetGlobalBlock(x, int32(yLevel), z, block)
		}
	}
}

// CountBlocks counts voxels of the given type. Unallocated chunks are
// skipped, so counting air only covers allocated chunks.
func (m *Map) CountBlocks(id int) int {
	count := 0
	for _, chunk := range m.chunks {
		if chunk == nil {
			continue
		}
		for _, block := range chunk.data {
			if block.ID == id {
				count++
			}
		}
	}
	return count
}

// PrintArea2D renders one horizontal layer, '#' for solid blocks.
func (m *Map) PrintArea2D(y int32, maxX, maxZ int32) string {
	out := make([]byte, 0, (maxX+1)*maxZ)
	for z := int32(0); z < maxZ; z++ {
		for x := int32(0); x < maxX; x++ {
			if m.IsSolidBlockAt(x, y, z) {
				out = append(out, '#')
			} else {
				out = append(out, ' ')
			}
		}
		out = append(out, '\n')
	}
	return string(out)
}

func blocksToChunks(blocks int32) int32 {
	return int32(math.Ceil(float64(blocks) / float64(CHUNK_SIZE)))
}
