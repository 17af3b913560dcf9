package voxel

import "github.com/memmaker/voxedit/engine/geom"

type Chunk struct {
	data      []Block
	chunkPosX int32
	chunkPosY int32
	chunkPosZ int32
	nonAir    int
}

func NewChunk(x, y, z int32) *Chunk {
	return &Chunk{
		data:      make([]Block, CHUNK_SIZE_CUBED),
		chunkPosX: x,
		chunkPosY: y,
		chunkPosZ: z,
	}
}

func blockIndex(i, j, k int32) int32 {
	return i + j*CHUNK_SIZE + k*CHUNK_SIZE_SQUARED
}

func (c *Chunk) Contains(x, y, z int32) bool {
	return x >= 0 && x < CHUNK_SIZE && y >= 0 && y < CHUNK_SIZE && z >= 0 && z < CHUNK_SIZE
}

func (c *Chunk) GetLocalBlock(i, j, k int32) (Block, bool) {
	if !c.Contains(i, j, k) {
		return Block{}, false
	}
	return c.data[blockIndex(i, j, k)], true
}

// SetBlock reports whether the stored value changed.
func (c *Chunk) SetBlock(x, y, z int32, block Block) bool {
	index := blockIndex(x, y, z)
	previous := c.data[index]
	if previous == block {
		return false
	}
	if previous.IsAir() {
		c.nonAir++
	} else if block.IsAir() {
		c.nonAir--
	}
	c.data[index] = block
	return true
}

func (c *Chunk) IsEmpty() bool {
	return c.nonAir == 0
}

func (c *Chunk) Position() Int3 {
	return Int3{c.chunkPosX, c.chunkPosY, c.chunkPosZ}
}

// Int3 is an integral grid coordinate, used for chunk positions and
// chunk-local block offsets.
type Int3 struct {
	X, Y, Z int32
}

func ToGridInt3(pos geom.Vector) Int3 {
	return Int3{int32(pos.BlockX()), int32(pos.BlockY()), int32(pos.BlockZ())}
}

func (i Int3) Add(other Int3) Int3 {
	return Int3{i.X + other.X, i.Y + other.Y, i.Z + other.Z}
}

func (i Int3) Sub(tr Int3) Int3 {
	return Int3{i.X - tr.X, i.Y - tr.Y, i.Z - tr.Z}
}

func (i Int3) Mul(factor int32) Int3 {
	i.X *= factor
	i.Y *= factor
	i.Z *= factor
	return i
}

func (i Int3) ToVector() geom.Vector {
	return geom.NewBlockVector(int(i.X), int(i.Y), int(i.Z))
}
