package voxel

import "fmt"

// Block is a voxel value: a type id and a secondary data value.
type Block struct {
	ID   int
	Data int
}

func NewBlock(id int) Block {
	return Block{ID: id}
}

func NewBlockWithData(id, data int) Block {
	return Block{ID: id, Data: data}
}

func NewAirBlock() Block {
	return Block{ID: AIR}
}

func (b Block) IsAir() bool {
	return b.ID == AIR
}

// AnyData returns the wildcard form of b, matching every data value.
func (b Block) AnyData() Block {
	return Block{ID: b.ID, Data: DataWildcard}
}

func (b Block) HasWildcardData() bool {
	return b.Data == DataWildcard
}

func (b Block) String() string {
	if b.HasWildcardData() {
		return fmt.Sprintf("%d:*", b.ID)
	}
	return fmt.Sprintf("%d:%d", b.ID, b.Data)
}
