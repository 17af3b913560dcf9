package voxel

import "github.com/pkg/errors"

const (
	AIR     int = 0
	STONE   int = 1
	GRASS   int = 2
	DIRT    int = 3
	BEDROCK int = 7
	WATER   int = 9
	SAND    int = 12
	GLASS   int = 20
	WOOL    int = 35

	// DataWildcard in a Block's data value matches every data value of
	// that block type.
	DataWildcard int = -1
)

const (
	CHUNK_SIZE         int32 = 32
	CHUNK_SIZE_SQUARED int32 = CHUNK_SIZE * CHUNK_SIZE
	CHUNK_SIZE_CUBED   int32 = CHUNK_SIZE * CHUNK_SIZE * CHUNK_SIZE

	// MAX_MAP_CHUNKS bounds width*height*depth of a map.
	MAX_MAP_CHUNKS int64 = 1 << 20
)

var (
	ErrInvalidFormat = errors.New("invalid voxel data format")
	ErrOutOfBounds   = errors.New("position outside of map")
)
