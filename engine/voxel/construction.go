package voxel

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/memmaker/voxedit/engine/util"
)

// Amulet ".construction" files: an 8 byte magic, gzip compressed NBT
// sections, a gzip compressed NBT metadata block, the metadata offset as a
// big endian int32 and the magic again.
const constructionMagic = "constrct"

const (
	sectionIndexSize   = 23
	byteBlocksArray    = 7
	intBlocksArray     = 11
	constructionFooter = int64(len(constructionMagic) + 4)
)

type SectionBlockInfo struct {
	BlocksArrayType byte `nbt:"blocks_array_type"`
}

type ByteSection struct {
	BlockEntities []BlockEntity `nbt:"block_entities"`
	Blocks        []byte        `nbt:"blocks"`
}

type IntSection struct {
	BlockEntities []BlockEntity `nbt:"block_entities"`
	Blocks        []int32       `nbt:"blocks"`
}

type BlockEntity struct {
	Namespace string `nbt:"namespace"`
	Name      string `nbt:"base_name"`
	X         int32  `nbt:"x"`
	Y         int32  `nbt:"y"`
	Z         int32  `nbt:"z"`
}

type AmuletMetadata struct {
	SelectionBoxes    []int32 `nbt:"selection_boxes"`
	SectionIndexTable []byte  `nbt:"section_index_table"`
	SectionVersion    byte    `nbt:"section_version"`
	ExportVersion     struct {
		Edition string  `nbt:"edition"`
		Version []int32 `nbt:"version"`
	} `nbt:"export_version"`
	BlockPalette []*BlockDefinition `nbt:"block_palette"`
	CreatedWith  string             `nbt:"created_with"`
}

type BlockDefinition struct {
	Name       string         `nbt:"blockname"`
	NameSpace  string         `nbt:"namespace"`
	Properties map[string]any `nbt:"properties"`
}

func (d *BlockDefinition) FullName() string {
	if d.NameSpace == "" {
		return d.Name
	}
	return d.NameSpace + ":" + d.Name
}

type Construction struct {
	Sections []*ConstructionSection
}

type ConstructionSection struct {
	Blocks        []*BlockDefinition
	ShapeX        uint8
	ShapeY        uint8
	ShapeZ        uint8
	MinBlockX     int32
	MinBlockY     int32
	MinBlockZ     int32
	BlockEntities []BlockEntity
}

// SectionIndex is one 23 byte row of the section_index_table: min block
// position (3×int32), shape (3×uint8), data offset and length (2×uint32),
// little endian.
type SectionIndex struct {
	MinBlockX int32
	MinBlockY int32
	MinBlockZ int32
	ShapeX    uint8
	ShapeY    uint8
	ShapeZ    uint8
	Offset    uint32
	Size      uint32
}

func LoadConstruction(file io.ReadSeeker) (*Construction, error) {
	var magic [8]byte
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "seek construction start")
	}
	if err := binary.Read(file, binary.BigEndian, &magic); err != nil {
		return nil, errors.Wrap(ErrInvalidFormat, "read magic: "+err.Error())
	}
	if string(magic[:]) != constructionMagic {
		return nil, errors.Wrap(ErrInvalidFormat, "invalid construction magic")
	}

	fileSize, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, errors.Wrap(err, "seek construction end")
	}
	if fileSize < int64(len(constructionMagic))+constructionFooter {
		return nil, errors.Wrap(ErrInvalidFormat, "construction too short")
	}
	if _, err = file.Seek(-constructionFooter, io.SeekEnd); err != nil {
		return nil, errors.Wrap(err, "seek construction footer")
	}
	var metaDataOffset int32
	if err = binary.Read(file, binary.BigEndian, &metaDataOffset); err != nil {
		return nil, errors.Wrap(ErrInvalidFormat, "read metadata offset: "+err.Error())
	}
	if err = binary.Read(file, binary.BigEndian, &magic); err != nil || string(magic[:]) != constructionMagic {
		return nil, errors.Wrap(ErrInvalidFormat, "invalid construction footer magic")
	}
	metaDataEnd := fileSize - constructionFooter
	if int64(metaDataOffset) < int64(len(constructionMagic)) || int64(metaDataOffset) >= metaDataEnd {
		return nil, errors.Wrapf(ErrInvalidFormat, "metadata offset %d out of range", metaDataOffset)
	}

	var meta AmuletMetadata
	if err = decodeCompressedNBT(file, int64(metaDataOffset), metaDataEnd-int64(metaDataOffset), &meta); err != nil {
		return nil, errors.Wrap(err, "decode construction metadata")
	}

	sectionTable := decodeSectionTable(meta.SectionIndexTable)
	sections := make([]*ConstructionSection, len(sectionTable))
	for sIndex, section := range sectionTable {
		var blockType SectionBlockInfo
		if err = decodeCompressedNBT(file, int64(section.Offset), int64(section.Size), &blockType); err != nil {
			return nil, errors.Wrapf(err, "decode section %d", sIndex)
		}
		var blockEntities []BlockEntity
		var blocks []*BlockDefinition
		switch blockType.BlocksArrayType {
		case byteBlocksArray:
			var decoded ByteSection
			if err = decodeCompressedNBT(file, int64(section.Offset), int64(section.Size), &decoded); err != nil {
				return nil, errors.Wrapf(err, "decode section %d", sIndex)
			}
			blockEntities = decoded.BlockEntities
			blocks, err = decodeBlocks(decoded.Blocks, meta.BlockPalette)
		case intBlocksArray:
			var decoded IntSection
			if err = decodeCompressedNBT(file, int64(section.Offset), int64(section.Size), &decoded); err != nil {
				return nil, errors.Wrapf(err, "decode section %d", sIndex)
			}
			blockEntities = decoded.BlockEntities
			blocks, err = decodeBlocks(decoded.Blocks, meta.BlockPalette)
		default:
			err = errors.Wrapf(ErrInvalidFormat, "unknown blocks array type %d", blockType.BlocksArrayType)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "section %d", sIndex)
		}
		volume := int(section.ShapeX) * int(section.ShapeY) * int(section.ShapeZ)
		if len(blocks) != volume {
			return nil, errors.Wrapf(ErrInvalidFormat, "section %d has %d blocks, shape needs %d", sIndex, len(blocks), volume)
		}
		sections[sIndex] = &ConstructionSection{
			Blocks:        blocks,
			BlockEntities: blockEntities,
			ShapeX:        section.ShapeX,
			ShapeY:        section.ShapeY,
			ShapeZ:        section.ShapeZ,
			MinBlockX:     section.MinBlockX,
			MinBlockY:     section.MinBlockY,
			MinBlockZ:     section.MinBlockZ,
		}
	}
	util.LogIOInfo("loaded construction", zap.Int("sections", len(sections)), zap.String("created_with", meta.CreatedWith))
	return &Construction{Sections: sections}, nil
}

func decodeCompressedNBT(file io.ReadSeeker, offset, size int64, v any) error {
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return errors.Wrap(err, "seek")
	}
	gzipReader, err := gzip.NewReader(io.LimitReader(file, size))
	if err != nil {
		return errors.Wrap(ErrInvalidFormat, err.Error())
	}
	defer gzipReader.Close()
	gzipReader.Multistream(false)
	if _, err = nbt.NewDecoder(gzipReader).Decode(v); err != nil {
		return errors.Wrap(ErrInvalidFormat, err.Error())
	}
	return nil
}

func decodeBlocks[T int32 | byte](blocks []T, palette []*BlockDefinition) ([]*BlockDefinition, error) {
	result := make([]*BlockDefinition, len(blocks))
	for i, block := range blocks {
		index := int(block)
		if index < 0 || index >= len(palette) {
			return nil, errors.Wrapf(ErrInvalidFormat, "palette index %d out of range", index)
		}
		result[i] = palette[index]
	}
	return result, nil
}

func decodeSectionTable(table []byte) []SectionIndex {
	sectionCount := len(table) / sectionIndexSize
	sections := make([]SectionIndex, sectionCount)
	for i := 0; i < sectionCount; i++ {
		row := table[i*sectionIndexSize : (i+1)*sectionIndexSize]
		sections[i].MinBlockX = int32(binary.LittleEndian.Uint32(row[0:4]))
		sections[i].MinBlockY = int32(binary.LittleEndian.Uint32(row[4:8]))
		sections[i].MinBlockZ = int32(binary.LittleEndian.Uint32(row[8:12]))
		sections[i].ShapeX = row[12]
		sections[i].ShapeY = row[13]
		sections[i].ShapeZ = row[14]
		sections[i].Offset = binary.LittleEndian.Uint32(row[15:19])
		sections[i].Size = binary.LittleEndian.Uint32(row[19:23])
	}
	return sections
}

// NewMapFromConstruction lays a construction out in a new map with its
// minimum corner at the block origin.
func NewMapFromConstruction(registry *Registry, construction *Construction) (*Map, error) {
	if len(construction.Sections) == 0 {
		return nil, errors.Wrap(ErrInvalidFormat, "construction has no sections")
	}
	minX, minY, minZ := int32(math.MaxInt32), int32(math.MaxInt32), int32(math.MaxInt32)
	maxX, maxY, maxZ := int32(math.MinInt32), int32(math.MinInt32), int32(math.MinInt32)
	for _, section := range construction.Sections {
		minX = min(minX, section.MinBlockX)
		minY = min(minY, section.MinBlockY)
		minZ = min(minZ, section.MinBlockZ)
		maxX = max(maxX, section.MinBlockX+int32(section.ShapeX))
		maxY = max(maxY, section.MinBlockY+int32(section.ShapeY))
		maxZ = max(maxZ, section.MinBlockZ+int32(section.ShapeZ))
	}

	width := max(1, blocksToChunks(maxX-minX))
	height := max(1, blocksToChunks(maxY-minY))
	depth := max(1, blocksToChunks(maxZ-minZ))
	if area := int64(width) * int64(depth); area > MAX_MAP_CHUNKS || area*int64(height) > MAX_MAP_CHUNKS {
		return nil, errors.Wrapf(ErrInvalidFormat, "construction spans %dx%dx%d chunks", width, height, depth)
	}
	voxelMap := NewMap(width, height, depth)

	blockCounter := 0
	for _, section := range construction.Sections {
		blockIndex := 0
		for x := section.MinBlockX; x < section.MinBlockX+int32(section.ShapeX); x++ {
			for y := section.MinBlockY; y < section.MinBlockY+int32(section.ShapeY); y++ {
				for z := section.MinBlockZ; z < section.MinBlockZ+int32(section.ShapeZ); z++ {
					definition := section.Blocks[blockIndex]
					blockIndex++
					if definition == nil {
						continue
					}
					if voxelMap.SetGlobalBlock(x-minX, y-minY, z-minZ, registry.GetBlockByName(definition.FullName())) {
						blockCounter++
					}
				}
			}
		}
		for _, entity := range section.BlockEntities {
			voxelMap.SetGlobalBlock(entity.X-minX, entity.Y-minY, entity.Z-minZ,
				registry.GetBlockByName(entity.Namespace+":"+entity.Name))
		}
	}

	for name := range registry.UnknownBlocks {
		util.LogVoxelError("unknown block in construction", zap.String("name", name))
	}
	util.LogVoxelInfo("map from construction", zap.Int("blocks", blockCounter), zap.Stringer("world", voxelMap.GetID()))
	return voxelMap, nil
}
