package clipboard

import (
	"io"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/memmaker/voxedit/engine/geom"
	"github.com/memmaker/voxedit/engine/util"
	"github.com/memmaker/voxedit/engine/voxel"
)

var ErrInvalidSchematic = errors.New("invalid schematic")

const (
	schematicRoot      = "Schematic"
	schematicMaterials = "Alpha"
	maxSchematicID     = 0xFFF
	maxSchematicSide   = 0x7FFF
)

// schematic is the MCEdit layout: blocks indexed y, then z, then x, with
// the upper four id bits packed two per byte in AddBlocks.
type schematic struct {
	Width     int16  `nbt:"Width"`
	Height    int16  `nbt:"Height"`
	Length    int16  `nbt:"Length"`
	Materials string `nbt:"Materials"`
	Blocks    []byte `nbt:"Blocks"`
	AddBlocks []byte `nbt:"AddBlocks"`
	Data      []byte `nbt:"Data"`
	OffsetX   int32  `nbt:"WEOffsetX"`
	OffsetY   int32  `nbt:"WEOffsetY"`
	OffsetZ   int32  `nbt:"WEOffsetZ"`
}

func (s *schematic) index(x, y, z int) int {
	return (y*int(s.Length)+z)*int(s.Width) + x
}

// WriteSchematic stores the clipboard's bounding box as a gzip compressed
// NBT schematic. Positions without an entry are written as air.
func WriteSchematic(w io.Writer, c *Clipboard) error {
	lo, hi := c.Bounds()
	size := hi.Subtract(lo).AddXYZ(1, 1, 1)
	if c.Len() == 0 {
		size = geom.Zero
	}
	if size.X > maxSchematicSide || size.Y > maxSchematicSide || size.Z > maxSchematicSide {
		return errors.Wrapf(ErrInvalidSchematic, "clipboard too large: %s", size)
	}
	s := schematic{
		Width:     int16(size.X),
		Height:    int16(size.Y),
		Length:    int16(size.Z),
		Materials: schematicMaterials,
		OffsetX:   int32(lo.X),
		OffsetY:   int32(lo.Y),
		OffsetZ:   int32(lo.Z),
	}
	volume := int(size.X) * int(size.Y) * int(size.Z)
	s.Blocks = make([]byte, volume)
	s.Data = make([]byte, volume)
	var addBlocks []byte
	for _, entry := range c.entries {
		block := entry.Block
		if block.ID < 0 || block.ID > maxSchematicID || block.Data < 0 || block.Data > 0xFF {
			return errors.Wrapf(ErrInvalidSchematic, "block %s cannot be stored", block)
		}
		local := entry.Offset.Subtract(lo)
		i := s.index(local.BlockX(), local.BlockY(), local.BlockZ())
		s.Blocks[i] = byte(block.ID)
		s.Data[i] = byte(block.Data)
		if block.ID > 0xFF {
			if addBlocks == nil {
				addBlocks = make([]byte, (volume>>1)+1)
			}
			if i&1 == 0 {
				addBlocks[i>>1] |= byte(block.ID>>8) & 0x0F
			} else {
				addBlocks[i>>1] |= byte(block.ID>>4) & 0xF0
			}
		}
	}
	s.AddBlocks = addBlocks

	gzipWriter := gzip.NewWriter(w)
	if err := nbt.NewEncoder(gzipWriter).Encode(s, schematicRoot); err != nil {
		return errors.Wrap(err, "encode schematic")
	}
	if err := gzipWriter.Close(); err != nil {
		return errors.Wrap(err, "close schematic")
	}
	util.LogIOInfo("wrote schematic", zap.Int("blocks", c.Len()), zap.Stringer("size", size))
	return nil
}

// ReadSchematic loads every block of a schematic, air included.
func ReadSchematic(r io.Reader) (*Clipboard, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidSchematic, err.Error())
	}
	defer gzipReader.Close()

	var s schematic
	root, err := nbt.NewDecoder(gzipReader).Decode(&s)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidSchematic, err.Error())
	}
	if root != schematicRoot {
		return nil, errors.Wrapf(ErrInvalidSchematic, "root tag %q", root)
	}
	if s.Materials != schematicMaterials {
		return nil, errors.Wrapf(ErrInvalidSchematic, "unsupported materials %q", s.Materials)
	}
	if s.Width < 0 || s.Height < 0 || s.Length < 0 {
		return nil, errors.Wrapf(ErrInvalidSchematic, "negative size %dx%dx%d", s.Width, s.Height, s.Length)
	}
	volume := int(s.Width) * int(s.Height) * int(s.Length)
	if len(s.Blocks) != volume || len(s.Data) != volume {
		return nil, errors.Wrapf(ErrInvalidSchematic, "expected %d blocks, got %d ids and %d data values", volume, len(s.Blocks), len(s.Data))
	}

	offset := geom.NewBlockVector(int(s.OffsetX), int(s.OffsetY), int(s.OffsetZ))
	entries := make([]Entry, 0, volume)
	for y := 0; y < int(s.Height); y++ {
		for z := 0; z < int(s.Length); z++ {
			for x := 0; x < int(s.Width); x++ {
				i := s.index(x, y, z)
				id := int(s.Blocks[i])
				if i>>1 < len(s.AddBlocks) {
					if i&1 == 0 {
						id += int(s.AddBlocks[i>>1]&0x0F) << 8
					} else {
						id += int(s.AddBlocks[i>>1]&0xF0) << 4
					}
				}
				entries = append(entries, Entry{
					Offset: offset.AddXYZ(float64(x), float64(y), float64(z)),
					Block:  voxel.NewBlockWithData(id, int(s.Data[i])),
				})
			}
		}
	}
	util.LogIOInfo("read schematic", zap.Int("blocks", len(entries)))
	return FromEntries(entries), nil
}
