package voxel

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/memmaker/voxedit/engine/util"
)

var mapMagic = [4]byte{'V', 'X', 'M', 'P'}

const (
	mapFormatVersion byte = 1
	bytesPerBlock         = 3
)

type mapHeader struct {
	Magic      [4]byte
	Version    byte
	World      [16]byte
	Width      int32
	Height     int32
	Depth      int32
	ChunkCount int32
}

// SaveTo writes the map as a gzip compressed binary stream. Only chunks
// holding at least one non-air block are written.
func (m *Map) SaveTo(w io.Writer) error {
	gzipWriter := gzip.NewWriter(w)

	chunks := make([]*Chunk, 0, len(m.chunks))
	for _, chunk := range m.chunks {
		if chunk != nil && !chunk.IsEmpty() {
			chunks = append(chunks, chunk)
		}
	}

	header := mapHeader{
		Magic:      mapMagic,
		Version:    mapFormatVersion,
		World:      m.id,
		Width:      m.width,
		Height:     m.height,
		Depth:      m.depth,
		ChunkCount: int32(len(chunks)),
	}
	if err := binary.Write(gzipWriter, binary.LittleEndian, header); err != nil {
		return errors.Wrap(err, "write map header")
	}

	buf := make([]byte, CHUNK_SIZE_CUBED*bytesPerBlock)
	for _, chunk := range chunks {
		pos := chunk.Position()
		if err := binary.Write(gzipWriter, binary.LittleEndian, [3]int32{pos.X, pos.Y, pos.Z}); err != nil {
			return errors.Wrap(err, "write chunk position")
		}
		for i, block := range chunk.data {
			if block.ID < 0 || block.ID > 0xFFFF || block.Data < 0 || block.Data > 0xFF {
				return errors.Wrapf(ErrInvalidFormat, "block %s cannot be stored", block)
			}
			binary.LittleEndian.PutUint16(buf[i*bytesPerBlock:], uint16(block.ID))
			buf[i*bytesPerBlock+2] = byte(block.Data)
		}
		if _, err := gzipWriter.Write(buf); err != nil {
			return errors.Wrap(err, "write chunk blocks")
		}
	}
	util.LogIOInfo("saved map", zap.Stringer("world", m.id), zap.Int("chunks", len(chunks)))
	return gzipWriter.Close()
}

func LoadMap(r io.Reader) (*Map, error) {
	gzipReader, err := gzip.NewReader(bufio.NewReader(r))
	if err != nil {
		return nil, errors.Wrap(ErrInvalidFormat, err.Error())
	}
	defer gzipReader.Close()

	var header mapHeader
	if err := binary.Read(gzipReader, binary.LittleEndian, &header); err != nil {
		return nil, errors.Wrap(ErrInvalidFormat, "read map header: "+err.Error())
	}
	if header.Magic != mapMagic {
		return nil, errors.Wrap(ErrInvalidFormat, "bad magic")
	}
	if header.Version != mapFormatVersion {
		return nil, errors.Wrapf(ErrInvalidFormat, "unsupported version %d", header.Version)
	}
	if header.Width <= 0 || header.Height <= 0 || header.Depth <= 0 {
		return nil, errors.Wrapf(ErrInvalidFormat, "bad dimensions %dx%dx%d", header.Width, header.Height, header.Depth)
	}
	columns := int64(header.Width) * int64(header.Depth)
	chunkSlots := columns * int64(header.Height)
	if columns > MAX_MAP_CHUNKS || int64(header.Height) > MAX_MAP_CHUNKS || chunkSlots > MAX_MAP_CHUNKS {
		return nil, errors.Wrapf(ErrInvalidFormat, "%dx%dx%d chunks exceed the limit of %d", header.Width, header.Height, header.Depth, MAX_MAP_CHUNKS)
	}
	if header.ChunkCount < 0 || int64(header.ChunkCount) > chunkSlots {
		return nil, errors.Wrapf(ErrInvalidFormat, "bad chunk count %d", header.ChunkCount)
	}

	m := NewMapWithID(uuid.UUID(header.World), header.Width, header.Height, header.Depth)
	buf := make([]byte, CHUNK_SIZE_CUBED*bytesPerBlock)
	for i := int32(0); i < header.ChunkCount; i++ {
		var pos [3]int32
		if err := binary.Read(gzipReader, binary.LittleEndian, &pos); err != nil {
			return nil, errors.Wrap(ErrInvalidFormat, "read chunk position: "+err.Error())
		}
		if !m.ContainsGrid(Int3{pos[0], pos[1], pos[2]}.Mul(CHUNK_SIZE)) {
			return nil, errors.Wrapf(ErrOutOfBounds, "chunk %v", pos)
		}
		if _, err := io.ReadFull(gzipReader, buf); err != nil {
			return nil, errors.Wrap(ErrInvalidFormat, "read chunk blocks: "+err.Error())
		}
		chunk := NewChunk(pos[0], pos[1], pos[2])
		for j := int32(0); j < CHUNK_SIZE_CUBED; j++ {
			block := Block{
				ID:   int(binary.LittleEndian.Uint16(buf[j*bytesPerBlock:])),
				Data: int(buf[j*bytesPerBlock+2]),
			}
			chunk.data[j] = block
			if !block.IsAir() {
				chunk.nonAir++
			}
		}
		m.SetChunk(pos[0], pos[1], pos[2], chunk)
	}
	util.LogIOInfo("loaded map", zap.Stringer("world", m.id), zap.Int32("chunks", header.ChunkCount))
	return m, nil
}
