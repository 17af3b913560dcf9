package voxel

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"

	"github.com/memmaker/voxedit/engine/geom"
)

func TestMapGetSetBlock(t *testing.T) {
	m := NewMap(2, 1, 2)
	pos := geom.NewVector(33.7, 4.2, 10.9)
	if !m.GetBlock(pos).IsAir() {
		t.Fatalf("new map should be air at %s", pos)
	}
	if !m.SetBlock(pos, NewBlockWithData(WOOL, 14)) {
		t.Fatalf("SetBlock reported no change")
	}
	if m.SetBlock(geom.NewBlockVector(33, 4, 10), NewBlockWithData(WOOL, 14)) {
		t.Fatalf("setting an identical block reported a change")
	}
	if got := m.GetBlock(geom.NewBlockVector(33, 4, 10)); got != NewBlockWithData(WOOL, 14) {
		t.Fatalf("got %s, want 35:14", got)
	}
	if m.GetBlockType(pos) != WOOL {
		t.Fatalf("GetBlockType=%d", m.GetBlockType(pos))
	}
	if m.MaxHeight() != 31 {
		t.Fatalf("MaxHeight=%d", m.MaxHeight())
	}
}

func TestMapOutOfBounds(t *testing.T) {
	m := NewMap(1, 1, 1)
	for _, pos := range []geom.Vector{
		geom.NewBlockVector(-1, 0, 0),
		geom.NewBlockVector(0, 32, 0),
		geom.NewBlockVector(0, 0, 40),
	} {
		if m.SetBlock(pos, NewBlock(STONE)) {
			t.Fatalf("write outside of the map at %s succeeded", pos)
		}
		if !m.GetBlock(pos).IsAir() {
			t.Fatalf("read outside of the map at %s is not air", pos)
		}
	}
	if m.SetBlock(geom.NewBlockVector(1, 1, 1), NewAirBlock()) {
		t.Fatalf("writing air into an empty chunk reported a change")
	}
	if m.ChunkExists(0, 0, 0) {
		t.Fatalf("air write allocated a chunk")
	}
}

func TestMapFillAndCount(t *testing.T) {
	m := NewMap(2, 1, 1)
	n := m.Fill(geom.NewBlockVector(30, 0, 0), geom.NewBlockVector(33, 1, 1), NewBlock(STONE))
	if n != 16 {
		t.Fatalf("Fill changed %d blocks, want 16", n)
	}
	if got := m.CountBlocks(STONE); got != 16 {
		t.Fatalf("CountBlocks=%d", got)
	}
	if n := m.Fill(geom.NewBlockVector(33, 1, 1), geom.NewBlockVector(30, 0, 0), NewBlock(STONE)); n != 0 {
		t.Fatalf("refill changed %d blocks", n)
	}
	layer := m.PrintArea2D(0, 4, 2)
	if layer != "    \n    \n" {
		t.Fatalf("unexpected layer %q", layer)
	}
}

func TestMapSaveLoad(t *testing.T) {
	m := NewMap(2, 2, 1)
	m.SetBlock(geom.NewBlockVector(1, 2, 3), NewBlockWithData(WOOL, 5))
	m.SetBlock(geom.NewBlockVector(40, 40, 20), NewBlock(BEDROCK))
	m.SetBlock(geom.NewBlockVector(0, 33, 0), NewBlock(STONE))
	m.SetBlock(geom.NewBlockVector(0, 33, 0), NewAirBlock())

	var buf bytes.Buffer
	if err := m.SaveTo(&buf); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	loaded, err := LoadMap(&buf)
	if err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	if loaded.GetID() != m.GetID() {
		t.Fatalf("world id changed: %s != %s", loaded.GetID(), m.GetID())
	}
	if loaded.Size() != m.Size() {
		t.Fatalf("size changed: %v != %v", loaded.Size(), m.Size())
	}
	if got := loaded.GetBlock(geom.NewBlockVector(1, 2, 3)); got != NewBlockWithData(WOOL, 5) {
		t.Fatalf("got %s", got)
	}
	if got := loaded.GetBlockType(geom.NewBlockVector(40, 40, 20)); got != BEDROCK {
		t.Fatalf("got %d", got)
	}
	if loaded.ChunkExists(0, 1, 0) {
		t.Fatalf("empty chunk was written")
	}
}

func TestLoadMapRejectsGarbage(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write([]byte("NOPE and some more bytes to fill the header......"))
	_ = gz.Close()
	if _, err := LoadMap(&buf); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
	if _, err := LoadMap(bytes.NewReader([]byte("not gzip"))); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat for plain bytes, got %v", err)
	}
}

func TestLoadMapRejectsHugeDimensions(t *testing.T) {
	cases := []struct {
		name                 string
		width, height, depth int32
		chunks               int32
	}{
		{"over the chunk limit", 1290, 1290, 1290, 0},
		{"product overflows int32", 2048, 2048, 1024, 1},
		{"int64 overflow", math.MaxInt32, math.MaxInt32, math.MaxInt32, 1},
		{"more chunks than slots", 2, 2, 2, 9},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		header := mapHeader{Magic: mapMagic, Version: mapFormatVersion,
			Width: c.width, Height: c.height, Depth: c.depth, ChunkCount: c.chunks}
		if err := binary.Write(gz, binary.LittleEndian, header); err != nil {
			t.Fatal(err)
		}
		_ = gz.Close()
		if _, err := LoadMap(&buf); !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("%s: expected ErrInvalidFormat, got %v", c.name, err)
		}
	}
}

func TestRegistryParseBlock(t *testing.T) {
	r := NewDefaultRegistry()
	cases := []struct {
		in   string
		want Block
	}{
		{"stone", NewBlock(STONE)},
		{"minecraft:Wool:14", NewBlockWithData(WOOL, 14)},
		{"35:*", NewBlockWithData(WOOL, DataWildcard)},
		{"5", NewBlock(5)},
		{"grass:*", NewBlock(GRASS).AnyData()},
	}
	for _, c := range cases {
		got, err := r.ParseBlock(c.in)
		if err != nil {
			t.Fatalf("ParseBlock(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseBlock(%q)=%s, want %s", c.in, got, c.want)
		}
	}
	for _, bad := range []string{"", "unobtainium", "stone:-1", "stone:x"} {
		if _, err := r.ParseBlock(bad); err == nil {
			t.Fatalf("ParseBlock(%q) should fail", bad)
		}
	}
	if err := r.Register("granite", STONE); err == nil {
		t.Fatalf("registering a second name for an id should fail")
	}
	if !r.GetBlockByName("minecraft:unobtainium").IsAir() || !r.UnknownBlocks["unobtainium"] {
		t.Fatalf("unknown names should resolve to air and be recorded")
	}
}

type testPaletteEntry struct {
	Name      string `nbt:"blockname"`
	Namespace string `nbt:"namespace"`
}

type testMetadata struct {
	SectionIndexTable []byte             `nbt:"section_index_table"`
	SectionVersion    byte               `nbt:"section_version"`
	BlockPalette      []testPaletteEntry `nbt:"block_palette"`
	CreatedWith       string             `nbt:"created_with"`
}

type testByteSection struct {
	Blocks          []byte `nbt:"blocks"`
	BlocksArrayType byte   `nbt:"blocks_array_type"`
}

func gzipNBT(t *testing.T, v any) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if err := nbt.NewEncoder(gz).Encode(v, ""); err != nil {
		t.Fatalf("encode nbt: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	return buf.Bytes()
}

// buildConstruction writes a single 2×1×2 section at (5, 10, -3).
func buildConstruction(t *testing.T, blocks []byte) []byte {
	t.Helper()
	var file bytes.Buffer
	file.WriteString(constructionMagic)

	section := gzipNBT(t, testByteSection{Blocks: blocks, BlocksArrayType: byteBlocksArray})
	sectionOffset := file.Len()
	file.Write(section)

	row := make([]byte, sectionIndexSize)
	binary.LittleEndian.PutUint32(row[0:4], uint32(int32(5)))
	binary.LittleEndian.PutUint32(row[4:8], uint32(int32(10)))
	binary.LittleEndian.PutUint32(row[8:12], uint32(0xFFFFFFFD))
	row[12], row[13], row[14] = 2, 1, 2
	binary.LittleEndian.PutUint32(row[15:19], uint32(sectionOffset))
	binary.LittleEndian.PutUint32(row[19:23], uint32(len(section)))

	metaOffset := file.Len()
	file.Write(gzipNBT(t, testMetadata{
		SectionIndexTable: row,
		SectionVersion:    1,
		BlockPalette: []testPaletteEntry{
			{Name: "air", Namespace: "universal_minecraft"},
			{Name: "stone", Namespace: "minecraft"},
			{Name: "dirt", Namespace: "minecraft"},
		},
		CreatedWith: "test",
	}))
	_ = binary.Write(&file, binary.BigEndian, int32(metaOffset))
	file.WriteString(constructionMagic)
	return file.Bytes()
}

func TestLoadConstruction(t *testing.T) {
	// x outer, y, z inner
	data := buildConstruction(t, []byte{1, 2, 0, 1})
	construction, err := LoadConstruction(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("LoadConstruction: %v", err)
	}
	if len(construction.Sections) != 1 {
		t.Fatalf("got %d sections", len(construction.Sections))
	}
	section := construction.Sections[0]
	if section.MinBlockX != 5 || section.MinBlockY != 10 || section.MinBlockZ != -3 {
		t.Fatalf("section min (%d,%d,%d)", section.MinBlockX, section.MinBlockY, section.MinBlockZ)
	}

	m, err := NewMapFromConstruction(NewDefaultRegistry(), construction)
	if err != nil {
		t.Fatalf("NewMapFromConstruction: %v", err)
	}
	expected := map[geom.Vector]int{
		geom.NewBlockVector(0, 0, 0): STONE,
		geom.NewBlockVector(0, 0, 1): DIRT,
		geom.NewBlockVector(1, 0, 0): AIR,
		geom.NewBlockVector(1, 0, 1): STONE,
	}
	for pos, want := range expected {
		if got := m.GetBlockType(pos); got != want {
			t.Fatalf("block at %s is %d, want %d", pos, got, want)
		}
	}
}

func TestLoadConstructionRejectsBadInput(t *testing.T) {
	if _, err := LoadConstruction(bytes.NewReader([]byte("definitely not a construction"))); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
	data := buildConstruction(t, []byte{1, 2, 9, 1})
	if _, err := LoadConstruction(bytes.NewReader(data)); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat for a bad palette index, got %v", err)
	}
	data = buildConstruction(t, []byte{1, 2, 0})
	if _, err := LoadConstruction(bytes.NewReader(data)); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat for a short section, got %v", err)
	}
}
