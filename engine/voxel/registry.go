package voxel

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/memmaker/voxedit/engine/util"
)

// Registry maps block names to type ids. Names the registry has never
// seen are remembered in UnknownBlocks and resolve to air.
type Registry struct {
	nameToId      map[string]int
	idToName      map[int]string
	UnknownBlocks map[string]bool
}

func NewRegistry() *Registry {
	return &Registry{
		nameToId:      map[string]int{},
		idToName:      map[int]string{},
		UnknownBlocks: map[string]bool{},
	}
}

// NewDefaultRegistry knows the block types referenced by this package's
// constants.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for name, id := range map[string]int{
		"air":     AIR,
		"stone":   STONE,
		"grass":   GRASS,
		"dirt":    DIRT,
		"bedrock": BEDROCK,
		"water":   WATER,
		"sand":    SAND,
		"glass":   GLASS,
		"wool":    WOOL,
	} {
		_ = r.Register(name, id)
	}
	return r
}

func (r *Registry) Register(name string, id int) error {
	name = normalizeBlockName(name)
	if existing, exists := r.nameToId[name]; exists && existing != id {
		return errors.Errorf("block %q already registered as %d", name, existing)
	}
	if existing, exists := r.idToName[id]; exists && existing != name {
		return errors.Errorf("block id %d already registered as %q", id, existing)
	}
	r.nameToId[name] = id
	r.idToName[id] = name
	return nil
}

func (r *Registry) IDByName(name string) (int, bool) {
	id, ok := r.nameToId[normalizeBlockName(name)]
	return id, ok
}

func (r *Registry) NameByID(id int) (string, bool) {
	name, ok := r.idToName[id]
	return name, ok
}

func (r *Registry) GetBlockByName(name string) Block {
	if id, exists := r.IDByName(name); exists {
		return NewBlock(id)
	}
	name = normalizeBlockName(name)
	if !r.UnknownBlocks[name] {
		util.LogVoxelDebug("unknown block name", zap.String("name", name))
	}
	r.UnknownBlocks[name] = true
	return NewAirBlock()
}

// ParseBlock reads "name", "name:data", "id", "id:data" or "name:*".
func (r *Registry) ParseBlock(input string) (Block, error) {
	typePart, dataPart, hasData := strings.Cut(normalizeBlockName(input), ":")
	if typePart == "" {
		return Block{}, errors.Errorf("empty block in %q", input)
	}
	id, err := strconv.Atoi(typePart)
	if err != nil {
		var known bool
		id, known = r.IDByName(typePart)
		if !known {
			return Block{}, errors.Errorf("unknown block %q", typePart)
		}
	}
	if !hasData {
		return NewBlock(id), nil
	}
	if dataPart == "*" {
		return NewBlockWithData(id, DataWildcard), nil
	}
	data, err := strconv.Atoi(dataPart)
	if err != nil || data < 0 {
		return Block{}, errors.Errorf("invalid data value in %q", input)
	}
	return NewBlockWithData(id, data), nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.nameToId))
	for name := range r.nameToId {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeBlockName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.TrimPrefix(name, "minecraft:")
}
