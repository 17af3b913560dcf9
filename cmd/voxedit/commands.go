package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/memmaker/voxedit/engine/clipboard"
	"github.com/memmaker/voxedit/engine/config"
	"github.com/memmaker/voxedit/engine/edit"
	"github.com/memmaker/voxedit/engine/export"
	"github.com/memmaker/voxedit/engine/geom"
	"github.com/memmaker/voxedit/engine/mask"
	"github.com/memmaker/voxedit/engine/region"
	"github.com/memmaker/voxedit/engine/tool"
	"github.com/memmaker/voxedit/engine/util"
	"github.com/memmaker/voxedit/engine/voxel"
)

type consoleActor struct {
	name string
}

func (a *consoleActor) GetName() string         { return a.name }
func (a *consoleActor) CanDestroyBedrock() bool { return false }
func (a *consoleActor) Print(msg string)        { fmt.Println(msg) }
func (a *consoleActor) PrintError(msg string)   { fmt.Fprintln(os.Stderr, msg) }

type editor struct {
	cfg      config.Config
	registry *voxel.Registry
	actor    edit.Actor
	world    *voxel.Map
	mapPath  string
	outPath  string
}

func (e *editor) newMap(size string) error {
	width, depth, err := parseSize(size)
	if err != nil {
		return err
	}
	height := int64(e.cfg.WorldMaxHeight)/int64(voxel.CHUNK_SIZE) + 1
	columns := int64(width) * int64(depth)
	if columns > voxel.MAX_MAP_CHUNKS || height > voxel.MAX_MAP_CHUNKS || columns*height > voxel.MAX_MAP_CHUNKS {
		return errors.Errorf("%dx%dx%d chunks exceed the limit of %d", width, height, depth, voxel.MAX_MAP_CHUNKS)
	}
	e.world = voxel.NewMap(width, int32(height), depth)
	e.actor.Print(fmt.Sprintf("Created world %s.", e.world.GetID()))
	return e.save()
}

func (e *editor) loadWorld(constructionPath string) error {
	if constructionPath != "" {
		file, err := os.Open(constructionPath)
		if err != nil {
			return errors.Wrap(err, "open construction")
		}
		defer file.Close()
		construction, err := voxel.LoadConstruction(file)
		if err != nil {
			return errors.Wrap(err, constructionPath)
		}
		e.world, err = voxel.NewMapFromConstruction(e.registry, construction)
		return err
	}
	file, err := os.Open(e.mapPath)
	if err != nil {
		return errors.Wrap(err, "open map")
	}
	defer file.Close()
	e.world, err = voxel.LoadMap(file)
	if err != nil {
		return errors.Wrap(err, e.mapPath)
	}
	return nil
}

func (e *editor) save() error {
	file, err := os.Create(e.outPath)
	if err != nil {
		return errors.Wrap(err, "create map")
	}
	if err := e.world.SaveTo(file); err != nil {
		file.Close()
		return errors.Wrap(err, e.outPath)
	}
	return file.Close()
}

func (e *editor) session() *edit.Session {
	return edit.NewSession(e.world, e.cfg.MaxChangedBlocks)
}

func (e *editor) run(command string, args []string) error {
	util.LogIOInfo("running command", zap.String("command", command), zap.Strings("args", args))
	switch command {
	case "fill":
		return e.fill(args)
	case "rect":
		return e.rect(args)
	case "copy":
		return e.copyBox(args)
	case "copy-poly":
		return e.copyPolygon(args)
	case "paste":
		return e.paste(args)
	case "export":
		return e.exportMesh(args)
	case "preview":
		return e.preview(args)
	case "layer":
		return e.layer(args)
	}
	return errors.Errorf("unknown command %q", command)
}

func parseInts(args []string) ([]int, error) {
	values := make([]int, len(args))
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d", i+1)
		}
		values[i] = v
	}
	return values, nil
}

func wantArgs(args []string, lo, hi int) error {
	if len(args) < lo || len(args) > hi {
		return errors.Errorf("expected %d to %d arguments, got %d", lo, hi, len(args))
	}
	return nil
}

func (e *editor) fill(args []string) error {
	if err := wantArgs(args, 4, 5); err != nil {
		return err
	}
	pos, err := parseInts(args[:3])
	if err != nil {
		return err
	}
	radius := 0
	if len(args) == 5 {
		if radius, err = strconv.Atoi(args[4]); err != nil {
			return errors.Wrap(err, "radius")
		}
	}
	pattern, err := e.parsePattern(args[3])
	if err != nil {
		return err
	}
	fillTool, err := tool.FloodFillToolFromConfig(&e.cfg, radius, pattern)
	if err != nil {
		return err
	}
	session := e.session()
	clicked := geom.NewBlockVector(pos[0], pos[1], pos[2]).WithWorld(e.world.GetID())
	fillTool.ActPrimary(e.actor, session, clicked)
	e.actor.Print(fmt.Sprintf("%d blocks changed.", session.ChangeCount()))
	return e.save()
}

// parsePattern accepts a single block or a weighted list like
// "stone:3,dirt:1" where the last number is the weight.
func (e *editor) parsePattern(input string) (mask.Pattern, error) {
	if !strings.Contains(input, ",") {
		block, err := e.registry.ParseBlock(input)
		if err != nil {
			return nil, err
		}
		return mask.SingleBlockPattern{Block: block}, nil
	}
	var entries []mask.WeightedBlock
	for _, part := range strings.Split(input, ",") {
		name, weightText, found := cutLast(part, ":")
		if !found {
			return nil, errors.Errorf("pattern entry %q has no weight", part)
		}
		weight, err := strconv.ParseFloat(weightText, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "pattern entry %q", part)
		}
		block, err := e.registry.ParseBlock(name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, mask.WeightedBlock{Block: block, Weight: weight})
	}
	return mask.NewRandomFillPattern(rand.New(rand.NewSource(time.Now().UnixNano())), entries...)
}

func cutLast(s, sep string) (string, string, bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}

func (e *editor) rect(args []string) error {
	if err := wantArgs(args, 6, 7); err != nil {
		return err
	}
	c, err := parseInts(args[:5])
	if err != nil {
		return err
	}
	pattern, err := e.parsePattern(args[5])
	if err != nil {
		return err
	}
	placer := tool.NewRectanglePlacer()
	placer.SetFill(len(args) == 7 && args[6] == "filled")
	placer.StartDragAt(geom.NewBlockVector(c[0], c[1], c[2]))
	positions := placer.StopDragAt(geom.NewBlockVector(c[3], c[1], c[4]))
	changed, err := tool.Place(e.session(), positions, pattern)
	e.actor.Print(fmt.Sprintf("%s: %d blocks changed.", placer.GetName(), changed))
	if err != nil {
		return err
	}
	return e.save()
}

// selectBox runs the corners through a cuboid selector so they get the
// same height clamping as interactive selections.
func (e *editor) selectBox(args []string) (region.Region, error) {
	c, err := parseInts(args)
	if err != nil {
		return nil, err
	}
	selection := region.NewSelection(e.world, region.NewCuboidSelector(e.world))
	for _, corner := range [][]int{c[:3], c[3:6]} {
		if err := selection.Selector().AddPoint(geom.NewBlockVector(corner[0], corner[1], corner[2])); err != nil {
			return nil, err
		}
	}
	return selection.Region()
}

func (e *editor) copyBox(args []string) error {
	if err := wantArgs(args, 7, 7); err != nil {
		return err
	}
	r, err := e.selectBox(args[:6])
	if err != nil {
		return err
	}
	return e.writeClipboard(r, args[6])
}

func (e *editor) copyPolygon(args []string) error {
	if len(args) < 9 || len(args)%2 == 0 {
		return errors.New("copy-poly needs MINY MAXY, at least three X Z pairs and an output file")
	}
	values, err := parseInts(args[:len(args)-1])
	if err != nil {
		return err
	}
	selector, err := region.NewPolygon2DSelector(e.world, nil, values[0], values[1])
	if err != nil {
		return err
	}
	for i := 2; i < len(values); i += 2 {
		if err := selector.AddPoint(geom.NewBlockVector(values[i], values[0], values[i+1])); err != nil {
			return err
		}
	}
	selector.SetComplete()
	r, err := region.NewSelection(e.world, selector).Region()
	if err != nil {
		return err
	}
	return e.writeClipboard(r, args[len(args)-1])
}

func (e *editor) writeClipboard(r region.Region, path string) error {
	copied := clipboard.Copy(e.world, r, r.GetMinimumPoint())
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create schematic")
	}
	if err := clipboard.WriteSchematic(file, copied); err != nil {
		file.Close()
		return err
	}
	e.actor.Print(fmt.Sprintf("Copied %d blocks from a region of %d.", copied.Len(), r.GetVolume()))
	return file.Close()
}

func (e *editor) paste(args []string) error {
	if err := wantArgs(args, 4, 5); err != nil {
		return err
	}
	to, err := parseInts(args[1:4])
	if err != nil {
		return err
	}
	file, err := os.Open(args[0])
	if err != nil {
		return errors.Wrap(err, "open schematic")
	}
	copied, err := clipboard.ReadSchematic(file)
	file.Close()
	if err != nil {
		return errors.Wrap(err, args[0])
	}
	if len(args) == 5 {
		degrees, err := strconv.ParseFloat(args[4], 64)
		if err != nil {
			return errors.Wrap(err, "rotation")
		}
		if copied, err = copied.Rotate(degrees, geom.NewVector(0, 1, 0)); err != nil {
			return err
		}
	}
	changed, err := copied.Paste(e.session(), geom.NewBlockVector(to[0], to[1], to[2]), true)
	e.actor.Print(fmt.Sprintf("%d blocks changed.", changed))
	if err != nil {
		return err
	}
	return e.save()
}

func (e *editor) exportMesh(args []string) error {
	if err := wantArgs(args, 7, 7); err != nil {
		return err
	}
	r, err := e.selectBox(args[:6])
	if err != nil {
		return err
	}
	mesh := export.BuildMesh(e.world, r, nil)
	file, err := os.Create(args[6])
	if err != nil {
		return errors.Wrap(err, "create glb")
	}
	name := strings.TrimSuffix(filepath.Base(args[6]), filepath.Ext(args[6]))
	if err := export.WriteGLB(file, mesh, name); err != nil {
		file.Close()
		return err
	}
	e.actor.Print(fmt.Sprintf("Exported %d triangles.", mesh.TriangleCount()))
	return file.Close()
}

func (e *editor) preview(args []string) error {
	if err := wantArgs(args, 7, 7); err != nil {
		return err
	}
	r, err := e.selectBox(args[:6])
	if err != nil {
		return err
	}
	img := export.RenderTopDown(e.world, r, nil, 4)
	file, err := os.Create(args[6])
	if err != nil {
		return errors.Wrap(err, "create png")
	}
	if err := export.WritePNG(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (e *editor) layer(args []string) error {
	if err := wantArgs(args, 1, 1); err != nil {
		return err
	}
	y, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.Wrap(err, "layer")
	}
	size := e.world.Size()
	columns := min(size.X, int32(terminalWidth()))
	fmt.Print(e.world.PrintArea2D(int32(y), columns, size.Z))
	return nil
}
