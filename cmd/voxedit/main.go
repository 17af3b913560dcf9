package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/memmaker/voxedit/engine/config"
	"github.com/memmaker/voxedit/engine/util"
	"github.com/memmaker/voxedit/engine/voxel"
)

const usage = `usage: voxedit [flags] <command> [args]

commands:
  new                                  create an empty map
  rect X1 Y Z1 X2 Z2 BLOCK [filled]    place a rectangle
  fill X Y Z BLOCK [RADIUS]            flood fill from a block
  copy X1 Y1 Z1 X2 Y2 Z2 OUT           copy a box into a schematic
  copy-poly MINY MAXY X Z X Z X Z... OUT  copy a polygon into a schematic
  paste FILE X Y Z [ROTATE_DEGREES]    paste a schematic
  export X1 Y1 Z1 X2 Y2 Z2 OUT.glb     export a box as a glTF mesh
  preview X1 Y1 Z1 X2 Y2 Z2 OUT.png    render a top down image
  layer Y                              print one layer
`

func main() {
	var (
		configPath       = flag.String("config", "", "path to voxedit.yaml (optional)")
		mapPath          = flag.String("map", "world.vxmp", "map file to edit")
		constructionPath = flag.String("construction", "", "load the map from an Amulet .construction file instead")
		outPath          = flag.String("out", "", "where to save the edited map (default: -map)")
		size             = flag.String("size", "4x4", "width x depth in chunks for the new command")
	)
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app := &editor{
		cfg:      cfg,
		registry: voxel.NewDefaultRegistry(),
		actor:    &consoleActor{name: "console"},
		mapPath:  *mapPath,
		outPath:  *outPath,
	}
	if app.outPath == "" {
		app.outPath = app.mapPath
	}

	command, args := flag.Arg(0), flag.Args()[1:]
	timer := util.NewTimer()
	stop := timer.Start(command)
	if command == "new" {
		err = app.newMap(*size)
	} else {
		if err = app.loadWorld(*constructionPath); err == nil {
			err = app.run(command, args)
		}
	}
	stop()
	timer.LogSummary()
	_ = util.Logger().Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "voxedit:", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}
	// human readable logs on a terminal, JSON otherwise
	cfg.Development = cfg.Development || term.IsTerminal(int(os.Stderr.Fd()))
	if err := cfg.ApplyLogging(); err != nil {
		return cfg, errors.Wrap(err, "logging")
	}
	util.LogConfigInfo("config ready",
		zap.Int("max_changed_blocks", cfg.MaxChangedBlocks),
		zap.Int("flood_fill_radius", cfg.FloodFillRadius),
		zap.String("log_level", cfg.LogLevel))
	return cfg, nil
}

func parseSize(size string) (int32, int32, error) {
	var w, d int32
	if _, err := fmt.Sscanf(strings.ToLower(size), "%dx%d", &w, &d); err != nil {
		return 0, 0, errors.Wrapf(err, "size %q", size)
	}
	if w <= 0 || d <= 0 {
		return 0, 0, errors.Errorf("size %q must be positive", size)
	}
	return w, d, nil
}

// terminalWidth falls back to 80 columns when stdout is not a terminal.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
