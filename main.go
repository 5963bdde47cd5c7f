package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/faiface/mainthread"
	"github.com/memmaker/voxelcull/engine/settings"
	"github.com/memmaker/voxelcull/engine/util"
	"github.com/memmaker/voxelcull/engine/voxel"
	"github.com/memmaker/voxelcull/game"
	"github.com/pkg/errors"
)

type options struct {
	settingsFile string
	mapFile      string
	saveFile     string
	frames       int
	turnRate     float64
	seed         int64
	verbose      bool
}

func main() {
	var opts options
	flag.StringVar(&opts.settingsFile, "settings", "", "yaml settings file, defaults are used when empty")
	flag.StringVar(&opts.mapFile, "map", "", "map file to load instead of generating a world")
	flag.StringVar(&opts.saveFile, "save", "", "write the world to this map file before running")
	flag.IntVar(&opts.frames, "frames", 60, "number of frames to cull")
	flag.Float64Var(&opts.turnRate, "turn", 6, "camera yaw change per frame in degrees")
	flag.Int64Var(&opts.seed, "seed", 32, "terrain seed of the generated world")
	flag.BoolVar(&opts.verbose, "v", false, "log every culling pass")
	flag.Parse()

	if opts.verbose {
		util.SetLogLevel(util.LogLevelDebug)
	}

	mainthread.Run(func() {
		if err := run(opts); err != nil {
			util.LogSystemError(err)
			os.Exit(1)
		}
	})
}

func run(opts options) error {
	clientSettings := settings.Default()
	if opts.settingsFile != "" {
		loaded, err := settings.Load(opts.settingsFile)
		if err != nil {
			return err
		}
		clientSettings = loaded
	}

	world, err := loadWorld(opts)
	if err != nil {
		return err
	}
	if opts.saveFile != "" {
		if err := world.SaveToDisk(opts.saveFile); err != nil {
			return errors.Wrapf(err, "saving %s", opts.saveFile)
		}
		util.LogSystemInfo(fmt.Sprintf("[System] Saved map to %s", opts.saveFile))
	}

	loop := game.NewFrameLoop(world, game.NewSpawnCamera(world, clientSettings.FieldOfView()), clientSettings)
	defer loop.Close()
	loop.SetTurnRate(float32(opts.turnRate))

	var report game.FrameReport
	for i := 0; i < opts.frames; i++ {
		// the culler runs where a renderer would, on the main thread
		mainthread.Call(func() {
			report = loop.Frame()
		})
	}
	util.LogSystemInfo(fmt.Sprintf("[System] %s", report))
	util.LogSystemInfo(fmt.Sprintf("[System] %s", loop.Camera().DebugAim()))

	viewer := loop.Culler().ViewerChunk()
	if err := game.RenderTopDown(os.Stdout, world, viewer.Y, viewer, game.TerminalWidth()); err != nil {
		return err
	}
	fmt.Print(loop.Timer().String())
	return nil
}

func loadWorld(opts options) (*voxel.ChunkMap, error) {
	if opts.mapFile == "" {
		config := game.DefaultWorldConfig()
		config.Seed = opts.seed
		return game.GenerateWorld(config), nil
	}
	world, err := voxel.LoadChunkMapFromDisk(opts.mapFile)
	if err != nil {
		return nil, err
	}
	world.UpdateTraversability(game.DefaultWorldConfig().Workers)
	return world, nil
}
