package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/voxelcull/engine/occlusion"
	"github.com/memmaker/voxelcull/engine/settings"
	"github.com/memmaker/voxelcull/engine/util"
	"github.com/memmaker/voxelcull/engine/voxel"
)

type FrameReport struct {
	Frame   int
	Loaded  int
	Visible int
	CullMS  float64
	Pass    occlusion.PassStats
}

func (r FrameReport) String() string {
	return fmt.Sprintf("frame %d: %d/%d chunks visible, cull %.3fms (%s)", r.Frame, r.Visible, r.Loaded, r.CullMS, r.Pass)
}

// FrameLoop stands in for the render loop of the client: every frame it turns the camera,
// culls and counts what a renderer would draw.
type FrameLoop struct {
	world    *voxel.ChunkMap
	camera   *util.FPSCamera
	culler   *occlusion.ChunkCuller
	timer    *util.Timer
	frame    int
	turnRate float32
	unwatch  func()
}

func NewFrameLoop(world *voxel.ChunkMap, camera *util.FPSCamera, clientSettings *settings.Settings) *FrameLoop {
	camera.SetFOV(clientSettings.FieldOfView())
	return &FrameLoop{
		world:   world,
		camera:  camera,
		culler:  occlusion.NewChunkCuller(world, camera, clientSettings),
		timer:   util.NewTimer(),
		unwatch: clientSettings.WatchFieldOfView(camera.SetFOV),
	}
}

// SetTurnRate sets the yaw change in degrees applied before each frame.
func (l *FrameLoop) SetTurnRate(degrees float32) {
	l.turnRate = degrees
}

func (l *FrameLoop) Close() {
	l.culler.Close()
	if l.unwatch != nil {
		l.unwatch()
		l.unwatch = nil
	}
}

func (l *FrameLoop) Camera() *util.FPSCamera {
	return l.camera
}

func (l *FrameLoop) Culler() *occlusion.ChunkCuller {
	return l.culler
}

func (l *FrameLoop) Timer() *util.Timer {
	return l.timer
}

func (l *FrameLoop) Frame() FrameReport {
	l.frame++
	if l.turnRate != 0 {
		l.camera.ChangeAngles(l.turnRate, 0)
	}

	stopCull := l.timer.Start("cull")
	l.culler.CullInvisibleChunks()
	cullMS := stopCull()

	stopCollect := l.timer.Start("collect")
	visible := l.world.VisibleChunks()
	stopCollect()

	report := FrameReport{
		Frame:   l.frame,
		Loaded:  l.world.ChunkCount(),
		Visible: len(visible),
		CullMS:  cullMS,
		Pass:    l.culler.LastPass(),
	}
	util.LogCullingDebug("[Loop] " + report.String())
	return report
}

// NewSpawnCamera places a camera two blocks above the highest block in the middle of the map,
// looking along +X.
func NewSpawnCamera(world *voxel.ChunkMap, fov float32) *util.FPSCamera {
	x := world.ChunkMapSizeX() * voxel.CHUNK_SIZE / 2
	z := world.ChunkMapSizeZ() * voxel.CHUNK_SIZE / 2
	y := world.ChunkMapSizeY()*voxel.CHUNK_SIZE - 1
	for y >= 0 && !world.IsSolidBlockAt(x, y, z) {
		y--
	}
	pos := mgl32.Vec3{float32(x) + 0.5, float32(y + 3), float32(z) + 0.5}
	return util.NewFPSCamera(pos, fov, 1)
}
