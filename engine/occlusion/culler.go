package occlusion

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/voxelcull/engine/settings"
	"github.com/memmaker/voxelcull/engine/util"
	"github.com/memmaker/voxelcull/engine/voxel"
)

// CullInvisibleChunks does nothing while fewer chunks than this are loaded.
const MinChunksForCulling = 100

// Extra degrees added to the field of view before the frustum test.
const fovSafetyMargin float32 = 15

// WorldMap is the chunk container the culler works on. The Locked methods are only
// called between Lock and Unlock.
type WorldMap interface {
	ChunkSize() int32
	ChunkMapSizeY() int32
	ChunkIndex3D(x, y, z int32) int64
	IsValidChunkPos(x, y, z int32) bool
	ChunkCount() int
	Lock()
	Unlock()
	ChunkAtIndexLocked(index int64) *voxel.Chunk
	ForEachChunkLocked(fn func(chunk *voxel.Chunk))
}

type Viewer interface {
	GetPosition() mgl32.Vec3
	// GetRotation returns yaw and pitch in degrees.
	GetRotation() (float32, float32)
	// GetFOV returns the field of view in degrees.
	GetFOV() float32
}

type PassStats struct {
	Skipped          bool
	Center           voxel.Int3
	DirectionsTested int
	DirectionsCulled int
	RaysCast         int
	ChunksMarked     int
	Duration         time.Duration
}

func (s PassStats) String() string {
	if s.Skipped {
		return "skipped"
	}
	return fmt.Sprintf("center %s, %d/%d directions outside the frustum, %d rays, %d marks in %s",
		s.Center.ToString(), s.DirectionsCulled, s.DirectionsTested, s.RaysCast, s.ChunksMarked, s.Duration)
}

// ChunkCuller decides once per frame which loaded chunks are visible. It must be driven
// from a single goroutine, usually the render loop.
type ChunkCuller struct {
	world    WorldMap
	viewer   Viewer
	settings *settings.Settings
	tracer   *Tracer

	shell    atomic.Pointer[Shell]
	unwatch  []func()
	lastPass PassStats
}

// NewChunkCuller generates the initial shell and subscribes to view distance and occlusion
// culling changes. Call Close to drop the subscriptions.
func NewChunkCuller(world WorldMap, viewer Viewer, clientSettings *settings.Settings) *ChunkCuller {
	c := &ChunkCuller{
		world:    world,
		viewer:   viewer,
		settings: clientSettings,
		tracer:   NewTracer(world),
	}
	c.genShellVectors(clientSettings.ViewDistance())
	c.unwatch = append(c.unwatch,
		clientSettings.WatchViewDistance(c.genShellVectors),
		clientSettings.WatchOcclusionCulling(c.occlusionCullingModeChanged),
	)
	return c
}

func (c *ChunkCuller) Close() {
	for _, unwatch := range c.unwatch {
		unwatch()
	}
	c.unwatch = nil
}

func (c *ChunkCuller) Shell() *Shell {
	return c.shell.Load()
}

func (c *ChunkCuller) LastPass() PassStats {
	return c.lastPass
}

func (c *ChunkCuller) genShellVectors(viewDistance int32) {
	shell := GenerateShell(viewDistance, c.world.ChunkSize(), c.world.ChunkMapSizeY())
	c.shell.Store(shell)
	util.LogCullingInfo(fmt.Sprintf("[Culler] Generated %d shell vectors for view distance %d", shell.Len(), viewDistance))
}

func (c *ChunkCuller) occlusionCullingModeChanged(on bool) {
	if on {
		return
	}
	c.world.Lock()
	defer c.world.Unlock()
	c.world.ForEachChunkLocked(func(chunk *voxel.Chunk) {
		chunk.SetVisible(true)
	})
}

// ViewerChunk is the chunk the camera is in.
func (c *ChunkCuller) ViewerChunk() voxel.Int3 {
	camPos := c.viewer.GetPosition()
	chunkSize := float32(c.world.ChunkSize())
	return voxel.Int3{
		X: util.FloorToInt32(camPos.X() / chunkSize),
		Y: util.FloorToInt32(camPos.Y() / chunkSize),
		Z: util.FloorToInt32(camPos.Z() / chunkSize),
	}
}

// FrustumThreshold is cos(fov+15°)/2. Shell directions whose dot product with the view
// direction is not above it are not traced.
func (c *ChunkCuller) FrustumThreshold() float32 {
	return util.Cos(util.ToRadian(c.viewer.GetFOV()+fovSafetyMargin)) / 2
}

// CullInvisibleChunks resets every chunk's visibility and marks the chunks that rays from the
// viewer reach. The world lock is held for the whole pass.
func (c *ChunkCuller) CullInvisibleChunks() {
	if !c.settings.OcclusionCulling() || c.world.ChunkCount() < MinChunksForCulling {
		c.lastPass = PassStats{Skipped: true}
		return
	}
	start := time.Now()

	centerPos := c.ViewerChunk()
	c.tracer.SetAboveHeightLimit(centerPos.Y >= c.world.ChunkMapSizeY())

	yaw, pitch := c.viewer.GetRotation()
	playerViewVec := util.ViewVector(yaw, pitch)
	threshold := c.FrustumThreshold()
	shell := c.shell.Load()

	c.world.Lock()
	defer c.world.Unlock()

	c.world.ForEachChunkLocked(func(chunk *voxel.Chunk) {
		chunk.SetVisible(false)
	})
	c.markNeighbourhoodVisible(centerPos)

	stats := PassStats{Center: centerPos, DirectionsTested: shell.Len()}
	c.tracer.ResetStats()
	for i, offset := range shell.Offsets {
		if playerViewVec.Dot(shell.Normalized[i]) <= threshold {
			stats.DirectionsCulled++
			continue
		}
		// two rays per direction, at a quarter and three quarters of the chunk height
		c.tracer.TraverseAndMark(centerPos, offset, 0.25)
		c.tracer.TraverseAndMark(centerPos, offset, 0.75)
	}
	stats.RaysCast = c.tracer.RaysCast()
	stats.ChunksMarked = c.tracer.ChunksMarked()
	stats.Duration = time.Since(start)
	c.lastPass = stats

	util.LogCullingDebug("[Culler] " + stats.String())
}

// markNeighbourhoodVisible marks the 3x3x3 block around the viewer visible regardless of
// frustum and occlusion.
func (c *ChunkCuller) markNeighbourhoodVisible(center voxel.Int3) {
	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for dz := int32(-1); dz <= 1; dz++ {
				x, y, z := center.X+dx, center.Y+dy, center.Z+dz
				if !c.world.IsValidChunkPos(x, y, z) {
					continue
				}
				if chunk := c.world.ChunkAtIndexLocked(c.world.ChunkIndex3D(x, y, z)); chunk != nil {
					chunk.SetVisible(true)
				}
			}
		}
	}
}
