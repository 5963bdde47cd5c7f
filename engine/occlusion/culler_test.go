package occlusion

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/voxelcull/engine/settings"
	"github.com/memmaker/voxelcull/engine/util"
	"github.com/memmaker/voxelcull/engine/voxel"
)

// chunkCenter is the world position of the middle of a chunk.
func chunkCenter(x, y, z int32) mgl32.Vec3 {
	size := float32(voxel.CHUNK_SIZE)
	return mgl32.Vec3{float32(x)*size + size/2, float32(y)*size + size/2, float32(z)*size + size/2}
}

// newCullerLookingEast places the viewer in chunk (8, 1, 8) of a 20x3x20 world, looking along +X.
func newCullerLookingEast(t *testing.T) (*ChunkCuller, *voxel.ChunkMap, *settings.Settings) {
	t.Helper()
	world := newFilledWorld(20, 3, 20)
	clientSettings := settings.New(settings.Values{OcclusionCulling: true, ViewDistance: 128, FieldOfView: 70})
	camera := util.NewFPSCamera(chunkCenter(8, 1, 8), 70, 1)
	culler := NewChunkCuller(world, camera, clientSettings)
	t.Cleanup(culler.Close)
	return culler, world, clientSettings
}

func TestCullStraightCorridor(t *testing.T) {
	culler, world, _ := newCullerLookingEast(t)
	culler.CullInvisibleChunks()

	if culler.LastPass().Skipped {
		t.Fatalf("expected a culling pass to run")
	}
	for x := int32(9); x <= 13; x++ {
		if !world.GetChunk(x, 1, 8).IsVisible() {
			t.Fatalf("expected chunk (%d, 1, 8) ahead of the viewer to be visible", x)
		}
	}
}

func TestCullNeighbourhoodAlwaysVisible(t *testing.T) {
	culler, world, _ := newCullerLookingEast(t)
	// everything around the viewer is solid and it looks straight up
	world.Lock()
	world.ForEachChunkLocked(func(chunk *voxel.Chunk) {
		chunk.SetTraversability(0)
	})
	world.Unlock()
	camera := culler.viewer.(*util.FPSCamera)
	camera.Reposition(chunkCenter(8, 1, 8), 0, 89)

	culler.CullInvisibleChunks()

	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for dz := int32(-1); dz <= 1; dz++ {
				if !world.GetChunk(8+dx, 1+dy, 8+dz).IsVisible() {
					t.Fatalf("expected neighbour (%d, %d, %d) to be visible", dx, dy, dz)
				}
			}
		}
	}
}

func TestCullNeighbourhoodAtMapCorner(t *testing.T) {
	culler, world, _ := newCullerLookingEast(t)
	culler.viewer.(*util.FPSCamera).Reposition(chunkCenter(0, 0, 0), 180, 0)

	culler.CullInvisibleChunks()

	for _, pos := range []voxel.Int3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}} {
		if !world.GetChunk(pos.X, pos.Y, pos.Z).IsVisible() {
			t.Fatalf("expected neighbour %s to be visible", pos.ToString())
		}
	}
}

func TestCullResetsStaleVisibility(t *testing.T) {
	culler, world, _ := newCullerLookingEast(t)
	world.SetAllVisible(true)

	culler.CullInvisibleChunks()

	for x := int32(0); x <= 6; x++ {
		if world.GetChunk(x, 1, 8).IsVisible() {
			t.Fatalf("chunk (%d, 1, 8) behind the viewer kept its old visibility", x)
		}
	}
}

func TestCullOutsideFrustum(t *testing.T) {
	culler, world, _ := newCullerLookingEast(t)
	culler.CullInvisibleChunks()

	// rays only step towards +X, the neighbourhood reaches down to x = 7
	for _, chunk := range world.VisibleChunks() {
		if chunk.Position().X < 7 {
			t.Fatalf("chunk %s behind the viewer must not be visible", chunk.Position().ToString())
		}
	}

	shell := culler.Shell()
	viewVec := util.ViewVector(culler.viewer.GetRotation())
	threshold := culler.FrustumThreshold()
	inside := 0
	for _, dir := range shell.Normalized {
		if viewVec.Dot(dir) > threshold {
			inside++
		}
	}
	stats := culler.LastPass()
	if stats.RaysCast != 2*inside {
		t.Fatalf("expected %d rays, got %d", 2*inside, stats.RaysCast)
	}
	if stats.DirectionsCulled != shell.Len()-inside {
		t.Fatalf("expected %d culled directions, got %d", shell.Len()-inside, stats.DirectionsCulled)
	}
}

func TestCullWallOccludesEverythingBehindIt(t *testing.T) {
	culler, world, _ := newCullerLookingEast(t)
	for y := int32(0); y < 3; y++ {
		for z := int32(0); z < 20; z++ {
			world.GetChunk(10, y, z).SetTraversability(0)
		}
	}

	culler.CullInvisibleChunks()

	if !world.GetChunk(10, 1, 8).IsVisible() {
		t.Fatalf("expected the wall in front of the viewer to be visible")
	}
	for _, chunk := range world.VisibleChunks() {
		if chunk.Position().X > 10 {
			t.Fatalf("chunk %s behind the wall must not be visible", chunk.Position().ToString())
		}
	}
}

func TestCullSmallWorldIsNoop(t *testing.T) {
	world := newFilledWorld(4, 2, 4)
	world.GetChunk(1, 1, 1).SetVisible(true)
	camera := util.NewFPSCamera(chunkCenter(1, 0, 1), 70, 1)
	culler := NewChunkCuller(world, camera, settings.Default())
	defer culler.Close()

	culler.CullInvisibleChunks()

	if !culler.LastPass().Skipped {
		t.Fatalf("expected the pass to be skipped for %d chunks", world.ChunkCount())
	}
	if !world.GetChunk(1, 1, 1).IsVisible() || world.GetChunk(1, 0, 1).IsVisible() {
		t.Fatalf("expected visibility flags to be left untouched")
	}
}

func TestDisablingOcclusionCullingShowsEverything(t *testing.T) {
	culler, world, clientSettings := newCullerLookingEast(t)
	culler.CullInvisibleChunks()
	if len(world.VisibleChunks()) == world.ChunkCount() {
		t.Fatalf("expected some chunks to be culled first")
	}

	clientSettings.SetOcclusionCulling(false)
	if len(world.VisibleChunks()) != world.ChunkCount() {
		t.Fatalf("expected all chunks visible after disabling occlusion culling")
	}

	culler.CullInvisibleChunks()
	if !culler.LastPass().Skipped || len(world.VisibleChunks()) != world.ChunkCount() {
		t.Fatalf("expected chunks to stay visible while occlusion culling is off")
	}
}

func TestViewDistanceChangeRegeneratesShell(t *testing.T) {
	culler, world, clientSettings := newCullerLookingEast(t)
	before := culler.Shell()

	clientSettings.SetViewDistance(256)

	after := culler.Shell()
	expected := GenerateShell(256, world.ChunkSize(), world.ChunkMapSizeY())
	if after == before || after.Len() != expected.Len() {
		t.Fatalf("expected a regenerated shell with %d vectors, got %d", expected.Len(), after.Len())
	}
}

func TestCloseRemovesWatchers(t *testing.T) {
	world := newFilledWorld(20, 3, 20)
	clientSettings := settings.Default()
	culler := NewChunkCuller(world, util.NewFPSCamera(chunkCenter(8, 1, 8), 70, 1), clientSettings)
	culler.Close()

	if clientSettings.WatcherCount() != 0 {
		t.Fatalf("expected no watchers after Close, got %d", clientSettings.WatcherCount())
	}
	shell := culler.Shell()
	clientSettings.SetViewDistance(512)
	if culler.Shell() != shell {
		t.Fatalf("closed culler must not react to settings changes")
	}
}

func TestViewerChunkUsesFloor(t *testing.T) {
	culler, _, _ := newCullerLookingEast(t)
	culler.viewer.(*util.FPSCamera).SetPosition(mgl32.Vec3{-1, 33, 64})
	if got := culler.ViewerChunk(); got != (voxel.Int3{X: -1, Y: 1, Z: 2}) {
		t.Fatalf("expected (-1, 1, 2), got %s", got.ToString())
	}
}

func BenchmarkCullInvisibleChunks(b *testing.B) {
	world := newFilledWorld(32, 8, 32)
	clientSettings := settings.New(settings.Values{OcclusionCulling: true, ViewDistance: 256, FieldOfView: 70})
	culler := NewChunkCuller(world, util.NewFPSCamera(chunkCenter(16, 4, 16), 70, 1), clientSettings)
	defer culler.Close()
	for i := 0; i < b.N; i++ {
		culler.CullInvisibleChunks()
	}
}
