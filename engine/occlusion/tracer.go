package occlusion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/voxelcull/engine/voxel"
)

type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// Tracer walks a ray through the chunk grid face by face and marks every chunk it passes
// visible until a chunk blocks the way. Its fields are scratch state reused between calls,
// so a Tracer must only be used by one goroutine. All methods expect the caller to hold the
// world lock.
type Tracer struct {
	world              WorldMap
	ray                Ray
	curPos             voxel.Int3
	toPos              voxel.Int3
	isAboveHeightLimit bool

	raysCast     int
	chunksMarked int
}

func NewTracer(world WorldMap) *Tracer {
	return &Tracer{world: world}
}

// SetAboveHeightLimit lets rays keep going through positions above the chunk map,
// needed when the viewer itself is above the build volume.
func (t *Tracer) SetAboveHeightLimit(above bool) {
	t.isAboveHeightLimit = above
}

func (t *Tracer) ResetStats() {
	t.raysCast = 0
	t.chunksMarked = 0
}

func (t *Tracer) RaysCast() int {
	return t.raysCast
}

// ChunksMarked counts SetVisible calls, a chunk hit by several rays is counted each time.
func (t *Tracer) ChunksMarked() int {
	return t.chunksMarked
}

// TraverseAndMark casts a ray from the centre of fromPos, lifted by yOffset chunk heights,
// towards fromPos+toPosRel. It walks at most two steps past the target's Manhattan distance.
func (t *Tracer) TraverseAndMark(fromPos, toPosRel voxel.Int3, yOffset float64) {
	t.raysCast++
	t.ray.Origin = mgl64.Vec3{float64(fromPos.X) + 0.5, float64(fromPos.Y) + yOffset, float64(fromPos.Z) + 0.5}
	t.ray.Dir = toPosRel.ToVec3d()

	t.toPos = fromPos.Add(toPosRel)
	t.curPos = fromPos

	var fromFace *voxel.Facing
	manhattanLength := voxel.ManhattanDistance3(fromPos, t.toPos)

	for {
		curMhDist := voxel.ManhattanDistance3(t.curPos, fromPos)
		if curMhDist > manhattanLength+2 {
			return
		}

		// the grid is uniform, so finding the face the ray leaves through is all it takes
		// to know the next chunk
		toFace := t.GetExitingFace(t.curPos)
		if toFace == nil {
			return
		}

		if t.world.IsValidChunkPos(t.curPos.X, t.curPos.Y, t.curPos.Z) {
			chunk := t.world.ChunkAtIndexLocked(t.world.ChunkIndex3D(t.curPos.X, t.curPos.Y, t.curPos.Z))
			if chunk != nil {
				chunk.SetVisible(true)
				t.chunksMarked++
				if curMhDist > 1 && !chunk.IsTraversable(fromFace, toFace) {
					return
				}
			}
		}

		t.curPos = t.curPos.Offset(toFace)
		fromFace = toFace.Opposite()

		if !t.world.IsValidChunkPos(t.curPos.X, t.curPos.Y, t.curPos.Z) && (!t.isAboveHeightLimit || t.curPos.Y <= 0) {
			return
		}
	}
}

// GetExitingFace intersects the ray with the six face planes of the unit cube at pos and
// returns the first face, in voxel.AllFaces order, that the ray leaves through.
// It returns nil when the ray does not pass through the cube.
func (t *Tracer) GetExitingFace(pos voxel.Int3) *voxel.Facing {
	for _, face := range voxel.AllFaces {
		planeNormal := face.NormalVec3d()
		denom := planeNormal.Dot(t.ray.Dir)
		if denom <= 0.00001 {
			continue
		}

		planePosition := pos.ToVec3d().Add(face.PlaneCenter)
		hitT := planePosition.Sub(t.ray.Origin).Dot(planeNormal) / denom
		if hitT < 0 {
			continue
		}

		hit := t.ray.Origin.Add(t.ray.Dir.Mul(hitT))
		if math.Abs(hit.X()-planePosition.X()) <= 0.5 && math.Abs(hit.Y()-planePosition.Y()) <= 0.5 && math.Abs(hit.Z()-planePosition.Z()) <= 0.5 {
			return face
		}
	}
	return nil
}
