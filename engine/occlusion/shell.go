package occlusion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/voxelcull/engine/voxel"
)

// Shell is the set of ray targets on the outer boundary of the loaded chunk volume,
// relative to the viewer's chunk. Normalized[i] is the unit direction of Offsets[i].
// A Shell is never modified after GenerateShell returns it.
type Shell struct {
	Offsets    []voxel.Int3
	Normalized []mgl32.Vec3
}

func (s *Shell) Len() int {
	return len(s.Offsets)
}

// GenerateShell builds the shell for a view distance given in blocks. The outermost octagon ring
// covers every vertical layer from -chunkMapHeight to chunkMapHeight, the inner rings only the
// top and bottom layer.
func GenerateShell(viewDistance, chunkSize, chunkMapHeight int32) *Shell {
	radius := viewDistance/chunkSize + 1

	seen := make(map[voxel.Int3]struct{})
	offsets := make([]voxel.Int3, 0)
	add := func(pos voxel.Int3) {
		if _, ok := seen[pos]; ok {
			return
		}
		seen[pos] = struct{}{}
		offsets = append(offsets, pos)
	}

	for _, point := range voxel.OctagonPoints(0, 0, radius) {
		for cy := -chunkMapHeight; cy <= chunkMapHeight; cy++ {
			add(voxel.Int3{X: point.X, Y: cy, Z: point.Z})
		}
	}

	for r := int32(0); r < radius; r++ {
		for _, point := range voxel.OctagonPoints(0, 0, r) {
			add(voxel.Int3{X: point.X, Y: -chunkMapHeight, Z: point.Z})
			add(voxel.Int3{X: point.X, Y: chunkMapHeight, Z: point.Z})
		}
	}

	normalized := make([]mgl32.Vec3, len(offsets))
	for i, offset := range offsets {
		vec := offset.ToVec3()
		if vec.Len() > 0 {
			vec = vec.Normalize()
		}
		normalized[i] = vec
	}
	return &Shell{Offsets: offsets, Normalized: normalized}
}
