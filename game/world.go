package game

import (
	"fmt"

	"github.com/memmaker/voxelcull/engine/util"
	"github.com/memmaker/voxelcull/engine/voxel"
	"github.com/ojrac/opensimplex-go"
)

const (
	stoneBlock byte = 1
	wallBlock  byte = 2
)

// WorldConfig describes a generated demo world. Sizes are in chunks, heights in blocks.
type WorldConfig struct {
	SizeX, SizeY, SizeZ int32
	Seed                int64
	GroundLevel         int32
	Amplitude           int32
	// WallSpacing puts a wall across the whole map every n chunks along X, 0 disables walls.
	WallSpacing int32
	WallHeight  int32
	Workers     int
}

func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		SizeX:       16,
		SizeY:       4,
		SizeZ:       16,
		Seed:        32,
		GroundLevel: 48,
		Amplitude:   12,
		WallSpacing: 4,
		WallHeight:  48,
		Workers:     4,
	}
}

// GenerateWorld fills every chunk of the map, builds noise terrain, the walls and
// finally the traversability of all chunks.
func GenerateWorld(config WorldConfig) *voxel.ChunkMap {
	m := voxel.NewChunkMap(config.SizeX, config.SizeY, config.SizeZ)
	for x := int32(0); x < config.SizeX; x++ {
		for y := int32(0); y < config.SizeY; y++ {
			for z := int32(0); z < config.SizeZ; z++ {
				m.NewChunk(x, y, z)
			}
		}
	}

	maxX := config.SizeX * voxel.CHUNK_SIZE
	maxY := config.SizeY * voxel.CHUNK_SIZE
	maxZ := config.SizeZ * voxel.CHUNK_SIZE
	noise := opensimplex.New(config.Seed)
	for x := int32(0); x < maxX; x++ {
		for z := int32(0); z < maxZ; z++ {
			height := terrainHeight(noise, config, x, z)
			if height > maxY {
				height = maxY
			}
			for y := int32(0); y < height; y++ {
				m.SetBlock(x, y, z, stoneBlock)
			}
		}
	}

	if config.WallSpacing > 0 {
		for cx := config.WallSpacing; cx < config.SizeX; cx += config.WallSpacing {
			buildWall(m, config, cx*voxel.CHUNK_SIZE, maxY, maxZ)
		}
	}

	rebuilt := m.UpdateTraversability(config.Workers)
	util.LogVoxelDebug(fmt.Sprintf("[World] Generated %dx%dx%d chunks, %d with blocks", config.SizeX, config.SizeY, config.SizeZ, rebuilt))
	return m
}

func terrainHeight(noise opensimplex.Noise, config WorldConfig, x, z int32) int32 {
	value := noise.Eval2(float64(x)/64, float64(z)/64)
	if value > 1 {
		value = 1
	} else if value < -1 {
		value = -1
	}
	return config.GroundLevel + int32(value*float64(config.Amplitude))
}

// buildWall places a one block thick wall at block column x, from the ground up to
// WallHeight blocks above the ground level.
func buildWall(m *voxel.ChunkMap, config WorldConfig, x, maxY, maxZ int32) {
	top := config.GroundLevel + config.WallHeight
	if top > maxY {
		top = maxY
	}
	for z := int32(0); z < maxZ; z++ {
		for y := int32(0); y < top; y++ {
			m.SetBlock(x, y, z, wallBlock)
		}
	}
}
