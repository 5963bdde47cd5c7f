package voxel

import "sync/atomic"

// FullyTraversable has every enter/exit face pair set.
const FullyTraversable uint64 = 1<<36 - 1

type Chunk struct {
	data      []byte
	chunkPosX int32
	chunkPosY int32
	chunkPosZ int32

	visible atomic.Bool

	// bit enter*6+exit is set if a ray entering through enter may leave through exit
	traversability atomic.Uint64
	isDirty        bool
}

// NewChunk creates an all air chunk. Block storage is allocated on the first SetBlock.
func NewChunk(x, y, z int32) *Chunk {
	c := &Chunk{
		chunkPosX: x,
		chunkPosY: y,
		chunkPosZ: z,
	}
	c.traversability.Store(FullyTraversable)
	return c
}

func blockIndex(i, j, k int32) int32 {
	return i + j*CHUNK_SIZE + k*CHUNK_SIZE_SQUARED
}

func (c *Chunk) Contains(x, y, z int32) bool {
	return x >= 0 && x < CHUNK_SIZE && y >= 0 && y < CHUNK_SIZE && z >= 0 && z < CHUNK_SIZE
}

func (c *Chunk) GetLocalBlock(i, j, k int32) byte {
	if c.data == nil || !c.Contains(i, j, k) {
		return EMPTY
	}
	return c.data[blockIndex(i, j, k)]
}

func (c *Chunk) SetBlock(x, y, z int32, blockID byte) {
	if c.data == nil {
		if blockID == EMPTY {
			return
		}
		c.data = make([]byte, CHUNK_SIZE_CUBED)
	}
	c.data[blockIndex(x, y, z)] = blockID
	c.isDirty = true
}

func (c *Chunk) IsBlockAt(i, j, k int32) bool {
	return c.GetLocalBlock(i, j, k) != EMPTY
}

func (c *Chunk) IsEmpty() bool {
	if c.data == nil {
		return true
	}
	for _, id := range c.data {
		if id != EMPTY {
			return false
		}
	}
	return true
}

func (c *Chunk) SetDirty() {
	c.isDirty = true
}

func (c *Chunk) IsDirty() bool {
	return c.isDirty
}

func (c *Chunk) Position() Int3 {
	return Int3{c.chunkPosX, c.chunkPosY, c.chunkPosZ}
}

func (c *Chunk) SetVisible(visible bool) {
	c.visible.Store(visible)
}

func (c *Chunk) IsVisible() bool {
	return c.visible.Load()
}

// IsTraversable reports whether a ray entering through from may leave through to.
// A nil from means the ray starts inside this chunk.
func (c *Chunk) IsTraversable(from, to *Facing) bool {
	if from == nil {
		return true
	}
	return c.traversability.Load()&traversalBit(from, to) != 0
}

func (c *Chunk) SetTraversable(from, to *Facing, traversable bool) {
	bits := traversalBit(from, to) | traversalBit(to, from)
	for {
		mask := c.traversability.Load()
		next := mask &^ bits
		if traversable {
			next = mask | bits
		}
		if c.traversability.CompareAndSwap(mask, next) {
			return
		}
	}
}

func (c *Chunk) Traversability() uint64 {
	return c.traversability.Load()
}

func (c *Chunk) SetTraversability(mask uint64) {
	c.traversability.Store(mask & FullyTraversable)
	c.isDirty = false
}

func traversalBit(from, to *Facing) uint64 {
	return 1 << uint(from.Index*6+to.Index)
}
