package voxel

import "github.com/gammazero/deque"

// ChunkHelper is scratch space for flood filling a single chunk. It is not safe for concurrent use,
// give every worker its own.
type ChunkHelper struct {
	visited []bool
	queue   deque.Deque[int32]
}

func NewChunkHelper() *ChunkHelper {
	return &ChunkHelper{visited: make([]bool, CHUNK_SIZE_CUBED)}
}

func (h *ChunkHelper) Reset() {
	for i := range h.visited {
		h.visited[i] = false
	}
	h.queue.Clear()
}

// floodFill visits the air region containing start and returns a bit set of the faces it touches.
func (h *ChunkHelper) floodFill(data []byte, start int32) uint8 {
	var faces uint8
	h.visited[start] = true
	h.queue.PushBack(start)
	for h.queue.Len() > 0 {
		idx := h.queue.PopFront()
		x := idx % CHUNK_SIZE
		y := (idx / CHUNK_SIZE) % CHUNK_SIZE
		z := idx / CHUNK_SIZE_SQUARED

		if x == 0 {
			faces |= 1 << IndexWest
		}
		if x == CHUNK_SIZE-1 {
			faces |= 1 << IndexEast
		}
		if y == 0 {
			faces |= 1 << IndexDown
		}
		if y == CHUNK_SIZE-1 {
			faces |= 1 << IndexUp
		}
		if z == 0 {
			faces |= 1 << IndexNorth
		}
		if z == CHUNK_SIZE-1 {
			faces |= 1 << IndexSouth
		}

		for _, face := range AllFaces {
			nx, ny, nz := x+face.Normal.X, y+face.Normal.Y, z+face.Normal.Z
			if nx < 0 || nx >= CHUNK_SIZE || ny < 0 || ny >= CHUNK_SIZE || nz < 0 || nz >= CHUNK_SIZE {
				continue
			}
			next := blockIndex(nx, ny, nz)
			if h.visited[next] || data[next] != EMPTY {
				continue
			}
			h.visited[next] = true
			h.queue.PushBack(next)
		}
	}
	return faces
}

// UpdateTraversability recomputes which faces of the chunk are connected through air.
// Passing a nil helper allocates a fresh one.
func (c *Chunk) UpdateTraversability(h *ChunkHelper) {
	if c.data == nil {
		c.SetTraversability(FullyTraversable)
		return
	}
	if h == nil {
		h = NewChunkHelper()
	}
	h.Reset()

	var mask uint64
	for i := int32(0); i < CHUNK_SIZE_CUBED; i++ {
		if c.data[i] != EMPTY || h.visited[i] {
			continue
		}
		mask |= facePairs(h.floodFill(c.data, i))
		if mask == FullyTraversable {
			break
		}
	}
	c.SetTraversability(mask)
}

func facePairs(faces uint8) uint64 {
	var mask uint64
	for a := 0; a < 6; a++ {
		if faces&(1<<a) == 0 {
			continue
		}
		for b := 0; b < 6; b++ {
			if faces&(1<<b) != 0 {
				mask |= 1 << uint(a*6+b)
			}
		}
	}
	return mask
}
