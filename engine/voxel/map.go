package voxel

import (
	"fmt"
	"sort"
	"sync"

	"github.com/alitto/pond/v2"
	"github.com/memmaker/voxelcull/engine/util"
)

// ChunkMap holds the loaded chunks of a world keyed by their linear chunk index.
// Methods without the Locked suffix take the map lock themselves. The Locked variants
// expect the caller to hold it through Lock/Unlock.
type ChunkMap struct {
	mu     sync.Mutex
	chunks map[int64]*Chunk
	sizeX  int32
	sizeY  int32
	sizeZ  int32
}

func NewChunkMap(sizeX, sizeY, sizeZ int32) *ChunkMap {
	return &ChunkMap{
		chunks: make(map[int64]*Chunk),
		sizeX:  sizeX,
		sizeY:  sizeY,
		sizeZ:  sizeZ,
	}
}

func (m *ChunkMap) ChunkSize() int32 {
	return CHUNK_SIZE
}

func (m *ChunkMap) ChunkMapSizeX() int32 {
	return m.sizeX
}

func (m *ChunkMap) ChunkMapSizeY() int32 {
	return m.sizeY
}

func (m *ChunkMap) ChunkMapSizeZ() int32 {
	return m.sizeZ
}

func (m *ChunkMap) ChunkIndex3D(x, y, z int32) int64 {
	return (int64(y)*int64(m.sizeZ)+int64(z))*int64(m.sizeX) + int64(x)
}

func (m *ChunkMap) ChunkPosFromIndex(index int64) Int3 {
	sizeX := int64(m.sizeX)
	sizeZ := int64(m.sizeZ)
	return Int3{
		X: int32(index % sizeX),
		Y: int32(index / (sizeX * sizeZ)),
		Z: int32((index / sizeX) % sizeZ),
	}
}

func (m *ChunkMap) IsValidChunkPos(x, y, z int32) bool {
	return x >= 0 && x < m.sizeX && y >= 0 && y < m.sizeY && z >= 0 && z < m.sizeZ
}

func (m *ChunkMap) Lock() {
	m.mu.Lock()
}

func (m *ChunkMap) Unlock() {
	m.mu.Unlock()
}

// AddChunk inserts or replaces the chunk at its position. Chunks outside the map are rejected.
func (m *ChunkMap) AddChunk(c *Chunk) bool {
	pos := c.Position()
	if !m.IsValidChunkPos(pos.X, pos.Y, pos.Z) {
		util.LogVoxelError(fmt.Sprintf("[Map] ERR - chunk %s is outside of the map", pos.ToString()))
		return false
	}
	m.mu.Lock()
	m.chunks[m.ChunkIndex3D(pos.X, pos.Y, pos.Z)] = c
	m.mu.Unlock()
	return true
}

func (m *ChunkMap) NewChunk(cX, cY, cZ int32) *Chunk {
	chunk := NewChunk(cX, cY, cZ)
	if !m.AddChunk(chunk) {
		return nil
	}
	return chunk
}

func (m *ChunkMap) RemoveChunk(x, y, z int32) {
	if !m.IsValidChunkPos(x, y, z) {
		return
	}
	m.mu.Lock()
	delete(m.chunks, m.ChunkIndex3D(x, y, z))
	m.mu.Unlock()
}

func (m *ChunkMap) GetChunk(x, y, z int32) *Chunk {
	if !m.IsValidChunkPos(x, y, z) {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chunks[m.ChunkIndex3D(x, y, z)]
}

func (m *ChunkMap) ChunkExists(x, y, z int32) bool {
	return m.GetChunk(x, y, z) != nil
}

func (m *ChunkMap) ChunkCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.chunks)
}

func (m *ChunkMap) ChunkAtIndexLocked(index int64) *Chunk {
	return m.chunks[index]
}

func (m *ChunkMap) ForEachChunkLocked(fn func(chunk *Chunk)) {
	for _, chunk := range m.chunks {
		fn(chunk)
	}
}

func (m *ChunkMap) SetAllVisible(visible bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, chunk := range m.chunks {
		chunk.SetVisible(visible)
	}
}

// VisibleChunks returns the chunks the renderer should draw, ordered by chunk index.
func (m *ChunkMap) VisibleChunks() []*Chunk {
	m.mu.Lock()
	visible := make([]*Chunk, 0, len(m.chunks))
	for _, chunk := range m.chunks {
		if chunk.IsVisible() {
			visible = append(visible, chunk)
		}
	}
	m.mu.Unlock()
	sort.Slice(visible, func(i, j int) bool {
		a, b := visible[i].Position(), visible[j].Position()
		return m.ChunkIndex3D(a.X, a.Y, a.Z) < m.ChunkIndex3D(b.X, b.Y, b.Z)
	})
	return visible
}

func (m *ChunkMap) GetChunkFromBlock(x, y, z int32) *Chunk {
	return m.GetChunk(FloorDiv(x, CHUNK_SIZE), FloorDiv(y, CHUNK_SIZE), FloorDiv(z, CHUNK_SIZE))
}

func (m *ChunkMap) GetGlobalBlock(x, y, z int32) byte {
	chunk := m.GetChunkFromBlock(x, y, z)
	if chunk == nil {
		return EMPTY
	}
	return chunk.GetLocalBlock(x-FloorDiv(x, CHUNK_SIZE)*CHUNK_SIZE, y-FloorDiv(y, CHUNK_SIZE)*CHUNK_SIZE, z-FloorDiv(z, CHUNK_SIZE)*CHUNK_SIZE)
}

func (m *ChunkMap) SetBlock(x, y, z int32, blockID byte) {
	chunk := m.GetChunkFromBlock(x, y, z)
	if chunk == nil {
		return
	}
	chunk.SetBlock(x-FloorDiv(x, CHUNK_SIZE)*CHUNK_SIZE, y-FloorDiv(y, CHUNK_SIZE)*CHUNK_SIZE, z-FloorDiv(z, CHUNK_SIZE)*CHUNK_SIZE, blockID)
}

func (m *ChunkMap) IsSolidBlockAt(x, y, z int32) bool {
	return m.GetGlobalBlock(x, y, z) != EMPTY
}

// UpdateTraversability recomputes the face connectivity of all dirty chunks, spread over workers.
// It returns the number of chunks that were rebuilt.
func (m *ChunkMap) UpdateTraversability(workers int) int {
	if workers < 1 {
		workers = 1
	}
	m.mu.Lock()
	dirty := make([]*Chunk, 0)
	for _, chunk := range m.chunks {
		if chunk.IsDirty() {
			dirty = append(dirty, chunk)
		}
	}
	m.mu.Unlock()
	if len(dirty) == 0 {
		return 0
	}

	helpers := make(chan *ChunkHelper, workers)
	for i := 0; i < workers; i++ {
		helpers <- NewChunkHelper()
	}

	pool := pond.NewPool(workers)
	for _, chunk := range dirty {
		c := chunk
		pool.Submit(func() {
			helper := <-helpers
			c.UpdateTraversability(helper)
			helpers <- helper
		})
	}
	pool.StopAndWait()

	util.LogVoxelDebug(fmt.Sprintf("[Map] Rebuilt traversability of %d chunks", len(dirty)))
	return len(dirty)
}
