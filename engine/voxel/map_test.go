package voxel

import "testing"

func TestChunkIndexIsBijective(t *testing.T) {
	m := NewChunkMap(5, 3, 7)
	seen := make(map[int64]Int3)
	for x := int32(0); x < 5; x++ {
		for y := int32(0); y < 3; y++ {
			for z := int32(0); z < 7; z++ {
				pos := Int3{x, y, z}
				index := m.ChunkIndex3D(x, y, z)
				if other, ok := seen[index]; ok {
					t.Fatalf("index %d used by %s and %s", index, other.ToString(), pos.ToString())
				}
				seen[index] = pos
				if decoded := m.ChunkPosFromIndex(index); decoded != pos {
					t.Fatalf("expected %s, got %s", pos.ToString(), decoded.ToString())
				}
			}
		}
	}
	if len(seen) != 5*3*7 {
		t.Fatalf("expected %d indices, got %d", 5*3*7, len(seen))
	}
}

func TestChunkIndexFormula(t *testing.T) {
	m := NewChunkMap(10, 4, 6)
	if got := m.ChunkIndex3D(2, 3, 5); got != (3*6+5)*10+2 {
		t.Fatalf("expected %d, got %d", (3*6+5)*10+2, got)
	}
}

func TestAddChunkRejectsOutsidePositions(t *testing.T) {
	m := NewChunkMap(2, 2, 2)
	if m.NewChunk(2, 0, 0) != nil || m.NewChunk(0, -1, 0) != nil {
		t.Fatalf("expected chunks outside of the map to be rejected")
	}
	if m.NewChunk(1, 1, 1) == nil || m.ChunkCount() != 1 {
		t.Fatalf("expected one chunk in the map, got %d", m.ChunkCount())
	}
	m.RemoveChunk(1, 1, 1)
	if m.ChunkExists(1, 1, 1) {
		t.Fatalf("expected chunk to be removed")
	}
}

func TestGlobalBlockAccess(t *testing.T) {
	m := NewChunkMap(2, 2, 2)
	m.NewChunk(1, 0, 1)
	m.SetBlock(40, 3, 63, 7)
	if got := m.GetGlobalBlock(40, 3, 63); got != 7 {
		t.Fatalf("expected block 7, got %d", got)
	}
	if local := m.GetChunk(1, 0, 1).GetLocalBlock(8, 3, 31); local != 7 {
		t.Fatalf("expected local block 7, got %d", local)
	}
	if m.GetChunkFromBlock(-1, 0, 0) != nil {
		t.Fatalf("block -1 belongs to chunk -1 which is outside of the map")
	}
	if !m.GetChunk(1, 0, 1).IsDirty() {
		t.Fatalf("expected SetBlock to mark the chunk dirty")
	}
}

func TestVisibleChunksSortedByIndex(t *testing.T) {
	m := NewChunkMap(3, 3, 3)
	for _, pos := range []Int3{{2, 2, 2}, {0, 0, 0}, {1, 0, 2}, {2, 1, 0}} {
		m.NewChunk(pos.X, pos.Y, pos.Z).SetVisible(true)
	}
	m.NewChunk(1, 1, 1)

	visible := m.VisibleChunks()
	if len(visible) != 4 {
		t.Fatalf("expected 4 visible chunks, got %d", len(visible))
	}
	for i := 1; i < len(visible); i++ {
		a, b := visible[i-1].Position(), visible[i].Position()
		if m.ChunkIndex3D(a.X, a.Y, a.Z) >= m.ChunkIndex3D(b.X, b.Y, b.Z) {
			t.Fatalf("chunks out of order: %s before %s", a.ToString(), b.ToString())
		}
	}
}

func TestFloorDiv(t *testing.T) {
	tests := [][3]int32{{0, 32, 0}, {31, 32, 0}, {32, 32, 1}, {-1, 32, -1}, {-32, 32, -1}, {-33, 32, -2}}
	for _, test := range tests {
		if got := FloorDiv(test[0], test[1]); got != test[2] {
			t.Fatalf("FloorDiv(%d, %d): expected %d, got %d", test[0], test[1], test[2], got)
		}
	}
}
