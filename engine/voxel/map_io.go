package voxel

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/klauspost/compress/gzip"
	"github.com/memmaker/voxelcull/engine/util"
	"github.com/pkg/errors"
)

// Save writes the map gzip compressed: dimensions, chunk count, then per chunk its position,
// a flag telling whether block data follows and the block ids.
func (m *ChunkMap) Save(w io.Writer) error {
	m.mu.Lock()
	chunks := make([]*Chunk, 0, len(m.chunks))
	for _, chunk := range m.chunks {
		chunks = append(chunks, chunk)
	}
	m.mu.Unlock()
	sort.Slice(chunks, func(i, j int) bool {
		a, b := chunks[i].Position(), chunks[j].Position()
		return m.ChunkIndex3D(a.X, a.Y, a.Z) < m.ChunkIndex3D(b.X, b.Y, b.Z)
	})

	gzipWriter := gzip.NewWriter(w)
	header := []int32{m.sizeX, m.sizeY, m.sizeZ, int32(len(chunks))}
	if err := binary.Write(gzipWriter, binary.LittleEndian, header); err != nil {
		return errors.Wrap(err, "writing map header")
	}
	util.LogIODebug(fmt.Sprintf("[Map] Saving map with dimensions %d %d %d and %d chunks", m.sizeX, m.sizeY, m.sizeZ, len(chunks)))

	for _, chunk := range chunks {
		pos := chunk.Position()
		hasData := byte(0)
		if chunk.data != nil {
			hasData = 1
		}
		if err := binary.Write(gzipWriter, binary.LittleEndian, []int32{pos.X, pos.Y, pos.Z}); err != nil {
			return errors.Wrapf(err, "writing chunk %s", pos.ToString())
		}
		if _, err := gzipWriter.Write([]byte{hasData}); err != nil {
			return errors.Wrapf(err, "writing chunk %s", pos.ToString())
		}
		if hasData == 1 {
			if _, err := gzipWriter.Write(chunk.data); err != nil {
				return errors.Wrapf(err, "writing blocks of chunk %s", pos.ToString())
			}
		}
	}
	return errors.Wrap(gzipWriter.Close(), "closing map writer")
}

func (m *ChunkMap) SaveToDisk(filename string) error {
	outfile, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "creating map file")
	}
	if err := m.Save(outfile); err != nil {
		outfile.Close()
		return err
	}
	return errors.Wrap(outfile.Close(), "closing map file")
}

// LoadChunkMap reads a map written by Save. Traversability is marked dirty for every chunk
// with block data, call UpdateTraversability afterwards.
func LoadChunkMap(r io.Reader) (*ChunkMap, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "opening map stream")
	}
	defer gzipReader.Close()

	var header [4]int32
	if err := binary.Read(gzipReader, binary.LittleEndian, &header); err != nil {
		return nil, errors.Wrap(err, "reading map header")
	}
	if header[0] <= 0 || header[1] <= 0 || header[2] <= 0 || header[3] < 0 {
		return nil, errors.Errorf("invalid map header %v", header)
	}
	m := NewChunkMap(header[0], header[1], header[2])
	util.LogIODebug(fmt.Sprintf("[Map] Loading map with dimensions %d %d %d and %d chunks", header[0], header[1], header[2], header[3]))

	for i := int32(0); i < header[3]; i++ {
		var chunkPos [3]int32
		if err := binary.Read(gzipReader, binary.LittleEndian, &chunkPos); err != nil {
			return nil, errors.Wrapf(err, "reading position of chunk #%d", i)
		}
		var hasData [1]byte
		if _, err := io.ReadFull(gzipReader, hasData[:]); err != nil {
			return nil, errors.Wrapf(err, "reading chunk #%d", i)
		}
		if hasData[0] > 1 {
			return nil, errors.Errorf("invalid data flag %d for chunk #%d", hasData[0], i)
		}
		chunk := NewChunk(chunkPos[0], chunkPos[1], chunkPos[2])
		if hasData[0] == 1 {
			chunk.data = make([]byte, CHUNK_SIZE_CUBED)
			if _, err := io.ReadFull(gzipReader, chunk.data); err != nil {
				return nil, errors.Wrapf(err, "reading blocks of chunk #%d", i)
			}
			chunk.SetDirty()
		}
		if !m.AddChunk(chunk) {
			return nil, errors.Errorf("chunk %s is outside of the map", chunk.Position().ToString())
		}
	}
	return m, nil
}

func LoadChunkMapFromDisk(filename string) (*ChunkMap, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "opening map file")
	}
	defer file.Close()
	m, err := LoadChunkMap(file)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", filename)
	}
	return m, nil
}
