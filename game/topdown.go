package game

import (
	"io"
	"os"
	"strings"

	"github.com/memmaker/voxelcull/engine/voxel"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

const (
	cellViewer  = '@'
	cellVisible = '#'
	cellHidden  = '.'
	cellMissing = ' '
)

// TerminalWidth is the column count of stdout, 80 when it is not a terminal.
func TerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 80
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// RenderTopDown prints the chunk layer y of the map, one character per chunk and one row
// per z. Columns that do not fit into width are cut off around the viewer.
func RenderTopDown(w io.Writer, world *voxel.ChunkMap, y int32, viewer voxel.Int3, width int) error {
	fromX, toX := int32(0), world.ChunkMapSizeX()
	if width > 0 && toX > int32(width) {
		fromX = viewer.X - int32(width)/2
		if fromX < 0 {
			fromX = 0
		}
		if fromX+int32(width) > toX {
			fromX = toX - int32(width)
		}
		toX = fromX + int32(width)
	}

	var sb strings.Builder
	for z := int32(0); z < world.ChunkMapSizeZ(); z++ {
		for x := fromX; x < toX; x++ {
			sb.WriteRune(topDownCell(world, voxel.Int3{X: x, Y: y, Z: z}, viewer))
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return errors.Wrap(err, "writing top down view")
}

func topDownCell(world *voxel.ChunkMap, pos, viewer voxel.Int3) rune {
	if pos == viewer {
		return cellViewer
	}
	chunk := world.GetChunk(pos.X, pos.Y, pos.Z)
	switch {
	case chunk == nil:
		return cellMissing
	case chunk.IsVisible():
		return cellVisible
	default:
		return cellHidden
	}
}
