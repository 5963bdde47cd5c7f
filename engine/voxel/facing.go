package voxel

import "github.com/go-gl/mathgl/mgl64"

// Facing is one of the six axis aligned sides of a unit cube.
type Facing struct {
	Index       int
	Name        string
	Normal      Int3
	PlaneCenter mgl64.Vec3
	opposite    int
}

const (
	IndexNorth = iota
	IndexEast
	IndexSouth
	IndexWest
	IndexUp
	IndexDown
)

var (
	North = &Facing{Index: IndexNorth, Name: "north", Normal: Int3{Z: -1}, PlaneCenter: mgl64.Vec3{0.5, 0.5, 0}, opposite: IndexSouth}
	East  = &Facing{Index: IndexEast, Name: "east", Normal: Int3{X: 1}, PlaneCenter: mgl64.Vec3{1, 0.5, 0.5}, opposite: IndexWest}
	South = &Facing{Index: IndexSouth, Name: "south", Normal: Int3{Z: 1}, PlaneCenter: mgl64.Vec3{0.5, 0.5, 1}, opposite: IndexNorth}
	West  = &Facing{Index: IndexWest, Name: "west", Normal: Int3{X: -1}, PlaneCenter: mgl64.Vec3{0, 0.5, 0.5}, opposite: IndexEast}
	Up    = &Facing{Index: IndexUp, Name: "up", Normal: Int3{Y: 1}, PlaneCenter: mgl64.Vec3{0.5, 1, 0.5}, opposite: IndexDown}
	Down  = &Facing{Index: IndexDown, Name: "down", Normal: Int3{Y: -1}, PlaneCenter: mgl64.Vec3{0.5, 0, 0.5}, opposite: IndexUp}
)

// AllFaces is ordered; code that picks the first matching face relies on it.
var AllFaces = [6]*Facing{North, East, South, West, Up, Down}

func (f *Facing) Opposite() *Facing {
	return AllFaces[f.opposite]
}

func (f *Facing) NormalVec3d() mgl64.Vec3 {
	return f.Normal.ToVec3d()
}

func (f *Facing) String() string {
	return f.Name
}
