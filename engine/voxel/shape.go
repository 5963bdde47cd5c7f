package voxel

// OctagonDistance is the ring a horizontal offset belongs to. The rings for r = 0, 1, 2...
// are disjoint and together fill an octagon, which is the shape of the loaded chunk area.
func OctagonDistance(dx, dz int32) int32 {
	ax, az := Abs(dx), Abs(dz)
	d := ax
	if az > d {
		d = az
	}
	// ceil(2*(ax+az)/3) cuts the corners of the square
	diagonal := (2*(ax+az) + 2) / 3
	if diagonal > d {
		d = diagonal
	}
	return d
}

// OctagonPoints returns the ring of points at octagonal distance r around (cx, cz),
// ordered by z then x.
func OctagonPoints(cx, cz, r int32) []Int2 {
	if r <= 0 {
		return []Int2{{X: cx, Z: cz}}
	}
	points := make([]Int2, 0, 8*r)
	for dz := -r; dz <= r; dz++ {
		for dx := -r; dx <= r; dx++ {
			if OctagonDistance(dx, dz) == r {
				points = append(points, Int2{X: cx + dx, Z: cz + dz})
			}
		}
	}
	return points
}
