package util

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

func Sin(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

func Cos(x float32) float32 {
	return float32(math.Cos(float64(x)))
}

func ToRadian(angle float32) float32 {
	return mgl32.DegToRad(angle)
}

// ViewVector turns yaw and pitch in degrees into a unit look direction.
// Yaw 0 looks along +X, yaw 90 along +Z, positive pitch looks up.
func ViewVector(yaw, pitch float32) mgl32.Vec3 {
	front := mgl32.Vec3{
		Cos(ToRadian(pitch)) * Cos(ToRadian(yaw)),
		Sin(ToRadian(pitch)),
		Cos(ToRadian(pitch)) * Sin(ToRadian(yaw)),
	}
	return front.Normalize()
}

func FloorToInt32(x float32) int32 {
	return int32(math.Floor(float64(x)))
}
