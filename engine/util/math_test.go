package util

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestViewVector(t *testing.T) {
	tests := []struct {
		yaw, pitch float32
		expected   mgl32.Vec3
	}{
		{0, 0, mgl32.Vec3{1, 0, 0}},
		{90, 0, mgl32.Vec3{0, 0, 1}},
		{180, 0, mgl32.Vec3{-1, 0, 0}},
		{0, 90, mgl32.Vec3{0, 1, 0}},
		{0, -90, mgl32.Vec3{0, -1, 0}},
	}
	for _, test := range tests {
		got := ViewVector(test.yaw, test.pitch)
		if !got.ApproxEqualThreshold(test.expected, 1e-5) {
			t.Fatalf("yaw %.0f pitch %.0f: expected %v, got %v", test.yaw, test.pitch, test.expected, got)
		}
	}
}

func TestFloorToInt32(t *testing.T) {
	if FloorToInt32(-0.25) != -1 || FloorToInt32(1.99) != 1 || FloorToInt32(-2) != -2 {
		t.Fatalf("expected rounding towards negative infinity")
	}
}
