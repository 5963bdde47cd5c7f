package util

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestFPSCameraClampsPitch(t *testing.T) {
	camera := NewFPSCamera(mgl32.Vec3{}, 70, 1)
	camera.ChangeAngles(0, 200)
	if _, pitch := camera.GetRotation(); pitch != 89 {
		t.Fatalf("expected pitch clamped to 89, got %f", pitch)
	}
	camera.ChangeAngles(0, -500)
	if _, pitch := camera.GetRotation(); pitch != -89 {
		t.Fatalf("expected pitch clamped to -89, got %f", pitch)
	}
}

func TestFPSCameraSetLookTarget(t *testing.T) {
	camera := NewFPSCamera(mgl32.Vec3{10, 5, 10}, 70, 1)
	camera.SetLookTarget(mgl32.Vec3{10, 5, 30})
	if !camera.GetFront().ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-5) {
		t.Fatalf("expected to look along +Z, got %v", camera.GetFront())
	}
	yaw, pitch := camera.GetRotation()
	if mgl32.Abs(yaw-90) > 1e-3 || mgl32.Abs(pitch) > 1e-3 {
		t.Fatalf("expected yaw 90 and pitch 0, got %f and %f", yaw, pitch)
	}
}

func TestFPSCameraMoveForward(t *testing.T) {
	camera := NewFPSCamera(mgl32.Vec3{0, 0, 0}, 70, 1)
	camera.MoveForward(32)
	if !camera.GetPosition().ApproxEqualThreshold(mgl32.Vec3{32, 0, 0}, 1e-4) {
		t.Fatalf("expected to move one chunk along +X, got %v", camera.GetPosition())
	}
}

func TestTimerStatistics(t *testing.T) {
	timer := NewTimer()
	for i := 0; i < 3; i++ {
		stop := timer.Start("cull")
		stop()
	}
	state := timer.GetState("cull")
	if state == nil || state.executionCount != 3 {
		t.Fatalf("expected 3 recorded runs")
	}
	if state.minDuration > state.maxDuration || state.AverageDuration() < 0 {
		t.Fatalf("inconsistent timer state: %s", state)
	}
}
