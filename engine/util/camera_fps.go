package util

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// FPSCamera is the viewer state the culler needs: a world position, yaw and pitch in degrees
// and a vertical field of view in degrees.
type FPSCamera struct {
	position        mgl32.Vec3
	cameraFront     mgl32.Vec3
	rotatex         float32
	rotatey         float32
	fov             float32
	lookSensitivity float32
}

func NewFPSCamera(pos mgl32.Vec3, fov float32, sensitivity float32) *FPSCamera {
	f := &FPSCamera{
		position:        pos,
		fov:             fov,
		lookSensitivity: sensitivity,
	}
	f.updateTransform()
	return f
}

func (c *FPSCamera) GetPosition() mgl32.Vec3 {
	return c.position
}

func (c *FPSCamera) SetPosition(pos mgl32.Vec3) {
	c.position = pos
}

func (c *FPSCamera) GetFront() mgl32.Vec3 {
	return c.cameraFront
}

// GetRotation returns yaw and pitch in degrees.
func (c *FPSCamera) GetRotation() (float32, float32) {
	return c.rotatex, c.rotatey
}

func (c *FPSCamera) Reposition(pos mgl32.Vec3, rotX float32, rotY float32) {
	c.position = pos
	c.rotatex = rotX
	c.rotatey = rotY
	c.updateTransform()
}

// ChangeAngles is the mouse look input, dx turns and dy tilts.
func (c *FPSCamera) ChangeAngles(dx, dy float32) {
	c.rotatex += dx * c.lookSensitivity
	c.rotatey += dy * c.lookSensitivity
	c.updateTransform()
}

func (c *FPSCamera) MoveForward(delta float32) {
	c.position = c.position.Add(c.cameraFront.Mul(delta))
}

func (c *FPSCamera) SetLookTarget(position mgl32.Vec3) {
	front := position.Sub(c.position).Normalize()
	c.rotatex = mgl32.RadToDeg(float32(math.Atan2(float64(front.Z()), float64(front.X()))))
	c.rotatey = mgl32.RadToDeg(float32(math.Asin(float64(front.Y()))))
	c.updateTransform()
}

func (c *FPSCamera) SetFOV(fov float32) {
	c.fov = fov
}

func (c *FPSCamera) GetFOV() float32 {
	return c.fov
}

func (c *FPSCamera) updateTransform() {
	if c.rotatey > 89 {
		c.rotatey = 89
	}
	if c.rotatey < -89 {
		c.rotatey = -89
	}
	c.rotatex = float32(math.Mod(float64(c.rotatex), 360))
	c.cameraFront = ViewVector(c.rotatex, c.rotatey)
}

func (c *FPSCamera) DebugAim() string {
	return fmt.Sprintf("Pos: (%0.2f, %0.2f, %0.2f) Aim: (%0.2f, %0.2f)", c.position.X(), c.position.Y(), c.position.Z(), c.rotatex, c.rotatey)
}
