package labelgrid

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera limits and sensitivities.
const (
	MinPitch = -89.0
	MaxPitch = 89.0
	MinZoom  = 0.5
	MaxZoom  = 10.0

	ScrollSensitivity = 0.1
	DragSensitivity   = 0.5
)

// Projection parameters. The aspect ratio is fixed to the initial window
// size and is not recomputed when the framebuffer is resized.
const (
	FieldOfView      = 45.0
	ProjectionAspect = float32(800) / 600
	NearPlane        = 0.1
	FarPlane         = 100.0
)

// MouseButton identifies a pointer button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// CameraState is the orbit camera pose. Angles are in degrees.
type CameraState struct {
	Yaw   float32 `toml:"yaw"`
	Pitch float32 `toml:"pitch"`
	Roll  float32 `toml:"roll"`
	Zoom  float32 `toml:"zoom"`
}

// DefaultCameraState returns the initial pose of the demo scene.
func DefaultCameraState() CameraState {
	return CameraState{Yaw: 35, Pitch: 15, Roll: 0, Zoom: 4}
}

// Projection returns the perspective projection matrix.
func (s CameraState) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(FieldOfView), ProjectionAspect, NearPlane, FarPlane)
}

// View returns the view matrix. The eye sits on +Z at distance Zoom looking at
// the origin; yaw and pitch rotate the model instead of the eye.
func (s CameraState) View() mgl32.Mat4 {
	return mgl32.LookAtV(mgl32.Vec3{0, 0, s.Zoom}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
}

// Model returns the world rotation: roll is applied first, then pitch, then yaw.
func (s CameraState) Model() mgl32.Mat4 {
	yaw := mgl32.HomogRotate3DY(mgl32.DegToRad(s.Yaw))
	pitch := mgl32.HomogRotate3DX(mgl32.DegToRad(s.Pitch))
	roll := mgl32.HomogRotate3DZ(mgl32.DegToRad(s.Roll))
	return yaw.Mul4(pitch).Mul4(roll)
}

// Camera is the mouse driven orbit controller.
//
// Events and frame rendering are expected on the same thread (GLFW delivers
// callbacks from PollEvents), so Camera does no locking. Renderers read a
// Snapshot at the start of each frame.
type Camera struct {
	state    CameraState
	dragging bool
	lastX    float32
	lastY    float32
}

// NewCamera creates a camera at the given pose. Pitch and zoom are clamped.
func NewCamera(state CameraState) *Camera {
	state.Pitch = mgl32.Clamp(state.Pitch, MinPitch, MaxPitch)
	state.Zoom = mgl32.Clamp(state.Zoom, MinZoom, MaxZoom)
	return &Camera{state: state}
}

// Snapshot returns a copy of the current pose.
func (c *Camera) Snapshot() CameraState {
	return c.state
}

// Dragging reports whether the left button is held.
func (c *Camera) Dragging() bool {
	return c.dragging
}

// Scroll zooms in for positive dy and out for negative dy.
func (c *Camera) Scroll(dy float32) {
	c.state.Zoom = mgl32.Clamp(c.state.Zoom-dy*ScrollSensitivity, MinZoom, MaxZoom)
}

// PointerDown starts a drag when the left button is pressed.
func (c *Camera) PointerDown(button MouseButton, x, y float32) {
	if button != MouseButtonLeft {
		return
	}
	c.dragging = true
	c.lastX, c.lastY = x, y
}

// PointerUp ends a drag when the left button is released.
func (c *Camera) PointerUp(button MouseButton) {
	if button == MouseButtonLeft {
		c.dragging = false
	}
}

// PointerMove orbits the camera while dragging. Moves without a drag are ignored.
func (c *Camera) PointerMove(x, y float32) {
	if !c.dragging {
		return
	}
	dx := x - c.lastX
	dy := y - c.lastY
	c.lastX, c.lastY = x, y

	c.state.Yaw += dx * DragSensitivity
	c.state.Pitch = mgl32.Clamp(c.state.Pitch-dy*DragSensitivity, MinPitch, MaxPitch)
}
