package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/labelgrid"
)

// GLFWCameraAdapter forwards GLFW pointer input to a labelgrid.Camera and
// tracks the framebuffer size.
//
// GLFW runs callbacks inside glfw.PollEvents on the main thread, the same
// thread that renders, so camera updates never race with a frame.
type GLFWCameraAdapter struct {
	window *glfw.Window
	camera *labelgrid.Camera

	fbWidth, fbHeight int
}

// NewGLFWCameraAdapter installs the scroll, mouse button, cursor position and
// framebuffer size callbacks on window.
func NewGLFWCameraAdapter(window *glfw.Window, camera *labelgrid.Camera) *GLFWCameraAdapter {
	a := &GLFWCameraAdapter{
		window: window,
		camera: camera,
	}
	a.fbWidth, a.fbHeight = window.GetFramebufferSize()

	window.SetScrollCallback(a.scrollCallback)
	window.SetMouseButtonCallback(a.mouseButtonCallback)
	window.SetCursorPosCallback(a.cursorPosCallback)
	window.SetFramebufferSizeCallback(a.framebufferSizeCallback)

	return a
}

// Camera returns the driven camera.
func (a *GLFWCameraAdapter) Camera() *labelgrid.Camera {
	return a.camera
}

// FramebufferSize returns the last reported framebuffer size in pixels.
func (a *GLFWCameraAdapter) FramebufferSize() (int, int) {
	return a.fbWidth, a.fbHeight
}

func (a *GLFWCameraAdapter) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	a.camera.Scroll(float32(yoff))
}

func (a *GLFWCameraAdapter) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	b, ok := glfwMouseButton(button)
	if !ok {
		return
	}

	switch action {
	case glfw.Press:
		x, y := w.GetCursorPos()
		a.camera.PointerDown(b, float32(x), float32(y))
	case glfw.Release:
		a.camera.PointerUp(b)
	}
}

func (a *GLFWCameraAdapter) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	a.camera.PointerMove(float32(xpos), float32(ypos))
}

func (a *GLFWCameraAdapter) framebufferSizeCallback(w *glfw.Window, width, height int) {
	a.fbWidth, a.fbHeight = width, height
	logger().Debug("framebuffer resized", "width", width, "height", height)
}

// glfwMouseButton maps GLFW mouse buttons to camera buttons.
func glfwMouseButton(button glfw.MouseButton) (labelgrid.MouseButton, bool) {
	switch button {
	case glfw.MouseButtonLeft:
		return labelgrid.MouseButtonLeft, true
	case glfw.MouseButtonRight:
		return labelgrid.MouseButtonRight, true
	case glfw.MouseButtonMiddle:
		return labelgrid.MouseButtonMiddle, true
	default:
		return 0, false
	}
}
