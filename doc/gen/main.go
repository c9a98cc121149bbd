// Command gen renders the demo scene from a few camera poses, captures
// framebuffer pixels, and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/labelgrid"
	"github.com/go-theft-auto/labelgrid/backend/opengl"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot defines a single camera pose to capture.
type screenshot struct {
	name   string                // filename without extension
	camera labelgrid.CameraState // pose to render
}

func run() error {
	cfg := labelgrid.DefaultConfig()
	cfg.Apply(labelgrid.WithShaderDir("example"))

	glyphs, err := labelgrid.LoadGlyphs(cfg.Font.Path, cfg.Font.PixelSize)
	if err != nil {
		return err
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	opengl.UploadGlyphs(glyphs)
	defer opengl.DeleteGlyphTextures(glyphs)

	program, err := opengl.NewProgram(
		opengl.LoadShaderSource(filepath.Join(cfg.ShaderDir, "shader.vert")),
		opengl.LoadShaderSource(filepath.Join(cfg.ShaderDir, "shader.frag")),
	)
	if err != nil {
		return fmt.Errorf("shader: %w", err)
	}

	renderer, err := opengl.NewRenderer(program, glyphs, cfg)
	if err != nil {
		program.Delete()
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	width, height := window.GetFramebufferSize()

	for _, s := range shots {
		if err := capture(renderer, s, width, height, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, width, height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(renderer *opengl.Renderer, s screenshot, width, height int, outDir string) error {
	if err := renderer.Render(width, height, s.camera); err != nil {
		return err
	}
	gl.Finish()

	// Read pixels
	pixels := make([]byte, width*height*4)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < height/2; y++ {
		top := y * rowLen
		bot := (height - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels)

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

// buildScreenshots returns the camera poses to capture.
func buildScreenshots() []screenshot {
	def := labelgrid.DefaultCameraState()

	top := def
	top.Pitch = labelgrid.MaxPitch

	front := def
	front.Yaw, front.Pitch = 0, 0

	far := def
	far.Zoom = 8

	return []screenshot{
		{name: "default", camera: def},
		{name: "top", camera: top},
		{name: "front", camera: front},
		{name: "far", camera: far},
	}
}
