// Example opens a window showing the labelled coordinate grid.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	cd example && go run .    # shader.vert and shader.frag are read from the working directory
//
// Drag with the left mouse button to orbit and scroll to zoom.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/urfave/cli/v2"

	"github.com/go-theft-auto/labelgrid"
	"github.com/go-theft-auto/labelgrid/backend/opengl"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	app := &cli.App{
		Name:  "labelgrid",
		Usage: "render a 3D grid with glyph labels",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "TOML scene configuration file"},
			&cli.StringFlag{Name: "font", Usage: "TrueType/OpenType font file (default: embedded Go Regular)"},
			&cli.Float64Flag{Name: "font-size", Usage: "glyph size in pixels"},
			&cli.StringFlag{Name: "shader-dir", Usage: "directory holding shader.vert and shader.frag"},
			&cli.BoolFlag{Name: "verbose", Usage: "enable debug logging"},
		},
		Action: func(c *cli.Context) error {
			labelgrid.SetVerbose(c.Bool("verbose"))

			cfg := labelgrid.DefaultConfig()
			if path := c.String("config"); path != "" {
				var err error
				if cfg, err = labelgrid.LoadConfig(path); err != nil {
					return err
				}
			}
			if c.IsSet("font") || c.IsSet("font-size") {
				path := cfg.Font.Path
				if c.IsSet("font") {
					path = c.String("font")
				}
				cfg.Apply(labelgrid.WithFont(path, c.Float64("font-size")))
			}
			if c.IsSet("shader-dir") {
				cfg.Apply(labelgrid.WithShaderDir(c.String("shader-dir")))
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cfg)
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg labelgrid.Config) error {
	// Rasterize before the window exists; font errors are fatal.
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

	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

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

	camera := labelgrid.NewCamera(cfg.Camera)
	input := opengl.NewGLFWCameraAdapter(window, camera)

	for !window.ShouldClose() {
		glfw.PollEvents()

		w, h := input.FramebufferSize()
		if err := renderer.Render(w, h, camera.Snapshot()); err != nil {
			return fmt.Errorf("render: %w", err)
		}

		window.SwapBuffers()
	}

	return nil
}
