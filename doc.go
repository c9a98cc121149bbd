/*
Package labelgrid renders a 3D coordinate box with glyph-textured labels and
an orbit camera driven by the mouse.

# Overview

The root package holds everything that does not need a GPU: grid geometry,
glyph rasterization, text quad layout, the camera state machine and its
matrices, and configuration. The backend/opengl package turns those into
OpenGL buffers, textures and draw calls, and wires GLFW input to the camera.

# Quick Start

	cfg := labelgrid.DefaultConfig()
	glyphs, _ := labelgrid.LoadGlyphs(cfg.Font.Path, cfg.Font.PixelSize)
	camera := labelgrid.NewCamera(cfg.Camera)

	// After the GL context is current:
	opengl.UploadGlyphs(glyphs)
	program, _ := opengl.NewProgram(vertexSrc, fragmentSrc)
	renderer, _ := opengl.NewRenderer(program, glyphs, cfg)
	defer renderer.Delete()
	input := opengl.NewGLFWCameraAdapter(window, camera)

	for !window.ShouldClose() {
	    glfw.PollEvents()
	    w, h := input.FramebufferSize()
	    renderer.Render(w, h, camera.Snapshot())
	    window.SwapBuffers()
	}

# Grid

GenerateGrid emits line-list vertices, six floats each (position.xyz,
color.rgb). The floor is divided into numGridlines cells along X and Z, the
three axes are drawn green (Y), red (X) and blue (Z), the remaining cube
edges gray, and a small legend mark sits half a cell in from the +X/-Z
corner.

# Text

Each character in [0, 128) is rasterized once into its own single-channel
bitmap (see RasterizeGlyphs). TextBatch lays out a Label as one quad per
character, eight floats per vertex (position.xyz, color.rgb, uv.xy), drawn
with QuadIndices. The pen only moves along +X; there is no kerning or
wrapping.

# Camera Controls

	Left drag        Yaw (horizontal) and pitch (vertical), pitch clamped to [-89, 89]
	Mouse Wheel      Zoom, clamped to [0.5, 10]

The view matrix keeps the eye on the +Z axis at distance Zoom; yaw, pitch and
roll rotate the model. The projection aspect is fixed at 800/600.
*/
package labelgrid
