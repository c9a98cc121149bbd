// Package opengl provides the OpenGL 4.1 backend for labelgrid: GPU buffer
// and shader wrappers, glyph textures, the frame renderer and GLFW input wiring.
package opengl

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/labelgrid"
)

// Vertex attribute slots shared by the grid and text layouts.
const (
	attribPosition = 0
	attribColor    = 1
	attribTexCoord = 2
)

// MaxLabelGlyphs is the number of glyph quads the label buffer holds.
// Longer strings are drawn in several uploads.
const MaxLabelGlyphs = 64

// Uniform names expected in the shader program.
const (
	uniformModel        = "model"
	uniformView         = "view"
	uniformProjection   = "projection"
	uniformIsTextured   = "isTextured"
	uniformGlyphTexture = "glyphTexture"
)

func logger() *slog.Logger { return labelgrid.Logger() }

// Renderer draws the grid and labels of one scene.
type Renderer struct {
	program *Program
	glyphs  *labelgrid.GlyphSet
	labels  []labelgrid.Label

	gridVBO   *Buffer
	gridVAO   *VertexArray
	gridCount int32

	labelVBO *Buffer
	labelEBO *Buffer
	labelVAO *VertexArray
	batch    *labelgrid.TextBatch
}

// NewRenderer builds the static grid geometry and the streaming label
// buffers. The glyph set must already be uploaded with UploadGlyphs.
// The renderer takes ownership of program.
func NewRenderer(program *Program, glyphs *labelgrid.GlyphSet, cfg labelgrid.Config) (*Renderer, error) {
	if program == nil {
		return nil, fmt.Errorf("nil shader program")
	}
	if glyphs == nil {
		return nil, fmt.Errorf("nil glyph set")
	}

	r := &Renderer{
		program: program,
		glyphs:  glyphs,
		labels:  cfg.Labels,
		batch:   labelgrid.NewTextBatch(MaxLabelGlyphs),
	}

	// Grid: static line list, position + color.
	grid := labelgrid.GenerateGrid(cfg.Grid.FillPercent, cfg.Grid.Lines)
	if len(grid) == 0 {
		return nil, fmt.Errorf("empty grid (fill %v, lines %d)", cfg.Grid.FillPercent, cfg.Grid.Lines)
	}
	r.gridCount = int32(len(grid) / labelgrid.GridStride)
	r.gridVBO = NewBuffer(grid, ArrayBuffer, StaticDraw)
	r.gridVAO = NewVertexArray(r.gridVBO, nil)
	r.gridVAO.Attribute(attribPosition, 3, gl.FLOAT, labelgrid.GridStride, 0)
	r.gridVAO.Attribute(attribColor, 3, gl.FLOAT, labelgrid.GridStride, 3)
	r.gridVAO.Unbind()

	// Labels: streaming quads, position + color + uv, one fixed index list.
	quadFloats := labelgrid.QuadVertices * labelgrid.QuadStride
	r.labelVBO = NewBufferSize(MaxLabelGlyphs*quadFloats*4, ArrayBuffer, StreamDraw)
	r.labelVAO = NewVertexArray(r.labelVBO, nil)
	r.labelVAO.Attribute(attribPosition, 3, gl.FLOAT, labelgrid.QuadStride, 0)
	r.labelVAO.Attribute(attribColor, 3, gl.FLOAT, labelgrid.QuadStride, 3)
	r.labelVAO.Attribute(attribTexCoord, 2, gl.FLOAT, labelgrid.QuadStride, 6)
	r.labelEBO = NewBuffer(labelgrid.QuadIndices[:], ElementBuffer, StaticDraw)
	r.labelVAO.Unbind()

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	cc := cfg.ClearColor
	gl.ClearColor(cc[0], cc[1], cc[2], cc[3])
	gl.ClearStencil(0)
	gl.ClearDepth(1.0)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	logger().Debug("renderer ready",
		"gridVertices", r.gridCount,
		"labels", len(r.labels),
		"labelCapacity", MaxLabelGlyphs)

	return r, nil
}

// GridVertexCount returns the number of grid vertices drawn each frame.
func (r *Renderer) GridVertexCount() int { return int(r.gridCount) }

// SetLabels replaces the labels drawn each frame.
func (r *Renderer) SetLabels(labels []labelgrid.Label) {
	r.labels = labels
}

// Render draws one frame into a width x height viewport.
//
// The projection keeps its fixed aspect; a resized window only changes the viewport.
func (r *Renderer) Render(width, height int, cam labelgrid.CameraState) error {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)

	r.program.Use()
	if err := r.program.SetMatrix4(uniformModel, cam.Model()); err != nil {
		return err
	}
	if err := r.program.SetMatrix4(uniformView, cam.View()); err != nil {
		return err
	}
	if err := r.program.SetMatrix4(uniformProjection, cam.Projection()); err != nil {
		return err
	}

	gl.LineWidth(1.0)
	if err := r.program.SetInt(uniformIsTextured, 0); err != nil {
		return err
	}
	r.gridVAO.Bind()
	gl.DrawArrays(gl.LINES, 0, r.gridCount)

	if err := r.program.SetInt(uniformIsTextured, 1); err != nil {
		return err
	}
	if err := r.program.SetInt(uniformGlyphTexture, 0); err != nil {
		return err
	}
	for _, l := range r.labels {
		r.drawLabel(l)
	}

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

// drawLabel uploads the quads of l in chunks of MaxLabelGlyphs and issues one
// indexed draw per glyph with that glyph's texture bound.
func (r *Renderer) drawLabel(l labelgrid.Label) {
	r.batch.Reset()
	r.batch.Add(r.glyphs, l)
	if r.batch.Len() == 0 {
		return
	}

	quadFloats := labelgrid.QuadVertices * labelgrid.QuadStride
	r.labelVAO.Bind()
	r.labelEBO.Bind()
	gl.ActiveTexture(gl.TEXTURE0)

	for start := 0; start < r.batch.Len(); start += MaxLabelGlyphs {
		end := min(start+MaxLabelGlyphs, r.batch.Len())
		UploadRange(r.labelVBO, 0, r.batch.Vertices[start*quadFloats:end*quadFloats])

		for i := start; i < end; i++ {
			gl.BindTexture(gl.TEXTURE_2D, r.batch.Glyphs[i].Texture)
			gl.DrawElementsBaseVertexWithOffset(
				gl.TRIANGLES,
				int32(len(labelgrid.QuadIndices)),
				gl.UNSIGNED_INT,
				0,
				int32((i-start)*labelgrid.QuadVertices),
			)
		}
	}
}

// Delete releases the GPU resources owned by the renderer, including the
// shader program. Glyph textures belong to the caller. Safe to call twice.
func (r *Renderer) Delete() {
	r.labelVAO.Delete()
	r.labelEBO.Delete()
	r.labelVBO.Delete()
	r.gridVAO.Delete()
	r.gridVBO.Delete()
	r.program.Delete()
}
