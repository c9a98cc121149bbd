package labelgrid

import (
	"github.com/go-gl/mathgl/mgl32"
)

// QuadStride is the number of floats per text vertex: position.xyz, color.rgb, uv.xy.
const QuadStride = 8

// QuadVertices is the number of vertices in one glyph quad.
const QuadVertices = 4

// QuadIndices draws one glyph quad as two triangles.
var QuadIndices = [6]uint32{0, 1, 2, 2, 3, 0}

// Label is a string drawn in world space.
// Position is the pen origin on the baseline; Scale converts glyph pixels to world units.
type Label struct {
	Text     string     `toml:"text"`
	Position mgl32.Vec3 `toml:"position"`
	Color    mgl32.Vec3 `toml:"color"`
	Scale    float32    `toml:"scale"`
}

// DefaultLabels returns the axis labels of the demo scene.
func DefaultLabels() []Label {
	gray := mgl32.Vec3{0.6, 0.6, 0.6}
	return []Label{
		{Text: "0", Position: mgl32.Vec3{1.05, -0.1, 0.95}, Color: gray, Scale: 0.02},
		{Text: "pix", Position: mgl32.Vec3{1.05, -0.1, 0.0}, Color: gray, Scale: 0.02},
		{Text: "0", Position: mgl32.Vec3{-0.95, -0.1, 1.05}, Color: gray, Scale: 0.02},
		{Text: "pix", Position: mgl32.Vec3{0.00, -0.1, 1.05}, Color: gray, Scale: 0.02},
	}
}

// TextBatch accumulates glyph quads for upload. Reset and reuse it between
// strings to avoid per-frame allocations.
type TextBatch struct {
	// Vertices holds QuadVertices*QuadStride floats per glyph.
	Vertices []float32
	// Glyphs holds the glyph of each quad, in the same order.
	Glyphs []*Glyph
}

// NewTextBatch returns a batch with room for capacity glyphs.
func NewTextBatch(capacity int) *TextBatch {
	return &TextBatch{
		Vertices: make([]float32, 0, capacity*QuadVertices*QuadStride),
		Glyphs:   make([]*Glyph, 0, capacity),
	}
}

// Reset empties the batch, keeping its storage.
func (b *TextBatch) Reset() {
	b.Vertices = b.Vertices[:0]
	b.Glyphs = b.Glyphs[:0]
}

// Len returns the number of quads in the batch.
func (b *TextBatch) Len() int {
	return len(b.Glyphs)
}

// Quad returns the vertices of quad i.
func (b *TextBatch) Quad(i int) []float32 {
	n := QuadVertices * QuadStride
	return b.Vertices[i*n : (i+1)*n]
}

// Add lays out l and appends one quad per character.
//
// The pen starts at l.Position and moves along +X by each glyph's advance.
// There is no kerning, wrapping or vertical advance. Characters outside the
// glyph set are skipped and do not move the pen.
func (b *TextBatch) Add(set *GlyphSet, l Label) {
	x, y, z := l.Position[0], l.Position[1], l.Position[2]
	r, g, bl := l.Color[0], l.Color[1], l.Color[2]
	s := l.Scale

	for _, ch := range l.Text {
		glyph, ok := set.Lookup(ch)
		if !ok {
			logger.Debug("skipping character outside glyph set", "char", ch)
			continue
		}

		xpos := x + float32(glyph.BearingX)*s
		ypos := y - float32(glyph.Height-glyph.BearingY)*s
		w := float32(glyph.Width) * s
		h := float32(glyph.Height) * s

		b.Vertices = append(b.Vertices,
			xpos, ypos+h, z, r, g, bl, 0, 0,
			xpos, ypos, z, r, g, bl, 0, 1,
			xpos+w, ypos, z, r, g, bl, 1, 1,
			xpos+w, ypos+h, z, r, g, bl, 1, 0,
		)
		b.Glyphs = append(b.Glyphs, glyph)

		x += float32(glyph.Advance) * s
	}
}

// MeasureText returns the pen advance of text at scale, in world units.
func MeasureText(set *GlyphSet, text string, scale float32) float32 {
	var w float32
	for _, ch := range text {
		if glyph, ok := set.Lookup(ch); ok {
			w += float32(glyph.Advance) * scale
		}
	}
	return w
}
