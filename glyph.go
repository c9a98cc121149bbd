package labelgrid

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// GlyphCount is the size of the rasterized character set: codes [0, 128).
const GlyphCount = 128

// DefaultPixelSize is the glyph height in pixels used when none is configured.
const DefaultPixelSize = 20

// Glyph is one rasterized character.
type Glyph struct {
	// Texture is the GPU texture holding Bitmap. Zero until uploaded by a backend.
	Texture uint32

	Width    int // bitmap width in pixels
	Height   int // bitmap rows
	BearingX int // pen position to left edge of the bitmap
	BearingY int // baseline to top edge of the bitmap, positive up
	Advance  int // horizontal pen advance in whole pixels

	// Bitmap is Width*Height coverage bytes, row-major, top row first.
	Bitmap []byte
}

// GlyphSet holds one Glyph per character code in [0, GlyphCount).
// It is built once and read-only afterwards.
type GlyphSet struct {
	PixelSize float64
	glyphs    [GlyphCount]Glyph
}

// Len returns the number of glyph records.
func (s *GlyphSet) Len() int {
	return len(s.glyphs)
}

// Lookup returns the glyph for r. Runes outside the character set have no glyph.
func (s *GlyphSet) Lookup(r rune) (*Glyph, bool) {
	if r < 0 || r >= GlyphCount {
		return nil, false
	}
	return &s.glyphs[r], true
}

// Each calls fn for every glyph in character order.
func (s *GlyphSet) Each(fn func(r rune, g *Glyph)) {
	for i := range s.glyphs {
		fn(rune(i), &s.glyphs[i])
	}
}

// LoadGlyphs reads the font at path and rasterizes it. An empty path uses the
// embedded Go Regular font.
func LoadGlyphs(path string, pixelSize float64) (*GlyphSet, error) {
	data, name := goregular.TTF, "goregular"
	if path != "" {
		name = path
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
	}
	set, err := RasterizeGlyphs(data, pixelSize)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", name, err)
	}
	return set, nil
}

// RasterizeGlyphs renders every character in [0, GlyphCount) of the given
// TrueType/OpenType font at pixelSize pixels per em.
//
// Characters the font cannot map still get a record; it is zero-sized when
// the font provides nothing to draw.
func RasterizeGlyphs(fontData []byte, pixelSize float64) (*GlyphSet, error) {
	if pixelSize <= 0 {
		return nil, fmt.Errorf("invalid pixel size %v", pixelSize)
	}

	f, err := opentype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	// 72 DPI makes one point equal one pixel.
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    pixelSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	defer face.Close()

	set := &GlyphSet{PixelSize: pixelSize}
	for i := range set.glyphs {
		set.glyphs[i] = rasterizeGlyph(face, rune(i))
	}

	logger.Debug("rasterized glyphs", "count", GlyphCount, "pixelSize", pixelSize)
	return set, nil
}

// rasterizeGlyph renders r with the pen at the origin of the baseline.
func rasterizeGlyph(face font.Face, r rune) Glyph {
	dr, mask, maskp, advance, ok := face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		return Glyph{}
	}

	g := Glyph{
		Width:    dr.Dx(),
		Height:   dr.Dy(),
		BearingX: dr.Min.X,
		BearingY: -dr.Min.Y,
		Advance:  advance.Round(),
	}
	if g.Width <= 0 || g.Height <= 0 {
		g.Width, g.Height = 0, 0
		return g
	}

	// The face reuses its mask between calls, so copy the coverage out.
	g.Bitmap = make([]byte, g.Width*g.Height)
	if alpha, isAlpha := mask.(*image.Alpha); isAlpha {
		for y := 0; y < g.Height; y++ {
			off := alpha.PixOffset(maskp.X, maskp.Y+y)
			copy(g.Bitmap[y*g.Width:(y+1)*g.Width], alpha.Pix[off:off+g.Width])
		}
		return g
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			a := color.AlphaModel.Convert(mask.At(maskp.X+x, maskp.Y+y)).(color.Alpha)
			g.Bitmap[y*g.Width+x] = a.A
		}
	}
	return g
}
