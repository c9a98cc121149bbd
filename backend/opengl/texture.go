package opengl

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/labelgrid"
)

// UploadGlyphs creates one single-channel texture per glyph and stores its
// name in Glyph.Texture.
//
// Each texture matches the glyph bitmap exactly; zero-sized glyphs such as
// space get a zero-area texture. The swizzle maps red to alpha and RGB to
// one, so a sampled glyph is white modulated by coverage.
func UploadGlyphs(set *labelgrid.GlyphSet) {
	var lastAlign int32
	gl.GetIntegerv(gl.UNPACK_ALIGNMENT, &lastAlign)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.ActiveTexture(gl.TEXTURE0)

	set.Each(func(_ rune, g *labelgrid.Glyph) {
		var tex uint32
		gl.GenTextures(1, &tex)
		gl.BindTexture(gl.TEXTURE_2D, tex)

		var pixels unsafe.Pointer
		if len(g.Bitmap) > 0 {
			pixels = gl.Ptr(g.Bitmap)
		}
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(g.Width), int32(g.Height), 0,
			gl.RED, gl.UNSIGNED_BYTE, pixels)

		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_SWIZZLE_R, gl.ONE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_SWIZZLE_G, gl.ONE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_SWIZZLE_B, gl.ONE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_SWIZZLE_A, gl.RED)

		g.Texture = tex
	})

	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, lastAlign)

	logger().Debug("uploaded glyph textures", "count", set.Len())
}

// DeleteGlyphTextures releases every glyph texture and resets Glyph.Texture.
func DeleteGlyphTextures(set *labelgrid.GlyphSet) {
	if set == nil {
		return
	}
	set.Each(func(_ rune, g *labelgrid.Glyph) {
		if g.Texture != 0 {
			gl.DeleteTextures(1, &g.Texture)
			g.Texture = 0
		}
	})
}
