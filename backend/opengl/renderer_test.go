package opengl_test

import (
	"errors"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/go-theft-auto/labelgrid"
	"github.com/go-theft-auto/labelgrid/backend/opengl"
)

func testGlyphs(t *testing.T) *labelgrid.GlyphSet {
	t.Helper()
	set, err := labelgrid.RasterizeGlyphs(goregular.TTF, labelgrid.DefaultPixelSize)
	if err != nil {
		t.Fatalf("RasterizeGlyphs: %v", err)
	}
	return set
}

func TestUploadGlyphs(t *testing.T) {
	set := testGlyphs(t)
	onMain(t, func() {
		opengl.UploadGlyphs(set)
		defer opengl.DeleteGlyphTextures(set)

		set.Each(func(r rune, g *labelgrid.Glyph) {
			if g.Texture == 0 || !gl.IsTexture(g.Texture) {
				t.Errorf("glyph %d: texture %d not created", r, g.Texture)
			}
		})

		h, _ := set.Lookup('H')
		gl.BindTexture(gl.TEXTURE_2D, h.Texture)
		var w, ht, swizzleA, swizzleR int32
		gl.GetTexLevelParameteriv(gl.TEXTURE_2D, 0, gl.TEXTURE_WIDTH, &w)
		gl.GetTexLevelParameteriv(gl.TEXTURE_2D, 0, gl.TEXTURE_HEIGHT, &ht)
		gl.GetTexParameteriv(gl.TEXTURE_2D, gl.TEXTURE_SWIZZLE_A, &swizzleA)
		gl.GetTexParameteriv(gl.TEXTURE_2D, gl.TEXTURE_SWIZZLE_R, &swizzleR)
		gl.BindTexture(gl.TEXTURE_2D, 0)

		if int(w) != h.Width || int(ht) != h.Height {
			t.Errorf("'H' texture is %dx%d, want %dx%d", w, ht, h.Width, h.Height)
		}
		if swizzleA != gl.RED || swizzleR != gl.ONE {
			t.Errorf("swizzle A=%#x R=%#x, want RED and ONE", swizzleA, swizzleR)
		}
	})

	set.Each(func(r rune, g *labelgrid.Glyph) {
		if g.Texture != 0 {
			t.Errorf("glyph %d keeps texture %d after DeleteGlyphTextures", r, g.Texture)
		}
	})
}

func TestRendererDrawsScene(t *testing.T) {
	set := testGlyphs(t)
	onMain(t, func() {
		opengl.UploadGlyphs(set)
		defer opengl.DeleteGlyphTextures(set)

		program, err := opengl.NewProgram(testVertexShader, testFragmentShader)
		if err != nil {
			t.Errorf("NewProgram: %v", err)
			return
		}

		cfg := labelgrid.DefaultConfig()
		r, err := opengl.NewRenderer(program, set, cfg)
		if err != nil {
			program.Delete()
			t.Errorf("NewRenderer: %v", err)
			return
		}
		defer r.Delete()

		if got, want := r.GridVertexCount(), labelgrid.GridVertexCount(cfg.Grid.Lines); got != want {
			t.Errorf("GridVertexCount() = %d, want %d", got, want)
		}

		if err := r.Render(testWidth, testHeight, labelgrid.DefaultCameraState()); err != nil {
			t.Errorf("Render: %v", err)
			return
		}
		gl.Finish()

		pixels := make([]byte, testWidth*testHeight*4)
		gl.ReadPixels(0, 0, testWidth, testHeight, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

		lit := 0
		for i := 0; i < len(pixels); i += 4 {
			if pixels[i] > 0 || pixels[i+1] > 0 || pixels[i+2] > 0 {
				lit++
			}
		}
		if lit == 0 {
			t.Error("rendered frame is entirely black")
		}
		if lit > len(pixels)/4/2 {
			t.Errorf("%d of %d pixels lit; expected sparse line art", lit, len(pixels)/4)
		}
		if e := gl.GetError(); e != gl.NO_ERROR {
			t.Errorf("GL error %#x after Render", e)
		}
	})
}

func TestRendererLongLabel(t *testing.T) {
	set := testGlyphs(t)
	onMain(t, func() {
		opengl.UploadGlyphs(set)
		defer opengl.DeleteGlyphTextures(set)

		program, err := opengl.NewProgram(testVertexShader, testFragmentShader)
		if err != nil {
			t.Errorf("NewProgram: %v", err)
			return
		}

		long := make([]byte, opengl.MaxLabelGlyphs*2+5)
		for i := range long {
			long[i] = 'a' + byte(i%26)
		}
		cfg := labelgrid.DefaultConfig()
		cfg.Apply(labelgrid.WithLabels(labelgrid.Label{Text: string(long), Scale: 0.001}))

		r, err := opengl.NewRenderer(program, set, cfg)
		if err != nil {
			program.Delete()
			t.Errorf("NewRenderer: %v", err)
			return
		}
		defer r.Delete()

		if err := r.Render(testWidth, testHeight, labelgrid.DefaultCameraState()); err != nil {
			t.Errorf("Render: %v", err)
		}
		if e := gl.GetError(); e != gl.NO_ERROR {
			t.Errorf("GL error %#x drawing a label longer than the buffer", e)
		}
	})
}

func TestRendererMissingUniform(t *testing.T) {
	// isTextured is optimized away, so the renderer cannot toggle texturing.
	fragment := `#version 410 core
in vec3 Color;
in vec2 TexCoord;
out vec4 FragColor;
void main() {
    FragColor = vec4(Color, 1.0);
}
`
	set := testGlyphs(t)
	onMain(t, func() {
		program, err := opengl.NewProgram(testVertexShader, fragment)
		if err != nil {
			t.Errorf("NewProgram: %v", err)
			return
		}
		r, err := opengl.NewRenderer(program, set, labelgrid.DefaultConfig())
		if err != nil {
			program.Delete()
			t.Errorf("NewRenderer: %v", err)
			return
		}
		defer r.Delete()

		err = r.Render(testWidth, testHeight, labelgrid.DefaultCameraState())
		if !errors.Is(err, opengl.ErrUniformNotFound) {
			t.Errorf("Render error = %v, want ErrUniformNotFound", err)
		}
	})
}

func TestNewRendererErrors(t *testing.T) {
	set := testGlyphs(t)
	if _, err := opengl.NewRenderer(nil, set, labelgrid.DefaultConfig()); err == nil {
		t.Error("expected error for nil program")
	}
	if _, err := opengl.NewRenderer(&opengl.Program{}, nil, labelgrid.DefaultConfig()); err == nil {
		t.Error("expected error for nil glyph set")
	}
}

func TestRendererDeleteTwice(t *testing.T) {
	set := testGlyphs(t)
	onMain(t, func() {
		program, err := opengl.NewProgram(testVertexShader, testFragmentShader)
		if err != nil {
			t.Errorf("NewProgram: %v", err)
			return
		}
		r, err := opengl.NewRenderer(program, set, labelgrid.DefaultConfig())
		if err != nil {
			program.Delete()
			t.Errorf("NewRenderer: %v", err)
			return
		}
		r.Delete()
		r.Delete()
		if program.Handle() != 0 {
			t.Errorf("program %d not released by renderer", program.Handle())
		}
	})
}
