package labelgrid

// GridStride is the number of floats per grid vertex: position.xyz followed by color.rgb.
const GridStride = 6

// Grid colors.
var (
	gridGray  = [3]float32{0.6, 0.6, 0.6}
	axisRed   = [3]float32{1, 0, 0}
	axisGreen = [3]float32{0, 1, 0}
	axisBlue  = [3]float32{0, 0, 1}
)

// GridVertexCount returns the number of vertices GenerateGrid emits for
// numGridlines subdivisions: two floor lines per gridline offset, three axis
// lines, seven border lines (three vertical edges and the four edges of the
// top square) and the two legend lines.
func GridVertexCount(numGridlines int) int {
	if numGridlines <= 0 {
		return 0
	}
	return (numGridlines+1)*2*2 + axisLines*2 + borderLines*2 + legendLines*2
}

const (
	axisLines   = 3
	borderLines = 7
	legendLines = 2
)

// GenerateGrid builds the line-list geometry of the coordinate box.
//
// The floor spans [-fillPercent, fillPercent] on X and Z at Y=0 and is divided
// into numGridlines cells per axis. Consecutive vertex pairs form one line.
// The output is interleaved (x, y, z, r, g, b) and deterministic.
func GenerateGrid(fillPercent float32, numGridlines int) []float32 {
	if numGridlines <= 0 {
		return nil
	}

	f := fillPercent
	step := f * 2 / float32(numGridlines)
	legend := step / 2

	out := make([]float32, 0, GridVertexCount(numGridlines)*GridStride)
	add := func(x, y, z float32, c [3]float32) {
		out = append(out, x, y, z, c[0], c[1], c[2])
	}

	for i := 0; i <= numGridlines; i++ {
		offset := -f + float32(i)*step

		// floor line along X
		add(-f, 0, offset, gridGray)
		add(f, 0, offset, gridGray)
		// floor line along Z
		add(offset, 0, -f, gridGray)
		add(offset, 0, f, gridGray)
	}

	// axes
	add(f, 0, -f, axisGreen)
	add(f, f, -f, axisGreen)
	add(-f, 0, -f, axisRed)
	add(f, 0, -f, axisRed)
	add(-f, 0, -f, axisBlue)
	add(-f, 0, f, axisBlue)

	// vertical corners
	add(f, 0, f, gridGray)
	add(f, f, f, gridGray)
	add(-f, 0, -f, gridGray)
	add(-f, f, -f, gridGray)
	add(-f, 0, f, gridGray)
	add(-f, f, f, gridGray)

	// top borders
	add(f, f, f, gridGray)
	add(-f, f, f, gridGray)
	add(-f, f, f, gridGray)
	add(-f, f, -f, gridGray)
	add(-f, f, -f, gridGray)
	add(f, f, -f, gridGray)
	add(f, f, -f, gridGray)
	add(f, f, f, gridGray)

	// legend tick
	add(f-legend, 0, -f, gridGray)
	add(f-legend, f, -f, gridGray)
	add(f, 0, -f+legend, gridGray)
	add(f, f, -f+legend, gridGray)

	return out
}
