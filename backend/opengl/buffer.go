package opengl

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// BufferTarget is the binding point of a buffer.
type BufferTarget uint32

const (
	ArrayBuffer   BufferTarget = gl.ARRAY_BUFFER         // vertex data
	ElementBuffer BufferTarget = gl.ELEMENT_ARRAY_BUFFER // index data
)

// BufferUsage hints how often a buffer is rewritten.
type BufferUsage uint32

const (
	StaticDraw BufferUsage = gl.STATIC_DRAW
	StreamDraw BufferUsage = gl.STREAM_DRAW
)

// Buffer owns one GL buffer object.
//
// Allocation failures are not checked; GL reports them through glGetError only.
type Buffer struct {
	handle uint32
	target BufferTarget
	usage  BufferUsage
	size   int
}

// NewBuffer creates a buffer and uploads data.
func NewBuffer[T any](data []T, target BufferTarget, usage BufferUsage) *Buffer {
	b := &Buffer{target: target, usage: usage}
	gl.GenBuffers(1, &b.handle)
	b.Bind()
	Upload(b, data)
	return b
}

// NewBufferSize creates a buffer with size bytes of uninitialized storage.
func NewBufferSize(size int, target BufferTarget, usage BufferUsage) *Buffer {
	b := &Buffer{target: target, usage: usage, size: size}
	gl.GenBuffers(1, &b.handle)
	b.Bind()
	gl.BufferData(uint32(target), size, nil, uint32(usage))
	return b
}

// Upload binds b and replaces its whole contents with data.
func Upload[T any](b *Buffer, data []T) {
	b.Bind()
	b.size = len(data) * sizeOf[T]()
	if len(data) == 0 {
		gl.BufferData(uint32(b.target), 0, nil, uint32(b.usage))
		return
	}
	gl.BufferData(uint32(b.target), b.size, gl.Ptr(data), uint32(b.usage))
}

// UploadRange binds b and writes data starting at element offset.
// The range must fit in the current storage.
func UploadRange[T any](b *Buffer, offset int, data []T) {
	if len(data) == 0 {
		return
	}
	elem := sizeOf[T]()
	b.Bind()
	gl.BufferSubData(uint32(b.target), offset*elem, len(data)*elem, gl.Ptr(data))
}

// Bind makes b current on its target.
func (b *Buffer) Bind() {
	gl.BindBuffer(uint32(b.target), b.handle)
}

// Handle returns the GL name, or 0 after Delete.
func (b *Buffer) Handle() uint32 { return b.handle }

// Target returns the binding point.
func (b *Buffer) Target() BufferTarget { return b.target }

// Size returns the storage size in bytes.
func (b *Buffer) Size() int { return b.size }

// Delete releases the buffer. Further calls do nothing.
func (b *Buffer) Delete() {
	if b == nil || b.handle == 0 {
		return
	}
	gl.DeleteBuffers(1, &b.handle)
	b.handle = 0
}

// VertexArray owns one GL vertex array object and the layout of its attributes.
type VertexArray struct {
	handle uint32
}

// NewVertexArray creates a VAO, binds it and binds the given buffers to it.
// Either buffer may be nil.
func NewVertexArray(vbo, ebo *Buffer) *VertexArray {
	va := &VertexArray{}
	gl.GenVertexArrays(1, &va.handle)
	va.Bind()
	if vbo != nil {
		vbo.Bind()
	}
	if ebo != nil {
		ebo.Bind()
	}
	return va
}

// Attribute declares and enables attribute slot with count components of
// type typ. Stride and offset are counted in 4-byte elements, matching
// interleaved float32 vertex data. The VAO and its vertex buffer must be bound.
func (va *VertexArray) Attribute(slot uint32, count int32, typ uint32, strideElems, offsetElems int) {
	const elem = 4
	gl.VertexAttribPointerWithOffset(slot, count, typ, false, int32(strideElems*elem), uintptr(offsetElems*elem))
	gl.EnableVertexAttribArray(slot)
}

// Bind makes va current.
func (va *VertexArray) Bind() {
	gl.BindVertexArray(va.handle)
}

// Unbind clears the current vertex array.
func (va *VertexArray) Unbind() {
	gl.BindVertexArray(0)
}

// Handle returns the GL name, or 0 after Delete.
func (va *VertexArray) Handle() uint32 { return va.handle }

// Delete releases the vertex array. Further calls do nothing.
func (va *VertexArray) Delete() {
	if va == nil || va.handle == 0 {
		return
	}
	gl.DeleteVertexArrays(1, &va.handle)
	va.handle = 0
}

func sizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}
