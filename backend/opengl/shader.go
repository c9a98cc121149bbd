package opengl

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrUniformNotFound matches every *UniformNotFoundError with errors.Is.
var ErrUniformNotFound = errors.New("uniform not found")

// CompileError is returned when a shader stage does not compile cleanly.
type CompileError struct {
	Stage string // "vertex" or "fragment"
	Log   string // driver info log
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader compilation failed: %s", e.Stage, e.Log)
}

// LinkError is returned when the program does not link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("shader program linking failed: %s", e.Log)
}

// UniformNotFoundError is returned when a name resolves to no active uniform,
// either misspelled or optimized out by the driver.
type UniformNotFoundError struct {
	Name string
}

func (e *UniformNotFoundError) Error() string {
	return fmt.Sprintf("uniform %q not found", e.Name)
}

func (e *UniformNotFoundError) Is(target error) bool {
	return target == ErrUniformNotFound
}

// Program is a linked vertex+fragment shader program.
type Program struct {
	handle uint32
}

// NewProgram compiles both stages and links them.
//
// A stage fails if its compile status is false or its info log is not empty,
// so warnings are treated as errors.
func NewProgram(vertexSource, fragmentSource string) (*Program, error) {
	vertex, err := compileShader(gl.VERTEX_SHADER, "vertex", vertexSource)
	if err != nil {
		return nil, err
	}
	fragment, err := compileShader(gl.FRAGMENT_SHADER, "fragment", fragmentSource)
	if err != nil {
		gl.DeleteShader(vertex)
		return nil, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertex)
	gl.AttachShader(program, fragment)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])

		gl.DeleteProgram(program)
		gl.DeleteShader(vertex)
		gl.DeleteShader(fragment)
		return nil, &LinkError{Log: cString(log)}
	}

	// The program keeps the linked binary; the stage objects are no longer needed.
	gl.DetachShader(program, vertex)
	gl.DetachShader(program, fragment)
	gl.DeleteShader(vertex)
	gl.DeleteShader(fragment)

	return &Program{handle: program}, nil
}

func compileShader(kind uint32, stage, source string) (uint32, error) {
	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status, logLength int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

	var info string
	if logLength > 0 {
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		info = cString(log)
	}
	if status == gl.FALSE || strings.TrimSpace(info) != "" {
		gl.DeleteShader(shader)
		if info == "" {
			info = "unknown error"
		}
		return 0, &CompileError{Stage: stage, Log: info}
	}
	return shader, nil
}

// Use makes p the current program.
func (p *Program) Use() {
	gl.UseProgram(p.handle)
}

// Handle returns the GL name, or 0 after Delete.
func (p *Program) Handle() uint32 { return p.handle }

// UniformLocation returns the raw location of name, -1 if there is none.
func (p *Program) UniformLocation(name string) int32 {
	return gl.GetUniformLocation(p.handle, gl.Str(name+"\x00"))
}

func (p *Program) location(name string) (int32, error) {
	loc := p.UniformLocation(name)
	if loc == -1 {
		return -1, &UniformNotFoundError{Name: name}
	}
	return loc, nil
}

// SetMatrix4 uploads a 4x4 matrix. The program must be current.
func (p *Program) SetMatrix4(name string, m mgl32.Mat4) error {
	loc, err := p.location(name)
	if err != nil {
		return err
	}
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
	return nil
}

// SetVector3 uploads a 3 component vector. The program must be current.
func (p *Program) SetVector3(name string, v mgl32.Vec3) error {
	loc, err := p.location(name)
	if err != nil {
		return err
	}
	gl.Uniform3f(loc, v[0], v[1], v[2])
	return nil
}

// SetInt uploads an integer or sampler unit. The program must be current.
func (p *Program) SetInt(name string, v int32) error {
	loc, err := p.location(name)
	if err != nil {
		return err
	}
	gl.Uniform1i(loc, v)
	return nil
}

// Delete releases the program. Further calls do nothing.
func (p *Program) Delete() {
	if p == nil || p.handle == 0 {
		return
	}
	gl.DeleteProgram(p.handle)
	p.handle = 0
}

// LoadShaderSource reads a shader file. A missing or unreadable file is
// logged and yields an empty source, which then fails to compile.
func LoadShaderSource(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger().Warn("shader file not found", "path", path)
		} else {
			logger().Warn("error loading shader", "path", path, "err", err)
		}
		return ""
	}
	return string(data)
}

// cString trims a GL info log at its first NUL.
func cString(b []byte) string {
	if i := strings.IndexByte(string(b), 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
