package opengl_test

import (
	"fmt"
	"os"
	"runtime"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// GL tests run on the locked main thread that owns the context. Test
// goroutines hand their GL work to it through mainfuncs.
var (
	contextErr error
	mainfuncs  = make(chan func())
)

const (
	testWidth  = 800
	testHeight = 600
)

func init() {
	runtime.LockOSThread()
}

func TestMain(m *testing.M) {
	window, err := createContext()
	contextErr = err

	done := make(chan int)
	go func() { done <- m.Run() }()

	for {
		select {
		case f := <-mainfuncs:
			f()
		case code := <-done:
			if window != nil {
				window.Destroy()
				glfw.Terminate()
			}
			os.Exit(code)
		}
	}
}

// createContext opens a hidden 4.1 core window. It fails on machines without
// a display or driver, and GL tests are then skipped.
func createContext() (window *glfw.Window, err error) {
	if runtime.GOOS == "linux" && os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		return nil, fmt.Errorf("no display")
	}
	// go-gl/glfw panics on some platform errors instead of returning them.
	defer func() {
		if r := recover(); r != nil {
			window, err = nil, fmt.Errorf("glfw: %v", r)
		}
	}()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err = glfw.CreateWindow(testWidth, testHeight, "opengl-test", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}
	return window, nil
}

// onMain runs f on the GL thread and waits for it. Only non-fatal test
// methods (Error, Errorf, Log) may be called inside f.
func onMain(t *testing.T, f func()) {
	t.Helper()
	if contextErr != nil {
		t.Skipf("no OpenGL context: %v", contextErr)
	}
	done := make(chan struct{})
	mainfuncs <- func() {
		defer close(done)
		f()
	}
	<-done
}

const testVertexShader = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;
layout (location = 2) in vec2 aTexCoord;

out vec3 Color;
out vec2 TexCoord;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

void main() {
    gl_Position = projection * view * model * vec4(aPos, 1.0);
    Color = aColor;
    TexCoord = aTexCoord;
}
`

const testFragmentShader = `#version 410 core
in vec3 Color;
in vec2 TexCoord;

out vec4 FragColor;

uniform sampler2D glyphTexture;
uniform int isTextured;

void main() {
    if (isTextured == 1) {
        FragColor = vec4(Color, 1.0) * texture(glyphTexture, TexCoord);
    } else {
        FragColor = vec4(Color, 1.0);
    }
}
`
