// Package opengl owns every GL object in the sandbox: shader programs, the
// double-buffered world textures and the multi-pass render pipeline. All
// calls assume the one thread holding the GL context.
package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// WorkGroupSize is the compute tile edge every pipeline shader declares
// (local_size 16x16). Dispatches are sized in groups, not cells.
const WorkGroupSize = 16

// GroupCount converts a cell extent into a work-group count, rounding up.
func GroupCount(cells int) uint32 {
	return uint32((cells + WorkGroupSize - 1) / WorkGroupSize)
}

// BuildError reports a shader that failed to compile or a program that
// failed to link, with the driver's diagnostic text. It is an init-time
// failure for the caller to surface, never a crash.
type BuildError struct {
	Name string // which program, e.g. "simulation"
	Log  string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build program %s: %s", e.Name, strings.TrimRight(e.Log, "\x00\n"))
}

// Program wraps one linked GL program, compute or vertex+fragment.
type Program struct {
	name string
	id   uint32
}

// NewComputeProgram compiles header+src as a single compute stage and links
// it. The header carries the generated material constants; it is prepended
// verbatim, so stage sources must not start with their own #version line.
func NewComputeProgram(name, src, header string) (*Program, error) {
	stage, err := compileStage(name, gl.COMPUTE_SHADER, header+src)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(stage)
	return link(name, stage)
}

// NewRenderProgram compiles a vertex+fragment pair, each with the header
// prepended, and links them into one program.
func NewRenderProgram(name, vertSrc, fragSrc, header string) (*Program, error) {
	vert, err := compileStage(name+".vert", gl.VERTEX_SHADER, header+vertSrc)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vert)

	frag, err := compileStage(name+".frag", gl.FRAGMENT_SHADER, header+fragSrc)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(frag)

	return link(name, vert, frag)
}

func compileStage(name string, kind uint32, src string) (uint32, error) {
	stage := gl.CreateShader(kind)

	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(stage, 1, csources, nil)
	free()
	gl.CompileShader(stage)

	var status int32
	gl.GetShaderiv(stage, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(stage, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(stage, logLength, nil, gl.Str(infoLog))
		gl.DeleteShader(stage)
		return 0, &BuildError{Name: name, Log: infoLog}
	}
	return stage, nil
}

func link(name string, stages ...uint32) (*Program, error) {
	id := gl.CreateProgram()
	for _, s := range stages {
		gl.AttachShader(id, s)
	}
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(id, logLength, nil, gl.Str(infoLog))
		gl.DeleteProgram(id)
		return nil, &BuildError{Name: name, Log: infoLog}
	}
	return &Program{name: name, id: id}, nil
}

// Use makes this program current. Global context state change.
func (p *Program) Use() { gl.UseProgram(p.id) }

// Dispatch activates the program and issues a compute dispatch sized in
// work groups (see GroupCount).
func (p *Program) Dispatch(x, y, z uint32) {
	p.Use()
	gl.DispatchCompute(x, y, z)
}

// Delete releases the program object.
func (p *Program) Delete() {
	if p != nil && p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

// Uniform setters look locations up by name on every call and silently
// ignore names the active program does not have; shader iteration adds and
// removes uniforms too often for that to be an error. The program must be
// in use.

func (p *Program) location(name string) int32 {
	return gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
}

func (p *Program) SetBool(name string, v bool) {
	i := int32(0)
	if v {
		i = 1
	}
	gl.Uniform1i(p.location(name), i)
}

func (p *Program) SetInt(name string, v int32) { gl.Uniform1i(p.location(name), v) }

func (p *Program) SetUint(name string, v uint32) { gl.Uniform1ui(p.location(name), v) }

func (p *Program) SetFloat(name string, v float32) { gl.Uniform1f(p.location(name), v) }

func (p *Program) SetVec2(name string, x, y float32) {
	gl.Uniform2f(p.location(name), x, y)
}

func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	gl.Uniform4f(p.location(name), v[0], v[1], v[2], v[3])
}
