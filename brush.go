package main

import (
	"github.com/go-gl/gl/v4.3-core/gl"

	"sandsim/rendering/opengl"
)

// BrushShape selects the footprint the brush program stamps.
type BrushShape int32

const (
	BrushCircle BrushShape = iota
	BrushSquare
	BrushStar
	brushShapeCount
)

func (b BrushShape) String() string {
	switch b {
	case BrushSquare:
		return "square"
	case BrushStar:
		return "star"
	default:
		return "circle"
	}
}

// brushSrc paints directly into the current state texture, bound read-write
// at image 0. Painted cells only replace empty ones; the eraser clears
// unconditionally.
const brushSrc = `
layout(local_size_x = 16, local_size_y = 16) in;

layout(rgba8ui, binding = 0) uniform uimage2D state;

uniform int  brushX;
uniform int  brushY;
uniform int  brushSize;
uniform int  brushShape; // 0=circle 1=square 2=star
uniform uint drawMaterial;
uniform bool isEraser;

bool inFootprint(ivec2 off) {
    int r = brushSize;
    switch (brushShape) {
    case 1:
        return abs(off.x) <= r && abs(off.y) <= r;
    case 2:
        return (abs(off.x) <= max(r / 3, 1) || abs(off.y) <= max(r / 3, 1))
            && abs(off.x) + abs(off.y) <= r + r / 2;
    default:
        return off.x * off.x + off.y * off.y <= r * r;
    }
}

void main() {
    ivec2 off = ivec2(gl_GlobalInvocationID.xy) - ivec2(brushSize);
    ivec2 pos = ivec2(brushX, brushY) + off;
    ivec2 sz = imageSize(state);
    if (pos.x < 0 || pos.y < 0 || pos.x >= sz.x || pos.y >= sz.y) return;
    if (!inFootprint(off)) return;

    if (isEraser) {
        imageStore(state, pos, uvec4(0u));
        return;
    }
    if (imageLoad(state, pos).r != 0u) return;
    imageStore(state, pos, uvec4(drawMaterial, 0u, 128u, 0u));
}
`

// Brush owns the paint program. It shares the generated material header
// with the pipeline programs so the id space is identical everywhere.
type Brush struct {
	prog *opengl.Program
}

// NewBrush compiles the brush program with the registry's header.
func NewBrush(materialHeader string) (*Brush, error) {
	prog, err := opengl.NewComputeProgram("brush", brushSrc, "#version 430 core\n"+materialHeader)
	if err != nil {
		return nil, err
	}
	return &Brush{prog: prog}, nil
}

// Paint stamps the brush onto the current state buffer. The barrier keeps
// the write visible to the next simulation or render pass.
func (b *Brush) Paint(world *opengl.World, x, y, size int, shape BrushShape, material uint8, eraser bool) {
	gl.BindImageTexture(0, world.CurrentStateTexture(), 0, false, 0, gl.READ_WRITE, gl.RGBA8UI)

	b.prog.Use()
	b.prog.SetInt("brushX", int32(x))
	b.prog.SetInt("brushY", int32(y))
	b.prog.SetInt("brushSize", int32(size))
	b.prog.SetInt("brushShape", int32(shape))
	b.prog.SetUint("drawMaterial", uint32(material))
	b.prog.SetBool("isEraser", eraser)

	groups := opengl.GroupCount(size*2 + 1)
	b.prog.Dispatch(groups, groups, 1)
	gl.MemoryBarrier(gl.SHADER_IMAGE_ACCESS_BARRIER_BIT)
}

// Destroy releases the brush program.
func (b *Brush) Destroy() {
	if b != nil {
		b.prog.Delete()
	}
}
