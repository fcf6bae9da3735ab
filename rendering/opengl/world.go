package opengl

import (
	"github.com/go-gl/gl/v4.3-core/gl"

	"sandsim/core"
	"sandsim/registry"
)

// Image unit contract per pass (shaders declare the same bindings; the
// material SSBO sits at registry.MaterialBinding for every program):
//
//	simulation: 0 state read, 1 state write
//	extraction: 0 state, 1 color write, 2 normal write
//	lighting:   0 state, 1 normals, 2 light in, 3 light out
//	composite:  0 state, 1 color, 2 normals, 3 final light, 4 display write
//	blit:       texture unit 0 = display
//
// Reordering any of these breaks the shader contract.

// World owns the double-buffered cell state and the whole render pipeline.
// One instance, one GL thread.
type World struct {
	width  int
	height int

	stateTex [2]uint32
	state    core.PingPong

	colorTex  uint32
	normalTex uint32

	lightTex [2]uint32
	lights   core.PingPong

	displayTex uint32

	quadVAO uint32
	quadVBO uint32

	simProg       *Program
	extractProg   *Program
	lightProg     *Program
	compositeProg *Program
	quadProg      *Program

	stepper    *core.Stepper
	frameCount uint32

	zeroCells []uint8   // reused clear upload for the state textures
	zeroLight []float32 // reused clear upload for the primary lightmap

	simSettings    core.SimulationSettings
	renderSettings core.RenderSettings

	ready bool
}

// NewWorld sizes a world; Init must run before anything else touches it.
func NewWorld(width, height int) *World {
	return &World{
		width:          width,
		height:         height,
		stepper:        core.NewStepper(core.FixedTimestep),
		simSettings:    core.DefaultSimulationSettings(),
		renderSettings: core.DefaultRenderSettings(),
	}
}

// Init builds every pipeline program with the registry's generated header
// and allocates all GPU resources. On any build failure it releases
// whatever was already created and leaves the world unusable.
func (w *World) Init(reg *registry.Registry) error {
	prologue := shaderPrelude + reg.ShaderHeader()

	var err error
	build := func(p **Program, name, src string) bool {
		if err != nil {
			return false
		}
		*p, err = NewComputeProgram(name, src, prologue)
		return err == nil
	}
	build(&w.simProg, "simulation", simulationSrc)
	build(&w.extractProg, "extraction", extractSrc)
	build(&w.lightProg, "lighting", lightSrc)
	build(&w.compositeProg, "composite", compositeSrc)
	if err == nil {
		w.quadProg, err = NewRenderProgram("blit", quadVertSrc, quadFragSrc, shaderPrelude)
	}
	if err != nil {
		w.Destroy()
		return err
	}

	w.createTextures()
	w.createQuad()
	w.zeroCells = make([]uint8, w.width*w.height*4)
	w.zeroLight = make([]float32, w.width*w.height*4)
	w.Clear()

	w.ready = true
	return nil
}

func (w *World) createTextures() {
	for i := range w.stateTex {
		w.stateTex[i] = newTexture2D(gl.RGBA8UI, w.width, w.height)
	}
	w.colorTex = newTexture2D(gl.RGBA8, w.width, w.height)
	w.normalTex = newTexture2D(gl.RGBA16F, w.width, w.height)
	for i := range w.lightTex {
		w.lightTex[i] = newTexture2D(gl.RGBA16F, w.width, w.height)
	}
	w.displayTex = newTexture2D(gl.RGBA8, w.width, w.height)
}

func (w *World) createQuad() {
	quad := []float32{
		// pos      // uv
		-1, 1, 0, 1,
		-1, -1, 0, 0,
		1, -1, 1, 0,

		-1, 1, 0, 1,
		1, -1, 1, 0,
		1, 1, 1, 1,
	}

	gl.GenVertexArrays(1, &w.quadVAO)
	gl.GenBuffers(1, &w.quadVBO)

	gl.BindVertexArray(w.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(2*4))

	gl.BindVertexArray(0)
}

// SimSettings returns the live simulation tuning for the UI to mutate.
func (w *World) SimSettings() *core.SimulationSettings { return &w.simSettings }

// RenderSettings returns the live render tuning for the UI to mutate.
func (w *World) RenderSettings() *core.RenderSettings { return &w.renderSettings }

// Width reports the grid width in cells.
func (w *World) Width() int { return w.width }

// Height reports the grid height in cells.
func (w *World) Height() int { return w.height }

// FrameCount reports how many simulation steps have run.
func (w *World) FrameCount() uint32 { return w.frameCount }

// Elapsed reports accumulated simulation time in seconds.
func (w *World) Elapsed() float64 { return w.stepper.Elapsed() }

// CurrentStateTexture exposes the authoritative state texture so the brush
// program can paint into it between steps. Painting the back buffer instead
// would desynchronize visuals from simulated state.
func (w *World) CurrentStateTexture() uint32 {
	return w.stateTex[w.state.Current()]
}

// Update feeds frame time into the fixed-timestep accumulator and runs
// StepsPerFrame simulation dispatches for every whole tick now due. Slow
// frames advance the automaton by whole ticks only; the caller clamps dt to
// keep catch-up bounded after a stall.
func (w *World) Update(dt float64) {
	if !w.ready {
		return
	}
	ticks := w.stepper.Advance(dt)

	steps := w.simSettings.StepsPerFrame
	if steps < 1 {
		steps = 1
	}
	for t := 0; t < ticks; t++ {
		for s := 0; s < steps; s++ {
			w.step()
		}
	}
}

// step runs one automaton iteration: read the current buffer, write the
// other, fence, flip. The barrier is the load-bearing fence of the whole
// pipeline; without it later passes read stale cell state.
func (w *World) step() {
	gl.BindImageTexture(0, w.stateTex[w.state.Current()], 0, false, 0, gl.READ_ONLY, gl.RGBA8UI)
	gl.BindImageTexture(1, w.stateTex[w.state.Other()], 0, false, 0, gl.WRITE_ONLY, gl.RGBA8UI)

	w.simProg.Use()
	w.simProg.SetVec2("worldSize", float32(w.width), float32(w.height))
	w.simProg.SetFloat("time", float32(w.stepper.Elapsed()))
	w.simProg.SetUint("frameCount", w.frameCount)
	w.simProg.SetFloat("waterViscosity", w.simSettings.WaterViscosity)
	w.simProg.SetFloat("lavaViscosity", w.simSettings.LavaViscosity)
	w.simProg.Dispatch(GroupCount(w.width), GroupCount(w.height), 1)

	gl.MemoryBarrier(gl.SHADER_IMAGE_ACCESS_BARRIER_BIT)

	w.state.Swap()
	w.frameCount++
}

// Render runs the full pass chain into the given viewport rectangle. It is
// independent of the tick rate and safe to call every display frame.
func (w *World) Render(x, y, width, height int32) {
	if !w.ready {
		return
	}
	gx, gy := GroupCount(w.width), GroupCount(w.height)
	rs := &w.renderSettings

	// Pass 1: state -> color + normal/height/specular.
	gl.BindImageTexture(0, w.stateTex[w.state.Current()], 0, false, 0, gl.READ_ONLY, gl.RGBA8UI)
	gl.BindImageTexture(1, w.colorTex, 0, false, 0, gl.WRITE_ONLY, gl.RGBA8)
	gl.BindImageTexture(2, w.normalTex, 0, false, 0, gl.WRITE_ONLY, gl.RGBA16F)

	w.extractProg.Use()
	w.extractProg.SetVec4("backgroundColor", rs.BackgroundColor)
	w.extractProg.SetFloat("time", float32(w.stepper.Elapsed()))
	w.extractProg.Dispatch(gx, gy, 1)
	gl.MemoryBarrier(gl.SHADER_IMAGE_ACCESS_BARRIER_BIT)

	// Pass 2: multi-bounce light propagation, ping-ponging between the two
	// lightmaps. After n bounces the rotation's current buffer holds the
	// final result (even n -> primary, odd n -> secondary). With zero
	// bounces the composite reads the primary buffer, which is cleared here
	// so the outcome is ambient-only.
	w.lights.Reset()
	bounces := rs.LightBounces
	if bounces <= 0 {
		w.clearLightmap(w.lightTex[w.lights.Current()])
	}
	glowIntensity := rs.GlowIntensity
	if !rs.GlowEnabled {
		glowIntensity = 0
	}
	for b := 0; b < bounces; b++ {
		gl.BindImageTexture(0, w.stateTex[w.state.Current()], 0, false, 0, gl.READ_ONLY, gl.RGBA8UI)
		gl.BindImageTexture(1, w.normalTex, 0, false, 0, gl.READ_ONLY, gl.RGBA16F)
		gl.BindImageTexture(2, w.lightTex[w.lights.Current()], 0, false, 0, gl.READ_ONLY, gl.RGBA16F)
		gl.BindImageTexture(3, w.lightTex[w.lights.Other()], 0, false, 0, gl.WRITE_ONLY, gl.RGBA16F)

		w.lightProg.Use()
		w.lightProg.SetInt("bounceIndex", int32(b))
		w.lightProg.SetFloat("ambientLight", rs.AmbientLight)
		w.lightProg.SetFloat("glowIntensity", glowIntensity)
		w.lightProg.SetFloat("glowRadius", rs.GlowRadius)
		w.lightProg.Dispatch(gx, gy, 1)
		gl.MemoryBarrier(gl.SHADER_IMAGE_ACCESS_BARRIER_BIT)

		w.lights.Swap()
	}

	// Pass 3: composite into the display buffer.
	gl.BindImageTexture(0, w.stateTex[w.state.Current()], 0, false, 0, gl.READ_ONLY, gl.RGBA8UI)
	gl.BindImageTexture(1, w.colorTex, 0, false, 0, gl.READ_ONLY, gl.RGBA8)
	gl.BindImageTexture(2, w.normalTex, 0, false, 0, gl.READ_ONLY, gl.RGBA16F)
	gl.BindImageTexture(3, w.lightTex[w.lights.Current()], 0, false, 0, gl.READ_ONLY, gl.RGBA16F)
	gl.BindImageTexture(4, w.displayTex, 0, false, 0, gl.WRITE_ONLY, gl.RGBA8)

	w.compositeProg.Use()
	w.compositeProg.SetFloat("ambientLight", rs.AmbientLight)
	w.compositeProg.SetFloat("specularStrength", rs.SpecularStrength)
	w.compositeProg.SetVec4("backgroundColor", rs.BackgroundColor)
	w.compositeProg.Dispatch(gx, gy, 1)
	gl.MemoryBarrier(gl.SHADER_IMAGE_ACCESS_BARRIER_BIT)

	// Pass 4: blit the display buffer into the viewport rectangle.
	gl.Viewport(x, y, width, height)
	w.quadProg.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, w.displayTex)
	w.quadProg.SetInt("displayTex", 0)

	gl.BindVertexArray(w.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

// Clear resets both state buffers to all-empty cells.
func (w *World) Clear() {
	if w.zeroCells == nil {
		w.zeroCells = make([]uint8, w.width*w.height*4)
	}
	for i := range w.stateTex {
		gl.BindTexture(gl.TEXTURE_2D, w.stateTex[i])
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w.width), int32(w.height),
			gl.RGBA_INTEGER, gl.UNSIGNED_BYTE, gl.Ptr(w.zeroCells))
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (w *World) clearLightmap(tex uint32) {
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w.width), int32(w.height),
		gl.RGBA, gl.FLOAT, gl.Ptr(w.zeroLight))
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// SpawnParticle writes one cell of the given material into the current
// state buffer with default aux channels. Out of bounds is a no-op. The
// paint lands in the current buffer only, so it is visible from the very
// next step without any special-casing in the stepping logic.
func (w *World) SpawnParticle(x, y int, material uint8) {
	if x < 0 || x >= w.width || y < 0 || y >= w.height {
		return
	}
	pixel := core.NewCell(material).Bytes()

	gl.BindTexture(gl.TEXTURE_2D, w.CurrentStateTexture())
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, int32(x), int32(y), 1, 1,
		gl.RGBA_INTEGER, gl.UNSIGNED_BYTE, gl.Ptr(&pixel[0]))
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Destroy releases every GPU object the world owns. Safe to call on a
// partially initialized world.
func (w *World) Destroy() {
	for _, p := range []*Program{w.simProg, w.extractProg, w.lightProg, w.compositeProg, w.quadProg} {
		p.Delete()
	}
	w.simProg, w.extractProg, w.lightProg, w.compositeProg, w.quadProg = nil, nil, nil, nil, nil

	deleteTextures(w.stateTex[0], w.stateTex[1], w.colorTex, w.normalTex,
		w.lightTex[0], w.lightTex[1], w.displayTex)
	w.stateTex = [2]uint32{}
	w.lightTex = [2]uint32{}
	w.colorTex, w.normalTex, w.displayTex = 0, 0, 0

	if w.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &w.quadVAO)
		w.quadVAO = 0
	}
	if w.quadVBO != 0 {
		gl.DeleteBuffers(1, &w.quadVBO)
		w.quadVBO = 0
	}
	w.ready = false
}
