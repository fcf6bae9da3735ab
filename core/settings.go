package core

import "github.com/go-gl/mathgl/mgl32"

// SimulationSettings are read at the start of every simulation step. They
// are mutated freely by the UI between frames; everything runs on the one
// thread that owns the GL context, so no locking is involved.
type SimulationSettings struct {
	StepsPerFrame  int // automaton iterations per tick, 1..10
	WaterViscosity float32
	LavaViscosity  float32
}

// RenderSettings are read at the start of every render call.
type RenderSettings struct {
	BackgroundColor  mgl32.Vec4
	GlowEnabled      bool
	GlowIntensity    float32
	GlowRadius       float32
	AmbientLight     float32
	SpecularStrength float32
	LightBounces     int // sequential light propagation passes, 0..6
}

// DefaultSimulationSettings returns the startup simulation tuning.
func DefaultSimulationSettings() SimulationSettings {
	return SimulationSettings{
		StepsPerFrame:  1,
		WaterViscosity: 0.5,
		LavaViscosity:  0.9,
	}
}

// DefaultRenderSettings returns the startup render tuning.
func DefaultRenderSettings() RenderSettings {
	return RenderSettings{
		BackgroundColor:  mgl32.Vec4{0.05, 0.05, 0.08, 1.0},
		GlowEnabled:      true,
		GlowIntensity:    1.0,
		GlowRadius:       6.0,
		AmbientLight:     0.35,
		SpecularStrength: 0.6,
		LightBounces:     2,
	}
}
