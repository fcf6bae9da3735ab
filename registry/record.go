package registry

import "github.com/go-gl/mathgl/mgl32"

// Kind is the coarse behavior class the simulation shader switches on.
type Kind int32

const (
	KindStatic Kind = iota
	KindGranular
	KindLiquid
	KindGas
)

func parseKind(s string) Kind {
	switch s {
	case "Granular":
		return KindGranular
	case "Liquid":
		return KindLiquid
	case "Gas":
		return KindGas
	default:
		return KindStatic
	}
}

func (k Kind) String() string {
	switch k {
	case KindGranular:
		return "Granular"
	case KindLiquid:
		return "Liquid"
	case KindGas:
		return "Gas"
	default:
		return "Static"
	}
}

// Record is the GPU-resident material entry. Field order, sizes and the
// trailing pad are a contract with the shaders' std430 block at the material
// binding: vec4 on a 16-byte boundary, scalars 4-byte aligned, total size a
// multiple of 16 (64 bytes). Changing anything here without changing the
// GLSL block silently corrupts every material property the simulation reads.
type Record struct {
	Color          mgl32.Vec4 // offset 0
	Kind           Kind       // offset 16
	Density        float32    // offset 20
	Viscosity      float32    // offset 24
	BurnChance     float32    // offset 28
	Flammable      int32      // offset 32
	Glow           int32      // offset 36
	MaxLife        int32      // offset 40
	Gemstone       int32      // offset 44
	LightRadius    float32    // offset 48
	LightIntensity float32    // offset 52
	IOR            float32    // offset 56
	pad            int32      // offset 60, keeps the stride at 64
}

// RecordSize is the std430 stride of one Record in bytes.
const RecordSize = 64

// FallbackColor marks slots that were never defined in the source; magenta
// makes an authoring gap impossible to miss on screen.
var FallbackColor = mgl32.Vec4{1, 0, 1, 1}

// fallbackRecord pre-fills every slot before defined materials overwrite
// theirs, so a gap in the id space renders loudly instead of as empty.
func fallbackRecord() Record {
	return Record{Color: FallbackColor, IOR: 1.0}
}

// neutralRecord is what slot 0 is forced to after every load: fully
// transparent, inert, no light. Emptiness cannot be authored away.
func neutralRecord() Record {
	return Record{Color: mgl32.Vec4{0, 0, 0, 0}, IOR: 1.0}
}
