package core

// Cell channel layout inside the RGBA8UI state textures:
// R = material id, G = state/phase (life countdown, settle flag),
// B = velocity, A = flags. Material id 0 always means empty.
const (
	DefaultVelocity = 128 // neutral velocity byte for freshly placed cells
	EmptyMaterial   = 0
)

// Cell is the CPU-side view of one grid pixel, used when uploading single
// cells (spawn) or clearing regions. The GPU only ever sees the four bytes.
type Cell struct {
	Material uint8
	State    uint8
	Velocity uint8
	Flags    uint8
}

// NewCell returns a cell for the given material with default aux channels.
func NewCell(material uint8) Cell {
	return Cell{Material: material, Velocity: DefaultVelocity}
}

// Bytes returns the texture byte order for the cell.
func (c Cell) Bytes() [4]uint8 {
	return [4]uint8{c.Material, c.State, c.Velocity, c.Flags}
}

// Empty reports whether the cell holds no material.
func (c Cell) Empty() bool { return c.Material == EmptyMaterial }
