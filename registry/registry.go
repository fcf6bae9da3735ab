// Package registry loads the material table that parameterizes both the
// simulation and the render passes. The table is rebuilt wholesale on every
// Load, uploaded to a GPU storage buffer once, and mirrored into generated
// shader constants so CPU and GPU can never disagree on what an id means.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// MaterialBinding is the fixed SSBO binding index the simulation and render
// programs declare for the material table.
const MaterialBinding = 2

// EmptyID is the reserved material id meaning "no material here".
const EmptyID = 0

// LoadError reports a material source that could not be read or parsed.
// A partial table would desynchronize the id space between the UI and the
// generated shader constants, so any per-entry problem fails the whole load.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load materials %s: %v", e.Path, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// materialDef mirrors one JSON record. Pointer fields distinguish "absent"
// from zero so documented defaults apply only when a key is missing.
type materialDef struct {
	ID             *int        `json:"id"`
	Color          *[4]float32 `json:"color"`
	Type           string      `json:"type"`
	Density        *float32    `json:"density"`
	Viscosity      float32     `json:"viscosity"`
	Flammable      bool        `json:"flammable"`
	BurnChance     float32     `json:"burnChance"`
	Glow           bool        `json:"glow"`
	Life           int32       `json:"life"`
	Gemstone       bool        `json:"gemstone"`
	LightRadius    float32     `json:"lightRadius"`
	LightIntensity float32     `json:"lightIntensity"`
	IOR            *float32    `json:"ior"`
	SingleClick    bool        `json:"singleClick"`
}

// Registry owns the material table. Ids are dense from 0 to Count()-1;
// slots never defined by the source keep the magenta fallback record and an
// empty name.
type Registry struct {
	records     []Record
	names       []string
	nameToID    map[string]int
	singleClick []bool
	ssbo        uint32
}

// New returns an empty registry; call Load before anything else.
func New() *Registry {
	return &Registry{nameToID: map[string]int{}}
}

// Load parses the JSON material source at path and rebuilds the full table.
// Every slot is first filled with the fallback record, then defined ids are
// overwritten; slot 0's GPU record is forced neutral afterwards. The
// previous table, if any, is discarded entirely.
func (r *Registry) Load(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return &LoadError{Path: path, Err: err}
	}

	var defs map[string]materialDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return &LoadError{Path: path, Err: err}
	}

	maxID := 0
	for name, def := range defs {
		if def.ID == nil {
			return &LoadError{Path: path, Err: fmt.Errorf("material %q has no id", name)}
		}
		if *def.ID < 0 {
			return &LoadError{Path: path, Err: fmt.Errorf("material %q has negative id %d", name, *def.ID)}
		}
		if *def.ID > maxID {
			maxID = *def.ID
		}
	}

	count := maxID + 1
	records := make([]Record, count)
	names := make([]string, count)
	nameToID := make(map[string]int, len(defs))
	singleClick := make([]bool, count)

	for i := range records {
		records[i] = fallbackRecord()
	}

	for name, def := range defs {
		id := *def.ID
		if names[id] != "" && names[id] != name {
			return &LoadError{Path: path, Err: fmt.Errorf("id %d claimed by both %q and %q", id, names[id], name)}
		}
		names[id] = name
		nameToID[name] = id
		singleClick[id] = def.SingleClick

		rec := Record{
			Color:          FallbackColor,
			Kind:           parseKind(def.Type),
			Density:        10.0,
			Viscosity:      def.Viscosity,
			BurnChance:     def.BurnChance,
			MaxLife:        def.Life,
			LightRadius:    def.LightRadius,
			LightIntensity: def.LightIntensity,
			IOR:            1.45,
		}
		if def.Color != nil {
			rec.Color = mgl32.Vec4{def.Color[0], def.Color[1], def.Color[2], def.Color[3]}
		}
		if def.Density != nil {
			rec.Density = *def.Density
		}
		if def.IOR != nil {
			rec.IOR = *def.IOR
		}
		if def.Flammable {
			rec.Flammable = 1
		}
		if def.Glow {
			rec.Glow = 1
		}
		if def.Gemstone {
			rec.Gemstone = 1
		}
		records[id] = rec
	}

	// Id 0 is emptiness. The source may name and color it for the UI, but
	// its simulation record stays inert no matter what was authored.
	records[EmptyID] = neutralRecord()

	r.records = records
	r.names = names
	r.nameToID = nameToID
	r.singleClick = singleClick
	return nil
}

// ShaderHeader generates the constant block prepended to every GPU program
// source: one `#define <UPPERNAME> <id>u` per material plus the table size.
// Names are emitted in sorted order, but only the values are load-bearing.
func (r *Registry) ShaderHeader() string {
	names := make([]string, 0, len(r.nameToID))
	for name := range r.nameToID {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("// generated material constants\n")
	for _, name := range names {
		fmt.Fprintf(&b, "#define %s %du\n", strings.ToUpper(name), r.nameToID[name])
	}
	fmt.Fprintf(&b, "#define MAX_MATERIALS %du\n\n", len(r.records))
	return b.String()
}

// Count reports the table size (highest defined id + 1).
func (r *Registry) Count() int { return len(r.records) }

// ID resolves a material name, or -1 if unknown.
func (r *Registry) ID(name string) int {
	if id, ok := r.nameToID[name]; ok {
		return id
	}
	return -1
}

// Name returns the material name for id, or "" for gaps and out-of-range
// ids.
func (r *Registry) Name(id int) string {
	if id >= 0 && id < len(r.names) {
		return r.names[id]
	}
	return ""
}

// Names returns all names in id order; empty strings mark unused slots.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Color returns the display color for id, or the magenta fallback when id
// is out of range.
func (r *Registry) Color(id int) mgl32.Vec4 {
	if id >= 0 && id < len(r.records) {
		return r.records[id].Color
	}
	return FallbackColor
}

// Record returns the GPU record for id. Out-of-range ids get the fallback.
func (r *Registry) Record(id int) Record {
	if id >= 0 && id < len(r.records) {
		return r.records[id]
	}
	return fallbackRecord()
}

// SingleClick reports whether the material is placed one cell per press
// instead of painted continuously. False for out-of-range ids. The flag is
// CPU-only and never enters the GPU table.
func (r *Registry) SingleClick(id int) bool {
	if id >= 0 && id < len(r.singleClick) {
		return r.singleClick[id]
	}
	return false
}
