package registry

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeMaterials(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "materials.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const sampleSource = `{
	"empty":  {"id": 0, "color": [0, 0, 0, 0]},
	"sand":   {"id": 1, "color": [0.9, 0.8, 0.4, 1], "type": "Granular", "density": 30},
	"water":  {"id": 2, "color": [0.2, 0.4, 0.9, 0.8], "type": "Liquid", "viscosity": 0.5},
	"fire":   {"id": 4, "color": [1, 0.4, 0.1, 1], "type": "Gas", "glow": true, "life": 40,
	           "lightRadius": 8, "lightIntensity": 1.5},
	"beacon": {"id": 5, "color": [1, 1, 1, 1], "singleClick": true, "gemstone": true, "ior": 1.9}
}`

func loadSample(t *testing.T) *Registry {
	t.Helper()
	r := New()
	if err := r.Load(writeMaterials(t, sampleSource)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return r
}

func TestLoadTableShape(t *testing.T) {
	r := loadSample(t)

	if r.Count() != 6 {
		t.Fatalf("Count = %d, want 6 (max id 5 + 1)", r.Count())
	}

	// id 3 was never defined: gap slot keeps the fallback color and no name.
	if r.Name(3) != "" {
		t.Errorf("gap slot name = %q, want empty", r.Name(3))
	}
	if r.Color(3) != FallbackColor {
		t.Errorf("gap slot color = %v, want fallback %v", r.Color(3), FallbackColor)
	}
}

func TestNameIDRoundTrip(t *testing.T) {
	r := loadSample(t)
	for id := 0; id < r.Count(); id++ {
		name := r.Name(id)
		if name == "" {
			continue // gap
		}
		if got := r.ID(name); got != id {
			t.Errorf("ID(Name(%d)) = %d", id, got)
		}
	}
	if r.ID("bedrock") != -1 {
		t.Errorf("unknown name should resolve to -1, got %d", r.ID("bedrock"))
	}
}

func TestDefaultsApplied(t *testing.T) {
	r := loadSample(t)

	sand := r.Record(1)
	if sand.Kind != KindGranular || sand.Density != 30 {
		t.Errorf("sand record = %+v", sand)
	}
	if sand.IOR != 1.45 {
		t.Errorf("sand ior = %v, want default 1.45", sand.IOR)
	}

	water := r.Record(2)
	if water.Density != 10.0 {
		t.Errorf("water density = %v, want default 10", water.Density)
	}

	fire := r.Record(4)
	if fire.Glow != 1 || fire.MaxLife != 40 || fire.LightRadius != 8 {
		t.Errorf("fire record = %+v", fire)
	}

	beacon := r.Record(5)
	if beacon.Gemstone != 1 || beacon.IOR != 1.9 {
		t.Errorf("beacon record = %+v", beacon)
	}
}

func TestEmptySlotForcedNeutral(t *testing.T) {
	// The source colors id 0 opaque red and makes it glow; the GPU record
	// must stay inert anyway.
	src := `{"empty": {"id": 0, "color": [1, 0, 0, 1], "glow": true, "density": 99}}`
	r := New()
	if err := r.Load(writeMaterials(t, src)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	rec := r.Record(0)
	if rec.Color != (neutralRecord().Color) || rec.Glow != 0 || rec.Density != 0 {
		t.Fatalf("slot 0 record = %+v, want neutral", rec)
	}
	if r.Name(0) != "empty" {
		t.Fatalf("slot 0 keeps its UI name, got %q", r.Name(0))
	}
}

func TestSingleClickFlag(t *testing.T) {
	r := loadSample(t)
	if !r.SingleClick(5) {
		t.Error("beacon should be single-click")
	}
	if r.SingleClick(1) {
		t.Error("sand should paint continuously")
	}
	if r.SingleClick(99) || r.SingleClick(-1) {
		t.Error("out-of-range ids must report false")
	}
}

func TestOutOfRangeColorFallback(t *testing.T) {
	r := loadSample(t)
	for _, id := range []int{-1, r.Count(), 1000} {
		if r.Color(id) != FallbackColor {
			t.Errorf("Color(%d) = %v, want fallback", id, r.Color(id))
		}
	}
}

func TestShaderHeader(t *testing.T) {
	r := loadSample(t)
	header := r.ShaderHeader()

	for _, want := range []string{
		"#define SAND 1u",
		"#define WATER 2u",
		"#define FIRE 4u",
		"#define BEACON 5u",
		"#define EMPTY 0u",
		"#define MAX_MATERIALS 6u",
	} {
		if !strings.Contains(header, want) {
			t.Errorf("header missing %q:\n%s", want, header)
		}
	}
}

func TestLoadFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "sand, water"},
		{"missing id", `{"sand": {"color": [1, 1, 1, 1]}}`},
		{"negative id", `{"sand": {"id": -2}}`},
		{"wrong field type", `{"sand": {"id": 1, "density": "heavy"}}`},
		{"id collision", `{"sand": {"id": 1}, "grit": {"id": 1}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			err := r.Load(writeMaterials(t, tt.body))
			if err == nil {
				t.Fatal("Load should fail")
			}
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("error type %T, want *LoadError", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	r := New()
	err := r.Load(filepath.Join(t.TempDir(), "nope.json"))
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("missing file should yield *LoadError, got %v", err)
	}
}

func TestReloadReplacesTable(t *testing.T) {
	r := loadSample(t)
	small := `{"empty": {"id": 0}, "ash": {"id": 1, "color": [0.3, 0.3, 0.3, 1]}}`
	if err := r.Load(writeMaterials(t, small)); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if r.Count() != 2 {
		t.Fatalf("Count after reload = %d, want 2", r.Count())
	}
	if r.ID("sand") != -1 {
		t.Fatal("old table must be fully discarded on reload")
	}
}
