package registry

import (
	"testing"
	"unsafe"
)

// The GLSL material block assumes these exact offsets. If this test fails,
// the shaders read garbage properties without any runtime error.
func TestRecordStd430Layout(t *testing.T) {
	var rec Record

	if got := unsafe.Sizeof(rec); got != RecordSize {
		t.Fatalf("Record size = %d, want %d", got, RecordSize)
	}
	if RecordSize%16 != 0 {
		t.Fatalf("Record stride %d is not a multiple of 16", RecordSize)
	}

	offsets := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"Color", unsafe.Offsetof(rec.Color), 0},
		{"Kind", unsafe.Offsetof(rec.Kind), 16},
		{"Density", unsafe.Offsetof(rec.Density), 20},
		{"Viscosity", unsafe.Offsetof(rec.Viscosity), 24},
		{"BurnChance", unsafe.Offsetof(rec.BurnChance), 28},
		{"Flammable", unsafe.Offsetof(rec.Flammable), 32},
		{"Glow", unsafe.Offsetof(rec.Glow), 36},
		{"MaxLife", unsafe.Offsetof(rec.MaxLife), 40},
		{"Gemstone", unsafe.Offsetof(rec.Gemstone), 44},
		{"LightRadius", unsafe.Offsetof(rec.LightRadius), 48},
		{"LightIntensity", unsafe.Offsetof(rec.LightIntensity), 52},
		{"IOR", unsafe.Offsetof(rec.IOR), 56},
	}
	for _, o := range offsets {
		if o.got != o.want {
			t.Errorf("offset of %s = %d, want %d", o.name, o.got, o.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"Static", KindStatic},
		{"Granular", KindGranular},
		{"Liquid", KindLiquid},
		{"Gas", KindGas},
		{"", KindStatic},
		{"Plasma", KindStatic},
	}
	for _, tt := range tests {
		if got := parseKind(tt.in); got != tt.want {
			t.Errorf("parseKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
