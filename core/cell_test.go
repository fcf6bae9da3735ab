package core

import "testing"

func TestNewCellDefaults(t *testing.T) {
	c := NewCell(7)
	want := [4]uint8{7, 0, DefaultVelocity, 0}
	if c.Bytes() != want {
		t.Fatalf("NewCell(7).Bytes() = %v, want %v", c.Bytes(), want)
	}
}

func TestEmptyCell(t *testing.T) {
	var c Cell
	if !c.Empty() {
		t.Fatal("zero cell must be empty")
	}
	if NewCell(1).Empty() {
		t.Fatal("material 1 must not be empty")
	}
}
