package core

import "testing"

// The composite pass reads whichever lightmap holds the final bounce. That
// buffer is determined purely by how many swaps ran since Reset: even counts
// land on the primary buffer, odd counts on the secondary.
func TestPingPongBounceParity(t *testing.T) {
	for bounces := 0; bounces <= 4; bounces++ {
		var p PingPong
		p.Reset()
		for b := 0; b < bounces; b++ {
			p.Swap()
		}
		want := bounces % 2
		if p.Current() != want {
			t.Errorf("after %d bounces Current = %d, want %d", bounces, p.Current(), want)
		}
	}
}

func TestPingPongCurrentOtherDisjoint(t *testing.T) {
	var p PingPong
	for i := 0; i < 3; i++ {
		if p.Current() == p.Other() {
			t.Fatalf("Current and Other both %d", p.Current())
		}
		if p.Current()+p.Other() != 1 {
			t.Fatalf("indices must cover {0,1}, got %d and %d", p.Current(), p.Other())
		}
		p.Swap()
	}
}

func TestPingPongReset(t *testing.T) {
	var p PingPong
	p.Swap()
	p.Reset()
	if p.Current() != 0 {
		t.Fatalf("Reset should point Current at the primary buffer, got %d", p.Current())
	}
}
