package core

import (
	"math"
	"testing"
)

func TestStepperWholeTicks(t *testing.T) {
	tests := []struct {
		name      string
		dt        float64
		wantTicks int
		wantLeft  float64
	}{
		{"exactly four ticks", 4 * FixedTimestep, 4, 0},
		{"below one tick", FixedTimestep / 2, 0, FixedTimestep / 2},
		{"tick and a half", 1.5 * FixedTimestep, 1, 0.5 * FixedTimestep},
		{"zero", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStepper(FixedTimestep)
			got := s.Advance(tt.dt)
			if got != tt.wantTicks {
				t.Errorf("Advance(%v) = %d ticks, want %d", tt.dt, got, tt.wantTicks)
			}
			if math.Abs(s.Accumulated()-tt.wantLeft) > 1e-12 {
				t.Errorf("accumulator = %v, want %v", s.Accumulated(), tt.wantLeft)
			}
		})
	}
}

func TestStepperSplitEqualsCombined(t *testing.T) {
	x := 3.7 * FixedTimestep
	y := 2.6 * FixedTimestep

	split := NewStepper(FixedTimestep)
	splitTicks := split.Advance(x) + split.Advance(y)

	combined := NewStepper(FixedTimestep)
	combinedTicks := combined.Advance(x + y)

	if splitTicks != combinedTicks {
		t.Fatalf("split advance gave %d ticks, combined gave %d", splitTicks, combinedTicks)
	}
	if math.Abs(split.Accumulated()-combined.Accumulated()) > 1e-9 {
		t.Fatalf("accumulators diverged: %v vs %v", split.Accumulated(), combined.Accumulated())
	}
}

func TestStepperElapsedTracksTotalTime(t *testing.T) {
	s := NewStepper(FixedTimestep)
	s.Advance(0.25)
	s.Advance(0.1)
	if math.Abs(s.Elapsed()-0.35) > 1e-12 {
		t.Fatalf("Elapsed = %v, want 0.35", s.Elapsed())
	}
}

func TestStepperBadTickFallsBack(t *testing.T) {
	s := NewStepper(-1)
	if s.Tick() != FixedTimestep {
		t.Fatalf("Tick = %v, want %v", s.Tick(), FixedTimestep)
	}
}
