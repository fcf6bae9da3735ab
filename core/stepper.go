package core

// FixedTimestep is the simulation tick length in seconds. The automaton
// advances in whole ticks regardless of how fast frames are displayed.
const FixedTimestep = 1.0 / 60.0

// Stepper accumulates frame time and converts it into whole simulation
// ticks. Partial ticks stay in the accumulator for the next frame.
type Stepper struct {
	tick        float64
	accumulated float64
	elapsed     float64
}

// NewStepper returns a Stepper with the given tick length. Non-positive
// values fall back to FixedTimestep.
func NewStepper(tick float64) *Stepper {
	if tick <= 0 {
		tick = FixedTimestep
	}
	return &Stepper{tick: tick}
}

// Advance adds dt to the accumulator and returns the number of whole ticks
// now due. The remainder below one tick carries over.
func (s *Stepper) Advance(dt float64) int {
	s.accumulated += dt
	s.elapsed += dt

	ticks := 0
	for s.accumulated >= s.tick {
		s.accumulated -= s.tick
		ticks++
	}
	return ticks
}

// Accumulated reports the leftover time below one tick.
func (s *Stepper) Accumulated() float64 { return s.accumulated }

// Elapsed reports total simulation time fed in so far.
func (s *Stepper) Elapsed() float64 { return s.elapsed }

// Tick reports the tick length in seconds.
func (s *Stepper) Tick() float64 { return s.tick }
