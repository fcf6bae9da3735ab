package core

// PingPong tracks which of two buffers is "current". Every GPU pass in the
// pipeline reads Current and writes Other, then swaps; keeping the rotation
// here means the final-buffer parity can never be miscomputed at a call
// site.
type PingPong struct {
	current int
}

// Current returns the index (0 or 1) of the authoritative buffer.
func (p *PingPong) Current() int { return p.current }

// Other returns the index of the write-target buffer.
func (p *PingPong) Other() int { return 1 - p.current }

// Swap makes the write target the new current buffer.
func (p *PingPong) Swap() { p.current = 1 - p.current }

// Reset points Current back at the primary buffer (index 0).
func (p *PingPong) Reset() { p.current = 0 }
