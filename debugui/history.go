package debugui

// history is a fixed-size ring of samples for plotting.
type history struct {
	samples []float32
	next    int
	full    bool
	ordered []float32
}

func newHistory(size int) *history {
	if size <= 0 {
		size = 120
	}
	return &history{
		samples: make([]float32, size),
		ordered: make([]float32, size),
	}
}

func (h *history) push(v float32) {
	h.samples[h.next] = v
	h.next = (h.next + 1) % len(h.samples)
	if h.next == 0 {
		h.full = true
	}
}

// values returns the samples oldest first. Before the ring fills, the
// unwritten slots come first as zeros. The slice is reused between calls.
func (h *history) values() []float32 {
	n := copy(h.ordered, h.samples[h.next:])
	copy(h.ordered[n:], h.samples[:h.next])
	return h.ordered
}

func (h *history) last() float32 {
	if !h.full && h.next == 0 {
		return 0
	}
	return h.samples[(h.next-1+len(h.samples))%len(h.samples)]
}
