package paint

// history is a bounded stack of committed canvas states. The bottom entry
// is the oldest state that can still be restored.
type history struct {
	states   [][]uint8
	capacity int
}

func newHistory(capacity int) *history {
	return &history{capacity: capacity}
}

func (h *history) push(data []uint8) {
	if len(h.states) == h.capacity {
		h.states[0] = nil
		h.states = h.states[1:]
	}
	h.states = append(h.states, append([]uint8(nil), data...))
}

// pop drops the newest state. The last remaining state is never dropped.
func (h *history) pop() bool {
	if len(h.states) <= 1 {
		return false
	}
	h.states[len(h.states)-1] = nil
	h.states = h.states[:len(h.states)-1]
	return true
}

func (h *history) top() []uint8 { return h.states[len(h.states)-1] }

func (h *history) len() int { return len(h.states) }

func (h *history) reset() { h.states = nil }
