package hal

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

// push queues ev and reports false when the queue is full.
func (k *hostKeyboard) push(ev KeyEvent) bool {
	select {
	case k.ch <- ev:
		return true
	default:
		return false
	}
}

// TypeLine converts s into the key events produced by typing it and pressing Enter.
func TypeLine(s string) []KeyEvent {
	out := make([]KeyEvent, 0, len(s)+1)
	for _, r := range s {
		out = append(out, KeyEvent{Press: true, Rune: r})
	}
	return append(out, KeyEvent{Code: KeyEnter, Press: true})
}
