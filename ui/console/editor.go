package console

import "strings"

const (
	maxInputRunes     = 256
	maxHistoryEntries = 200
)

// Editor is a single-line input buffer with a cursor and a submit history.
type Editor struct {
	input  []rune
	cursor int

	history []string
	histPos int
}

func (e *Editor) Text() string { return string(e.input) }

func (e *Editor) Cursor() int { return e.cursor }

func (e *Editor) Insert(r rune) {
	if len(e.input) >= maxInputRunes {
		return
	}
	e.input = append(e.input, 0)
	copy(e.input[e.cursor+1:], e.input[e.cursor:])
	e.input[e.cursor] = r
	e.cursor++
}

func (e *Editor) Backspace() {
	if e.cursor <= 0 || len(e.input) == 0 {
		return
	}
	copy(e.input[e.cursor-1:], e.input[e.cursor:])
	e.input = e.input[:len(e.input)-1]
	e.cursor--
}

func (e *Editor) Delete() {
	if e.cursor < 0 || e.cursor >= len(e.input) {
		return
	}
	copy(e.input[e.cursor:], e.input[e.cursor+1:])
	e.input = e.input[:len(e.input)-1]
}

func (e *Editor) Left() {
	if e.cursor > 0 {
		e.cursor--
	}
}

func (e *Editor) Right() {
	if e.cursor < len(e.input) {
		e.cursor++
	}
}

func (e *Editor) Home() { e.cursor = 0 }

func (e *Editor) End() { e.cursor = len(e.input) }

// Kill clears the input line.
func (e *Editor) Kill() { e.Set("") }

func (e *Editor) Set(s string) {
	e.input = []rune(s)
	e.cursor = len(e.input)
}

// Submit returns the trimmed input, records it in the history and clears the line.
func (e *Editor) Submit() string {
	line := strings.TrimSpace(string(e.input))
	e.input = e.input[:0]
	e.cursor = 0
	e.push(line)
	e.histPos = len(e.history)
	return line
}

func (e *Editor) push(line string) {
	if line == "" {
		return
	}
	if len(e.history) > 0 && e.history[len(e.history)-1] == line {
		return
	}
	if len(e.history) >= maxHistoryEntries {
		copy(e.history, e.history[1:])
		e.history[len(e.history)-1] = line
		return
	}
	e.history = append(e.history, line)
}

// HistoryUp recalls the previous history entry.
func (e *Editor) HistoryUp() {
	if len(e.history) == 0 {
		return
	}
	if e.histPos > 0 {
		e.histPos--
	}
	if e.histPos < len(e.history) {
		e.Set(e.history[e.histPos])
	}
}

// HistoryDown moves towards the newest entry; past it the line is cleared.
func (e *Editor) HistoryDown() {
	if len(e.history) == 0 {
		return
	}
	if e.histPos < len(e.history) {
		e.histPos++
	}
	if e.histPos == len(e.history) {
		e.Set("")
		return
	}
	e.Set(e.history[e.histPos])
}
