package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

const (
	// DefaultWidth and DefaultHeight size the host framebuffer.
	DefaultWidth  = 320
	DefaultHeight = 320
)

type hostHAL struct {
	logger Logger
	fb     *hostFramebuffer
	kbd    *hostKeyboard
}

// New returns a host HAL with a DefaultWidth x DefaultHeight framebuffer that logs
// to logger. A nil logger writes to stderr.
func New(logger Logger) HAL {
	return newHost(logger, DefaultWidth, DefaultHeight)
}

func newHost(logger Logger, width, height int) *hostHAL {
	if logger == nil {
		logger = NewLogger(os.Stderr)
	}
	return &hostHAL{
		logger: logger,
		fb:     newHostFramebuffer(width, height),
		kbd:    newHostKeyboard(),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd} }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLogger returns a Logger writing to w. Lines from concurrent writers do not
// interleave.
func NewLogger(w io.Writer) Logger {
	return &hostLogger{w: w}
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type discardLogger struct{}

// Discard is a Logger that drops every line.
var Discard Logger = discardLogger{}

func (discardLogger) WriteLineString(string) {}
func (discardLogger) WriteLineBytes([]byte)  {}
