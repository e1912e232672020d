package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// timestampWriter prefixes each flushed line with an RFC3339 timestamp.
type timestampWriter struct {
	w   io.Writer
	buf bytes.Buffer
	mu  sync.Mutex
}

// Write buffers bytes until a newline is found; each full line goes out
// timestamped. Partial lines stay in the buffer.
func (t *timestampWriter) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, _ := t.buf.Write(p)
	for {
		line, err := t.buf.ReadString('\n')
		if err != nil {
			// put the partial line back for the next call
			t.buf.WriteString(line)
			break
		}
		ts := time.Now().Format(time.RFC3339)
		if _, err := t.w.Write([]byte(ts + " " + line)); err != nil {
			return n, err
		}
	}
	return n, nil
}

// terminalWriter exposes an Fd so charm log can detect a TTY through the
// wrapping writers.
type terminalWriter struct {
	w  io.Writer
	fd uintptr
}

func (tw *terminalWriter) Write(p []byte) (int, error) { return tw.w.Write(p) }

func (tw *terminalWriter) Fd() uintptr { return tw.fd }

// newLogger builds the program logger. When logFile is set, output goes to
// stderr and the file. The returned close func releases the file.
func newLogger(logFile string) (*log.Logger, func(), error) {
	var out io.Writer = os.Stderr
	closeFn := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return log.New(os.Stderr), closeFn, err
		}
		out = io.MultiWriter(os.Stderr, f)
		closeFn = func() { _ = f.Close() }
	}
	tw := &timestampWriter{w: out}
	return log.New(&terminalWriter{w: tw, fd: os.Stderr.Fd()}), closeFn, nil
}

// levelFor maps a config log level to a charm log level. ok is false for
// unknown names.
func levelFor(name string) (level log.Level, ok bool) {
	switch strings.ToLower(name) {
	case "debug":
		return log.DebugLevel, true
	case "info", "":
		return log.InfoLevel, true
	case "warn", "warning":
		return log.WarnLevel, true
	case "error":
		return log.ErrorLevel, true
	}
	return log.InfoLevel, false
}
