package shell

import (
	"bytes"
	"strings"
	"sync"

	"go.trai.ch/splitter/internal/core/ports"
)

type level int

const (
	levelInfo level = iota
	levelWarn
)

// logWriter forwards complete lines to the logger. Partial lines are held
// until a newline arrives or Flush is called.
type logWriter struct {
	logger ports.Logger
	level  level

	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// No newline yet: put the fragment back.
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		w.emit(line[:len(line)-1])
	}
	return len(p), nil
}

// Flush emits any buffered partial line.
func (w *logWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() > 0 {
		w.emit(w.buf.String())
		w.buf.Reset()
	}
}

func (w *logWriter) emit(line string) {
	line = strings.TrimSuffix(line, "\r")
	if w.level == levelInfo {
		w.logger.Info(line)
		return
	}
	w.logger.Warn(line)
}
