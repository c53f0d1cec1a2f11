package logging

import (
	"bytes"
	"io"
	"sync"
)

// PrefixWriter writes each complete line to the underlying writer with a
// prefix in front of it. Partial lines are held until their newline arrives
// or Flush is called. It is safe for concurrent use.
type PrefixWriter struct {
	mu      sync.Mutex
	prefix  []byte
	out     io.Writer
	pending []byte
}

// NewPrefixWriter creates a new PrefixWriter.
func NewPrefixWriter(prefix string, w io.Writer) *PrefixWriter {
	return &PrefixWriter{prefix: []byte(prefix), out: w}
}

// Write emits every complete line of pending+p in a single write to the
// underlying writer, so log lines from hclog are never interleaved.
func (pw *PrefixWriter) Write(p []byte) (int, error) {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	data := append(pw.pending, p...)
	var out []byte
	for {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		out = append(out, pw.prefix...)
		out = append(out, data[:i+1]...)
		data = data[i+1:]
	}
	pw.pending = append(pw.pending[:0:0], data...)

	if len(out) > 0 {
		if _, err := pw.out.Write(out); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// Flush writes a held partial line, followed by a newline.
func (pw *PrefixWriter) Flush() error {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	if len(pw.pending) == 0 {
		return nil
	}
	line := make([]byte, 0, len(pw.prefix)+len(pw.pending)+1)
	line = append(line, pw.prefix...)
	line = append(line, pw.pending...)
	line = append(line, '\n')
	pw.pending = nil
	_, err := pw.out.Write(line)
	return err
}
