package progrock

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/vito/progrock"
)

var _ progrock.Writer = (*Console)(nil)

// Console is a progrock.Writer that prints vertex output and state changes as
// plain lines prefixed with the vertex name.
type Console struct {
	mu    sync.Mutex
	out   io.Writer
	names map[string]string
	done  map[string]bool
	// partial holds unterminated output per vertex and stream.
	partial map[string]*bytes.Buffer
}

// NewConsole creates a Console writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{
		out:     out,
		names:   make(map[string]string),
		done:    make(map[string]bool),
		partial: make(map[string]*bytes.Buffer),
	}
}

// WriteStatus renders one status update.
func (c *Console) WriteStatus(update *progrock.StatusUpdate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, v := range update.Vertexes {
		if v.Internal {
			continue
		}
		c.names[v.Id] = v.Name
	}

	for _, l := range update.Logs {
		name, ok := c.names[l.Vertex]
		if !ok {
			continue
		}
		key := fmt.Sprintf("%s/%d", l.Vertex, l.Stream)
		buf := c.partial[key]
		if buf == nil {
			buf = &bytes.Buffer{}
			c.partial[key] = buf
		}
		buf.Write(l.Data)
		for {
			line, err := buf.ReadString('\n')
			if err != nil {
				buf.Reset()
				buf.WriteString(line)
				break
			}
			_, _ = fmt.Fprintf(c.out, "%s | %s", name, line)
		}
	}

	for _, v := range update.Vertexes {
		if v.Internal || v.Completed == nil || c.done[v.Id] {
			continue
		}
		c.done[v.Id] = true
		c.flushVertex(v.Id, v.Name)

		switch {
		case v.Error != nil:
			_, _ = fmt.Fprintf(c.out, "✗ %s: %s\n", v.Name, *v.Error)
		case v.Cached:
			_, _ = fmt.Fprintf(c.out, "• %s (cached)\n", v.Name)
		default:
			_, _ = fmt.Fprintf(c.out, "✓ %s\n", v.Name)
		}
	}

	return nil
}

func (c *Console) flushVertex(id, name string) {
	for key, buf := range c.partial {
		if len(key) <= len(id) || key[:len(id)+1] != id+"/" || buf.Len() == 0 {
			continue
		}
		_, _ = fmt.Fprintf(c.out, "%s | %s\n", name, buf.String())
		buf.Reset()
	}
}

// Close does nothing; output is written synchronously.
func (c *Console) Close() error {
	return nil
}
