package printer

import (
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/logos-core/lm/internal/registry"
	"github.com/logos-core/lm/modsdk"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Console writes formatted values to an output stream. Prefix is a property
// with an accessor pair; its manifest declares both ends as accessors so
// inspection reports them as non-invokable.
type Console struct {
	modsdk.Base

	mu     sync.Mutex
	prefix string
	out    io.Writer
}

// NewConsole creates a console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{out: w}
}

// Print writes a single message line.
func (c *Console) Print(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "%s%s\n", c.prefix, message)
}

// PrintMap writes a map with sorted keys for consistent output.
func (c *Console) PrintMap(values map[string]string) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(keys) == 0 {
		fmt.Fprintf(c.out, "%s(null)\n", c.prefix)
		return
	}
	for _, k := range keys {
		fmt.Fprintf(c.out, "%s%s = %q\n", c.prefix, k, values[k])
	}
}

// Prefix reads the line prefix property.
func (c *Console) Prefix() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prefix
}

// SetPrefix writes the line prefix property.
func (c *Console) SetPrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prefix = prefix
}

// Register registers the console instance with the host registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&registry.Entry{
		Name:     "printer",
		Instance: NewConsole(os.Stdout),
	})
}
