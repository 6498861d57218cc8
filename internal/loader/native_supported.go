//go:build linux || darwin || freebsd

package loader

import (
	"fmt"
	"plugin"

	"github.com/logos-core/lm/modsdk"
)

// nativeLibrary wraps the platform loading facility. The facility is
// treated as an opaque black box: opening blocks for disk I/O, symbol
// resolution, and arbitrary module initialization, with no timeout or
// cancellation support.
type nativeLibrary struct {
	plug *plugin.Plugin
}

// openNative maps the module binary at path into the process.
func openNative(path string) (*nativeLibrary, error) {
	plug, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}
	return &nativeLibrary{plug: plug}, nil
}

// instantiate resolves the documented entry point and requests the module's
// root instance.
func (n *nativeLibrary) instantiate() (any, error) {
	sym, err := n.plug.Lookup(modsdk.EntryPointSymbol)
	if err != nil {
		return nil, err
	}

	var entry func() any
	switch f := sym.(type) {
	case func() any:
		entry = f
	case *func() any:
		if f != nil {
			entry = *f
		}
	}
	if entry == nil {
		return nil, fmt.Errorf("symbol %q is not a module entry point", modsdk.EntryPointSymbol)
	}

	instance := entry()
	if instance == nil {
		return nil, fmt.Errorf("entry point %q returned no instance", modsdk.EntryPointSymbol)
	}
	return instance, nil
}
