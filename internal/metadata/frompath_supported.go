//go:build linux || darwin || freebsd

package metadata

import (
	"context"
	"plugin"

	"github.com/logos-core/lm/internal/ctxlog"
	"github.com/logos-core/lm/modsdk"
)

// FromPath reads the metadata record embedded in the module binary at path
// without requesting the module's root instance. The native library is
// opened just far enough to resolve the well-known metadata symbol; the
// entry point is never called.
func FromPath(ctx context.Context, path string) (Descriptor, bool) {
	logger := ctxlog.FromContext(ctx)

	lib, err := plugin.Open(path)
	if err != nil {
		logger.Warn("No readable module binary at path.", "path", path, "error", err)
		return Descriptor{}, false
	}

	sym, err := lib.Lookup(modsdk.MetadataSymbol)
	if err != nil {
		logger.Warn("Module carries no embedded metadata record.", "path", path)
		return Descriptor{}, false
	}

	var record []byte
	switch v := sym.(type) {
	case *string:
		record = []byte(*v)
	case *[]byte:
		record = *v
	default:
		logger.Warn("Metadata symbol has an unexpected type.", "path", path, "symbol", modsdk.MetadataSymbol)
		return Descriptor{}, false
	}

	d, ok := ParseRecord(record)
	if !ok {
		logger.Warn("Embedded metadata record is absent or invalid.", "path", path)
	}
	return d, ok
}
