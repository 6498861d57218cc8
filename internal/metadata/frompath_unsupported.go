//go:build !(linux || darwin || freebsd)

package metadata

import (
	"context"
	"runtime"

	"github.com/logos-core/lm/internal/ctxlog"
)

// FromPath always reports absent on platforms without native module loading.
func FromPath(ctx context.Context, path string) (Descriptor, bool) {
	ctxlog.FromContext(ctx).Warn("Dynamic module loading is unsupported on this platform.",
		"path", path, "goos", runtime.GOOS)
	return Descriptor{}, false
}
