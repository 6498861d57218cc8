//go:build !(linux || darwin || freebsd)

package loader

import (
	"errors"
	"fmt"
	"runtime"
)

// nativeLibrary is a stub on platforms without a native loading facility.
type nativeLibrary struct{}

func openNative(path string) (*nativeLibrary, error) {
	return nil, fmt.Errorf("dynamic module loading is not supported on %s/%s", runtime.GOOS, runtime.GOARCH)
}

func (n *nativeLibrary) instantiate() (any, error) {
	return nil, errors.New("dynamic module loading is not supported on this platform")
}
