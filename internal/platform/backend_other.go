//go:build !linux && !darwin && !windows

package platform

import (
	"fmt"
	"runtime"
)

// New reports ErrUnsupportedPlatform; no windowing backend is built for
// this GOOS.
func New(BackendOptions) (Backend, error) {
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, runtime.GOOS)
}
