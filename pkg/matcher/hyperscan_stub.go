//go:build !cgo || !hyperscan

package matcher

import "fmt"

// NewHyperscan stub for builds without Hyperscan (non-CGO or missing hyperscan tag).
// Returns an error indicating Hyperscan requires CGO.
func NewHyperscan(cfg Config) (Engine, error) {
	return nil, fmt.Errorf("Hyperscan requires CGO (build with CGO_ENABLED=1 and -tags=hyperscan)")
}

// HyperscanAvailable returns false when Hyperscan is not available (non-CGO build or missing hyperscan tag).
func HyperscanAvailable() bool {
	return false
}
