//go:build (!amd64 && !arm64) || purego

package capability

// probe reports no features: only Scalar is available.
func probe() (Features, string, []string) {
	return Features{}, "", nil
}
