//go:build !amd64 && !arm64 && !wasm

package cpufeat

// No specialization support on this architecture; everything dispatches to
// the generic body.
const hostArch = ""

func hasFeature(string) bool {
	return false
}
