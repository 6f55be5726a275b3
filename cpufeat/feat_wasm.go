//go:build wasm

package cpufeat

const hostArch = "wasm32"

// wasm32 has no runtime feature detection; SIMD must be enabled at compile
// time, so every target falls back to the generic body.
func hasFeature(string) bool {
	return false
}
