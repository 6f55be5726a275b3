// Package cpufeat answers, at run time, whether the current CPU supports a
// resolved capability target. Generated dispatch tables call Pick once at
// program start to select the most specialized compiled body.
//
// Targets use the same syntax the resolver emits: an architecture tag
// followed by '+'-separated feature tokens, e.g. "x86_64+avx2+fma". A target
// for a foreign architecture is never supported; an unknown feature token
// makes the whole target unsupported (fail closed, fall back to generic).
package cpufeat

import (
	"os"
	"strconv"
	"strings"
)

const separator = "+"

// Supported reports whether the target's architecture matches the running
// program and every one of its feature tokens is available on this CPU.
// Returns false when the MULTIVERSED_NO_SIMD environment variable is set.
func Supported(target string) bool {
	if NoSimdEnv() {
		return false
	}
	arch, features, ok := strings.Cut(target, separator)
	if !ok || arch != hostArch {
		return false
	}
	for _, tok := range strings.Split(features, separator) {
		if !hasFeature(tok) {
			return false
		}
	}
	return true
}

// Pick returns the index of the first supported target, or -1 when none is
// supported. Targets are ordered most specialized first, so the first match
// is the best one; -1 selects the generic body.
func Pick(targets []string) int {
	for i, t := range targets {
		if Supported(t) {
			return i
		}
	}
	return -1
}

// Arch returns the capability architecture tag for the running program
// ("x86_64", "aarch64", "wasm32"), or "" on architectures with no
// specialization support.
func Arch() string {
	return hostArch
}

// NoSimdEnv checks the MULTIVERSED_NO_SIMD environment variable. When set,
// every target is reported unsupported and all sites dispatch to their
// generic body. Useful for testing and for profiling the scalar paths.
func NoSimdEnv() bool {
	val := os.Getenv("MULTIVERSED_NO_SIMD")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}
