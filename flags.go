package multiversed

import "fmt"

// BuildFlags is the build-time flag set: one boolean per recognized preset
// plus the disable switch. It is explicit configuration rather than ambient
// environment state so the same resolution logic runs against synthetic
// flag sets in tests.
type BuildFlags struct {
	V2       bool // x86_64 v2
	V3       bool // x86_64 v3
	V4       bool // x86_64 v4
	V4Modern bool // x86_64 v4-modern (alias v4x)
	Arm64    bool // aarch64 arm64 (alias arm64-v2)
	Arm64V3  bool // aarch64 arm64-v3
	Simd128  bool // wasm32 simd128

	// Disable forces pass-through for every specialization site in the
	// build, taking precedence over explicit per-site arguments. It exists
	// for debugging and profiling builds where no specialization is wanted
	// anywhere.
	Disable bool
}

// DefaultBuildFlags returns the default-active flag set: v3, v4-modern,
// arm64, and simd128.
func DefaultBuildFlags() BuildFlags {
	return BuildFlags{V3: true, V4Modern: true, Arm64: true, Simd128: true}
}

// Set enables the flag for the given preset name or alias, or the disable
// switch.
func (f *BuildFlags) Set(name string) error {
	switch name {
	case "v2":
		f.V2 = true
	case "v3":
		f.V3 = true
	case "v4":
		f.V4 = true
	case "v4-modern", "v4x":
		f.V4Modern = true
	case "arm64", "arm64-v2":
		f.Arm64 = true
	case "arm64-v3":
		f.Arm64V3 = true
	case "simd128":
		f.Simd128 = true
	case "disable":
		f.Disable = true
	default:
		return fmt.Errorf("unknown build flag %q", name)
	}
	return nil
}

// enabled reports whether the flag for a canonical preset name is active.
func (f BuildFlags) enabled(name string) bool {
	switch name {
	case "v2":
		return f.V2
	case "v3":
		return f.V3
	case "v4":
		return f.V4
	case "v4-modern":
		return f.V4Modern
	case "arm64":
		return f.Arm64
	case "arm64-v3":
		return f.Arm64V3
	case "simd128":
		return f.Simd128
	default:
		return false
	}
}

// Args derives the default argument list for a site with no explicit
// arguments: every active preset's canonical name, architectures in
// registry-declared order, rank descending within each architecture. The
// result is deterministic and is treated exactly like an explicit list.
func (f BuildFlags) Args(reg *Registry) []string {
	if f.Disable {
		return nil
	}
	var args []string
	for _, arch := range reg.Architectures() {
		for _, p := range reg.PresetsFor(arch) {
			if f.enabled(p.Name) {
				args = append(args, p.Name)
			}
		}
	}
	return args
}
