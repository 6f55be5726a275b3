// Package multiversed resolves named CPU-capability presets into ordered,
// architecture-tagged target descriptors for multi-version code generation.
//
// A preset is a complete, non-cumulative capability bundle for exactly one
// architecture. Stacking tiers requires listing multiple presets explicitly;
// feature sets are never merged implicitly. Presets follow the x86-64 psABI
// microarchitecture levels and ARM architecture versions:
//
//	v2         x86_64   SSE4.2, POPCNT (Nehalem 2008+, Bulldozer 2011+)
//	v3         x86_64   AVX2, FMA, BMI1/2 (Haswell 2013+, Zen 1 2017+)
//	v4         x86_64   AVX-512 F/BW/CD/DQ/VL (Skylake-X 2017+, Zen 4 2022+)
//	v4-modern  x86_64   v4 + VNNI, VBMI2, GFNI, VAES (Ice Lake 2019+, Zen 4 2022+)
//	arm64      aarch64  NEON, CRC, RDM, DotProd, FP16, AES, SHA2 (Apple M1+, Graviton 2+)
//	arm64-v3   aarch64  arm64 + FHM, FCMA, SHA3, I8MM, BF16 (Apple M2+, Graviton 3+)
//	simd128    wasm32   placeholder; wasm32 has no runtime dispatch
//
// Resolution is a pure function of (arguments, build flags, registry, compile
// architecture) and never performs CPU detection; the cpufeat package handles
// the runtime side for generated dispatch tables.
package multiversed

import (
	"fmt"
	"strings"
)

// Arch identifies a target architecture in registry entries and descriptors.
type Arch string

const (
	ArchX86_64  Arch = "x86_64"
	ArchAArch64 Arch = "aarch64"
	ArchWasm32  Arch = "wasm32"
)

// Separator splits the architecture tag from the feature tokens in a raw
// capability string ("x86_64+avx2+fma"), and feature tokens from one
// another. A token containing it is always classified as a raw capability
// string; preset names never contain it.
const Separator = "+"

// Preset is a named, complete capability bundle for one architecture.
type Preset struct {
	// Name is the canonical preset name, unique per registry.
	Name string

	// Aliases resolve byte-identically to the canonical name.
	Aliases []string

	// Arch tags every descriptor this preset resolves to.
	Arch Arch

	// Features holds the feature tokens in their canonical emission order.
	Features []string

	// Rank orders default-derived lists within one architecture;
	// higher rank means more specialized hardware.
	Rank int

	// Noop marks presets that resolve to no descriptor at all (wasm32
	// simd128: the downstream mechanism has no wasm runtime dispatch).
	Noop bool
}

// FeatureString returns the canonical feature-string portion of the preset,
// without the architecture tag.
func (p Preset) FeatureString() string {
	return strings.Join(p.Features, Separator)
}

// Target returns the descriptor this preset resolves to.
func (p Preset) Target() Target {
	return Target{Arch: p.Arch, Features: p.FeatureString()}
}

// Registry is an immutable catalog of presets. Construct one with
// NewRegistry or use DefaultRegistry; it is safe for concurrent readers and
// has no writers after construction.
type Registry struct {
	presets []Preset
	byName  map[string]int    // canonical name -> index into presets
	aliases map[string]string // alias -> canonical name
	arches  []Arch            // declared order, first occurrence wins
}

// NewRegistry builds a registry from the given presets, preserving their
// declared order. It rejects duplicate canonical names, alias collisions,
// and two non-alias presets of the same architecture resolving to the same
// feature string (that would defeat first-occurrence deduplication).
func NewRegistry(presets ...Preset) (*Registry, error) {
	r := &Registry{
		presets: make([]Preset, len(presets)),
		byName:  make(map[string]int, len(presets)),
		aliases: make(map[string]string),
	}
	copy(r.presets, presets)

	seenArch := make(map[Arch]bool)
	seenTarget := make(map[Target]string)
	for i, p := range r.presets {
		if p.Name == "" {
			return nil, fmt.Errorf("preset %d has no name", i)
		}
		if strings.Contains(p.Name, Separator) {
			return nil, fmt.Errorf("preset name %q contains the capability separator", p.Name)
		}
		if _, dup := r.byName[p.Name]; dup {
			return nil, fmt.Errorf("duplicate preset name %q", p.Name)
		}
		if canon, dup := r.aliases[p.Name]; dup {
			return nil, fmt.Errorf("preset name %q collides with alias of %q", p.Name, canon)
		}
		r.byName[p.Name] = i

		for _, a := range p.Aliases {
			if strings.Contains(a, Separator) {
				return nil, fmt.Errorf("alias %q contains the capability separator", a)
			}
			if _, dup := r.byName[a]; dup {
				return nil, fmt.Errorf("alias %q collides with preset name", a)
			}
			if canon, dup := r.aliases[a]; dup {
				return nil, fmt.Errorf("alias %q already declared for %q", a, canon)
			}
			r.aliases[a] = p.Name
		}

		if !p.Noop {
			t := p.Target()
			if prev, dup := seenTarget[t]; dup {
				return nil, fmt.Errorf("presets %q and %q resolve to the same target %q", prev, p.Name, t)
			}
			seenTarget[t] = p.Name
		}

		if !seenArch[p.Arch] {
			seenArch[p.Arch] = true
			r.arches = append(r.arches, p.Arch)
		}
	}
	return r, nil
}

// Lookup returns the preset whose canonical name or alias equals name.
func (r *Registry) Lookup(name string) (Preset, bool) {
	if canon, ok := r.aliases[name]; ok {
		name = canon
	}
	i, ok := r.byName[name]
	if !ok {
		return Preset{}, false
	}
	return r.presets[i], true
}

// PresetsFor returns the presets for one architecture ordered by rank
// descending, ties broken by declared order.
func (r *Registry) PresetsFor(arch Arch) []Preset {
	var out []Preset
	for _, p := range r.presets {
		if p.Arch == arch {
			out = append(out, p)
		}
	}
	// Insertion sort keeps the declared order for equal ranks.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Rank > out[j-1].Rank; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Architectures returns every architecture in registry-declared order.
func (r *Registry) Architectures() []Arch {
	out := make([]Arch, len(r.arches))
	copy(out, r.arches)
	return out
}

// Names returns the canonical preset names in declared order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.presets))
	for i, p := range r.presets {
		out[i] = p.Name
	}
	return out
}

// NamesFor returns canonical preset names for one architecture, in
// declared order. Used by diagnostics.
func (r *Registry) NamesFor(arch Arch) []string {
	var out []string
	for _, p := range r.presets {
		if p.Arch == arch {
			out = append(out, p.Name)
		}
	}
	return out
}

// x86-64 feature token sets. Each tier is complete, not a delta: two call
// sites picking the same preset must produce byte-identical strings.
var (
	x64v2Features = []string{
		"sse", "sse2", "sse3", "ssse3", "sse4.1", "sse4.2", "popcnt", "cmpxchg16b",
	}
	x64v3Features = append(x64v2Features[:len(x64v2Features):len(x64v2Features)],
		"avx", "avx2", "fma", "bmi1", "bmi2", "f16c", "lzcnt", "movbe",
	)
	x64v4Features = append(x64v3Features[:len(x64v3Features):len(x64v3Features)],
		"avx512f", "avx512bw", "avx512cd", "avx512dq", "avx512vl",
	)
	x64v4ModernFeatures = append(x64v4Features[:len(x64v4Features):len(x64v4Features)],
		"avx512vpopcntdq", "avx512ifma", "avx512vbmi", "avx512vbmi2",
		"avx512bitalg", "avx512vnni", "vpclmulqdq", "gfni", "vaes",
	)
)

// aarch64 feature token sets.
var (
	arm64Features = []string{
		"neon", "crc", "rdm", "dotprod", "fp16", "aes", "sha2",
	}
	arm64v3Features = append(arm64Features[:len(arm64Features):len(arm64Features)],
		"fhm", "fcma", "sha3", "i8mm", "bf16",
	)
)

// DefaultRegistry returns the documented preset catalog. The returned
// registry is freshly constructed and safe to share.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(
		Preset{Name: "v2", Arch: ArchX86_64, Features: x64v2Features, Rank: 2},
		Preset{Name: "v3", Arch: ArchX86_64, Features: x64v3Features, Rank: 3},
		Preset{Name: "v4", Arch: ArchX86_64, Features: x64v4Features, Rank: 4},
		Preset{Name: "v4-modern", Aliases: []string{"v4x"}, Arch: ArchX86_64, Features: x64v4ModernFeatures, Rank: 5},
		Preset{Name: "arm64", Aliases: []string{"arm64-v2"}, Arch: ArchAArch64, Features: arm64Features, Rank: 2},
		Preset{Name: "arm64-v3", Arch: ArchAArch64, Features: arm64v3Features, Rank: 3},
		Preset{Name: "simd128", Arch: ArchWasm32, Features: []string{"simd128"}, Rank: 1, Noop: true},
	)
	if err != nil {
		// The table above is static; a failure here is a programming error.
		panic(err)
	}
	return r
}
