package multiversed

import "strings"

// Target is a resolved (architecture, feature-string) descriptor. Two
// targets are equal iff both fields are equal; equality is string equality
// on the feature string, not set equality, which is what makes
// first-occurrence deduplication sound (alias and canonical resolve to
// byte-identical strings by construction).
type Target struct {
	Arch     Arch
	Features string
}

// String reconstructs the full capability string, "arch+feat+feat...".
func (t Target) String() string {
	return string(t.Arch) + Separator + t.Features
}

// Resolver turns one specialization site's argument list into its final
// descriptor list. The zero value resolves against DefaultRegistry with no
// build flags enabled and no architecture filter match (every descriptor is
// dropped); populate all three fields for real use.
type Resolver struct {
	// Registry supplies preset definitions; nil means DefaultRegistry().
	Registry *Registry

	// Flags is the build-time flag set. Disable forces pass-through for
	// every site, including sites with explicit arguments. The remaining
	// flags only matter when a site supplies no arguments.
	Flags BuildFlags

	// Arch is the architecture being compiled. Descriptors for any other
	// architecture are dropped silently.
	Arch Arch
}

// Resolve expands args into the ordered, deduplicated, architecture-filtered
// descriptor list for one specialization site. An empty args slice derives
// the argument list from the build flags. A nil result with a nil error is
// pass-through: the site compiles its generic body only.
//
// Resolve is a pure function of its inputs; independent sites may be
// resolved concurrently against a shared Resolver.
func (r *Resolver) Resolve(args []string) ([]Target, error) {
	if r.Flags.Disable {
		return nil, nil
	}
	reg := r.Registry
	if reg == nil {
		reg = DefaultRegistry()
	}
	if len(args) == 0 {
		args = r.Flags.Args(reg)
	}

	resolved := make([]Target, 0, len(args))
	for _, tok := range args {
		if isRawCapability(tok) {
			resolved = append(resolved, splitRaw(tok))
			continue
		}
		p, ok := reg.Lookup(tok)
		if !ok {
			return nil, unknownPreset(reg, tok)
		}
		if p.Noop {
			continue
		}
		resolved = append(resolved, p.Target())
	}
	return Filter(Dedup(resolved), r.Arch), nil
}

// isRawCapability classifies one argument token: anything containing the
// separator is a raw capability string and is never looked up; preset names
// never contain it. Raw strings are not validated here — the downstream
// mechanism owns that.
func isRawCapability(token string) bool {
	return strings.Contains(token, Separator)
}

// splitRaw splits a raw capability string into its architecture tag and
// verbatim feature portion.
func splitRaw(token string) Target {
	arch, features, _ := strings.Cut(token, Separator)
	return Target{Arch: Arch(arch), Features: features}
}

// Dedup keeps each (architecture, feature-string) pair the first time it is
// seen and drops exact repeats, preserving the order of survivors. Order is
// dispatch priority: downstream tries targets in emission order.
func Dedup(targets []Target) []Target {
	seen := make(map[Target]struct{}, len(targets))
	out := targets[:0:0]
	for _, t := range targets {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// Filter drops every descriptor whose architecture differs from arch. A
// list mixing architectures is valid cross-platform input, not an error;
// an empty result means the site compiles as a single generic body.
func Filter(targets []Target, arch Arch) []Target {
	out := targets[:0:0]
	for _, t := range targets {
		if t.Arch == arch {
			out = append(out, t)
		}
	}
	return out
}
