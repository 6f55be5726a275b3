package multiversed

import (
	"fmt"
	"strings"

	"github.com/agext/levenshtein"
)

// UnknownPresetError reports a non-raw token that matched no preset name or
// alias. It carries the valid names for the architecture the token most
// resembles (or every name, when the guess is ambiguous) so callers can
// surface an actionable build-time diagnostic.
type UnknownPresetError struct {
	// Token is the unrecognized argument, verbatim.
	Token string

	// Arch is the nearest architecture guess, or "" when ambiguous.
	Arch Arch

	// Valid lists the registry names the token could have been.
	Valid []string

	// Suggestion is the closest valid name by edit distance, or "".
	Suggestion string
}

func (e *UnknownPresetError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "unknown preset %q", e.Token)
	if e.Suggestion != "" {
		fmt.Fprintf(&b, " (did you mean %q?)", e.Suggestion)
	}
	if e.Arch != "" {
		fmt.Fprintf(&b, "; valid %s presets: %s", e.Arch, strings.Join(e.Valid, ", "))
	} else {
		fmt.Fprintf(&b, "; valid presets: %s", strings.Join(e.Valid, ", "))
	}
	return b.String()
}

// unknownPreset builds the diagnostic for an unrecognized token.
func unknownPreset(reg *Registry, token string) *UnknownPresetError {
	e := &UnknownPresetError{Token: token, Arch: guessArch(token)}
	if e.Arch != "" {
		e.Valid = reg.NamesFor(e.Arch)
	}
	if len(e.Valid) == 0 {
		e.Arch = ""
		e.Valid = reg.Names()
	}
	e.Suggestion = closestName(reg, token)
	return e
}

// guessArch maps an unrecognized token to the architecture it most
// resembles, so the diagnostic can list a focused set of valid names.
func guessArch(token string) Arch {
	t := strings.ToLower(token)
	switch {
	case strings.HasPrefix(t, "arm") || strings.HasPrefix(t, "aarch"):
		return ArchAArch64
	case strings.HasPrefix(t, "x86") || strings.HasPrefix(t, "x64") || strings.HasPrefix(t, "v"):
		return ArchX86_64
	case strings.HasPrefix(t, "wasm") || strings.HasPrefix(t, "simd"):
		return ArchWasm32
	default:
		return ""
	}
}

// closestName returns the registry name or alias nearest to token, or ""
// when nothing is close enough to be a plausible typo.
func closestName(reg *Registry, token string) string {
	const maxDistance = 3

	params := levenshtein.NewParams()
	best := ""
	bestDist := maxDistance + 1
	consider := func(name string) {
		d := levenshtein.Distance(token, name, params)
		if d < bestDist {
			best, bestDist = name, d
		}
	}
	for _, p := range reg.presets {
		consider(p.Name)
		for _, a := range p.Aliases {
			consider(a)
		}
	}
	return best
}
