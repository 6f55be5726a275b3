package multiversed

import (
	"fmt"
	"strings"
)

// Emit serializes a resolved descriptor list into the target-list clause
// consumed by the downstream specialization mechanism:
//
//	targets("x86_64+sse+...+avx2", "x86_64+sse+...")
//
// One entry per descriptor, in final order; the generic fallback entry is
// implicit and appended by the downstream mechanism itself. An empty list
// yields an empty string, meaning the site compiles its generic body only.
//
// Emit never reorders or deduplicates — that is solely the resolver
// pipeline's responsibility.
func Emit(targets []Target) string {
	if len(targets) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("targets(")
	for i, t := range targets {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q", t.String())
	}
	b.WriteString(")")
	return b.String()
}
