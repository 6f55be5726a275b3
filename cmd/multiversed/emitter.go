package main

import (
	"bytes"
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/tools/imports"

	"github.com/imazen/multiversed"
)

// emitFile renders the generated dispatch-table file: for each site a
// target table (most specialized first) and the index picked at program
// start, under the build tag of the compile architecture. Emission never
// reorders or deduplicates the resolved targets.
func emitFile(pkg string, arch multiversed.Arch, sites []resolvedSite) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString("// Code generated by multiversed; DO NOT EDIT.\n\n")
	if tag := buildTag(arch); tag != "" {
		fmt.Fprintf(&b, "//go:build %s\n\n", tag)
	}
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	fmt.Fprintf(&b, "import %q\n", "github.com/imazen/multiversed/cpufeat")

	for _, s := range sites {
		table := lowerFirst(s.Func) + "Targets"
		index := lowerFirst(s.Func) + "Target"
		fmt.Fprintf(&b, "\n// %s lists the specialization targets for %s,\n", table, s.Func)
		fmt.Fprintf(&b, "// most specialized first.\nvar %s = []string{\n", table)
		for _, t := range s.Targets {
			fmt.Fprintf(&b, "\t%q,\n", t.String())
		}
		b.WriteString("}\n\n")
		fmt.Fprintf(&b, "// %s is the index of the best supported target; -1 selects\n", index)
		fmt.Fprintf(&b, "// the generic body.\nvar %s = cpufeat.Pick(%s)\n", index, table)
	}

	src, err := imports.Process("multiversed.gen.go", b.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}
	return src, nil
}

// buildTag maps a capability architecture to its GOARCH build constraint.
func buildTag(arch multiversed.Arch) string {
	switch arch {
	case multiversed.ArchX86_64:
		return "amd64"
	case multiversed.ArchAArch64:
		return "arm64"
	case multiversed.ArchWasm32:
		return "wasm"
	default:
		return ""
	}
}

func lowerFirst(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToLower(r)) + name[size:]
}
