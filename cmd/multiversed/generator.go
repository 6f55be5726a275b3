package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/imazen/multiversed"
)

// Generator resolves every annotated site in one source file and writes the
// generated dispatch-table file.
type Generator struct {
	InputFile string
	OutputDir string
	Resolver  *multiversed.Resolver
}

// resolvedSite pairs a parsed site with its final descriptor list.
type resolvedSite struct {
	Site
	Targets []multiversed.Target
}

// Run executes the generation pipeline: parse, resolve each site
// independently, emit. A failing site does not stop resolution of the
// others; every diagnostic is collected and the whole run fails afterwards.
func (g *Generator) Run() error {
	result, err := ParseFile(g.InputFile)
	if err != nil {
		return err
	}
	if len(result.Sites) == 0 {
		return fmt.Errorf("%s: no //%s directives found", g.InputFile, directive)
	}

	var sites []resolvedSite
	var errs []error
	for _, s := range result.Sites {
		targets, err := g.Resolver.Resolve(s.Args)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %s: %w", s.Pos, s.Func, err))
			continue
		}
		if len(targets) == 0 {
			// Pass-through: the site compiles its generic body only.
			continue
		}
		sites = append(sites, resolvedSite{Site: s, Targets: targets})
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	outPath := filepath.Join(g.OutputDir, OutputName(g.InputFile, g.Resolver.Arch))
	if len(sites) == 0 {
		// Every site is pass-through for this architecture; make sure no
		// stale table from a previous run survives.
		if err := os.Remove(outPath); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}

	src, err := emitFile(result.Package, g.Resolver.Arch, sites)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, src, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return nil
}

// OutputName derives the generated file name from the input file name and
// the compile architecture, e.g. "dot.go" for x86_64 ->
// "dot_multiversed_amd64.gen.go". The GOARCH suffix keeps per-architecture
// outputs from clobbering each other in cross-platform trees; architectures
// without a GOARCH mapping share an untagged name.
func OutputName(input string, arch multiversed.Arch) string {
	base := strings.TrimSuffix(filepath.Base(input), ".go")
	if goarch := buildTag(arch); goarch != "" {
		return base + "_multiversed_" + goarch + ".gen.go"
	}
	return base + "_multiversed.gen.go"
}
