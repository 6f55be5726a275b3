package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
)

// directive marks a function for multi-version code generation:
//
//	//multiversed:targets v3, arm64-v2
//	func DotProduct(a, b []float32) float32 { ... }
//
// Arguments are comma-separated preset names, aliases, or raw capability
// strings, in dispatch-priority order. A bare directive derives the list
// from the active build flags.
const directive = "multiversed:targets"

// Site is one function annotated for multi-version code generation.
type Site struct {
	// Func is the annotated function's name.
	Func string

	// Args holds the directive arguments; nil means "use build-flag
	// defaults".
	Args []string

	// Pos locates the directive for diagnostics.
	Pos token.Position
}

// ParseResult holds every specialization site found in one source file.
type ParseResult struct {
	Package string
	Sites   []Site
}

// ParseFile scans a Go source file for //multiversed:targets directives on
// function declarations. Directives elsewhere (types, vars, free-floating
// comments) are ignored.
func ParseFile(filename string) (*ParseResult, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	result := &ParseResult{Package: file.Name.Name}
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Doc == nil {
			continue
		}
		for _, c := range fn.Doc.List {
			rest, ok := cutDirective(c.Text)
			if !ok {
				continue
			}
			result.Sites = append(result.Sites, Site{
				Func: fn.Name.Name,
				Args: splitArgs(rest),
				Pos:  fset.Position(c.Pos()),
			})
			break
		}
	}
	return result, nil
}

// cutDirective matches one comment line against the directive and returns
// the argument text after it.
func cutDirective(comment string) (string, bool) {
	rest, ok := strings.CutPrefix(comment, "//"+directive)
	if !ok {
		return "", false
	}
	// Reject longer directive names sharing the prefix.
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return "", false
	}
	return rest, true
}

// splitArgs splits comma-separated directive arguments. Surrounding quotes
// are tolerated so examples copied from downstream syntax still work.
func splitArgs(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var args []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			args = append(args, strings.Trim(part, `"`))
		}
	}
	return args
}
