package main

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/imazen/multiversed"
)

func newTestResolver(arch multiversed.Arch) *multiversed.Resolver {
	return &multiversed.Resolver{
		Registry: multiversed.DefaultRegistry(),
		Flags:    multiversed.DefaultBuildFlags(),
		Arch:     arch,
	}
}

const generatorInput = `package kernels

//multiversed:targets v3, arm64-v2
func DotProduct(a, b []float32) float32 { return 0 }

//multiversed:targets
func Sum(data []float32) float32 { return 0 }
`

func TestGeneratorRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "dot.go")
	if err := os.WriteFile(input, []byte(generatorInput), 0o644); err != nil {
		t.Fatal(err)
	}

	g := &Generator{InputFile: input, OutputDir: dir, Resolver: newTestResolver(multiversed.ArchX86_64)}
	if err := g.Run(); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "dot_multiversed_amd64.gen.go")
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	src := string(data)

	for _, want := range []string{
		"// Code generated by multiversed; DO NOT EDIT.",
		"//go:build amd64",
		"package kernels",
		"dotProductTargets",
		"dotProductTarget = cpufeat.Pick(dotProductTargets)",
		"sumTargets",
		`"x86_64+sse+sse2+sse3+ssse3+sse4.1+sse4.2+popcnt+cmpxchg16b+avx+avx2+fma+bmi1+bmi2+f16c+lzcnt+movbe",`,
	} {
		if !strings.Contains(src, want) {
			t.Errorf("generated file missing %q", want)
		}
	}
	if strings.Contains(src, "aarch64") {
		t.Error("aarch64 descriptor leaked into an amd64 table")
	}

	// The generated file must itself be valid Go.
	fset := token.NewFileSet()
	if _, err := parser.ParseFile(fset, out, data, 0); err != nil {
		t.Errorf("generated file does not parse: %v", err)
	}
}

func TestGeneratorCrossArch(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "dot.go")
	if err := os.WriteFile(input, []byte(generatorInput), 0o644); err != nil {
		t.Fatal(err)
	}

	g := &Generator{InputFile: input, OutputDir: dir, Resolver: newTestResolver(multiversed.ArchAArch64)}
	if err := g.Run(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "dot_multiversed_arm64.gen.go"))
	if err != nil {
		t.Fatal(err)
	}
	src := string(data)
	if !strings.Contains(src, "//go:build arm64") {
		t.Error("missing arm64 build tag")
	}
	if !strings.Contains(src, `"aarch64+neon+crc+rdm+dotprod+fp16+aes+sha2",`) {
		t.Error("missing arm64 target string")
	}
	if strings.Contains(src, "x86_64") {
		t.Error("x86_64 descriptor leaked into an arm64 table")
	}
}

func TestGeneratorUnknownPreset(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "bad.go")
	src := `package p

//multiversed:targets not-a-real-preset
func A() {}

//multiversed:targets also-bogus
func B() {}
`
	if err := os.WriteFile(input, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	g := &Generator{InputFile: input, OutputDir: dir, Resolver: newTestResolver(multiversed.ArchX86_64)}
	err := g.Run()
	if err == nil {
		t.Fatal("Run accepted unknown presets")
	}
	// Both sites are reported, each at its own source location.
	msg := err.Error()
	for _, want := range []string{"not-a-real-preset", "also-bogus", "bad.go:3", "bad.go:6"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
	if _, statErr := os.Stat(filepath.Join(dir, "bad_multiversed_amd64.gen.go")); statErr == nil {
		t.Error("output file written despite resolution failure")
	}
}

func TestGeneratorPassThroughRemovesStaleFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "dot.go")
	src := `package p

//multiversed:targets arm64-v3
func A() {}
`
	if err := os.WriteFile(input, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(dir, "dot_multiversed_amd64.gen.go")
	if err := os.WriteFile(stale, []byte("package p\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Compiling for x86_64, the only site filters to nothing: silent
	// pass-through, and the stale table from a previous run goes away.
	g := &Generator{InputFile: input, OutputDir: dir, Resolver: newTestResolver(multiversed.ArchX86_64)}
	if err := g.Run(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale generated file not removed on pass-through")
	}
}

func TestGeneratorDisable(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "dot.go")
	if err := os.WriteFile(input, []byte(generatorInput), 0o644); err != nil {
		t.Fatal(err)
	}

	r := newTestResolver(multiversed.ArchX86_64)
	r.Flags.Disable = true
	g := &Generator{InputFile: input, OutputDir: dir, Resolver: r}
	if err := g.Run(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "dot_multiversed_amd64.gen.go")); !os.IsNotExist(err) {
		t.Error("disable flag still produced a generated file")
	}
}

func TestOutputName(t *testing.T) {
	if got := OutputName("sub/dir/dot.go", multiversed.ArchX86_64); got != "dot_multiversed_amd64.gen.go" {
		t.Errorf("OutputName = %q", got)
	}
	// Architectures without a GOARCH mapping share an untagged name.
	if got := OutputName("dot.go", multiversed.Arch("riscv64")); got != "dot_multiversed.gen.go" {
		t.Errorf("OutputName = %q", got)
	}
}
