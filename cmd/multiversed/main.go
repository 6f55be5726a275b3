// Command multiversed resolves CPU-capability presets into target descriptor
// lists and generates runtime dispatch tables for annotated Go functions.
//
// Usage:
//
//	multiversed list
//	multiversed resolve v3 arm64-v2 --arch x86_64
//	multiversed gen --input dot.go --output . --arch aarch64
//
// Or via go:generate:
//
//	//go:generate multiversed gen --input $GOFILE --output .
//
// The gen command scans the input file for //multiversed:targets directives
// on function declarations, resolves each site for the architecture being
// compiled, and writes <input>_multiversed_<goarch>.gen.go containing a
// target table plus a cpufeat.Pick dispatch index per site.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/imazen/multiversed"
	"github.com/imazen/multiversed/cpufeat"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "multiversed",
		Short:         "SIMD capability-preset resolution and dispatch-table generation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newListCmd(), newResolveCmd(), newGenCmd())
	return root
}

// resolveOpts carries the flags shared by resolve and gen.
type resolveOpts struct {
	arch    string
	config  string
	presets []string
	disable bool
}

func (o *resolveOpts) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.arch, "arch", "",
		"architecture being compiled (x86_64, aarch64, wasm32; default: host)")
	f.StringVar(&o.config, "config", "",
		"path to a multiversed.hcl build-flag file")
	f.StringArrayVar(&o.presets, "preset", nil,
		"enable a preset flag by name or alias (replaces the default set; repeatable)")
	f.BoolVar(&o.disable, "disable", false,
		"force pass-through for every site, ignoring all other arguments")
}

// resolver builds the Resolver from flags, config file, and host defaults,
// in that precedence order.
func (o *resolveOpts) resolver() (*multiversed.Resolver, error) {
	flags := multiversed.DefaultBuildFlags()
	arch := o.arch

	if o.config != "" {
		cfg, err := LoadConfig(o.config)
		if err != nil {
			return nil, err
		}
		if flags, err = cfg.BuildFlags(); err != nil {
			return nil, err
		}
		if arch == "" {
			arch = cfg.Arch
		}
	}
	if len(o.presets) > 0 {
		flags = multiversed.BuildFlags{Disable: flags.Disable}
		for _, name := range o.presets {
			if err := flags.Set(name); err != nil {
				return nil, err
			}
		}
	}
	if o.disable {
		flags.Disable = true
	}
	if arch == "" {
		arch = cpufeat.Arch()
	}

	return &multiversed.Resolver{
		Registry: multiversed.DefaultRegistry(),
		Flags:    flags,
		Arch:     multiversed.Arch(arch),
	}, nil
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the preset registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := multiversed.DefaultRegistry()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 8, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tALIASES\tARCH\tRANK\tFEATURES")
			for _, arch := range reg.Architectures() {
				for _, p := range reg.PresetsFor(arch) {
					aliases := "-"
					if len(p.Aliases) > 0 {
						aliases = p.Aliases[0]
						for _, a := range p.Aliases[1:] {
							aliases += "," + a
						}
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
						p.Name, aliases, p.Arch, p.Rank, p.FeatureString())
				}
			}
			return w.Flush()
		},
	}
}

func newResolveCmd() *cobra.Command {
	var opts resolveOpts
	cmd := &cobra.Command{
		Use:   "resolve [token...]",
		Short: "Resolve preset names and raw capability strings to a target list",
		Long: `Resolve expands the given tokens (preset names, aliases, or raw
capability strings like "x86_64+avx2+fma") into the ordered, deduplicated
target list for the compile architecture, and prints the downstream
targets(...) clause. With no tokens the list is derived from the active
build flags. No output means pass-through: only the generic body compiles.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.resolver()
			if err != nil {
				return err
			}
			targets, err := r.Resolve(args)
			if err != nil {
				return err
			}
			if out := multiversed.Emit(targets); out != "" {
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}
	opts.register(cmd)
	return cmd
}

func newGenCmd() *cobra.Command {
	var opts resolveOpts
	var input, output string
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate dispatch tables for annotated functions in a source file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" {
				return fmt.Errorf("--input is required")
			}
			r, err := opts.resolver()
			if err != nil {
				return err
			}
			g := &Generator{InputFile: input, OutputDir: output, Resolver: r}
			return g.Run()
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "input Go source file (required)")
	cmd.Flags().StringVar(&output, "output", ".", "output directory")
	opts.register(cmd)
	return cmd
}
