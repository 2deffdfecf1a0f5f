// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"
	"golang.org/x/text/language"

	"github.com/ezrec/rvfuzz/gen"
	"github.com/ezrec/rvfuzz/isa"
	"github.com/ezrec/rvfuzz/program"
	"github.com/ezrec/rvfuzz/translate"
)

type options struct {
	profile  string
	seed     uint64
	sizes    program.Sizes
	count    int
	output   string
	overlays []string
	epilogue string
	check    string
	list     bool
	tree     bool
	dump     bool
	verbose  bool
	lang     string
}

func loadOverlays(paths []string) (overlays []isa.Overlay, err error) {
	for _, path := range paths {
		var src []byte
		src, err = os.ReadFile(path)
		if err != nil {
			return
		}
		var overlay isa.Overlay
		overlay, err = isa.LoadOverlay(path, src)
		if err != nil {
			return
		}
		overlays = append(overlays, overlay)
	}
	return
}

func loadEpilogue(path string) (lines []string, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	scanner := bufio.NewScanner(inf)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) > 0 {
			lines = append(lines, line)
		}
	}
	err = scanner.Err()
	return
}

// outputPath returns the file of program n. Several programs are
// numbered before the file extension.
func outputPath(output string, n int, count int) string {
	if count == 1 {
		return output
	}
	ext := filepath.Ext(output)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(output, ext), n, ext)
}

func listCatalog(out io.Writer, catalog *isa.Catalog) (err error) {
	_, err = fmt.Fprintf(out, "# %v\n", catalog.Profile)
	if err != nil {
		return
	}
	for opcode, entry := range catalog.All() {
		part, _ := catalog.Partition(opcode)
		_, err = fmt.Fprintf(out, "%v\t%v\t%v\n", part, opcode, entry.Syntax)
		if err != nil {
			return
		}
	}
	return
}

// catalogTree renders the catalog as partition branches of opcodes.
func catalogTree(catalog *isa.Catalog) treeprint.Tree {
	tree := treeprint.New()
	tree.SetValue(catalog.Profile.String())

	branches := map[string]treeprint.Tree{}
	for _, part := range catalog.Partitions {
		branches[part] = tree.AddBranch(part)
	}
	for opcode, entry := range catalog.All() {
		part, _ := catalog.Partition(opcode)
		branches[part].AddMetaNode(opcode, entry.Syntax)
	}

	return tree
}

func run(cmd *cobra.Command, opts *options) (err error) {
	if len(opts.check) != 0 {
		var inf *os.File
		inf, err = os.Open(opts.check)
		if err != nil {
			return
		}
		defer inf.Close()
		err = program.CheckListing(inf)
		if err != nil {
			err = fmt.Errorf("%v: %w", opts.check, err)
		}
		return
	}

	overlays, err := loadOverlays(opts.overlays)
	if err != nil {
		return
	}

	g, err := gen.NewFromProfile(opts.profile, rand.NewPCG(opts.seed, opts.seed), overlays...)
	if err != nil {
		return
	}
	g.Verbose = opts.verbose

	if opts.tree {
		_, err = fmt.Fprint(cmd.OutOrStdout(), catalogTree(g.Catalog).String())
		return
	}

	if opts.list {
		return listCatalog(cmd.OutOrStdout(), g.Catalog)
	}

	epilogue := program.DefaultEpilogue
	if len(opts.epilogue) != 0 {
		epilogue, err = loadEpilogue(opts.epilogue)
		if err != nil {
			return
		}
	}

	if opts.verbose {
		log.Printf("%v: seed %d", g.Catalog.Profile, opts.seed)
	}

	dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}

	for n := range opts.count {
		var prog *program.Program
		prog, err = program.Generate(g, opts.sizes)
		if err != nil {
			return
		}
		prog.Epilogue = epilogue

		err = prog.Verify()
		if err != nil {
			return
		}

		if opts.dump {
			dumper.Fdump(cmd.ErrOrStderr(), prog.Sections)
		}

		if len(opts.output) == 0 || opts.output == "-" {
			_, err = prog.WriteTo(cmd.OutOrStdout())
			if err != nil {
				return
			}
			continue
		}

		path := outputPath(opts.output, n, opts.count)
		var ouf *os.File
		ouf, err = os.Create(path)
		if err != nil {
			return
		}
		_, err = prog.WriteTo(ouf)
		if err == nil {
			err = ouf.Close()
		} else {
			ouf.Close()
		}
		if err != nil {
			return
		}
	}

	return
}

func newRootCmd() *cobra.Command {
	opts := &options{
		profile: "RV64G",
		sizes:   program.Sizes{Prefix: 5, Main: 100, Suffix: 10},
		count:   1,
	}

	cmd := &cobra.Command{
		Use:           "rvfuzz",
		Short:         "Random RISC-V test program generator",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				opts.seed = uint64(time.Now().UnixNano())
			}
			if len(opts.lang) != 0 {
				tag, err := language.Parse(opts.lang)
				if err != nil {
					return err
				}
				translate.SetLanguage(tag)
			}
			if opts.count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			return run(cmd, opts)
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	flags := cmd.Flags()
	flags.StringVarP(&opts.profile, "isa", "i", opts.profile, "ISA profile, e.g. RV64IMAFD_Zicsr_Zifencei")
	flags.Uint64VarP(&opts.seed, "seed", "s", 0, "seed for deterministic generation")
	flags.IntVar(&opts.sizes.Prefix, "prefix", opts.sizes.Prefix, "words in the prefix region")
	flags.IntVar(&opts.sizes.Main, "main", opts.sizes.Main, "words in the main region")
	flags.IntVar(&opts.sizes.Suffix, "suffix", opts.sizes.Suffix, "words in the suffix region")
	flags.IntVarP(&opts.count, "count", "n", opts.count, "number of programs")
	flags.StringVarP(&opts.output, "output", "o", "", "output file, '-' for stdout")
	flags.StringArrayVar(&opts.overlays, "overlay", nil, "Starlark partition overlay (repeatable)")
	flags.StringVar(&opts.epilogue, "epilogue", "", "file of lines to emit after the last region")
	flags.StringVar(&opts.check, "check", "", "check the labels of an existing listing, do not generate")
	flags.BoolVar(&opts.list, "list", false, "list the composed opcode catalog")
	flags.BoolVar(&opts.tree, "tree", false, "show the composed opcode catalog as a tree")
	flags.BoolVar(&opts.dump, "dump", false, "dump generated words to stderr")
	flags.StringVar(&opts.lang, "lang", "", "language of formatted messages, default from the locale")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose mode")

	return cmd
}

func main() {
	cmd := newRootCmd()
	err := cmd.Execute()
	if err != nil {
		log.Fatalf("%v: %v", cmd.Name(), err)
	}
}
