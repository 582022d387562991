// Command stripts erases TypeScript type syntax, producing plain
// JavaScript.
//
// Usage:
//
//	stripts [options] <input.ts> [more inputs...]
//	cat input.ts | stripts [options]
//
// Multiple input files are transformed concurrently, each with its own
// independent transform state. Inputs ending in .tsx parse JSX
// regardless of the --jsx flag.
//
// Config file:
//
//	stripts looks for stripts.json or .striptsrc in the current
//	directory and parent directories. Config file options are
//	overridden by CLI flags.
//
// Example stripts.json:
//
//	{
//	    "jsx": true,
//	    "jsxPragma": "h",
//	    "outDir": "dist",
//	    "extension": ".js"
//	}
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"codeberg.org/saruga/stripts/internal/config"
	"codeberg.org/saruga/stripts/internal/stripper"
)

// Version information (set at build time).
var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type cliFlags struct {
	output     string
	outDir     string
	extension  string
	configFile string
	noConfig   bool
	jsx        bool
	jsxPragma  string
	watch      bool
}

func newRootCmd() *cobra.Command {
	flags := &cliFlags{}

	cmd := &cobra.Command{
		Use:   "stripts [files...]",
		Short: "stripts - TypeScript type stripper",
		Long: `stripts removes TypeScript type syntax from source files, leaving
plain JavaScript: type annotations and type-only declarations are
erased, enums and constructor parameter properties are compiled to
runtime code, and imports that only carry types are dropped.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, args)
		},
	}

	cmd.SetVersionTemplate(fmt.Sprintf("stripts v%s (%s)\n", version, commit))

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write output to `file` (single input or stdin only)")
	cmd.Flags().StringVar(&flags.outDir, "out-dir", "", "write outputs into `dir`")
	cmd.Flags().StringVar(&flags.extension, "extension", "", "output file extension (default \".js\")")
	cmd.Flags().StringVar(&flags.configFile, "config", "", "use specific config `file`")
	cmd.Flags().BoolVar(&flags.noConfig, "no-config", false, "ignore config files")
	cmd.Flags().BoolVar(&flags.jsx, "jsx", false, "parse JSX syntax")
	cmd.Flags().StringVar(&flags.jsxPragma, "jsx-pragma", "", "default JSX pragma identifier (default \"React\")")
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "watch inputs and re-transform on change")

	return cmd
}

// settings are the fully resolved options for one invocation: config
// file values with CLI flags merged on top.
type settings struct {
	jsx       bool
	jsxPragma string
	outDir    string
	extension string
	output    string
}

func resolveSettings(flagSet *pflag.FlagSet, flags *cliFlags) (*settings, error) {
	var cfg *config.Config
	if !flags.noConfig {
		var err error
		if flags.configFile != "" {
			cfg, err = config.LoadFile(flags.configFile)
		} else {
			cwd, werr := os.Getwd()
			if werr != nil {
				return nil, werr
			}
			cfg, _, err = config.Load(cwd)
		}
		if err != nil {
			return nil, err
		}
	}

	// CLI flags override the config file; only flags the user set count
	var cli config.MergeOptions
	if flagSet.Changed("jsx") {
		cli.JSX = &flags.jsx
	}
	if flagSet.Changed("jsx-pragma") {
		cli.JSXPragma = &flags.jsxPragma
	}
	if flagSet.Changed("out-dir") {
		cli.OutDir = &flags.outDir
	}
	if flagSet.Changed("extension") {
		cli.Extension = &flags.extension
	}
	merged := config.Merge(cfg, cli)

	opts := merged.ToOptions()
	return &settings{
		jsx:       opts.JSX,
		jsxPragma: opts.JSXPragma,
		outDir:    merged.OutputDir(),
		extension: merged.OutputExtension(),
		output:    flags.output,
	}, nil
}

func run(cmd *cobra.Command, flags *cliFlags, args []string) error {
	s, err := resolveSettings(cmd.Flags(), flags)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return runStdin(s)
	}
	if s.output != "" && len(args) > 1 {
		return fmt.Errorf("-o cannot be used with multiple inputs; use --out-dir")
	}

	if err := transformAll(s, args); err != nil {
		return err
	}
	if flags.watch {
		return watchFiles(args, func(input string) error {
			return transformFile(s, input)
		})
	}
	return nil
}

func runStdin(s *settings) error {
	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return fmt.Errorf("no input files specified")
	}
	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	result, err := strip(s, string(source), s.jsx)
	if err != nil {
		return err
	}
	if s.output != "" {
		return os.WriteFile(s.output, []byte(result.Code), 0o644)
	}
	fmt.Print(result.Code)
	return nil
}

// transformAll processes the inputs concurrently. Each file gets a
// fresh stripper, so no transform state is shared.
func transformAll(s *settings, files []string) error {
	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	for _, input := range files {
		input := input
		g.Go(func() error {
			return transformFile(s, input)
		})
	}
	return g.Wait()
}

func transformFile(s *settings, input string) error {
	source, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	jsx := s.jsx || strings.HasSuffix(input, ".tsx")
	result, err := strip(s, string(source), jsx)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	out := s.output
	if out == "" {
		out = outputPath(s, input)
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(out, []byte(result.Code), 0o644)
}

func strip(s *settings, source string, jsx bool) (stripper.Result, error) {
	return stripper.New(stripper.Options{
		JSX:       jsx,
		JSXPragma: s.jsxPragma,
	}).Strip(source)
}

func outputPath(s *settings, input string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + s.extension
	dir := s.outDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base)
}

// watchFiles re-transforms inputs when they change on disk. Directories
// are watched rather than the files themselves so editors that replace
// files on save keep being tracked.
func watchFiles(files []string, transform func(string) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	targets := make(map[string]string)
	for _, input := range files {
		abs, err := filepath.Abs(input)
		if err != nil {
			return err
		}
		targets[abs] = input
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", input, err)
		}
	}

	fmt.Fprintln(os.Stderr, "watching for changes...")
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			input, watched := targets[abs]
			if !watched {
				continue
			}
			if err := transform(input); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
			} else {
				fmt.Fprintf(os.Stderr, "rebuilt %s\n", input)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}
