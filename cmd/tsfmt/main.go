// Command tsfmt formats JavaScript/TypeScript/JSX source files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/crogenix/tsfmt"
	"github.com/crogenix/tsfmt/internal/lexer"
	"github.com/crogenix/tsfmt/options"
	"github.com/crogenix/tsfmt/token"
)

// errFlagParse is a sentinel indicating flag parsing failed; the flag package already printed the
// error, so run must not print it again.
var errFlagParse = errors.New("flag parse error")

// debugLog is silent until -debug enables it.
var debugLog = slog.New(slog.NewTextHandler(io.Discard, nil))

func main() {
	code, err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if err != nil && err != errFlagParse {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
	os.Exit(code)
}

type config struct {
	write          bool
	listDifferent  bool
	stdin          bool
	printWidth     int
	tabWidth       int
	useTabs        bool
	noSemi         bool
	singleQuote    bool
	noBracketSpace bool
	jsxBracketSame bool
	trailingComma  string
	parser         string
	rangeStart     int
	rangeEnd       int
	noColor        bool
	withNodeMods   bool
	debugCheck     bool
	debugPrintDoc  bool
	debug          bool
	version        bool
	cpuProfile     string
	memProfile     string
}

func run(args []string, r io.Reader, w io.Writer, wErr io.Writer) (int, error) {
	if len(args) > 0 && args[0] == "inspect" {
		return runInspect(args[1:], r, w, wErr)
	}

	var cfg config
	flags := flag.NewFlagSet("tsfmt", flag.ContinueOnError)
	flags.SetOutput(wErr)
	flags.Usage = func() {
		fmt.Fprintln(wErr, "usage: tsfmt [flags] [file...]")
		fmt.Fprintln(wErr, "flags:")
		flags.PrintDefaults()
	}

	flags.BoolVar(&cfg.write, "write", false, "edit files in place")
	flags.BoolVar(&cfg.listDifferent, "list-different", false, "print filenames whose formatted output differs from the input")
	flags.BoolVar(&cfg.listDifferent, "l", false, "shorthand for -list-different")
	flags.BoolVar(&cfg.stdin, "stdin", false, "force reading source from stdin, ignoring any file arguments")
	flags.IntVar(&cfg.printWidth, "print-width", 0, "line length the printer wraps at (0 uses the default)")
	flags.IntVar(&cfg.tabWidth, "tab-width", 0, "number of spaces per indentation level (0 uses the default)")
	flags.BoolVar(&cfg.useTabs, "use-tabs", false, "indent with tabs instead of spaces")
	flags.BoolVar(&cfg.noSemi, "no-semi", false, "omit semicolons except where required to prevent ASI hazards")
	flags.BoolVar(&cfg.singleQuote, "single-quote", false, "prefer single quotes over double quotes")
	flags.BoolVar(&cfg.noBracketSpace, "no-bracket-spacing", false, "print object literals as {a} instead of { a }")
	flags.BoolVar(&cfg.jsxBracketSame, "jsx-bracket-same-line", false, "put the > of a multi-line JSX element at the end of the last line instead of alone on the next")
	flags.StringVar(&cfg.trailingComma, "trailing-comma", "", "where to print trailing commas: none, es5, or all (empty uses the default)")
	flags.StringVar(&cfg.parser, "parser", "", "parser to use (empty uses the default)")
	flags.IntVar(&cfg.rangeStart, "range-start", 0, "byte offset to start formatting at")
	flags.IntVar(&cfg.rangeEnd, "range-end", -1, "byte offset to stop formatting at (-1 means end of input)")
	flags.BoolVar(&cfg.noColor, "no-color", false, "disable colored diff output")
	flags.BoolVar(&cfg.withNodeMods, "with-node-modules", false, "do not skip files under node_modules")
	flags.BoolVar(&cfg.debugCheck, "debug-check", false, "verify idempotence instead of printing formatted output")
	flags.BoolVar(&cfg.debugPrintDoc, "debug-print-doc", false, "print the intermediate Doc representation instead of formatted output")
	flags.BoolVar(&cfg.debug, "debug", false, "enable debug logging to stderr")
	flags.BoolVar(&cfg.version, "version", false, "print the version and exit")
	flags.BoolVar(&cfg.version, "v", false, "shorthand for -version")
	flags.StringVar(&cfg.cpuProfile, "cpuprofile", "", "write cpu profile to `file`")
	flags.StringVar(&cfg.memProfile, "memprofile", "", "write memory profile to `file`")

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0, nil
		}
		return 2, errFlagParse
	}

	if cfg.version {
		fmt.Fprintln(w, tsfmt.Version())
		return 0, nil
	}

	if cfg.debug {
		debugLog = slog.New(slog.NewTextHandler(wErr, nil))
	}

	if cfg.write && cfg.debugCheck {
		return 2, errors.New("-write and -debug-check are mutually exclusive")
	}

	opts, err := optionsFrom(cfg)
	if err != nil {
		return 2, err
	}

	files := flags.Args()
	useStdin := cfg.stdin || len(files) == 0

	err = profile(func() error {
		if useStdin {
			return runStdin(r, w, wErr, opts, cfg)
		}
		return runFiles(files, w, wErr, opts, cfg)
	}, cfg.cpuProfile, cfg.memProfile)
	if err != nil {
		return 1, err
	}
	return 0, nil
}

func optionsFrom(cfg config) (options.Options, error) {
	o := options.Default()
	if cfg.printWidth != 0 {
		o.PrintWidth = cfg.printWidth
	}
	if cfg.tabWidth != 0 {
		o.TabWidth = cfg.tabWidth
	}
	o.UseTabs = cfg.useTabs
	o.Semi = !cfg.noSemi
	o.SingleQuote = cfg.singleQuote
	o.BracketSpacing = !cfg.noBracketSpace
	o.JSXBracketSameLine = cfg.jsxBracketSame
	if cfg.trailingComma != "" {
		o.TrailingComma = options.TrailingComma(cfg.trailingComma)
	}
	if cfg.parser != "" {
		o.Parser = cfg.parser
	}
	o.RangeStart = cfg.rangeStart
	o.RangeEnd = cfg.rangeEnd
	_ = cfg.withNodeMods // node_modules skipping applies to directory walks, not single files/stdin
	return options.Normalize(o)
}

func runStdin(r io.Reader, w io.Writer, wErr io.Writer, opts options.Options, cfg config) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("error reading stdin: %v", err)
	}

	if cfg.debugCheck {
		return tsfmt.CheckIdempotent("<stdin>", string(src), opts)
	}

	if cfg.debugPrintDoc {
		dump, err := tsfmt.DumpDoc("<stdin>", string(src), opts)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, dump+"\n")
		return err
	}

	formatted, err := tsfmt.Format("<stdin>", string(src), opts)
	if err != nil {
		return err
	}

	if cfg.listDifferent {
		if formatted != string(src) {
			fmt.Fprintln(w, "<stdin>")
			return errors.New("input is not formatted")
		}
		return nil
	}

	_, err = io.WriteString(w, formatted)
	return err
}

func runFiles(files []string, w io.Writer, wErr io.Writer, opts options.Options, cfg config) error {
	var errs []error
	var anyDifferent bool

	for _, file := range files {
		debugLog.Debug("formatting file", "path", file)
		src, err := os.ReadFile(file)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %v", file, err))
			continue
		}

		if cfg.debugCheck {
			if err := tsfmt.CheckIdempotent(file, string(src), opts); err != nil {
				errs = append(errs, err)
			}
			continue
		}

		if cfg.debugPrintDoc {
			dump, err := tsfmt.DumpDoc(file, string(src), opts)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			fmt.Fprintln(w, dump)
			continue
		}

		formatted, err := tsfmt.Format(file, string(src), opts)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %v", file, err))
			continue
		}

		different := formatted != string(src)

		switch {
		case cfg.write:
			if different {
				if err := writeFile(file, formatted); err != nil {
					errs = append(errs, fmt.Errorf("%s: %v", file, err))
				}
			}
		case cfg.listDifferent:
			if different {
				anyDifferent = true
				printListed(w, file, wantsColor(cfg.noColor))
			}
		default:
			io.WriteString(w, formatted)
		}
	}

	if cfg.listDifferent && anyDifferent {
		errs = append(errs, errors.New("one or more files are not formatted"))
	}

	return errors.Join(errs...)
}

// runInspect dispatches the "inspect" subcommand, whose only sub-subcommand is "tokens": a
// debugging aid for the lexer that streams every token to stdout, useful when tracking down a
// comment-attachment or parser bug without stepping through a debugger.
func runInspect(args []string, r io.Reader, w io.Writer, wErr io.Writer) (int, error) {
	var sub string
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "tokens":
		return runInspectTokens(args, r, w, wErr)
	case "":
		fmt.Fprintln(wErr, "usage: tsfmt inspect tokens [flags]")
		return 2, errFlagParse
	default:
		fmt.Fprintf(wErr, "tsfmt inspect: unknown subcommand %q\n", sub)
		return 2, errFlagParse
	}
}

func runInspectTokens(args []string, r io.Reader, w io.Writer, wErr io.Writer) (code int, err error) {
	flags := flag.NewFlagSet("tokens", flag.ContinueOnError)
	flags.SetOutput(wErr)
	flags.Usage = func() {
		fmt.Fprintln(wErr, "usage: tsfmt inspect tokens [flags]")
		fmt.Fprintln(wErr, "flags:")
		flags.PrintDefaults()
	}
	cpuProfile := flags.String("cpuprofile", "", "write cpu profile to `file`")
	memProfile := flags.String("memprofile", "", "write memory profile to `file`")

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0, nil
		}
		return 2, errFlagParse
	}

	err = profile(func() error {
		src, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("error reading input: %v", err)
		}

		lx := lexer.New(src)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		defer func() {
			if ferr := tw.Flush(); ferr != nil && err == nil {
				err = fmt.Errorf("error flushing output: %v", ferr)
			}
		}()

		fmt.Fprintf(tw, "POSITION\tKIND\tLITERAL\n")
		for {
			tok, err := lx.Next()
			if err != nil {
				return fmt.Errorf("error scanning input: %v", err)
			}
			fmt.Fprintf(tw, "%d:%d\t%s\t%q\n", tok.Start, tok.End, tok.Kind, tok.Literal)
			if tok.Kind == token.EOF {
				break
			}
		}
		return nil
	}, *cpuProfile, *memProfile)
	if err != nil {
		return 1, err
	}
	return 0, nil
}

// writeFile rewrites file in place atomically: the formatted output is written to a temp file in
// the same directory, which is then renamed over file, so a crash or interrupt never leaves a
// truncated or partially-written file behind.
func writeFile(file, formatted string) error {
	fi, err := os.Stat(file)
	if err != nil {
		return fmt.Errorf("failed to stat file: %v", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(file), "."+filepath.Base(file)+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for atomic rename: %v", err)
	}

	var success bool
	tmpPath := tmp.Name()
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if perm := fi.Mode().Perm(); perm != 0o600 {
		if err := tmp.Chmod(perm); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("failed to set file mode: %v", err)
		}
	}

	if _, err := tmp.WriteString(formatted); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %v", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %v", err)
	}
	if err := os.Rename(tmpPath, file); err != nil {
		return fmt.Errorf("failed to rename temp file: %v", err)
	}

	success = true
	return nil
}

// wantsColor reports whether diff-style output should be colorized: only when the user has not
// passed -no-color and stdout is an interactive terminal.
func wantsColor(noColor bool) bool {
	return !noColor && term.IsTerminal(int(os.Stdout.Fd()))
}

func printListed(w io.Writer, file string, color bool) {
	if color {
		fmt.Fprintf(w, "\x1b[33m%s\x1b[0m\n", file)
		return
	}
	fmt.Fprintln(w, file)
}

func profile(fn func() error, cpuProfile, memProfile string) error {
	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %v", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	err := fn()
	if err != nil {
		return err
	}

	if memProfile != "" {
		f, err := os.Create(memProfile)
		if err != nil {
			return fmt.Errorf("could not create memory profile: %v", err)
		}
		defer f.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return fmt.Errorf("could not write memory profile: %v", err)
		}
	}

	return nil
}
