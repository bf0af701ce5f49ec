package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/corewood/z80asm/assembler"
	"github.com/corewood/z80asm/config"
	"github.com/corewood/z80asm/tools"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// includePathList accumulates repeated -I flags into an ordered slice,
// the same convention a C compiler's -I uses.
type includePathList []string

func (l *includePathList) String() string { return strings.Join(*l, ",") }
func (l *includePathList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func main() {
	var (
		showVersion  = flag.Bool("version", false, "Show version information")
		output       = flag.String("o", "", "Output file basename (default: input file without extension)")
		cfgPath      = flag.String("config", "", "Path to a z80asm.toml config file (default: platform config dir)")
		recordSize   = flag.Int("hex-record-size", 0, "Intel HEX data bytes per record (default: from config, usually 16)")
		writeHex     = flag.Bool("hex", true, "Write the .hex Intel HEX output")
		writeBin     = flag.Bool("bin", false, "Write the raw .bin memory image")
		writeListing = flag.Bool("listing", false, "Write a .lst assembly listing")
		writeSymbols = flag.Bool("symbols", false, "Write a .sym symbol table dump")
		showXref     = flag.Bool("xref", false, "Print a symbol cross-reference to stdout")
		runLint      = flag.Bool("lint", false, "Run the linter and print its findings to stderr")
		verbose      = flag.Bool("verbose", false, "Print a summary of the assembled image")
	)
	var includePaths includePathList
	flag.Var(&includePaths, "I", "Add a directory to the INCLUDE search path (repeatable)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] source.asm\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("z80asm %s (commit %s, built %s)\n", Version, Commit, Date)
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	inputPath := flag.Arg(0)

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[0], err)
		os.Exit(1)
	}

	opts := assembler.Options{
		IncludePaths:  append(append([]string{}, cfg.Assembler.IncludePaths...), includePaths...),
		HexRecordSize: *recordSize,
	}
	if opts.HexRecordSize == 0 {
		opts.HexRecordSize = cfg.Output.HexRecordSize
	}

	if *runLint {
		lintFile(inputPath)
	}
	if *showXref {
		xrefFile(inputPath)
	}

	result, err := assembler.AssembleFile(inputPath, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[0], err)
		os.Exit(1)
	}

	printDiagnostics(result)

	base := *output
	if base == "" {
		base = strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	}

	if !result.Success {
		os.Exit(1)
	}

	if *writeHex {
		if err := os.WriteFile(base+".hex", []byte(result.Hex), 0o644); err != nil { //nolint:gosec
			fatalf("writing hex output: %v", err)
		}
	}
	if *writeBin {
		if err := os.WriteFile(base+".bin", result.Buffer, 0o644); err != nil { //nolint:gosec
			fatalf("writing binary output: %v", err)
		}
	}
	if *writeListing {
		listing := assembler.FormatListing(result.Listing)
		if err := os.WriteFile(base+".lst", []byte(listing+"\n"), 0o644); err != nil { //nolint:gosec
			fatalf("writing listing: %v", err)
		}
	}
	if *writeSymbols {
		symtab := assembler.FormatSymbolTable(result.Symbols)
		if err := os.WriteFile(base+".sym", []byte(symtab), 0o644); err != nil { //nolint:gosec
			fatalf("writing symbol table: %v", err)
		}
	}

	if *verbose {
		fmt.Printf("assembled %d bytes, load address 0x%04X\n", len(result.Buffer), result.LoadAddress)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

func printDiagnostics(result *assembler.Result) {
	for _, d := range result.Diagnostics.Errors {
		fmt.Fprintln(os.Stderr, d.String())
	}
	for _, d := range result.Diagnostics.Warnings {
		fmt.Fprintln(os.Stderr, d.String())
	}
}

func lintFile(path string) {
	source, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		fmt.Fprintf(os.Stderr, "lint: %v\n", err)
		return
	}
	linter := tools.NewLinter(tools.DefaultLintOptions())
	for _, issue := range linter.Lint(string(source)) {
		fmt.Fprintln(os.Stderr, issue.String())
	}
}

func xrefFile(path string) {
	source, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		fmt.Fprintf(os.Stderr, "xref: %v\n", err)
		return
	}
	report, err := tools.GenerateXRef(string(source))
	if err != nil {
		fmt.Fprintf(os.Stderr, "xref: %v\n", err)
		return
	}
	fmt.Print(report)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
