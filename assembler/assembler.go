// Package assembler ties the preprocessor, parser, encoder, and linker
// into the single two-pass pipeline spec §3 describes: source text in,
// a Result carrying the assembled image, its Intel HEX form, a listing,
// and every diagnostic collected along the way, out. Nothing here
// touches the filesystem directly — a caller that wants to assemble a
// file on disk goes through AssembleFile, which reads and expands it with
// loader.Load and then runs the same pipeline Assemble does on the
// expanded text.
package assembler

import (
	"github.com/corewood/z80asm/encoder"
	"github.com/corewood/z80asm/linker"
	"github.com/corewood/z80asm/loader"
	"github.com/corewood/z80asm/parser"
)

// Options configures a single assembly run. The zero value is usable:
// no include search path, and the default 16-byte Intel HEX record
// size.
type Options struct {
	IncludePaths  []string
	HexRecordSize int
}

// Result is everything a completed assembly run produced, successful or
// not. Buffer, Hex, and Listing are only meaningful when Diagnostics has
// no errors — Success reports that directly so a caller never has to
// re-derive it from the diagnostic list.
type Result struct {
	Buffer      []byte
	Hex         string
	LoadAddress uint16
	Listing     []ListingLine
	Symbols     *parser.SymbolTable
	Diagnostics *parser.Diagnostics
	Success     bool
}

// Assemble runs the full pipeline over in-memory source text: INCLUDE
// expansion (resolved relative to originPath's directory, a "" origin
// meaning the current directory), lexing, Pass 1 sizing and label
// binding, Pass 2 encoding, forward-reference patching, and Intel HEX
// serialisation. It never returns a nil *Result — callers should check
// Result.Success rather than an error return, since a source file with
// assembly errors still produces partial Buffer/Listing output worth
// inspecting.
func Assemble(source, originPath string, opts Options) *Result {
	expanded, diags := parser.Preprocess(source, originPath, opts.IncludePaths)
	return assembleExpanded(expanded, diags, opts)
}

func assembleExpanded(expanded string, diags *parser.Diagnostics, opts Options) *Result {
	prog, parseDiags := parser.Parse(expanded)
	diags.Merge(parseDiags)

	pass2 := encoder.Pass2(prog, diags)

	for _, perr := range linker.ApplyPatches(pass2.Buffer, prog.Symbols) {
		diags.AddError(parser.NewError(perr.Line, parser.ErrorUndefinedLabel, perr.Message))
	}

	recordSize := opts.HexRecordSize
	if recordSize <= 0 {
		recordSize = parser.DefaultHexRecordSize
	}

	res := &Result{
		Buffer:      pass2.Buffer,
		LoadAddress: pass2.LoadAddress,
		Symbols:     pass2.Symbols,
		Diagnostics: diags,
		Success:     !diags.HasErrors(),
	}
	if res.Success {
		res.Hex = linker.WriteHex(res.Buffer, res.LoadAddress, recordSize)
	}
	res.Listing = buildListing(pass2.Listing)
	return res
}

// AssembleFile reads path from disk (following INCLUDE directives and
// spec §4.1 symlink stubs through package loader) and assembles it. The
// error return only ever reports an I/O failure reading the top-level
// file — assembly errors are reported through Result.Diagnostics, same
// as Assemble.
func AssembleFile(path string, opts Options) (*Result, error) {
	expanded, diags, err := loader.Load(path, opts.IncludePaths)
	if err != nil {
		return nil, err
	}
	return assembleExpanded(expanded, diags, opts), nil
}
