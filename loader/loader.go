// Package loader reads a top-level source file off disk and hands back
// fully preprocessed assembly text, ready for parser.Parse. It is the
// thin filesystem-facing layer assembler.AssembleFile sits on top of, so
// that package assembler itself never calls os.ReadFile directly.
package loader

import (
	"fmt"

	"github.com/corewood/z80asm/parser"
)

// Load reads path — following symlink stubs per spec §4.1, the same as
// any INCLUDE target — and expands every INCLUDE it contains, searching
// includePaths for targets not found relative to path's own directory.
func Load(path string, includePaths []string) (string, *parser.Diagnostics, error) {
	_, nominalDir, data, err := parser.DefaultResolver(path, ".", nil)
	if err != nil {
		return "", nil, fmt.Errorf("cannot read %q: %w", path, err)
	}

	pp := parser.NewPreprocessor(includePaths)
	expanded, diags := pp.Process(string(data), nominalDir)
	return expanded, diags, nil
}
