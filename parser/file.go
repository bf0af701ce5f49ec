package parser

import "path/filepath"

// Preprocess expands INCLUDE directives in source, resolving each relative
// include first against the including file's directory (originPath's own
// directory for the top level) and then against includePaths in order.
// Files are read through DefaultResolver. This is the optional
// standalone preprocessor entry point; assembler.Assemble calls it
// internally before lexing.
func Preprocess(source, originPath string, includePaths []string) (string, *Diagnostics) {
	dir := "."
	if originPath != "" {
		dir = filepath.Dir(originPath)
	}
	pp := NewPreprocessor(includePaths)
	return pp.Process(source, dir)
}
