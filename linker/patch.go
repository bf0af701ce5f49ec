// Package linker resolves the forward-reference patches Pass 2 left
// behind once every label in the program is known, and serialises the
// finished byte buffer to Intel HEX.
package linker

import (
	"fmt"

	"github.com/corewood/z80asm/parser"
)

// PatchError reports a patch that could not be applied: an undefined
// symbol, or a relative displacement outside [-128, 127].
type PatchError struct {
	Line    int
	Message string
}

func (e *PatchError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// ApplyPatches resolves every recorded PatchRecord against symtab,
// writing the final value into buf at the recorded offset. All patch
// kinds resolve through the same lookup-then-write shape: only the width
// and arithmetic differ between an absolute word, a single byte, and a
// signed relative displacement.
func ApplyPatches(buf []byte, symtab *parser.SymbolTable) []*PatchError {
	var errs []*PatchError
	for _, p := range symtab.Patches() {
		value, err := symtab.Value(p.SymbolName)
		if err != nil {
			errs = append(errs, &PatchError{Line: p.Line, Message: err.Error()})
			continue
		}
		switch p.Kind {
		case parser.PatchAbsolute:
			if p.Offset+1 >= len(buf) {
				errs = append(errs, &PatchError{Line: p.Line, Message: "patch offset out of range"})
				continue
			}
			buf[p.Offset] = byte(value)
			buf[p.Offset+1] = byte(value >> 8)

		case parser.PatchByte:
			if p.Offset >= len(buf) {
				errs = append(errs, &PatchError{Line: p.Line, Message: "patch offset out of range"})
				continue
			}
			buf[p.Offset] = byte(value)

		case parser.PatchRelative:
			if p.Offset >= len(buf) {
				errs = append(errs, &PatchError{Line: p.Line, Message: "patch offset out of range"})
				continue
			}
			disp := int32(value) - int32(p.NextAddr)
			if disp < -128 || disp > 127 {
				errs = append(errs, &PatchError{Line: p.Line, Message: "relative jump out of range"})
				continue
			}
			buf[p.Offset] = byte(int8(disp))
		}
	}
	return errs
}
