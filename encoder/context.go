package encoder

import "github.com/corewood/z80asm/parser"

// Context is the mutable state threaded through Pass 2: the output byte
// buffer, the symbol table built by Pass 1, and the program counter at
// the statement currently being encoded.
type Context struct {
	Symbols     *parser.SymbolTable
	Buffer      []byte
	PC          uint16
	LoadAddress uint16
}

func (ctx *Context) emit(bs ...byte) {
	ctx.Buffer = append(ctx.Buffer, bs...)
}

func (ctx *Context) emitWord(v uint16) {
	ctx.emit(byte(v), byte(v>>8))
}

// emitAbsolute writes a little-endian word operand (a jump/call target, a
// DW value, a direct address). When expr cannot yet be resolved it emits a
// 0x0000 placeholder and records a patch at the word's offset for the
// linker to fill in once every label is known.
func (ctx *Context) emitAbsolute(expr parser.Expr, stmt *parser.Statement) {
	offset := len(ctx.Buffer)
	v, resolved := expr.Resolve(ctx.Symbols, stmt.Address)
	if !resolved {
		if label, ok := expr.ReferencedLabel(); ok {
			ctx.Symbols.AddPatch(&parser.PatchRecord{
				Offset:     offset,
				SymbolName: label,
				Kind:       parser.PatchAbsolute,
				Line:       stmt.Line,
			})
		}
		ctx.emit(0, 0)
		return
	}
	ctx.emitWord(v)
}

// emitRelative writes the signed 8-bit displacement used by JR/DJNZ:
// target - (address of the byte following the displacement). When expr
// cannot yet be resolved it emits a 0x00 placeholder and records a patch
// whose NextAddr is that following address, so the linker can repeat the
// same arithmetic once the label is bound.
func (ctx *Context) emitRelative(expr parser.Expr, stmt *parser.Statement) error {
	offset := len(ctx.Buffer)
	nextAddr := stmt.Address + uint16(stmt.Size)
	target, resolved := expr.Resolve(ctx.Symbols, stmt.Address)
	if !resolved {
		if label, ok := expr.ReferencedLabel(); ok {
			ctx.Symbols.AddPatch(&parser.PatchRecord{
				Offset:     offset,
				SymbolName: label,
				Kind:       parser.PatchRelative,
				Line:       stmt.Line,
				NextAddr:   nextAddr,
			})
		}
		ctx.emit(0)
		return nil
	}
	disp := int32(target) - int32(nextAddr)
	if disp < -128 || disp > 127 {
		return &EncodingError{Line: stmt.Line, Message: "relative jump out of range"}
	}
	ctx.emit(byte(int8(disp)))
	return nil
}
