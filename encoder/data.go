package encoder

import "github.com/corewood/z80asm/parser"

// encodeDirective emits the bytes (if any) a directive statement produces
// during Pass 2, and resolves EQU/SET bindings in source order — the
// binding itself, like Pass 1's DEFC, is a snapshot of the symbol table
// at the point the directive appears; a forward reference inside the
// expression is reported as an error and the constant stays unbound.
func encodeDirective(ctx *Context, prog *parser.Program, stmt *parser.Statement, diags *parser.Diagnostics) {
	switch stmt.Name {
	case "EQU", "SET":
		if len(stmt.Args) != 1 || stmt.Label == "" {
			return
		}
		v, resolved := stmt.Args[0].Expr.Resolve(ctx.Symbols, stmt.Address)
		if !resolved {
			diags.AddError(parser.NewError(stmt.Line, parser.ErrorUndefinedLabel,
				"cannot resolve "+stmt.Name+" value for "+stmt.Label))
			return
		}
		if err := ctx.Symbols.Define(stmt.Label, parser.SymbolEquate, v, stmt.Line); err != nil {
			diags.AddError(parser.NewError(stmt.Line, parser.ErrorDuplicateLabel, err.Error()))
		}

	case "DB", "DEFB", "DEFM":
		for _, op := range stmt.Args {
			if op.Kind == parser.OpString {
				for i := 0; i < len(op.Str); i++ {
					ctx.emit(op.Str[i])
				}
				continue
			}
			v, resolved := op.Expr.Resolve(ctx.Symbols, stmt.Address)
			if !resolved {
				if label, ok := op.Expr.ReferencedLabel(); ok {
					ctx.Symbols.AddPatch(&parser.PatchRecord{
						Offset: len(ctx.Buffer), SymbolName: label,
						Kind: parser.PatchByte, Line: stmt.Line,
					})
				}
				ctx.emit(0)
				continue
			}
			ctx.emit(byte(v))
		}

	case "DW", "DEFW":
		for _, op := range stmt.Args {
			ctx.emitAbsolute(op.Expr, stmt)
		}

	case "DS", "DEFS":
		if len(stmt.Args) == 0 {
			return
		}
		v, resolved := stmt.Args[0].Expr.Resolve(ctx.Symbols, stmt.Address)
		if !resolved {
			return
		}
		var fill byte
		if len(stmt.Args) >= 2 {
			if fv, fresolved := stmt.Args[1].Expr.Resolve(ctx.Symbols, stmt.Address); fresolved {
				fill = byte(fv)
			}
		}
		for i := uint16(0); i < v; i++ {
			ctx.emit(fill)
		}
	}
}
