package encoder

import "github.com/corewood/z80asm/parser"

var edImplicit = map[string][]byte{
	"NEG": {0xED, 0x44}, "RETI": {0xED, 0x4D}, "RETN": {0xED, 0x45},
	"LDI": {0xED, 0xA0}, "LDD": {0xED, 0xA8}, "LDIR": {0xED, 0xB0}, "LDDR": {0xED, 0xB8},
	"CPD": {0xED, 0xA9}, "CPIR": {0xED, 0xB1}, "CPDR": {0xED, 0xB9},
	"INI": {0xED, 0xA2}, "IND": {0xED, 0xAA}, "INIR": {0xED, 0xB2}, "INDR": {0xED, 0xBA},
	"OUTI": {0xED, 0xA3}, "OUTD": {0xED, 0xAB}, "OTIR": {0xED, 0xB3}, "OTDR": {0xED, 0xBB},
}

func encodeEDImplicit(mnemonic string, ctx *Context, stmt *parser.Statement) error {
	if mnemonic == "CPI" {
		if len(stmt.Args) == 1 {
			// 8080 "CPI n": compare-immediate, not the Z80 block op.
			ctx.emit(0xFE)
			v, _ := stmt.Args[0].Expr.Resolve(ctx.Symbols, stmt.Address)
			ctx.emit(byte(v))
			return nil
		}
		ctx.emit(0xED, 0xA1)
		return nil
	}
	bs, ok := edImplicit[mnemonic]
	if !ok {
		return &EncodingError{Line: stmt.Line, Message: "unknown block/misc instruction"}
	}
	ctx.emit(bs...)
	return nil
}

func encodeNEG(ctx *Context, stmt *parser.Statement) error  { return encodeEDImplicit("NEG", ctx, stmt) }
func encodeRETI(ctx *Context, stmt *parser.Statement) error { return encodeEDImplicit("RETI", ctx, stmt) }
func encodeRETN(ctx *Context, stmt *parser.Statement) error { return encodeEDImplicit("RETN", ctx, stmt) }
func encodeLDI(ctx *Context, stmt *parser.Statement) error  { return encodeEDImplicit("LDI", ctx, stmt) }
func encodeLDD(ctx *Context, stmt *parser.Statement) error  { return encodeEDImplicit("LDD", ctx, stmt) }
func encodeLDIR(ctx *Context, stmt *parser.Statement) error { return encodeEDImplicit("LDIR", ctx, stmt) }
func encodeLDDR(ctx *Context, stmt *parser.Statement) error { return encodeEDImplicit("LDDR", ctx, stmt) }
func encodeCPI(ctx *Context, stmt *parser.Statement) error  { return encodeEDImplicit("CPI", ctx, stmt) }
func encodeCPD(ctx *Context, stmt *parser.Statement) error  { return encodeEDImplicit("CPD", ctx, stmt) }
func encodeCPIR(ctx *Context, stmt *parser.Statement) error { return encodeEDImplicit("CPIR", ctx, stmt) }
func encodeCPDR(ctx *Context, stmt *parser.Statement) error { return encodeEDImplicit("CPDR", ctx, stmt) }
func encodeINI(ctx *Context, stmt *parser.Statement) error  { return encodeEDImplicit("INI", ctx, stmt) }
func encodeIND(ctx *Context, stmt *parser.Statement) error  { return encodeEDImplicit("IND", ctx, stmt) }
func encodeINIR(ctx *Context, stmt *parser.Statement) error { return encodeEDImplicit("INIR", ctx, stmt) }
func encodeINDR(ctx *Context, stmt *parser.Statement) error { return encodeEDImplicit("INDR", ctx, stmt) }
func encodeOUTI(ctx *Context, stmt *parser.Statement) error { return encodeEDImplicit("OUTI", ctx, stmt) }
func encodeOUTD(ctx *Context, stmt *parser.Statement) error { return encodeEDImplicit("OUTD", ctx, stmt) }
func encodeOTIR(ctx *Context, stmt *parser.Statement) error { return encodeEDImplicit("OTIR", ctx, stmt) }
func encodeOTDR(ctx *Context, stmt *parser.Statement) error { return encodeEDImplicit("OTDR", ctx, stmt) }

func encodeIM(ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) != 1 {
		return &EncodingError{Line: stmt.Line, Message: "IM takes one operand"}
	}
	v, resolved := stmt.Args[0].Expr.Resolve(ctx.Symbols, stmt.Address)
	if !resolved {
		return &EncodingError{Line: stmt.Line, Message: "IM operand must be a constant"}
	}
	switch v {
	case 0:
		ctx.emit(0xED, 0x46)
	case 1:
		ctx.emit(0xED, 0x56)
	case 2:
		ctx.emit(0xED, 0x5E)
	default:
		return &EncodingError{Line: stmt.Line, Message: "IM operand must be 0, 1, or 2"}
	}
	return nil
}

func encodeIN(ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) != 2 {
		return &EncodingError{Line: stmt.Line, Message: "IN takes two operands"}
	}
	dst, src := stmt.Args[0], stmt.Args[1]
	if src.Kind == parser.OpMemDirect {
		ctx.emit(0xDB)
		v, _ := src.Expr.Resolve(ctx.Symbols, stmt.Address)
		ctx.emit(byte(v))
		return nil
	}
	if src.Kind == parser.OpMemReg16 && src.Reg == "C" {
		ctx.emit(0xED, 0x40|(parser.Reg8Code[dst.Reg]<<3))
		return nil
	}
	return &EncodingError{Line: stmt.Line, Message: "invalid IN operand"}
}

func encodeOUT(ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) != 2 {
		return &EncodingError{Line: stmt.Line, Message: "OUT takes two operands"}
	}
	dst, src := stmt.Args[0], stmt.Args[1]
	if dst.Kind == parser.OpMemDirect {
		ctx.emit(0xD3)
		v, _ := dst.Expr.Resolve(ctx.Symbols, stmt.Address)
		ctx.emit(byte(v))
		return nil
	}
	if dst.Kind == parser.OpMemReg16 && dst.Reg == "C" {
		ctx.emit(0xED, 0x41|(parser.Reg8Code[src.Reg]<<3))
		return nil
	}
	return &EncodingError{Line: stmt.Line, Message: "invalid OUT operand"}
}
