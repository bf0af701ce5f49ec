package encoder

import "github.com/corewood/z80asm/parser"

var reg16PairDD = map[string]byte{"BC": 0, "DE": 1, "HL": 2, "SP": 3}

func encodeLD(ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) != 2 {
		return &EncodingError{Line: stmt.Line, Message: "LD takes two operands"}
	}
	dst, src := stmt.Args[0], stmt.Args[1]

	switch {
	case dst.Kind == parser.OpReg8 && src.Kind == parser.OpReg8:
		ctx.emit(0x40 | (parser.Reg8Code[dst.Reg] << 3) | parser.Reg8Code[src.Reg])
		return nil

	case dst.Kind == parser.OpReg8 && src.Kind == parser.OpImmediate:
		ctx.emit(0x06 | (parser.Reg8Code[dst.Reg] << 3))
		v, _ := src.Expr.Resolve(ctx.Symbols, stmt.Address)
		ctx.emit(byte(v))
		return nil

	case dst.Kind == parser.OpReg8 && src.Kind == parser.OpMemHL:
		ctx.emit(0x40 | (parser.Reg8Code[dst.Reg] << 3) | 6)
		return nil

	case dst.Kind == parser.OpReg8 && src.Kind == parser.OpMemHLPostInc:
		// pseudo-op: LD r,(HL) followed by INC HL
		ctx.emit(0x40|(parser.Reg8Code[dst.Reg]<<3)|6, 0x23)
		return nil

	case dst.Kind == parser.OpMemHL && src.Kind == parser.OpReg8:
		ctx.emit(0x70 | parser.Reg8Code[src.Reg])
		return nil

	case dst.Kind == parser.OpMemHL && src.Kind == parser.OpImmediate:
		ctx.emit(0x36)
		v, _ := src.Expr.Resolve(ctx.Symbols, stmt.Address)
		ctx.emit(byte(v))
		return nil

	case dst.Kind == parser.OpReg8 && src.Kind == parser.OpMemIndex,
		dst.Kind == parser.OpMemIndex && src.Kind == parser.OpReg8:
		return encodeLDIndexReg(ctx, stmt, dst, src)

	case dst.Kind == parser.OpMemIndex && src.Kind == parser.OpImmediate:
		ctx.emit(indexPrefix(dst.Reg), 0x36)
		d, _ := dst.Expr.Resolve(ctx.Symbols, stmt.Address)
		ctx.emit(byte(d))
		v, _ := src.Expr.Resolve(ctx.Symbols, stmt.Address)
		ctx.emit(byte(v))
		return nil

	case dst.IsReg("A") && src.Kind == parser.OpMemReg16:
		if src.Reg == "BC" {
			ctx.emit(0x0A)
		} else {
			ctx.emit(0x1A)
		}
		return nil

	case dst.Kind == parser.OpMemReg16 && src.IsReg("A"):
		if dst.Reg == "BC" {
			ctx.emit(0x02)
		} else {
			ctx.emit(0x12)
		}
		return nil

	case dst.IsReg("A") && src.Kind == parser.OpMemDirect:
		ctx.emit(0x3A)
		ctx.emitAbsolute(src.Expr, stmt)
		return nil

	case dst.Kind == parser.OpMemDirect && src.IsReg("A"):
		ctx.emit(0x32)
		ctx.emitAbsolute(dst.Expr, stmt)
		return nil

	case dst.IsReg("HL") && src.Kind == parser.OpMemDirect:
		ctx.emit(0x2A)
		ctx.emitAbsolute(src.Expr, stmt)
		return nil

	case dst.Kind == parser.OpMemDirect && src.IsReg("HL"):
		ctx.emit(0x22)
		ctx.emitAbsolute(dst.Expr, stmt)
		return nil

	case (dst.Reg == "IX" || dst.Reg == "IY") && src.Kind == parser.OpMemDirect:
		ctx.emit(indexPrefix(dst.Reg), 0x2A)
		ctx.emitAbsolute(src.Expr, stmt)
		return nil

	case dst.Kind == parser.OpMemDirect && (src.Reg == "IX" || src.Reg == "IY"):
		ctx.emit(indexPrefix(src.Reg), 0x22)
		ctx.emitAbsolute(dst.Expr, stmt)
		return nil

	case dst.Kind == parser.OpReg16 && src.Kind == parser.OpMemDirect:
		code, ok := reg16PairDD[dst.Reg]
		if !ok {
			return &EncodingError{Line: stmt.Line, Message: "invalid register pair for LD"}
		}
		ctx.emit(0xED, 0x4B|(code<<4))
		ctx.emitAbsolute(src.Expr, stmt)
		return nil

	case dst.Kind == parser.OpMemDirect && src.Kind == parser.OpReg16:
		code, ok := reg16PairDD[src.Reg]
		if !ok {
			return &EncodingError{Line: stmt.Line, Message: "invalid register pair for LD"}
		}
		ctx.emit(0xED, 0x43|(code<<4))
		ctx.emitAbsolute(dst.Expr, stmt)
		return nil

	case dst.Reg == "SP" && src.Kind == parser.OpReg16 && src.Reg == "HL":
		ctx.emit(0xF9)
		return nil

	case dst.Reg == "SP" && (src.Reg == "IX" || src.Reg == "IY"):
		ctx.emit(indexPrefix(src.Reg), 0xF9)
		return nil

	case dst.Reg == "I" && src.IsReg("A"):
		ctx.emit(0xED, 0x47)
		return nil
	case dst.IsReg("A") && src.Reg == "I":
		ctx.emit(0xED, 0x57)
		return nil
	case dst.Reg == "R" && src.IsReg("A"):
		ctx.emit(0xED, 0x4F)
		return nil
	case dst.IsReg("A") && src.Reg == "R":
		ctx.emit(0xED, 0x5F)
		return nil

	case (dst.Reg == "IX" || dst.Reg == "IY") && src.Kind == parser.OpImmediate:
		ctx.emit(indexPrefix(dst.Reg), 0x21)
		ctx.emitAbsolute(src.Expr, stmt)
		return nil

	case dst.Kind == parser.OpReg16 && src.Kind == parser.OpImmediate:
		code, ok := reg16PairDD[dst.Reg]
		if !ok {
			return &EncodingError{Line: stmt.Line, Message: "invalid register pair for LD"}
		}
		ctx.emit(0x01 | (code << 4))
		ctx.emitAbsolute(src.Expr, stmt)
		return nil

	case dst.Kind == parser.OpReg16 && src.Kind == parser.OpReg16:
		// pseudo-op: LD rr,rr' expands to two 8-bit LDs (hi,hi then lo,lo).
		return encodeLDRegPair(ctx, dst.Reg, src.Reg)

	default:
		return &EncodingError{Line: stmt.Line, Message: "unsupported LD operand combination"}
	}
}

func encodeLDIndexReg(ctx *Context, stmt *parser.Statement, dst, src parser.Operand) error {
	if dst.Kind == parser.OpMemIndex {
		ctx.emit(indexPrefix(dst.Reg), 0x70|parser.Reg8Code[src.Reg])
		d, _ := dst.Expr.Resolve(ctx.Symbols, stmt.Address)
		ctx.emit(byte(d))
		return nil
	}
	ctx.emit(indexPrefix(src.Reg), 0x46|(parser.Reg8Code[dst.Reg]<<3))
	d, _ := src.Expr.Resolve(ctx.Symbols, stmt.Address)
	ctx.emit(byte(d))
	return nil
}

func pairHiLo(reg string) (string, string, bool) {
	switch reg {
	case "BC":
		return "B", "C", true
	case "DE":
		return "D", "E", true
	case "HL":
		return "H", "L", true
	}
	return "", "", false
}

func encodeLDRegPair(ctx *Context, dstReg, srcReg string) error {
	dh, dl, ok1 := pairHiLo(dstReg)
	sh, sl, ok2 := pairHiLo(srcReg)
	if !ok1 || !ok2 {
		return &EncodingError{Message: "LD rr,rr' pseudo-op requires BC/DE/HL"}
	}
	ctx.emit(0x40 | (parser.Reg8Code[dh] << 3) | parser.Reg8Code[sh])
	ctx.emit(0x40 | (parser.Reg8Code[dl] << 3) | parser.Reg8Code[sl])
	return nil
}
