package encoder

import "github.com/corewood/z80asm/parser"

// This file translates Intel 8080 mnemonics into the same opcode bytes
// their Z80 equivalents would produce. Most 8080 register fields (B, C,
// D, E, H, L, M, A) share Z80's 3-bit encoding outright, including "M"
// for (HL) via parser.Reg8Code, so translation is mostly a rename.

func encodeMOV(ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) != 2 {
		return &EncodingError{Line: stmt.Line, Message: "MOV takes two operands"}
	}
	dst, src := stmt.Args[0], stmt.Args[1]
	dc, ok1 := parser.Reg8Code[dst.Reg]
	sc, ok2 := parser.Reg8Code[src.Reg]
	if !ok1 || !ok2 || (dc == 6 && sc == 6) {
		return &EncodingError{Line: stmt.Line, Message: "invalid MOV operand"}
	}
	ctx.emit(0x40 | (dc << 3) | sc)
	return nil
}

func encodeMVI(ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) != 2 {
		return &EncodingError{Line: stmt.Line, Message: "MVI takes two operands"}
	}
	rc, ok := parser.Reg8Code[stmt.Args[0].Reg]
	if !ok {
		return &EncodingError{Line: stmt.Line, Message: "invalid MVI register"}
	}
	ctx.emit(0x06 | (rc << 3))
	v, _ := stmt.Args[1].Expr.Resolve(ctx.Symbols, stmt.Address)
	ctx.emit(byte(v))
	return nil
}

func encodeLXI(ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) != 2 {
		return &EncodingError{Line: stmt.Line, Message: "LXI takes two operands"}
	}
	code, ok := parser.EightyEightyPairCode[stmt.Args[0].Reg]
	if !ok {
		return &EncodingError{Line: stmt.Line, Message: "invalid LXI register pair"}
	}
	ctx.emit(0x01 | (code << 4))
	ctx.emitAbsolute(stmt.Args[1].Expr, stmt)
	return nil
}

func encodeLDAX(ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) != 1 {
		return &EncodingError{Line: stmt.Line, Message: "LDAX takes one operand"}
	}
	switch stmt.Args[0].Reg {
	case "BC":
		ctx.emit(0x0A)
	case "DE":
		ctx.emit(0x1A)
	default:
		return &EncodingError{Line: stmt.Line, Message: "LDAX accepts only BC or DE"}
	}
	return nil
}

func encodeSTAX(ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) != 1 {
		return &EncodingError{Line: stmt.Line, Message: "STAX takes one operand"}
	}
	switch stmt.Args[0].Reg {
	case "BC":
		ctx.emit(0x02)
	case "DE":
		ctx.emit(0x12)
	default:
		return &EncodingError{Line: stmt.Line, Message: "STAX accepts only BC or DE"}
	}
	return nil
}

func pairFieldOp(base byte, ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) != 1 {
		return &EncodingError{Line: stmt.Line, Message: "expected one register-pair operand"}
	}
	code, ok := parser.EightyEightyPairCode[stmt.Args[0].Reg]
	if !ok {
		return &EncodingError{Line: stmt.Line, Message: "invalid register pair"}
	}
	ctx.emit(base | (code << 4))
	return nil
}

func encodeINX(ctx *Context, stmt *parser.Statement) error { return pairFieldOp(0x03, ctx, stmt) }
func encodeDCX(ctx *Context, stmt *parser.Statement) error { return pairFieldOp(0x0B, ctx, stmt) }
func encodeDAD(ctx *Context, stmt *parser.Statement) error { return pairFieldOp(0x09, ctx, stmt) }

func regFieldOp(base byte, ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) != 1 {
		return &EncodingError{Line: stmt.Line, Message: "expected one register operand"}
	}
	code, ok := parser.Reg8Code[stmt.Args[0].Reg]
	if !ok {
		return &EncodingError{Line: stmt.Line, Message: "invalid register operand"}
	}
	ctx.emit(base | (code << 3))
	return nil
}

func encodeINR(ctx *Context, stmt *parser.Statement) error { return regFieldOp(0x04, ctx, stmt) }
func encodeDCR(ctx *Context, stmt *parser.Statement) error { return regFieldOp(0x05, ctx, stmt) }

func immOp(opcode byte, ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) != 1 {
		return &EncodingError{Line: stmt.Line, Message: "expected one immediate operand"}
	}
	ctx.emit(opcode)
	v, _ := stmt.Args[0].Expr.Resolve(ctx.Symbols, stmt.Address)
	ctx.emit(byte(v))
	return nil
}

func encodeADI(ctx *Context, stmt *parser.Statement) error { return immOp(0xC6, ctx, stmt) }
func encodeACI(ctx *Context, stmt *parser.Statement) error { return immOp(0xCE, ctx, stmt) }
func encodeSUI(ctx *Context, stmt *parser.Statement) error { return immOp(0xD6, ctx, stmt) }
func encodeSBI(ctx *Context, stmt *parser.Statement) error { return immOp(0xDE, ctx, stmt) }
func encodeANI(ctx *Context, stmt *parser.Statement) error { return immOp(0xE6, ctx, stmt) }
func encodeXRI(ctx *Context, stmt *parser.Statement) error { return immOp(0xEE, ctx, stmt) }
func encodeORI(ctx *Context, stmt *parser.Statement) error { return immOp(0xF6, ctx, stmt) }

// ANA/XRA/ORA/CMP/SBB are one-operand 8080 ALU mnemonics onto the same
// opcode rows as the Z80 two/one-operand forms.
func encodeANA(ctx *Context, stmt *parser.Statement) error { return aluOneOperand(0xA0, ctx, stmt) }
func encodeXRA(ctx *Context, stmt *parser.Statement) error { return aluOneOperand(0xA8, ctx, stmt) }
func encodeORA(ctx *Context, stmt *parser.Statement) error { return aluOneOperand(0xB0, ctx, stmt) }
func encodeCMPi(ctx *Context, stmt *parser.Statement) error { return aluOneOperand(0xB8, ctx, stmt) }

func encodeSBB(ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) != 1 {
		return &EncodingError{Line: stmt.Line, Message: "SBB takes one operand"}
	}
	return aluOp(0x98, ctx, stmt, stmt.Args[0])
}

func encodeSTA(ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) != 1 {
		return &EncodingError{Line: stmt.Line, Message: "STA takes one operand"}
	}
	ctx.emit(0x32)
	ctx.emitAbsolute(stmt.Args[0].Expr, stmt)
	return nil
}

func encodeLDA(ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) != 1 {
		return &EncodingError{Line: stmt.Line, Message: "LDA takes one operand"}
	}
	ctx.emit(0x3A)
	ctx.emitAbsolute(stmt.Args[0].Expr, stmt)
	return nil
}

func encodeSHLD(ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) != 1 {
		return &EncodingError{Line: stmt.Line, Message: "SHLD takes one operand"}
	}
	ctx.emit(0x22)
	ctx.emitAbsolute(stmt.Args[0].Expr, stmt)
	return nil
}

func encodeLHLD(ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) != 1 {
		return &EncodingError{Line: stmt.Line, Message: "LHLD takes one operand"}
	}
	ctx.emit(0x2A)
	ctx.emitAbsolute(stmt.Args[0].Expr, stmt)
	return nil
}

func encodeXCHG(ctx *Context, stmt *parser.Statement) error { ctx.emit(0xEB); return nil }
func encodePCHL(ctx *Context, stmt *parser.Statement) error { ctx.emit(0xE9); return nil }
func encodeSPHL(ctx *Context, stmt *parser.Statement) error { ctx.emit(0xF9); return nil }
func encodeXTHL(ctx *Context, stmt *parser.Statement) error { ctx.emit(0xE3); return nil }

func encodeJMP(ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) != 1 {
		return &EncodingError{Line: stmt.Line, Message: "JMP takes one operand"}
	}
	ctx.emit(0xC3)
	ctx.emitAbsolute(stmt.Args[0].Expr, stmt)
	return nil
}

// eighty80JumpCondition maps an 8080 conditional mnemonic suffix to the
// shared ConditionCode table. "JP"/"CP" (jump/call-if-positive) are
// absent: they collide with the core Z80 mnemonics of the same spelling
// and are not supported.
var eighty80JumpCondition = map[string]byte{
	"JNZ": 0, "JZ": 1, "JNC": 2, "JC": 3, "JPO": 4, "JPE": 5, "JM": 7,
	"CNZ": 0, "CZ": 1, "CNC": 2, "CC": 3, "CPO": 4, "CPE": 5, "CM": 7,
	"RNZ": 0, "RZ": 1, "RNC": 2, "RC": 3, "RPO": 4, "RPE": 5, "RP": 6, "RM": 7,
}

func encodeCondJump(ctx *Context, stmt *parser.Statement) error {
	cc := eighty80JumpCondition[stmt.Name]
	if len(stmt.Args) != 1 {
		return &EncodingError{Line: stmt.Line, Message: "expected one target operand"}
	}
	ctx.emit(0xC2 | (cc << 3))
	ctx.emitAbsolute(stmt.Args[0].Expr, stmt)
	return nil
}

func encodeCondCall(ctx *Context, stmt *parser.Statement) error {
	cc := eighty80JumpCondition[stmt.Name]
	if len(stmt.Args) != 1 {
		return &EncodingError{Line: stmt.Line, Message: "expected one target operand"}
	}
	ctx.emit(0xC4 | (cc << 3))
	ctx.emitAbsolute(stmt.Args[0].Expr, stmt)
	return nil
}

func encodeCondRet(ctx *Context, stmt *parser.Statement) error {
	cc := eighty80JumpCondition[stmt.Name]
	ctx.emit(0xC0 | (cc << 3))
	return nil
}

func encodeHLT(ctx *Context, stmt *parser.Statement) error { ctx.emit(0x76); return nil }
func encodeRAL(ctx *Context, stmt *parser.Statement) error { ctx.emit(0x17); return nil }
func encodeRAR(ctx *Context, stmt *parser.Statement) error { ctx.emit(0x1F); return nil }
func encodeCMA(ctx *Context, stmt *parser.Statement) error { ctx.emit(0x2F); return nil }
func encodeSTC(ctx *Context, stmt *parser.Statement) error { ctx.emit(0x37); return nil }
func encodeCMC(ctx *Context, stmt *parser.Statement) error { ctx.emit(0x3F); return nil }
