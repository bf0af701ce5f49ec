package encoder

import "github.com/corewood/z80asm/parser"

// aluOp encodes ADD A,r / ADC A,r / SUB r / SBC A,r / AND r / OR r / XOR r
// / CP r for every addressing mode an 8-bit ALU operation accepts: a
// register, (HL), (IX+d)/(IY+d), or an immediate byte.
func aluOp(base byte, ctx *Context, stmt *parser.Statement, op parser.Operand) error {
	switch op.Kind {
	case parser.OpReg8:
		ctx.emit(base | parser.Reg8Code[op.Reg])
	case parser.OpMemHL:
		ctx.emit(base | 6)
	case parser.OpMemIndex:
		prefix := indexPrefix(op.Reg)
		ctx.emit(prefix, base|6)
		d, _ := op.Expr.Resolve(ctx.Symbols, stmt.Address)
		ctx.emit(byte(d))
	case parser.OpImmediate:
		ctx.emit(immBase(base))
		v, _ := op.Expr.Resolve(ctx.Symbols, stmt.Address)
		ctx.emit(byte(v))
	default:
		return &EncodingError{Line: stmt.Line, Message: "invalid operand for ALU operation"}
	}
	return nil
}

// immBase maps an 8-bit ALU row base (ADD=0x80, ADC=0x88, SUB=0x90,
// SBC=0x98, AND=0xA0, XOR=0xA8, OR=0xB0, CP=0xB8) to the immediate-form
// opcode (ADD A,n=0xC6 ... CP n=0xFE): the immediate row is the register
// row shifted to bit pattern 11xxx110.
func immBase(base byte) byte {
	row := (base >> 3) & 0x07
	return 0xC6 | (row << 3)
}

func encodeADD(ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) == 2 && stmt.Args[0].Kind == parser.OpReg16 {
		return encode16ArithADD(ctx, stmt)
	}
	if len(stmt.Args) != 2 || !stmt.Args[0].IsReg("A") {
		return &EncodingError{Line: stmt.Line, Message: "ADD requires A as destination"}
	}
	return aluOp(0x80, ctx, stmt, stmt.Args[1])
}

func encodeADC(ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) == 2 && stmt.Args[0].Kind == parser.OpReg16 {
		return encode16ArithEDRow(0x4A, ctx, stmt)
	}
	if len(stmt.Args) != 2 || !stmt.Args[0].IsReg("A") {
		return &EncodingError{Line: stmt.Line, Message: "ADC requires A as destination"}
	}
	return aluOp(0x88, ctx, stmt, stmt.Args[1])
}

func encodeSBC(ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) == 2 && stmt.Args[0].Kind == parser.OpReg16 {
		return encode16ArithEDRow(0x42, ctx, stmt)
	}
	if len(stmt.Args) != 2 || !stmt.Args[0].IsReg("A") {
		return &EncodingError{Line: stmt.Line, Message: "SBC requires A as destination"}
	}
	return aluOp(0x98, ctx, stmt, stmt.Args[1])
}

func encodeSUB(ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) != 1 {
		return &EncodingError{Line: stmt.Line, Message: "SUB takes one operand"}
	}
	return aluOp(0x90, ctx, stmt, stmt.Args[0])
}

func encodeAND(ctx *Context, stmt *parser.Statement) error {
	return aluOneOperand(0xA0, ctx, stmt)
}

func encodeXOR(ctx *Context, stmt *parser.Statement) error {
	return aluOneOperand(0xA8, ctx, stmt)
}

func encodeOR(ctx *Context, stmt *parser.Statement) error {
	return aluOneOperand(0xB0, ctx, stmt)
}

func encodeCP(ctx *Context, stmt *parser.Statement) error {
	return aluOneOperand(0xB8, ctx, stmt)
}

func aluOneOperand(base byte, ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) != 1 {
		return &EncodingError{Line: stmt.Line, Message: "expected one operand"}
	}
	return aluOp(base, ctx, stmt, stmt.Args[0])
}

// encode16ArithADD handles ADD HL,rr / ADD IX,rr / ADD IY,rr: 0x09 row,
// prefixed when the destination is an index register.
func encode16ArithADD(ctx *Context, stmt *parser.Statement) error {
	dst, src := stmt.Args[0], stmt.Args[1]
	code, ok := pairCodeFor(dst.Reg, src.Reg)
	if !ok {
		return &EncodingError{Line: stmt.Line, Message: "invalid register pair for ADD"}
	}
	if dst.Reg == "IX" || dst.Reg == "IY" {
		ctx.emit(indexPrefix(dst.Reg))
	}
	ctx.emit(0x09 | (code << 4))
	return nil
}

// encode16ArithEDRow handles ADC HL,rr / SBC HL,rr: ED-prefixed, HL only.
func encode16ArithEDRow(base byte, ctx *Context, stmt *parser.Statement) error {
	dst, src := stmt.Args[0], stmt.Args[1]
	if dst.Reg != "HL" {
		return &EncodingError{Line: stmt.Line, Message: "ADC/SBC 16-bit form requires HL"}
	}
	code, ok := parser.Pair16CodeSP[src.Reg]
	if !ok {
		return &EncodingError{Line: stmt.Line, Message: "invalid register pair"}
	}
	ctx.emit(0xED, base|(code<<4))
	return nil
}

func pairCodeFor(dstReg, srcReg string) (byte, bool) {
	if dstReg == "IX" || dstReg == "IY" {
		if srcReg == dstReg {
			return 2, true // ADD IX,IX addressed via the HL slot of the index's own table
		}
		code, ok := parser.Pair16CodeSP[srcReg]
		return code, ok && srcReg != "HL"
	}
	code, ok := parser.Pair16CodeSP[srcReg]
	return code, ok
}

func indexPrefix(reg string) byte {
	if reg == "IY" {
		return 0xFD
	}
	return 0xDD
}

func encodeINCDEC(incBase, memBase byte, ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) != 1 {
		return &EncodingError{Line: stmt.Line, Message: "expected one operand"}
	}
	op := stmt.Args[0]
	switch op.Kind {
	case parser.OpReg8:
		ctx.emit(incBase | (parser.Reg8Code[op.Reg] << 3))
	case parser.OpMemHL:
		ctx.emit(memBase)
	case parser.OpMemIndex:
		ctx.emit(indexPrefix(op.Reg), memBase)
		d, _ := op.Expr.Resolve(ctx.Symbols, stmt.Address)
		ctx.emit(byte(d))
	case parser.OpReg16:
		if op.Reg == "IX" || op.Reg == "IY" {
			delta := byte(0x03)
			if incBase == 0x05 {
				delta = 0x0B
			}
			ctx.emit(indexPrefix(op.Reg), delta)
			return nil
		}
		code, ok := parser.Pair16CodeSP[op.Reg]
		if !ok {
			return &EncodingError{Line: stmt.Line, Message: "invalid register for INC/DEC"}
		}
		if incBase == 0x05 {
			ctx.emit(0x0B | (code << 4))
		} else {
			ctx.emit(0x03 | (code << 4))
		}
	default:
		return &EncodingError{Line: stmt.Line, Message: "invalid operand for INC/DEC"}
	}
	return nil
}

func encodeINC(ctx *Context, stmt *parser.Statement) error {
	return encodeINCDEC(0x04, 0x34, ctx, stmt)
}

func encodeDEC(ctx *Context, stmt *parser.Statement) error {
	return encodeINCDEC(0x05, 0x35, ctx, stmt)
}
