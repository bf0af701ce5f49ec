package encoder

import "github.com/corewood/z80asm/parser"

var rotateShiftBase = map[string]byte{
	"RLC": 0x00, "RRC": 0x08, "RL": 0x10, "RR": 0x18,
	"SLA": 0x20, "SRA": 0x28, "SRL": 0x38,
}

// cbRegField returns the 3-bit register field for a CB-prefixed opcode and,
// for (IX+d)/(IY+d) forms, the displacement prefix bytes that must precede
// the final 0xCB byte (DD/FD CB d op).
func cbRegField(ctx *Context, stmt *parser.Statement, op parser.Operand) (field byte, prefix []byte, err error) {
	switch op.Kind {
	case parser.OpReg8:
		return parser.Reg8Code[op.Reg], nil, nil
	case parser.OpMemHL:
		return 6, nil, nil
	case parser.OpMemIndex:
		d, _ := op.Expr.Resolve(ctx.Symbols, stmt.Address)
		return 6, []byte{indexPrefix(op.Reg), byte(d)}, nil
	}
	return 0, nil, &EncodingError{Line: stmt.Line, Message: "invalid operand for bit operation"}
}

func encodeRotateShift(mnemonic string, ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) != 1 {
		return &EncodingError{Line: stmt.Line, Message: "expected one operand"}
	}
	field, prefix, err := cbRegField(ctx, stmt, stmt.Args[0])
	if err != nil {
		return err
	}
	op := rotateShiftBase[mnemonic] | field
	if prefix != nil {
		ctx.emit(prefix[0], 0xCB, prefix[1], op)
		return nil
	}
	ctx.emit(0xCB, op)
	return nil
}

// encodeRLC/encodeRRC cover both the Z80 register-rotate form (one
// operand, CB-prefixed) and the 8080 accumulator-only alias of the same
// name (no operand: RLCA/RRCA).
func encodeRLC(ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) == 0 {
		ctx.emit(0x07)
		return nil
	}
	return encodeRotateShift("RLC", ctx, stmt)
}
func encodeRRC(ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) == 0 {
		ctx.emit(0x0F)
		return nil
	}
	return encodeRotateShift("RRC", ctx, stmt)
}
func encodeRL(ctx *Context, stmt *parser.Statement) error  { return encodeRotateShift("RL", ctx, stmt) }
func encodeRR(ctx *Context, stmt *parser.Statement) error  { return encodeRotateShift("RR", ctx, stmt) }
func encodeSLA(ctx *Context, stmt *parser.Statement) error { return encodeRotateShift("SLA", ctx, stmt) }
func encodeSRA(ctx *Context, stmt *parser.Statement) error { return encodeRotateShift("SRA", ctx, stmt) }
func encodeSRL(ctx *Context, stmt *parser.Statement) error { return encodeRotateShift("SRL", ctx, stmt) }

func bitIndexed(base byte, ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) != 2 {
		return &EncodingError{Line: stmt.Line, Message: "expected bit index and operand"}
	}
	bit, resolved := stmt.Args[0].Expr.Resolve(ctx.Symbols, stmt.Address)
	if !resolved || bit > 7 {
		return &EncodingError{Line: stmt.Line, Message: "bit index must be 0-7"}
	}
	field, prefix, err := cbRegField(ctx, stmt, stmt.Args[1])
	if err != nil {
		return err
	}
	op := base | (byte(bit) << 3) | field
	if prefix != nil {
		ctx.emit(prefix[0], 0xCB, prefix[1], op)
		return nil
	}
	ctx.emit(0xCB, op)
	return nil
}

func encodeBIT(ctx *Context, stmt *parser.Statement) error { return bitIndexed(0x40, ctx, stmt) }
func encodeSET(ctx *Context, stmt *parser.Statement) error { return bitIndexed(0xC0, ctx, stmt) }
func encodeRES(ctx *Context, stmt *parser.Statement) error { return bitIndexed(0x80, ctx, stmt) }
