package encoder

import "github.com/corewood/z80asm/parser"

func encodeJP(ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) == 1 {
		op := stmt.Args[0]
		switch op.Kind {
		case parser.OpMemHL:
			ctx.emit(0xE9)
			return nil
		case parser.OpMemIndex:
			ctx.emit(indexPrefix(op.Reg), 0xE9)
			return nil
		case parser.OpImmediate:
			ctx.emit(0xC3)
			ctx.emitAbsolute(op.Expr, stmt)
			return nil
		}
		return &EncodingError{Line: stmt.Line, Message: "invalid JP operand"}
	}
	if len(stmt.Args) == 2 {
		cc, ok := parser.ConditionCode[stmt.Args[0].Reg]
		if !ok {
			return &EncodingError{Line: stmt.Line, Message: "invalid JP condition"}
		}
		ctx.emit(0xC2 | (cc << 3))
		ctx.emitAbsolute(stmt.Args[1].Expr, stmt)
		return nil
	}
	return &EncodingError{Line: stmt.Line, Message: "JP takes one or two operands"}
}

func encodeCALL(ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) == 1 {
		ctx.emit(0xCD)
		ctx.emitAbsolute(stmt.Args[0].Expr, stmt)
		return nil
	}
	if len(stmt.Args) == 2 {
		cc, ok := parser.ConditionCode[stmt.Args[0].Reg]
		if !ok {
			return &EncodingError{Line: stmt.Line, Message: "invalid CALL condition"}
		}
		ctx.emit(0xC4 | (cc << 3))
		ctx.emitAbsolute(stmt.Args[1].Expr, stmt)
		return nil
	}
	return &EncodingError{Line: stmt.Line, Message: "CALL takes one or two operands"}
}

func encodeJR(ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) == 1 {
		ctx.emit(0x18)
		return ctx.emitRelative(stmt.Args[0].Expr, stmt)
	}
	if len(stmt.Args) == 2 {
		cc, ok := parser.JrConditionCode[stmt.Args[0].Reg]
		if !ok {
			return &EncodingError{Line: stmt.Line, Message: "JR only accepts NZ/Z/NC/C"}
		}
		ctx.emit(0x20 | (cc << 3))
		return ctx.emitRelative(stmt.Args[1].Expr, stmt)
	}
	return &EncodingError{Line: stmt.Line, Message: "JR takes one or two operands"}
}

func encodeDJNZ(ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) != 1 {
		return &EncodingError{Line: stmt.Line, Message: "DJNZ takes one operand"}
	}
	ctx.emit(0x10)
	return ctx.emitRelative(stmt.Args[0].Expr, stmt)
}

func encodeRET(ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) == 0 {
		ctx.emit(0xC9)
		return nil
	}
	if len(stmt.Args) == 1 {
		cc, ok := parser.ConditionCode[stmt.Args[0].Reg]
		if !ok {
			return &EncodingError{Line: stmt.Line, Message: "invalid RET condition"}
		}
		ctx.emit(0xC0 | (cc << 3))
		return nil
	}
	return &EncodingError{Line: stmt.Line, Message: "RET takes zero or one operand"}
}

func encodeRST(ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) != 1 {
		return &EncodingError{Line: stmt.Line, Message: "RST takes one operand"}
	}
	v, resolved := stmt.Args[0].Expr.Resolve(ctx.Symbols, stmt.Address)
	if !resolved || v&^0x38 != 0 {
		return &EncodingError{Line: stmt.Line, Message: "RST operand must be 00/08/10/18/20/28/30/38h"}
	}
	ctx.emit(0xC7 | byte(v))
	return nil
}
