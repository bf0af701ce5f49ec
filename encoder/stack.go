package encoder

import "github.com/corewood/z80asm/parser"

func encodePUSH(ctx *Context, stmt *parser.Statement) error {
	return encodeStackOp(0xC5, 0xE5, ctx, stmt)
}

func encodePOP(ctx *Context, stmt *parser.Statement) error {
	return encodeStackOp(0xC1, 0xE1, ctx, stmt)
}

func encodeStackOp(base, indexOp byte, ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) != 1 {
		return &EncodingError{Line: stmt.Line, Message: "expected one register-pair operand"}
	}
	reg := stmt.Args[0].Reg
	if reg == "IX" || reg == "IY" {
		ctx.emit(indexPrefix(reg), indexOp)
		return nil
	}
	code, ok := parser.Pair16CodeAF[reg]
	if !ok {
		return &EncodingError{Line: stmt.Line, Message: "invalid register pair"}
	}
	ctx.emit(base | (code << 4))
	return nil
}
