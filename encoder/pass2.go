package encoder

import "github.com/corewood/z80asm/parser"

// ListingLine is one row of Pass 2 output suitable for a program listing:
// the address the statement was assembled at, the bytes it produced, and
// the original source text.
type ListingLine struct {
	Address uint16
	Bytes   []byte
	Source  string
	Line    int
}

// Result is everything Pass 2 produces from a sized, label-bound program.
type Result struct {
	Buffer      []byte
	LoadAddress uint16
	Listing     []ListingLine
	Symbols     *parser.SymbolTable
}

// Pass2 walks every statement in program order, encoding instructions
// through the mnemonic dispatch table and directives through
// encodeDirective. Per the sizing contract established in Pass 1, a
// CPU instruction's program counter always advances by exactly the size
// Pass 1 estimated for it — even when the encoder errors or (through a
// bug) writes a different number of bytes — so a later label's address
// can never drift out of sync with what Pass 1 already bound it to.
func Pass2(prog *parser.Program, diags *parser.Diagnostics) *Result {
	ctx := &Context{Symbols: prog.Symbols}
	res := &Result{Symbols: prog.Symbols}

	for _, stmt := range prog.Statements {
		if stmt.Kind == parser.StmtDirective && stmt.Name == "END" {
			break
		}

		ctx.PC = stmt.Address

		switch stmt.Kind {
		case parser.StmtDirective:
			start := len(ctx.Buffer)
			encodeDirective(ctx, prog, stmt, diags)
			if len(ctx.Buffer) > start {
				res.Listing = append(res.Listing, ListingLine{
					Address: stmt.Address, Bytes: append([]byte(nil), ctx.Buffer[start:]...),
					Source: stmt.Source, Line: stmt.Line,
				})
			}

		case parser.StmtInstruction:
			start := len(ctx.Buffer)
			err := EncodeStatement(ctx, stmt)
			want := stmt.Size
			got := len(ctx.Buffer) - start
			if err != nil {
				msg := err.Error()
				if ee, ok := err.(*EncodingError); ok {
					msg = ee.Message
				}
				diags.AddError(parser.NewError(stmt.Line, parser.ErrorInvalidOperand, msg))
				ctx.Buffer = ctx.Buffer[:start]
				got = 0
			}
			if got < want {
				ctx.Buffer = append(ctx.Buffer, make([]byte, want-got)...)
			} else if got > want {
				ctx.Buffer = ctx.Buffer[:start+want]
			}
			ctx.PC = stmt.Address + uint16(want)
			res.Listing = append(res.Listing, ListingLine{
				Address: stmt.Address, Bytes: append([]byte(nil), ctx.Buffer[start:start+want]...),
				Source: stmt.Source, Line: stmt.Line,
			})
		}
	}

	res.Buffer = ctx.Buffer
	if prog.LoadAddressSet {
		res.LoadAddress = prog.LoadAddress
	} else {
		res.LoadAddress = parser.DefaultOrigin
	}

	for _, sym := range prog.Symbols.Undefined() {
		line := 0
		if len(sym.References) > 0 {
			line = sym.References[0]
		}
		diags.AddError(parser.NewError(line, parser.ErrorUndefinedLabel, "undefined symbol: "+sym.Name))
	}

	return res
}
