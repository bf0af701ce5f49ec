package parser

import "strings"

// Program is the result of tokenising and structuring a source string: a
// flat list of statements plus the symbol table built up by Pass 1.
type Program struct {
	Statements     []*Statement
	Symbols        *SymbolTable
	LoadAddress    uint16
	LoadAddressSet bool
	EndSeen        bool
}

// Parse tokenises source, groups tokens into logical statements, and
// runs Pass 1 (label binding and sizing) over them. It does not emit any
// bytes — that is Pass 2's job, in package encoder.
func Parse(source string) (*Program, *Diagnostics) {
	lexer := NewLexer(source)
	tokens := lexer.TokenizeAll()
	diags := lexer.Diagnostics()

	statements := groupStatements(tokens, source)

	prog := &Program{Symbols: NewSymbolTable()}
	runPass1(prog, statements, diags)
	return prog, diags
}

type lineGroup struct {
	line   int
	toks   []Token
	source string
}

func groupStatements(tokens []Token, source string) []lineGroup {
	sourceLines := strings.Split(source, "\n")
	var groups []lineGroup
	var cur []Token
	for _, t := range tokens {
		switch t.Kind {
		case KindComment:
			continue
		case KindNewline:
			groups = append(groups, lineGroup{line: t.Line, toks: cur})
			cur = nil
		case KindEOF:
			if len(cur) > 0 {
				groups = append(groups, lineGroup{line: t.Line, toks: cur})
			}
		default:
			cur = append(cur, t)
		}
	}
	for i := range groups {
		if groups[i].line-1 >= 0 && groups[i].line-1 < len(sourceLines) {
			groups[i].source = strings.TrimSpace(sourceLines[groups[i].line-1])
		}
	}
	return groups
}

func buildStatement(g lineGroup) *Statement {
	stmt := &Statement{Line: g.line, Source: g.source, Kind: StmtEmpty}
	toks := g.toks
	if len(toks) == 0 {
		return stmt
	}

	if (toks[0].Kind == KindIdentifier || toks[0].Kind == KindMnemonic) && len(toks) >= 2 && toks[1].Kind == KindColon {
		stmt.Label = toks[0].Literal
		toks = toks[2:]
	} else if toks[0].Kind == KindIdentifier && (len(toks) == 1 || toks[1].Kind == KindMnemonic || toks[1].Kind == KindDirective) {
		stmt.Label = toks[0].Literal
		toks = toks[1:]
	}

	if len(toks) == 0 {
		if stmt.Label != "" {
			stmt.Kind = StmtLabelOnly
		}
		return stmt
	}

	head := toks[0]
	switch head.Kind {
	case KindDirective:
		// "SET" is both the EQU-style directive (always label-bound) and
		// the CB-prefixed bit instruction "SET b,r" (never label-bound in
		// that form); a bare, unlabelled SET is the instruction.
		if head.Literal == "SET" && stmt.Label == "" {
			stmt.Kind = StmtInstruction
			stmt.Name = head.Literal
			args, err := parseOperandList(toks[1:])
			stmt.Args = args
			if err != "" {
				stmt.RawArgs = "ERROR:" + err
			}
			break
		}
		stmt.Kind = StmtDirective
		stmt.Name = head.Literal
		parseDirectiveArgs(stmt, toks[1:])
	case KindMnemonic:
		stmt.Kind = StmtInstruction
		stmt.Name = head.Literal
		args, err := parseOperandList(toks[1:])
		stmt.Args = args
		if err != "" {
			stmt.RawArgs = "ERROR:" + err
		}
	default:
		stmt.Kind = StmtDirective
		stmt.Name = "UNKNOWN"
		stmt.RawArgs = "ERROR:unexpected token " + head.Literal
	}
	return stmt
}

func parseDirectiveArgs(stmt *Statement, rest []Token) {
	switch stmt.Name {
	case "DEFC":
		// DEFC name = expr
		if len(rest) >= 3 && (rest[0].Kind == KindIdentifier) && rest[1].Kind == KindEquals {
			stmt.Label = rest[0].Literal
			e := parseExprTokens(rest[2:])
			stmt.Args = []Operand{{Kind: OpImmediate, Expr: e}}
		}
	case "EQU", "SET":
		e := parseExprTokens(rest)
		stmt.Args = []Operand{{Kind: OpImmediate, Expr: e}}
	case "ORG":
		if len(rest) > 0 {
			e := parseExprTokens(rest)
			stmt.Args = []Operand{{Kind: OpImmediate, Expr: e}}
		}
	case "INCLUDE":
		stmt.Args = parseDataList(rest)
	case "DB", "DEFB", "DEFM":
		stmt.Args = parseDataList(rest)
	case "DW", "DEFW":
		stmt.Args = parseDataList(rest)
	case "DS", "DEFS":
		groups := splitOnComma(rest)
		for _, grp := range groups {
			stmt.Args = append(stmt.Args, Operand{Kind: OpImmediate, Expr: parseExprTokens(grp)})
		}
	default:
		// PUBLIC/EXTERN/GLOBAL/MODULE/SECTION/IF/ELSE/ENDIF/TITLE/PAGE/
		// EJECT/NAME/MACLIB/END: tokenised, argument text ignored.
	}
}

func parseDataList(rest []Token) []Operand {
	var ops []Operand
	for _, grp := range splitOnComma(rest) {
		if len(grp) == 1 && grp[0].Kind == KindString {
			ops = append(ops, Operand{Kind: OpString, Str: grp[0].Literal})
			continue
		}
		ops = append(ops, Operand{Kind: OpImmediate, Expr: parseExprTokens(grp)})
	}
	return ops
}

func splitOnComma(toks []Token) [][]Token {
	var groups [][]Token
	var cur []Token
	for _, t := range toks {
		if t.Kind == KindComma {
			groups = append(groups, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	if len(cur) > 0 || len(groups) > 0 {
		groups = append(groups, cur)
	}
	return groups
}

func parseOperandList(toks []Token) ([]Operand, string) {
	var ops []Operand
	for _, grp := range splitOnComma(toks) {
		if len(grp) == 0 {
			continue
		}
		op, err := parseOperand(grp)
		if err != "" {
			return ops, err
		}
		ops = append(ops, op)
	}
	return ops, ""
}

func parseOperand(toks []Token) (Operand, string) {
	if len(toks) == 0 {
		return Operand{}, "missing operand"
	}

	if toks[0].Kind == KindLeftParen {
		if toks[len(toks)-1].Kind != KindRightParen {
			return Operand{}, "unbalanced parentheses"
		}
		inner := toks[1 : len(toks)-1]
		if len(inner) == 2 && inner[0].Kind == KindRegister && inner[0].Literal == "HL" && inner[1].Kind == KindPlus {
			return Operand{Kind: OpMemHLPostInc}, ""
		}
		if len(inner) == 1 && inner[0].Kind == KindRegister {
			switch inner[0].Literal {
			case "HL":
				return Operand{Kind: OpMemHL}, ""
			case "BC", "DE", "C", "SP":
				return Operand{Kind: OpMemReg16, Reg: inner[0].Literal}, ""
			case "IX", "IY":
				return Operand{Kind: OpMemIndex, Reg: inner[0].Literal, Expr: Expr{HasNumber: true}}, ""
			}
		}
		if len(inner) >= 2 && inner[0].Kind == KindRegister && (inner[0].Literal == "IX" || inner[0].Literal == "IY") &&
			(inner[1].Kind == KindPlus || inner[1].Kind == KindMinus) {
			sign := int8(1)
			if inner[1].Kind == KindMinus {
				sign = -1
			}
			e := parseExprTokens(inner[2:])
			var n uint32
			if e.HasNumber {
				n = e.Number
			}
			return Operand{Kind: OpMemIndex, Reg: inner[0].Literal, Expr: Expr{HasNumber: true, Number: applySign(n, sign)}}, ""
		}
		return Operand{Kind: OpMemDirect, Expr: parseExprTokens(inner)}, ""
	}

	if toks[0].Kind == KindRegister && len(toks) == 1 {
		if _, is8 := Reg8Code[toks[0].Literal]; is8 {
			return Operand{Kind: OpReg8, Reg: toks[0].Literal}, ""
		}
		return Operand{Kind: OpReg16, Reg: toks[0].Literal}, ""
	}

	if toks[0].Kind == KindString && len(toks) == 1 {
		return Operand{Kind: OpString, Str: toks[0].Literal}, ""
	}

	return Operand{Kind: OpImmediate, Expr: parseExprTokens(toks)}, ""
}

// applySign folds a signed small displacement into the uint32 slot used
// by Expr.Number, so (IX+5) and (IY-3) both carry their true signed value
// (as a two's-complement 32-bit pattern the encoder narrows to one byte).
func applySign(n uint32, sign int8) uint32 {
	if sign < 0 {
		return uint32(-int32(n))
	}
	return n
}

func parseExprTokens(toks []Token) Expr {
	var e Expr
	idx := 0
	if idx < len(toks) && toks[idx].Kind == KindMinus {
		idx++
		if idx < len(toks) && toks[idx].Kind == KindNumber {
			v, _ := ParseNumber(toks[idx].Literal)
			e.HasNumber = true
			e.Number = uint32(-int32(v))
			idx++
		}
		return e
	}
	if idx < len(toks) {
		switch toks[idx].Kind {
		case KindNumber:
			v, _ := ParseNumber(toks[idx].Literal)
			e.HasNumber = true
			e.Number = v
			idx++
		case KindDollar:
			e.IsPC = true
			idx++
		case KindIdentifier, KindRegister, KindMnemonic, KindDirective:
			e.Label = toks[idx].Literal
			idx++
		}
	}
	if idx < len(toks) && (toks[idx].Kind == KindPlus || toks[idx].Kind == KindMinus) {
		sign := int8(1)
		if toks[idx].Kind == KindMinus {
			sign = -1
		}
		idx++
		if idx < len(toks) && toks[idx].Kind == KindNumber {
			v, _ := ParseNumber(toks[idx].Literal)
			e.Sign = sign
			e.Offset = v
		}
	}
	return e
}
