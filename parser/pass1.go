package parser

import "fmt"

// runPass1 builds statements from the token groups and simulates the
// program counter across them, binding every label to its address and
// every resolvable DEFC constant to its value (EQU/SET constants are bound
// later, by Pass 2). It never emits bytes: that happens in
// Pass 2 (package encoder), which must agree byte-for-byte with the sizes
// computed here or forward-referenced labels end up bound to the wrong
// address.
func runPass1(prog *Program, groups []lineGroup, diags *Diagnostics) {
	var pc uint16

	for _, g := range groups {
		stmt := buildStatement(g)
		prog.Statements = append(prog.Statements, stmt)

		if prog.EndSeen {
			continue
		}

		if stmt.RawArgs != "" && len(stmt.RawArgs) > 6 && stmt.RawArgs[:6] == "ERROR:" {
			diags.AddError(NewError(stmt.Line, ErrorSyntax, stmt.RawArgs[6:]))
			continue
		}

		switch stmt.Kind {
		case StmtEmpty:
			continue

		case StmtLabelOnly:
			bindLabel(prog, stmt.Label, pc, stmt.Line, diags)
			stmt.Address = pc

		case StmtDirective:
			// EQU/SET/DEFC bind a *value*, not a program-counter
			// address — DEFC resolves immediately (Open Question 4
			// does not apply to it), EQU/SET are deferred to Pass 2 in
			// source order (see applyDirectivePass1's "EQU", "SET"
			// case). Binding the label here too would both stamp the
			// wrong value (this statement's PC, not its operand) and
			// make Pass 2's real Define() fail as a duplicate.
			if stmt.Label != "" && stmt.Name != "DEFC" && stmt.Name != "EQU" && stmt.Name != "SET" {
				bindLabel(prog, stmt.Label, pc, stmt.Line, diags)
			}
			stmt.Address = pc
			pc = applyDirectivePass1(prog, stmt, pc, diags)

		case StmtInstruction:
			if stmt.Label != "" {
				bindLabel(prog, stmt.Label, pc, stmt.Line, diags)
			}
			stmt.Address = pc
			size := EstimateSize(stmt.Name, stmt.Args)
			stmt.Size = size
			pc += uint16(size)
		}
	}
}

func bindLabel(prog *Program, name string, pc uint16, line int, diags *Diagnostics) {
	if err := prog.Symbols.Define(name, SymbolLabel, pc, line); err != nil {
		diags.AddError(NewError(line, ErrorDuplicateLabel, err.Error()))
	}
}

func applyDirectivePass1(prog *Program, stmt *Statement, pc uint16, diags *Diagnostics) uint16 {
	switch stmt.Name {
	case "ORG":
		if len(stmt.Args) == 0 {
			return pc
		}
		v, resolved := stmt.Args[0].Expr.Resolve(prog.Symbols, pc)
		if !resolved {
			return pc
		}
		if !prog.LoadAddressSet {
			prog.LoadAddress = v
			prog.LoadAddressSet = true
		}
		return v

	case "DEFC":
		if stmt.Label != "" && len(stmt.Args) == 1 {
			v, resolved := stmt.Args[0].Expr.Resolve(prog.Symbols, pc)
			if resolved {
				if err := prog.Symbols.Define(stmt.Label, SymbolEquate, v, stmt.Line); err != nil {
					diags.AddError(NewError(stmt.Line, ErrorDuplicateLabel, err.Error()))
				}
			}
		}
		return pc

	case "EQU", "SET":
		// Value may depend on a later label (Open Question 4): the
		// binding itself is deferred to Pass 2, in source order, same as
		// the reference implementation. Pass 1 only reserves no bytes.
		return pc

	case "END":
		prog.EndSeen = true
		return pc

	case "PUBLIC", "EXTERN", "GLOBAL", "MODULE", "SECTION",
		"IF", "ELSE", "ENDIF", "TITLE", "PAGE", "EJECT", "NAME", "MACLIB", "INCLUDE":
		return pc

	case "DB", "DEFB", "DEFM":
		var n int
		for _, op := range stmt.Args {
			if op.Kind == OpString {
				n += len(op.Str)
			} else {
				n++
			}
		}
		return pc + uint16(n)

	case "DW", "DEFW":
		return pc + uint16(2*len(stmt.Args))

	case "DS", "DEFS":
		if len(stmt.Args) == 0 {
			return pc
		}
		v, resolved := stmt.Args[0].Expr.Resolve(prog.Symbols, pc)
		if !resolved {
			return pc
		}
		return pc + v

	default:
		diags.AddWarning(NewWarning(stmt.Line, ErrorSyntax, fmt.Sprintf("unknown directive %q", stmt.Name)))
		return pc
	}
}

// EstimateSize returns the number of bytes Pass 2 will emit for the given
// mnemonic and operands, per the size-estimator table: it must agree with
// the encoder exactly, since labels bound during Pass 1 are addressed
// according to this estimate.
func EstimateSize(mnemonic string, args []Operand) int {
	if len(mnemonic) > 0 && mnemonic[0] == '.' {
		return 0 // .Z80 / .8080 pragmas: ignored
	}

	switch mnemonic {
	case "NOP", "HALT", "DI", "EI", "EXX", "RLCA", "RRCA", "RLA", "RRA",
		"DAA", "CPL", "SCF", "CCF", "RET":
		return 1

	case "NEG", "RETI", "RETN", "IM",
		"LDI", "LDD", "LDIR", "LDDR", "CPI", "CPD", "CPIR", "CPDR",
		"INI", "IND", "INIR", "INDR", "OUTI", "OUTD", "OTIR", "OTDR":
		if mnemonic == "CPI" && len(args) == 1 {
			return 2 // 8080 "CPI n" (compare immediate), not the Z80 block op
		}
		return 2

	case "INC", "DEC":
		return sizeIncDec(args)

	case "ADD", "ADC", "SBC":
		return sizeAddAdcSbc(mnemonic, args)

	case "SUB", "AND", "OR", "XOR", "CP":
		return sizeAluSingle(args)

	case "LD":
		return sizeLD(args)

	case "JP", "CALL":
		return sizeJpCall(mnemonic, args)

	case "JR", "DJNZ":
		return 2

	case "PUSH", "POP":
		return sizePushPop(args)

	case "IN", "OUT":
		return sizeInOut(mnemonic, args)

	case "BIT", "SET", "RES", "RLC", "RRC", "RL", "RR", "SLA", "SRA", "SRL":
		return sizeBitOp(mnemonic, args)

	case "RST":
		return 1

	case "EX":
		if len(args) == 2 && args[0].Kind == OpMemReg16 && args[0].Reg == "SP" &&
			(args[1].Reg == "IX" || args[1].Reg == "IY") {
			return 2
		}
		return 1

	default:
		if n, ok := eighty80Size(mnemonic, args); ok {
			return n
		}
		return 1
	}
}

func isIndexReg(op Operand) bool {
	return (op.Kind == OpReg16 && (op.Reg == "IX" || op.Reg == "IY")) || op.Kind == OpMemIndex
}

func sizeIncDec(args []Operand) int {
	if len(args) != 1 {
		return 1
	}
	op := args[0]
	if op.Kind == OpMemIndex {
		return 3
	}
	if op.Kind == OpReg16 && (op.Reg == "IX" || op.Reg == "IY") {
		return 2
	}
	return 1
}

func sizeAddAdcSbc(mnemonic string, args []Operand) int {
	if len(args) == 2 && args[0].Kind == OpReg16 {
		if args[0].Reg == "IX" || args[0].Reg == "IY" {
			return 2
		}
		if mnemonic == "ADD" {
			return 1 // plain ADD HL,rr
		}
		return 2 // ED-prefixed ADC/SBC HL,rr
	}
	if len(args) >= 1 {
		last := args[len(args)-1]
		if last.Kind == OpMemIndex {
			return 3
		}
		if last.Kind == OpImmediate {
			return 2
		}
	}
	return 1
}

func sizeAluSingle(args []Operand) int {
	if len(args) != 1 {
		return 1
	}
	op := args[0]
	switch op.Kind {
	case OpMemIndex:
		return 3
	case OpImmediate:
		return 2
	default:
		return 1
	}
}

func sizeLD(args []Operand) int {
	if len(args) != 2 {
		return 1
	}
	dst, src := args[0], args[1]

	if dst.Kind == OpReg8 && src.Kind == OpMemHLPostInc {
		return 2 // pseudo-op: LD r,(HL) followed by INC HL
	}

	if isIndexReg(dst) || isIndexReg(src) {
		if dst.Kind == OpMemIndex || src.Kind == OpMemIndex {
			if src.Kind == OpImmediate {
				return 4 // LD (IX+d),n
			}
			return 3
		}
		if dst.Kind == OpReg16 && src.Kind == OpImmediate {
			return 4 // LD IX,nn
		}
		if dst.Kind == OpMemDirect || src.Kind == OpMemDirect {
			return 4 // LD IX,(nn) / LD (nn),IX
		}
		return 2
	}

	if dst.Kind == OpReg16 && dst.Reg == "SP" && src.Kind == OpReg16 && src.Reg == "HL" {
		return 1 // LD SP,HL (IX/IY already handled above via isIndexReg)
	}
	if dst.Reg == "I" || dst.Reg == "R" || src.Reg == "I" || src.Reg == "R" {
		return 2 // ED-prefixed LD I,A / LD R,A / LD A,I / LD A,R
	}
	if dst.Kind == OpReg16 && src.Kind == OpReg16 {
		return 2 // pseudo-op: two 1-byte LD r,r' instructions
	}
	if dst.Kind == OpReg16 && src.Kind == OpImmediate {
		return 3
	}
	if dst.Kind == OpReg8 && src.Kind == OpImmediate {
		return 2
	}
	if dst.Kind == OpMemHL && src.Kind == OpImmediate {
		return 2
	}
	if (dst.Kind == OpReg8 && dst.Reg == "A" && src.Kind == OpMemDirect) ||
		(dst.Kind == OpMemDirect && src.Kind == OpReg8 && src.Reg == "A") {
		return 3
	}
	if (dst.Kind == OpReg16 && dst.Reg == "HL" && src.Kind == OpMemDirect) ||
		(dst.Kind == OpMemDirect && src.Kind == OpReg16 && src.Reg == "HL") {
		return 3
	}
	if (dst.Kind == OpReg16 && src.Kind == OpMemDirect) || (dst.Kind == OpMemDirect && src.Kind == OpReg16) {
		return 4 // ED-prefixed (nn),rr / rr,(nn)
	}
	if dst.Kind == OpMemReg16 || src.Kind == OpMemReg16 {
		return 1
	}
	return 1 // plain LD r,r' or LD r,(HL) / LD (HL),r
}

func sizeJpCall(mnemonic string, args []Operand) int {
	if mnemonic == "JP" {
		if len(args) == 1 {
			op := args[0]
			if op.Kind == OpMemHL {
				return 1
			}
			if op.Kind == OpMemIndex {
				return 2
			}
		}
	}
	return 3
}

func sizePushPop(args []Operand) int {
	if len(args) == 1 && (args[0].Reg == "IX" || args[0].Reg == "IY") {
		return 2
	}
	return 1
}

func sizeInOut(mnemonic string, args []Operand) int {
	for _, op := range args {
		if op.Kind == OpMemDirect {
			return 2
		}
	}
	return 2
}

func sizeBitOp(mnemonic string, args []Operand) int {
	if len(args) == 0 {
		return 1 // 8080 RLC/RRC accumulator-only alias (RLCA/RRCA)
	}
	for _, op := range args {
		if op.Kind == OpMemIndex {
			return 4
		}
	}
	return 2
}

// eighty80Size sizes the 8080 mnemonics per spec: MOV/INR/DCR/single-byte
// ALU = 1; MVI/LDAX/STAX/INX/DCX/DAD/immediate ALU = 2;
// LXI/LDA/STA/LHLD/SHLD/JMP/conditional jump-call-return = 3 (RET-style
// conditional returns are 1 byte; listed in the 1-byte implicit set).
func eighty80Size(mnemonic string, args []Operand) (int, bool) {
	switch mnemonic {
	case "MOV", "INR", "DCR", "ANA", "XRA", "ORA", "CMP", "SBB",
		"HLT", "RAL", "RAR", "CMA", "STC", "CMC":
		return 1, true
	case "RNZ", "RZ", "RNC", "RC", "RPO", "RPE", "RP", "RM":
		return 1, true
	case "MVI", "LDAX", "STAX", "INX", "DCX", "DAD",
		"ADI", "ACI", "SUI", "SBI", "ANI", "XRI", "ORI", "CPI":
		return 2, true
	case "LXI", "LDA", "STA", "LHLD", "SHLD", "JMP",
		"JNZ", "JZ", "JNC", "JC", "JPO", "JPE", "JM",
		"CNZ", "CZ", "CNC", "CC", "CPO", "CPE", "CM":
		return 3, true
	case "XCHG", "PCHL", "SPHL", "XTHL":
		return 1, true
	}
	return 0, false
}
