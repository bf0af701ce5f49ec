package encoder

import "github.com/corewood/z80asm/parser"

type encodeFunc func(ctx *Context, stmt *parser.Statement) error

// dispatch is the table-driven replacement for a per-mnemonic switch: one
// entry per instruction name, Z80-native and 8080-alias alike, each
// implemented in the file matching its instruction family.
var dispatch = buildDispatch()

func buildDispatch() map[string]encodeFunc {
	d := map[string]encodeFunc{
		"ADD": encodeADD, "ADC": encodeADC, "SBC": encodeSBC,
		"SUB": encodeSUB, "AND": encodeAND, "OR": encodeOR, "XOR": encodeXOR, "CP": encodeCP,
		"INC": encodeINC, "DEC": encodeDEC,
		"LD": encodeLD,
		"JP": encodeJP, "CALL": encodeCALL, "JR": encodeJR, "DJNZ": encodeDJNZ,
		"RET": encodeRET, "RST": encodeRST,
		"PUSH": encodePUSH, "POP": encodePOP,
		"IN": encodeIN, "OUT": encodeOUT,
		"BIT": encodeBIT, "SET": encodeSET, "RES": encodeRES,
		"RLC": encodeRLC, "RRC": encodeRRC, "RL": encodeRL, "RR": encodeRR,
		"SLA": encodeSLA, "SRA": encodeSRA, "SRL": encodeSRL,
		"NEG": encodeNEG, "RETI": encodeRETI, "RETN": encodeRETN, "IM": encodeIM,
		"LDI": encodeLDI, "LDD": encodeLDD, "LDIR": encodeLDIR, "LDDR": encodeLDDR,
		"CPI": encodeCPI, "CPD": encodeCPD, "CPIR": encodeCPIR, "CPDR": encodeCPDR,
		"INI": encodeINI, "IND": encodeIND, "INIR": encodeINIR, "INDR": encodeINDR,
		"OUTI": encodeOUTI, "OUTD": encodeOUTD, "OTIR": encodeOTIR, "OTDR": encodeOTDR,

		"NOP": implicit(0x00), "HALT": implicit(0x76),
		"DI": implicit(0xF3), "EI": implicit(0xFB), "EXX": implicit(0xD9),
		"RLCA": implicit(0x07), "RRCA": implicit(0x0F), "RLA": implicit(0x17), "RRA": implicit(0x1F),
		"DAA": implicit(0x27), "CPL": implicit(0x2F), "SCF": implicit(0x37), "CCF": implicit(0x3F),
		"EX": encodeEX,

		// 8080 mnemonics.
		"MOV": encodeMOV, "MVI": encodeMVI, "LXI": encodeLXI,
		"LDAX": encodeLDAX, "STAX": encodeSTAX,
		"INX": encodeINX, "DCX": encodeDCX, "DAD": encodeDAD,
		"INR": encodeINR, "DCR": encodeDCR,
		"ADI": encodeADI, "ACI": encodeACI, "SUI": encodeSUI, "SBI": encodeSBI,
		"ANI": encodeANI, "XRI": encodeXRI, "ORI": encodeORI,
		"ANA": encodeANA, "XRA": encodeXRA, "ORA": encodeORA, "CMP": encodeCMPi, "SBB": encodeSBB,
		"STA": encodeSTA, "LDA": encodeLDA, "SHLD": encodeSHLD, "LHLD": encodeLHLD,
		"XCHG": encodeXCHG, "PCHL": encodePCHL, "SPHL": encodeSPHL, "XTHL": encodeXTHL,
		"JMP": encodeJMP,
		"HLT": encodeHLT, "RAL": encodeRAL, "RAR": encodeRAR,
		"CMA": encodeCMA, "STC": encodeSTC, "CMC": encodeCMC,
	}
	for _, m := range []string{"JNZ", "JZ", "JNC", "JC", "JPO", "JPE", "JM"} {
		d[m] = encodeCondJump
	}
	for _, m := range []string{"CNZ", "CZ", "CNC", "CC", "CPO", "CPE", "CM"} {
		d[m] = encodeCondCall
	}
	for _, m := range []string{"RNZ", "RZ", "RNC", "RC", "RPO", "RPE", "RP", "RM"} {
		d[m] = encodeCondRet
	}
	return d
}

func implicit(opcode byte) encodeFunc {
	return func(ctx *Context, stmt *parser.Statement) error {
		ctx.emit(opcode)
		return nil
	}
}

// encodeEX covers the handful of EX forms: EX DE,HL; EX AF,AF'; EX (SP),HL
// and the indexed EX (SP),IX / EX (SP),IY.
func encodeEX(ctx *Context, stmt *parser.Statement) error {
	if len(stmt.Args) != 2 {
		return &EncodingError{Line: stmt.Line, Message: "EX takes two operands"}
	}
	a, b := stmt.Args[0], stmt.Args[1]
	switch {
	case a.Reg == "DE" && b.Reg == "HL":
		ctx.emit(0xEB)
	case a.Reg == "AF" && b.Reg == "AF'":
		ctx.emit(0x08)
	case a.Kind == parser.OpMemReg16 && a.Reg == "SP" && b.Reg == "HL":
		ctx.emit(0xE3)
	case a.Kind == parser.OpMemReg16 && a.Reg == "SP" && (b.Reg == "IX" || b.Reg == "IY"):
		ctx.emit(indexPrefix(b.Reg), 0xE3)
	default:
		return &EncodingError{Line: stmt.Line, Message: "unsupported EX operand combination"}
	}
	return nil
}

// EncodeStatement dispatches a single instruction statement, appending
// its bytes to ctx's buffer and returning any encoding error. Directive
// and label-only statements never reach
// this function (see Pass2).
func EncodeStatement(ctx *Context, stmt *parser.Statement) error {
	fn, ok := dispatch[stmt.Name]
	if !ok {
		return &EncodingError{Line: stmt.Line, Message: "unknown mnemonic " + stmt.Name}
	}
	return fn(ctx, stmt)
}
