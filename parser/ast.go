package parser

import "fmt"

// Expr is the minimal expression grammar this assembler supports: a
// number literal, the `$` program-counter symbol, a label reference, or
// one of those plus or minus a trailing number literal.
type Expr struct {
	HasNumber bool
	Number    uint32
	IsPC      bool
	Label     string
	Sign      int8 // +1, -1, or 0 when there is no offset term
	Offset    uint32
}

func (e Expr) String() string {
	base := ""
	switch {
	case e.HasNumber:
		base = fmt.Sprintf("%d", e.Number)
	case e.IsPC:
		base = "$"
	case e.Label != "":
		base = e.Label
	}
	if e.Sign > 0 {
		return fmt.Sprintf("%s+%d", base, e.Offset)
	}
	if e.Sign < 0 {
		return fmt.Sprintf("%s-%d", base, e.Offset)
	}
	return base
}

// Resolve evaluates the expression against the current PC and symbol
// table. resolved is false when the expression names a label that is
// not (yet) defined, or when it is empty (no number, $ or label) — the
// caller is expected to emit a patch record for the label case, never
// to treat the zero result as a real value.
func (e Expr) Resolve(symtab *SymbolTable, pc uint16) (value uint16, resolved bool) {
	var base uint16
	switch {
	case e.HasNumber:
		base = uint16(e.Number)
		resolved = true
	case e.IsPC:
		base = pc
		resolved = true
	case e.Label != "":
		v, err := symtab.Value(e.Label)
		if err != nil {
			return 0, false
		}
		base = v
		resolved = true
	default:
		return 0, false
	}
	if e.Sign > 0 {
		base += uint16(e.Offset)
	} else if e.Sign < 0 {
		base -= uint16(e.Offset)
	}
	return base, resolved
}

// ReferencedLabel returns the label name this expression depends on, if
// any, for patch-record bookkeeping.
func (e Expr) ReferencedLabel() (string, bool) {
	if e.Label != "" {
		return e.Label, true
	}
	return "", false
}

// OperandKind classifies a parsed instruction operand.
type OperandKind int

const (
	OpReg8 OperandKind = iota
	OpReg16
	OpMemHL
	OpMemHLPostInc // (HL+) pseudo-op: LD r,(HL) followed by INC HL
	OpMemReg16     // (BC) or (DE)
	OpMemIndex     // (IX+d) or (IY-d)
	OpMemDirect    // (expr)
	OpImmediate    // expr
	OpString
)

// Operand is one comma-separated operand of an instruction line.
type Operand struct {
	Kind OperandKind
	Reg  string // register/pair/condition name, upper-cased
	Expr Expr   // immediate value, direct address, or index displacement
	Str  string // raw string body (OpString only)
}

func (o Operand) String() string {
	switch o.Kind {
	case OpReg8, OpReg16:
		return o.Reg
	case OpMemHL:
		return "(HL)"
	case OpMemHLPostInc:
		return "(HL+)"
	case OpMemReg16:
		return "(" + o.Reg + ")"
	case OpMemIndex:
		return fmt.Sprintf("(%s%s)", o.Reg, o.Expr)
	case OpMemDirect:
		return "(" + o.Expr.String() + ")"
	case OpString:
		return "'" + o.Str + "'"
	default:
		return o.Expr.String()
	}
}

// IsReg reports whether the operand is a bare register/pair/condition
// token whose text equals name (case already normalised upstream).
func (o Operand) IsReg(name string) bool {
	return (o.Kind == OpReg8 || o.Kind == OpReg16) && o.Reg == name
}

// StatementKind distinguishes the four shapes Pass 1 and Pass 2 care
// about: a real instruction, a directive, a line that is label-only, or
// an empty line.
type StatementKind int

const (
	StmtInstruction StatementKind = iota
	StmtDirective
	StmtLabelOnly
	StmtEmpty
)

// Statement is one logical source line after label/colon handling: an
// optional label binding plus, at most, one directive or instruction
// with its operands.
type Statement struct {
	Kind    StatementKind
	Label   string // bound name, if any ("" otherwise)
	Name    string // directive or mnemonic, upper-cased
	Args    []Operand
	RawArgs string // "ERROR:" plus a message when the line failed to parse, for Pass 1 to report; "" otherwise
	Line    int
	Source  string // trimmed original source text, for the listing
	Address uint16 // filled in by Pass 1
	Size    int    // filled in by Pass 1
}
