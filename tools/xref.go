package tools

import (
	"fmt"
	"sort"
	"strings"

	"github.com/corewood/z80asm/parser"
)

// ReferenceType indicates how a symbol is used
type ReferenceType int

const (
	RefDefinition ReferenceType = iota // Symbol defined here
	RefBranch                          // JP/JR/DJNZ target
	RefCall                            // CALL/RST target
	RefLoad                            // Load from (label)
	RefStore                           // Store to (label)
	RefData                            // Any other reference: DB/DW data, immediate constant
)

func (r ReferenceType) String() string {
	switch r {
	case RefDefinition:
		return "definition"
	case RefBranch:
		return "branch"
	case RefCall:
		return "call"
	case RefLoad:
		return "load"
	case RefStore:
		return "store"
	case RefData:
		return "data"
	default:
		return "unknown"
	}
}

// Reference represents a single reference to a symbol
type Reference struct {
	Type   ReferenceType
	Line   int
	Source string // source line text
}

// Symbol represents a symbol and every reference to it found in the
// program, one entry per name in the program's symbol table.
type Symbol struct {
	Name       string
	Definition *Reference
	References []*Reference
	Value      uint16
	IsConstant bool // true for EQU/SET, false for a plain label
	IsFunction bool // true if referenced by at least one CALL
}

var branchMnemonics = map[string]bool{"JP": true, "JR": true, "DJNZ": true}
var callMnemonics = map[string]bool{"CALL": true, "RST": true}

// XRefGenerator builds a symbol cross-reference from an already-parsed
// program, matching every binding in prog.Symbols against every
// statement that reads it.
type XRefGenerator struct {
	program *parser.Program
	symbols map[string]*Symbol
}

// NewXRefGenerator creates a generator bound to an already-parsed program.
func NewXRefGenerator(prog *parser.Program) *XRefGenerator {
	return &XRefGenerator{program: prog, symbols: make(map[string]*Symbol)}
}

// Generate walks the bound program and returns one Symbol per entry in
// its symbol table, each carrying its definition site and every
// statement that reads it, in source order.
func (x *XRefGenerator) Generate() map[string]*Symbol {
	x.collectDefinitions()
	x.collectReferences()
	x.analyzeCallGraph()
	return x.symbols
}

func (x *XRefGenerator) collectDefinitions() {
	for name, sym := range x.program.Symbols.All() {
		x.symbols[name] = &Symbol{
			Name:       name,
			Value:      sym.Value,
			IsConstant: sym.Kind == parser.SymbolEquate,
		}
	}

	for _, stmt := range x.program.Statements {
		if stmt.Label == "" {
			continue
		}
		sym, ok := x.lookup(stmt.Label)
		if !ok && stmt.Kind == parser.StmtDirective && (stmt.Name == "EQU" || stmt.Name == "SET") {
			// EQU/SET are bound by Pass 2, so Pass 1's table does not hold them.
			sym = &Symbol{Name: strings.ToUpper(stmt.Label), IsConstant: true}
			if len(stmt.Args) == 1 {
				sym.Value, _ = stmt.Args[0].Expr.Resolve(x.program.Symbols, stmt.Address)
			}
			x.symbols[sym.Name] = sym
			ok = true
		}
		if ok {
			sym.Definition = &Reference{Type: RefDefinition, Line: stmt.Line, Source: stmt.Source}
		}
	}
}

func (x *XRefGenerator) collectReferences() {
	for _, stmt := range x.program.Statements {
		if stmt.Kind != parser.StmtInstruction && stmt.Kind != parser.StmtDirective {
			continue
		}
		for i, op := range stmt.Args {
			label, ok := op.Expr.ReferencedLabel()
			if !ok {
				continue
			}
			x.addReference(label, classifyReference(stmt, op, i), stmt.Line, stmt.Source)
		}
	}
}

func classifyReference(stmt *parser.Statement, op parser.Operand, argIndex int) ReferenceType {
	switch {
	case stmt.Kind == parser.StmtDirective:
		return RefData
	case branchMnemonics[stmt.Name]:
		return RefBranch
	case callMnemonics[stmt.Name]:
		return RefCall
	case stmt.Name == "LD" && op.Kind == parser.OpMemDirect:
		if argIndex == 0 {
			return RefStore
		}
		return RefLoad
	default:
		return RefData
	}
}

func (x *XRefGenerator) addReference(name string, refType ReferenceType, line int, source string) {
	sym, ok := x.lookup(name)
	if !ok {
		// Referenced but never defined: still worth reporting, so
		// track it under its upper-cased spelling.
		sym = &Symbol{Name: strings.ToUpper(name)}
		x.symbols[sym.Name] = sym
	}
	sym.References = append(sym.References, &Reference{Type: refType, Line: line, Source: source})
}

func (x *XRefGenerator) analyzeCallGraph() {
	for _, sym := range x.symbols {
		for _, ref := range sym.References {
			if ref.Type == RefCall {
				sym.IsFunction = true
				break
			}
		}
	}
}

func (x *XRefGenerator) lookup(name string) (*Symbol, bool) {
	sym, ok := x.symbols[strings.ToUpper(name)]
	return sym, ok
}

// XRefReport is a sorted, formattable view of a Generate() result.
type XRefReport struct {
	symbols []*Symbol
}

// NewXRefReport sorts symbols by name for stable, diffable output.
func NewXRefReport(symbols map[string]*Symbol) *XRefReport {
	sorted := make([]*Symbol, 0, len(symbols))
	for _, sym := range symbols {
		sorted = append(sorted, sym)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return &XRefReport{symbols: sorted}
}

// String renders the full cross-reference report with a summary footer.
func (r *XRefReport) String() string {
	var sb strings.Builder

	sb.WriteString("Symbol Cross-Reference\n")
	sb.WriteString("======================\n\n")

	for _, sym := range r.symbols {
		sb.WriteString(fmt.Sprintf("%-24s", sym.Name))
		switch {
		case sym.IsConstant:
			fmt.Fprintf(&sb, " [equ=0x%04X]", sym.Value)
		case sym.IsFunction:
			sb.WriteString(" [function]")
		default:
			fmt.Fprintf(&sb, " [label=0x%04X]", sym.Value)
		}
		sb.WriteString("\n")

		if sym.Definition != nil {
			fmt.Fprintf(&sb, "  Defined:     line %d\n", sym.Definition.Line)
		} else {
			sb.WriteString("  Defined:     (undefined)\n")
		}

		if len(sym.References) == 0 {
			sb.WriteString("  Referenced:  (never)\n")
		} else {
			fmt.Fprintf(&sb, "  Referenced:  %d time(s)\n", len(sym.References))

			refsByType := make(map[ReferenceType][]*Reference)
			for _, ref := range sym.References {
				refsByType[ref.Type] = append(refsByType[ref.Type], ref)
			}

			for _, refType := range []ReferenceType{RefCall, RefBranch, RefLoad, RefStore, RefData} {
				refs := refsByType[refType]
				if len(refs) == 0 {
					continue
				}
				lines := make([]string, len(refs))
				for i, ref := range refs {
					lines[i] = fmt.Sprintf("%d", ref.Line)
				}
				fmt.Fprintf(&sb, "    %-10s: line(s) %s\n", refType, strings.Join(lines, ", "))
			}
		}
		sb.WriteString("\n")
	}

	var defined, undefined, unused, functions int
	for _, sym := range r.symbols {
		if sym.Definition != nil {
			defined++
		} else {
			undefined++
		}
		if len(sym.References) == 0 {
			unused++
		}
		if sym.IsFunction {
			functions++
		}
	}

	sb.WriteString("Summary\n")
	sb.WriteString("=======\n")
	fmt.Fprintf(&sb, "Total symbols:     %d\n", len(r.symbols))
	fmt.Fprintf(&sb, "Defined:           %d\n", defined)
	fmt.Fprintf(&sb, "Undefined:         %d\n", undefined)
	fmt.Fprintf(&sb, "Unused:            %d\n", unused)
	fmt.Fprintf(&sb, "Functions:         %d\n", functions)

	return sb.String()
}

// GenerateXRef is a convenience wrapper: parse source, build the
// cross-reference, render it as text.
func GenerateXRef(source string) (string, error) {
	prog, diags := parser.Parse(source)
	if diags.HasErrors() {
		return "", fmt.Errorf("parse error: %s", diags.Error())
	}
	gen := NewXRefGenerator(prog)
	report := NewXRefReport(gen.Generate())
	return report.String(), nil
}
