package tools

import (
	"strings"
	"testing"

	"github.com/corewood/z80asm/parser"
)

func mustParse(t *testing.T, source string) *parser.Program {
	t.Helper()
	prog, diags := parser.Parse(source)
	if diags.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", diags.Errors)
	}
	return prog
}

func TestCrossReference_DefinitionAndCall(t *testing.T) {
	prog := mustParse(t, `
	ORG 0x0100
start:	CALL sub
	RET
sub:	RET
	`)

	gen := NewXRefGenerator(prog)
	symbols := gen.Generate()

	sub, ok := symbols["SUB"]
	if !ok {
		t.Fatal("expected a SUB symbol")
	}
	if sub.Definition == nil {
		t.Error("expected SUB to have a definition site")
	}
	if !sub.IsFunction {
		t.Error("expected SUB to be classified as a function (called via CALL)")
	}

	var foundCall bool
	for _, ref := range sub.References {
		if ref.Type == RefCall {
			foundCall = true
		}
	}
	if !foundCall {
		t.Error("expected a RefCall reference to SUB")
	}
}

func TestCrossReference_LoadAndStore(t *testing.T) {
	prog := mustParse(t, `
	ORG 0x0100
buf:	DB 0
	LD A, (buf)
	LD (buf), A
	`)

	gen := NewXRefGenerator(prog)
	symbols := gen.Generate()

	buf, ok := symbols["BUF"]
	if !ok {
		t.Fatal("expected a BUF symbol")
	}

	var loads, stores int
	for _, ref := range buf.References {
		switch ref.Type {
		case RefLoad:
			loads++
		case RefStore:
			stores++
		}
	}
	if loads != 1 || stores != 1 {
		t.Errorf("loads=%d stores=%d, want 1 and 1", loads, stores)
	}
}

func TestCrossReference_BranchTarget(t *testing.T) {
	prog := mustParse(t, `
loop:	DJNZ loop
	JP loop
	`)

	gen := NewXRefGenerator(prog)
	symbols := gen.Generate()

	loop, ok := symbols["LOOP"]
	if !ok {
		t.Fatal("expected a LOOP symbol")
	}
	var branches int
	for _, ref := range loop.References {
		if ref.Type == RefBranch {
			branches++
		}
	}
	if branches != 2 {
		t.Errorf("branches = %d, want 2", branches)
	}
}

func TestXRefReport_SummaryCountsUndefinedAndUnused(t *testing.T) {
	prog := mustParse(t, `
used:	LD A, 1
	JP unresolved
unused_label:	RET
	`)

	gen := NewXRefGenerator(prog)
	report := NewXRefReport(gen.Generate())
	out := report.String()

	if !strings.Contains(out, "Undefined:") {
		t.Error("expected a summary Undefined line")
	}
	if !strings.Contains(out, "never") {
		t.Error("expected an unused symbol to be reported as never referenced")
	}
}

func TestGenerateXRef_ReturnsFormattedText(t *testing.T) {
	out, err := GenerateXRef(`
start:	LD A, 1
	RET
	`)
	if err != nil {
		t.Fatalf("GenerateXRef: %v", err)
	}
	if !strings.Contains(out, "START") {
		t.Errorf("expected report to mention START, got:\n%s", out)
	}
}
