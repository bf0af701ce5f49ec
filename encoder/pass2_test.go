package encoder

import (
	"bytes"
	"strings"
	"testing"

	"github.com/corewood/z80asm/parser"
)

func assemble(t *testing.T, source string) *Result {
	t.Helper()
	prog, diags := parser.Parse(source)
	if diags.HasErrors() {
		t.Fatalf("parse errors: %v", diags.Errors)
	}
	res := Pass2(prog, diags)
	if diags.HasErrors() {
		t.Fatalf("pass2 errors: %v", diags.Errors)
	}
	return res
}

// TestPass2_CPMHelloWorldEquPattern exercises the CP/M "hello world"
// pattern: labels bound by EQU must resolve to their constant operand,
// never to wherever the EQU line itself sits in the address space, and a
// forward reference to a label bound on a later DEFM/DB line must still
// resolve correctly.
func TestPass2_CPMHelloWorldEquPattern(t *testing.T) {
	res := assemble(t, `
	ORG  0x0100
BDOS	EQU  0x0005
PRINT	EQU  9
START:	LD   C,PRINT
	LD   DE,MSG
	CALL BDOS
	RET
MSG:	DEFM 'Hi'
	DB   0x0D,0x0A,'$'
	END  START
`)
	want := []byte{
		0x0E, 0x09, // LD C,PRINT (9)
		0x11, 0x09, 0x01, // LD DE,MSG (MSG binds to 0x0109)
		0xCD, 0x05, 0x00, // CALL BDOS (0x0005)
		0xC9,                   // RET, at 0x0108
		'H', 'i', 0x0D, 0x0A, '$',
	}
	if !bytes.Equal(res.Buffer, want) {
		t.Errorf("got % X, want % X", res.Buffer, want)
	}
	if len(res.Buffer) != 14 {
		t.Errorf("total length = %d, want 14", len(res.Buffer))
	}
	if res.LoadAddress != 0x0100 {
		t.Errorf("LoadAddress = 0x%04X, want 0x0100", res.LoadAddress)
	}
	msg, ok := res.Symbols.Lookup("MSG")
	if !ok || msg.Value != 0x0109 {
		t.Errorf("MSG = %v, want defined at 0x0109", msg)
	}
}

// TestPass2_ForwardLabelReferenceResolvesWithoutAPatch exercises E2. A
// forward reference to a plain label is already resolvable by the time
// Pass 2 encodes it: Pass 1 runs to completion (binding every label in
// the program, forward or not) before Pass 2 ever calls Expr.Resolve, so
// the patch table is never consulted for this case.
func TestPass2_ForwardLabelReferenceResolvesWithoutAPatch(t *testing.T) {
	prog, diags := parser.Parse(`
	ORG 0x0100
	JP TARGET
	NOP
TARGET:	HALT
`)
	if diags.HasErrors() {
		t.Fatalf("parse errors: %v", diags.Errors)
	}
	res := Pass2(prog, diags)
	want := []byte{0xC3, 0x04, 0x01, 0x00, 0x76}
	if !bytes.Equal(res.Buffer, want) {
		t.Errorf("got % X, want % X", res.Buffer, want)
	}
	if len(prog.Symbols.Patches()) != 0 {
		t.Errorf("expected no patch records for an already-bound label, got %d", len(prog.Symbols.Patches()))
	}
	sym, ok := prog.Symbols.Lookup("TARGET")
	if !ok || sym.Value != 0x0104 {
		t.Errorf("TARGET = %v, want defined at 0x0104", sym)
	}
}

// TestPass2_ForwardEquReferenceNeedsAPatch exercises the one case where
// the patch table genuinely does the work: EQU/SET binding is deferred to
// Pass 2 in source order, so a reference appearing before the EQU line
// cannot resolve until the linker applies the recorded patch.
func TestPass2_ForwardEquReferenceNeedsAPatch(t *testing.T) {
	prog, diags := parser.Parse(`
	ORG 0x0100
	CALL LATER
LATER	EQU 0x0010
`)
	if diags.HasErrors() {
		t.Fatalf("parse errors: %v", diags.Errors)
	}
	res := Pass2(prog, diags)
	if diags.HasErrors() {
		t.Fatalf("pass2 errors: %v", diags.Errors)
	}
	patches := prog.Symbols.Patches()
	if len(patches) != 1 || patches[0].SymbolName != "LATER" || patches[0].Kind != parser.PatchAbsolute {
		t.Fatalf("expected one absolute patch for LATER, got %+v", patches)
	}
	if res.Buffer[1] != 0 || res.Buffer[2] != 0 {
		t.Errorf("expected an unresolved 0x0000 placeholder before linking, got % X", res.Buffer[1:3])
	}
}

// TestPass2_EightyEightyAndZ80Equivalence exercises E5.
func TestPass2_EightyEightyAndZ80Equivalence(t *testing.T) {
	a := assemble(t, `
	ORG 0x0100
	LXI H,0x1234
	MOV A,M
	RET
`)
	b := assemble(t, `
	ORG 0x0100
	LD HL,0x1234
	LD A,(HL)
	RET
`)
	want := []byte{0x21, 0x34, 0x12, 0x7E, 0xC9}
	if !bytes.Equal(a.Buffer, want) {
		t.Errorf("8080 form: got % X, want % X", a.Buffer, want)
	}
	if !bytes.Equal(b.Buffer, want) {
		t.Errorf("Z80 form: got % X, want % X", b.Buffer, want)
	}
}

// TestPass2_IndexedAddressing exercises E6.
func TestPass2_IndexedAddressing(t *testing.T) {
	res := assemble(t, `
	ORG 0x0100
	LD A,(IX+5)
	LD (IY-3),B
	BIT 7,(IX+0)
`)
	want := []byte{0xDD, 0x7E, 0x05, 0xFD, 0x70, 0xFD, 0xDD, 0xCB, 0x00, 0x7E}
	if !bytes.Equal(res.Buffer, want) {
		t.Errorf("got % X, want % X", res.Buffer, want)
	}
}

// TestPass2_LdRegHLPostInc exercises the "LD r,(HL+)" pseudo-op (spec
// §4.4): it must expand to LD r,(HL) followed by INC HL, not be parsed
// as a direct-address load against a label literally named "HL".
func TestPass2_LdRegHLPostInc(t *testing.T) {
	res := assemble(t, `
	ORG 0x0100
	LD  A,(HL+)
`)
	want := []byte{0x7E, 0x23}
	if !bytes.Equal(res.Buffer, want) {
		t.Errorf("got % X, want % X", res.Buffer, want)
	}
}

// TestPass2_DjnzLoop exercises E4.
func TestPass2_DjnzLoop(t *testing.T) {
	res := assemble(t, `
	ORG  0x0100
	LD   B,10
LOOP:	DEC  B
	DJNZ LOOP
	RET
`)
	want := []byte{0x06, 0x0A, 0x05, 0x10, 0xFD, 0xC9}
	if !bytes.Equal(res.Buffer, want) {
		t.Errorf("got % X, want % X", res.Buffer, want)
	}
}

// TestPass2_RelativeJumpOutOfRangeIsAnError exercises E3: a JR target more
// than 127 bytes ahead cannot be encoded as a signed 8-bit displacement.
func TestPass2_RelativeJumpOutOfRangeIsAnError(t *testing.T) {
	prog, diags := parser.Parse(`
	ORG 0x0100
	JR  FAR
	DS  200
FAR:	NOP
`)
	if diags.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", diags.Errors)
	}
	Pass2(prog, diags)
	if !diags.HasErrors() {
		t.Fatal("expected a relative-jump-out-of-range error")
	}
	found := false
	for _, e := range diags.Errors {
		if strings.Contains(e.Message, "out of range") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an 'out of range' diagnostic, got: %v", diags.Errors)
	}
}

func TestPass2_PCAdvancesBySizeEstimateEvenOnEncodeError(t *testing.T) {
	prog, diags := parser.Parse(`
	ORG 0x0100
	LD A,B
bad:	EX DE,IX
after:	NOP
`)
	res := Pass2(prog, diags)
	if !diags.HasErrors() {
		t.Fatal("expected an encoding error for the invalid EX form")
	}
	sym, ok := prog.Symbols.Lookup("after")
	if !ok {
		t.Fatal("expected 'after' to be defined")
	}
	// LD A,B (1 byte) + EX DE,IX sized at 1 byte (default size) = offset 2.
	if sym.Value != 0x0102 {
		t.Errorf("after = 0x%04X, want 0x0102 (PC must not desync on encode failure)", sym.Value)
	}
	_ = res
}
