package parser

import (
	"fmt"
	"path"
	"strings"
	"testing"
)

// memResolver builds a Resolver backed by an in-memory file map, so
// preprocessor behavior can be tested without touching the filesystem.
func memResolver(files map[string]string) Resolver {
	return func(filename, currentDir string, includePaths []string) (string, string, []byte, error) {
		candidates := []string{filename, currentDir + "/" + filename}
		for _, ip := range includePaths {
			candidates = append(candidates, ip+"/"+filename)
		}
		for _, c := range candidates {
			if data, ok := files[c]; ok {
				return c, path.Dir(c), []byte(data), nil
			}
		}
		return "", "", nil, fmt.Errorf("not found: %s", filename)
	}
}

func TestPreprocessor_InlinesInclude(t *testing.T) {
	files := map[string]string{
		"./lib.inc": "LIB_VALUE EQU 42",
	}
	pp := NewPreprocessorWithResolver(memResolver(files), nil)
	out, diags := pp.Process(`INCLUDE "lib.inc"
	LD A,LIB_VALUE`, ".")
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.Errors)
	}
	if out != "LIB_VALUE EQU 42\n\tLD A,LIB_VALUE" {
		t.Errorf("unexpected expansion: %q", out)
	}
}

func TestPreprocessor_MissingIncludeIsFileIOError(t *testing.T) {
	pp := NewPreprocessorWithResolver(memResolver(nil), nil)
	_, diags := pp.Process(`INCLUDE "missing.inc"`, ".")
	if !diags.HasErrors() {
		t.Fatal("expected an error for a missing include target")
	}
	if diags.Errors[0].Kind != ErrorFileIO {
		t.Errorf("kind = %v, want ErrorFileIO", diags.Errors[0].Kind)
	}
}

func TestPreprocessor_CircularIncludeIsDetected(t *testing.T) {
	files := map[string]string{
		"./a.inc": `INCLUDE "b.inc"`,
		"./b.inc": `INCLUDE "a.inc"`,
	}
	pp := NewPreprocessorWithResolver(memResolver(files), nil)
	_, diags := pp.Process(`INCLUDE "a.inc"`, ".")
	if !diags.HasErrors() {
		t.Fatal("expected a circular-include error")
	}
	found := false
	for _, e := range diags.Errors {
		if e.Kind == ErrorCircularInclude {
			found = true
		}
	}
	if !found {
		t.Error("expected ErrorCircularInclude among the diagnostics")
	}
}

func TestPreprocessor_SearchesIncludePathsInOrder(t *testing.T) {
	files := map[string]string{
		"second/lib.inc": "; from second path",
	}
	pp := NewPreprocessorWithResolver(memResolver(files), []string{"first", "second"})
	out, diags := pp.Process(`INCLUDE "lib.inc"`, ".")
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.Errors)
	}
	if out != "; from second path" {
		t.Errorf("unexpected expansion: %q", out)
	}
}

// TestPreprocessor_NestedIncludeResolvesAgainstStubDirectoryNotRedirectTarget
// is spec §4.1's stub rule: "Nested includes resolve relative to the
// original (non-redirected) path so that stubs behave like the file
// they represent." src/foo.inc is a stub redirecting to
// vendored/real_foo.inc, whose own INCLUDE "baz.inc" must resolve to
// src/baz.inc (the stub's directory), never vendored/baz.inc (the
// redirect target's directory).
func TestPreprocessor_NestedIncludeResolvesAgainstStubDirectoryNotRedirectTarget(t *testing.T) {
	const stubPrefix = "STUB:"
	files := map[string]string{
		"src/foo.inc":           stubPrefix + "vendored/real_foo.inc",
		"vendored/real_foo.inc": `INCLUDE "baz.inc"`,
		"src/baz.inc":           "BAZ_VALUE EQU 7",
	}
	resolver := func(filename, currentDir string, includePaths []string) (string, string, []byte, error) {
		candidates := []string{currentDir + "/" + filename, filename}
		for _, ip := range includePaths {
			candidates = append(candidates, ip+"/"+filename)
		}
		for _, c := range candidates {
			data, ok := files[c]
			if !ok {
				continue
			}
			nominalDir := path.Dir(c)
			if target, isStub := strings.CutPrefix(data, stubPrefix); isStub {
				return target, nominalDir, []byte(files[target]), nil
			}
			return c, nominalDir, []byte(data), nil
		}
		return "", "", nil, fmt.Errorf("not found: %s", filename)
	}
	pp := NewPreprocessorWithResolver(resolver, nil)
	out, diags := pp.Process(`INCLUDE "foo.inc"`, "src")
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.Errors)
	}
	if out != "BAZ_VALUE EQU 7" {
		t.Errorf("unexpected expansion: %q", out)
	}
}

func TestStubTarget_RecognisesSmallSingleLinePath(t *testing.T) {
	target, ok := stubTarget([]byte("real/target.asm\n"))
	if !ok || target != "real/target.asm" {
		t.Errorf("stubTarget = (%q, %v), want (\"real/target.asm\", true)", target, ok)
	}
}

func TestStubTarget_RejectsMultilineOrPunctuatedText(t *testing.T) {
	if _, ok := stubTarget([]byte("line one\nline two\n")); ok {
		t.Error("expected a multi-line file to not be treated as a stub")
	}
	if _, ok := stubTarget([]byte(`NOP ; real source`)); ok {
		t.Error("expected a line containing ';' to not be treated as a stub")
	}
	if _, ok := stubTarget([]byte("")); ok {
		t.Error("expected an empty file to not be treated as a stub")
	}
}

func TestParseInclude_RecognisesQuotedForms(t *testing.T) {
	cases := []struct {
		line       string
		wantTarget string
		wantOK     bool
	}{
		{`INCLUDE "foo.asm"`, "foo.asm", true},
		{`	include 'bar.inc'`, "bar.inc", true},
		{`	NOP`, "", false},
		{`INCLUDEX "foo.asm"`, "", false},
	}
	for _, c := range cases {
		target, _, ok := parseInclude(c.line)
		if ok != c.wantOK || (ok && target != c.wantTarget) {
			t.Errorf("parseInclude(%q) = (%q, %v), want (%q, %v)", c.line, target, ok, c.wantTarget, c.wantOK)
		}
	}
}
