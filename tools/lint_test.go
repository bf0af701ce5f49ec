package tools

import (
	"strings"
	"testing"
)

func TestLint_UndefinedLabel(t *testing.T) {
	source := `
		LD A, 10
		JP undefined_label
	`

	linter := NewLinter(DefaultLintOptions())
	issues := linter.Lint(source)

	found := false
	for _, issue := range issues {
		if issue.Code == "UNDEF_LABEL" && strings.Contains(issue.Message, "UNDEFINED_LABEL") {
			found = true
			if issue.Level != LintError {
				t.Errorf("expected error level, got %v", issue.Level)
			}
		}
	}
	if !found {
		t.Error("expected undefined label error")
	}
}

func TestLint_UndefinedLabelSuggestsSimilarName(t *testing.T) {
	source := `
loop:	LD A, 10
	JP lop
	`
	linter := NewLinter(DefaultLintOptions())
	issues := linter.Lint(source)

	found := false
	for _, issue := range issues {
		if issue.Code == "UNDEF_LABEL" && strings.Contains(issue.Message, "did you mean") {
			found = true
		}
	}
	if !found {
		t.Error("expected a did-you-mean suggestion for a near-miss label")
	}
}

func TestLint_UnusedLabel(t *testing.T) {
	source := `
start:	LD A, 10
	RET

unused:	LD B, 20
	RET
	`

	linter := NewLinter(DefaultLintOptions())
	issues := linter.Lint(source)

	found := false
	for _, issue := range issues {
		if issue.Code == "UNUSED_LABEL" && strings.Contains(issue.Message, "UNUSED") {
			found = true
		}
	}
	if !found {
		t.Error("expected unused label warning")
	}
}

func TestLint_UnusedLabelExemptsEntryPoints(t *testing.T) {
	source := `
start:	LD A, 10
	RET
	`
	linter := NewLinter(DefaultLintOptions())
	issues := linter.Lint(source)

	for _, issue := range issues {
		if issue.Code == "UNUSED_LABEL" {
			t.Errorf("entry-point label should be exempt, got: %s", issue.Message)
		}
	}
}

func TestLint_CheckUnusedDisabled(t *testing.T) {
	source := `
unused:	LD B, 20
	RET
	`
	options := DefaultLintOptions()
	options.CheckUnused = false

	linter := NewLinter(options)
	issues := linter.Lint(source)

	for _, issue := range issues {
		if issue.Code == "UNUSED_LABEL" {
			t.Error("CheckUnused=false should suppress unused-label warnings")
		}
	}
}

func TestLint_UnreachableCode(t *testing.T) {
	source := `
start:	JP start
	LD A, 1
	RET
	`
	linter := NewLinter(DefaultLintOptions())
	issues := linter.Lint(source)

	found := false
	for _, issue := range issues {
		if issue.Code == "UNREACHABLE_CODE" {
			found = true
		}
	}
	if !found {
		t.Error("expected unreachable code warning after unconditional JP")
	}
}

func TestLint_ConditionalJumpDoesNotMarkUnreachable(t *testing.T) {
	source := `
start:	JP Z, start
	LD A, 1
	RET
	`
	linter := NewLinter(DefaultLintOptions())
	issues := linter.Lint(source)

	for _, issue := range issues {
		if issue.Code == "UNREACHABLE_CODE" {
			t.Error("a conditional JP should not mark the next line unreachable")
		}
	}
}

func TestLint_RedundantLoad(t *testing.T) {
	source := `
	LD A, A
	`
	linter := NewLinter(DefaultLintOptions())
	issues := linter.Lint(source)

	found := false
	for _, issue := range issues {
		if issue.Code == "REDUNDANT_LOAD" {
			found = true
		}
	}
	if !found {
		t.Error("expected a redundant-load warning for LD A,A")
	}
}

func TestLint_InvalidDirectiveArgCount(t *testing.T) {
	source := `
	ORG
	`
	linter := NewLinter(DefaultLintOptions())
	issues := linter.Lint(source)

	found := false
	for _, issue := range issues {
		if issue.Code == "INVALID_DIRECTIVE" {
			found = true
		}
	}
	if !found {
		t.Error("expected INVALID_DIRECTIVE for a bare ORG with no argument")
	}
}

func TestLint_CleanProgramHasNoIssues(t *testing.T) {
	source := `
	ORG 0x0100
start:	LD A, 5
	LD B, A
	RET
	`
	linter := NewLinter(DefaultLintOptions())
	issues := linter.Lint(source)

	if len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}
}

func TestLintLevel_String(t *testing.T) {
	if LintError.String() != "error" {
		t.Errorf("LintError.String() = %q, want error", LintError.String())
	}
	if LintWarning.String() != "warning" {
		t.Errorf("LintWarning.String() = %q, want warning", LintWarning.String())
	}
}
