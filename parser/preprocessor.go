package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolver is the file-resolving callback named in spec §6: given an
// INCLUDE target and the directory it was referenced from, return the
// resolved path and its contents, or a not-found error. Preprocessor
// calls it once per INCLUDE directive instead of touching the
// filesystem directly, so an embedder can supply an in-memory or
// virtual filesystem without this package knowing about it.
//
// nominalDir is the directory nested includes inside the returned
// content should resolve against: the directory of the candidate path
// the target was found at, before any symlink-stub redirection (spec
// §4.1 — "nested includes resolve relative to the original
// (non-redirected) path so that stubs behave like the file they
// represent"). For a resolver that never redirects, nominalDir is
// simply the directory of resolvedPath.
type Resolver func(filename, currentDir string, includePaths []string) (resolvedPath, nominalDir string, data []byte, err error)

// Preprocessor recursively inlines INCLUDE "file" directives. Conditional
// assembly and macro expansion are explicit non-goals: IF/ELSE/ENDIF,
// PUBLIC/EXTERN/MODULE/SECTION are left in the text untouched — Pass 1
// tokenises and ignores them (they consume zero program-counter bytes)
// without the preprocessor ever interpreting them.
type Preprocessor struct {
	includePaths []string
	active       map[string]bool
	diags        *Diagnostics
	resolve      Resolver
}

// NewPreprocessor builds a Preprocessor backed by the default OS-filesystem
// resolver (DefaultResolver).
func NewPreprocessor(includePaths []string) *Preprocessor {
	return NewPreprocessorWithResolver(DefaultResolver, includePaths)
}

// NewPreprocessorWithResolver builds a Preprocessor backed by a
// caller-supplied file resolver, per the §6 file resolver contract.
func NewPreprocessorWithResolver(resolver Resolver, includePaths []string) *Preprocessor {
	if resolver == nil {
		resolver = DefaultResolver
	}
	return &Preprocessor{
		includePaths: includePaths,
		active:       make(map[string]bool),
		diags:        &Diagnostics{},
		resolve:      resolver,
	}
}

// Process expands every INCLUDE directive reachable from source, whose
// own location is originDir (used to resolve the first level of relative
// includes). It returns the expanded text and the diagnostics collected
// along the way; processing never aborts early on a single bad include.
func (p *Preprocessor) Process(source, originDir string) (string, *Diagnostics) {
	expanded := p.expand(source, originDir, 0)
	return expanded, p.diags
}

func (p *Preprocessor) expand(source, dir string, depth int) string {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		lineNo := i + 1
		target, rest, isInclude := parseInclude(line)
		if !isInclude {
			out = append(out, line)
			continue
		}
		if rest != "" {
			// trailing comment or garbage after the path is tolerated,
			// only a semicolon-introduced comment is expected there.
		}

		if depth+1 > MaxIncludeDepth {
			p.diags.AddError(NewError(lineNo, ErrorCircularInclude,
				fmt.Sprintf("include nesting exceeds %d levels", MaxIncludeDepth)))
			out = append(out, "; include depth exceeded: "+target)
			continue
		}

		resolved, nominalDir, content, err := p.resolve(target, dir, p.includePaths)
		if err != nil {
			p.diags.AddError(NewError(lineNo, ErrorFileIO,
				fmt.Sprintf("cannot include %q: %v", target, err)))
			out = append(out, "; include not found: "+target)
			continue
		}

		canonical := canonicalPath(resolved)
		if p.active[canonical] {
			p.diags.AddError(NewError(lineNo, ErrorCircularInclude,
				fmt.Sprintf("circular include: %q", target)))
			out = append(out, "; circular include: "+target)
			continue
		}

		p.active[canonical] = true
		expandedChild := p.expand(string(content), nominalDir, depth+1)
		delete(p.active, canonical)

		out = append(out, expandedChild)
	}

	return strings.Join(out, "\n")
}

// stubMaxSize bounds the pseudo-symlink heuristic of spec §4.1: a file
// under this size, containing exactly one line of text that looks like a
// path, is followed as though it were a symlink to that path rather than
// included verbatim. This lets a tree of stub files stand in for real
// symlinks on filesystems or archives that don't preserve them.
const stubMaxSize = 512

// DefaultResolver is the Resolver used when a Preprocessor isn't given one
// explicitly: it locates an INCLUDE target first relative to currentDir
// (the including file's own directory), then against each entry of
// includePaths in order, reading from the local filesystem. A resolved
// file that looks like a symlink stub is followed transparently, through
// at most 8 chained stubs (see followStubs); nominalDir
// is always the directory of the candidate the target was matched at,
// never a stub's redirect target, so nested INCLUDEs inside a stub's
// real content keep resolving as though the stub were the file itself.
func DefaultResolver(filename, currentDir string, includePaths []string) (resolvedPath, nominalDir string, data []byte, err error) {
	candidates := make([]string, 0, len(includePaths)+1)
	if filepath.IsAbs(filename) {
		candidates = append(candidates, filename)
	} else {
		candidates = append(candidates, filepath.Join(currentDir, filename))
		for _, ip := range includePaths {
			candidates = append(candidates, filepath.Join(ip, filename))
		}
	}

	var lastErr error
	for _, c := range candidates {
		resolved, content, ferr := followStubs(c)
		if ferr == nil {
			return resolved, filepath.Dir(c), content, nil
		}
		lastErr = ferr
	}
	return "", "", nil, lastErr
}

// followStubs reads path and, while its contents look like a symlink
// stub rather than source text, re-reads relative to the stub's own
// directory instead. It gives up after a handful of hops to avoid
// chasing a cycle of stubs forever.
func followStubs(path string) (string, []byte, error) {
	const maxHops = 8
	for hop := 0; hop < maxHops; hop++ {
		b, err := os.ReadFile(path) // #nosec G304 -- user-configured include search path
		if err != nil {
			return "", nil, err
		}
		target, isStub := stubTarget(b)
		if !isStub {
			return path, b, nil
		}
		path = filepath.Join(filepath.Dir(path), target)
	}
	return "", nil, fmt.Errorf("%s: too many chained symlink stubs", path)
}

// stubTarget reports whether data is a symlink stub: smaller than
// stubMaxSize, a single line (no internal newline once trailing
// whitespace is trimmed), non-empty, and containing no characters
// INCLUDE source wouldn't use to spell a path. Genuine assembly source
// of that size is vanishingly unlikely to satisfy all four.
func stubTarget(data []byte) (string, bool) {
	if len(data) == 0 || len(data) >= stubMaxSize {
		return "", false
	}
	text := strings.TrimRight(string(data), "\r\n \t")
	if text == "" || strings.ContainsAny(text, "\n\r") {
		return "", false
	}
	if strings.ContainsAny(text, ";:\"'") {
		return "", false
	}
	return text, true
}

func canonicalPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}

// parseInclude recognises a line of the form:
//
//	INCLUDE "path"   ; optional comment
//
// case-insensitive mnemonic, path in single or double quotes. Returns the
// target path, anything following the closing quote, and whether the
// line was an INCLUDE directive at all.
func parseInclude(line string) (target, rest string, ok bool) {
	trimmed := strings.TrimLeft(line, " \t")
	upper := strings.ToUpper(trimmed)
	const kw = "INCLUDE"
	if !strings.HasPrefix(upper, kw) {
		return "", "", false
	}
	after := trimmed[len(kw):]
	if after == "" || (after[0] != ' ' && after[0] != '\t') {
		return "", "", false
	}
	after = strings.TrimLeft(after, " \t")
	if after == "" {
		return "", "", false
	}
	quote := after[0]
	if quote != '"' && quote != '\'' {
		return "", "", false
	}
	closing := strings.IndexByte(after[1:], quote)
	if closing < 0 {
		return "", "", false
	}
	target = after[1 : 1+closing]
	rest = after[2+closing:]
	return target, rest, true
}
