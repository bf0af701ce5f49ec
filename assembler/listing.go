package assembler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/corewood/z80asm/encoder"
	"github.com/corewood/z80asm/parser"
)

// ListingLine is one row of a program listing: the address a statement
// assembled at, the bytes it produced, and the original source text.
type ListingLine struct {
	Address uint16
	Bytes   []byte
	Source  string
}

func buildListing(lines []encoder.ListingLine) []ListingLine {
	out := make([]ListingLine, len(lines))
	for i, l := range lines {
		out[i] = ListingLine{Address: l.Address, Bytes: l.Bytes, Source: l.Source}
	}
	return out
}

// FormatLine renders one listing row per spec §6:
//
//	AAAA  XX XX XX XX…  source text
//
// a 4-digit hex address, two spaces, the statement's bytes as upper-case
// hex pairs left-justified in a 12-character-wide field, two more
// spaces, then the trimmed source line.
func (l ListingLine) FormatLine() string {
	var hexPart strings.Builder
	for i, b := range l.Bytes {
		if i > 0 {
			hexPart.WriteByte(' ')
		}
		fmt.Fprintf(&hexPart, "%02X", b)
	}
	return fmt.Sprintf("%04X  %-12s  %s", l.Address, hexPart.String(), l.Source)
}

// FormatListing renders every line of a listing, one per source row.
func FormatListing(lines []ListingLine) string {
	rows := make([]string, len(lines))
	for i, l := range lines {
		rows[i] = l.FormatLine()
	}
	return strings.Join(rows, "\n")
}

// FormatSymbolTable renders a symbol table dump per spec §6: a header
// comment followed by one line per symbol, alphabetically sorted, each
// line the name left-justified in a 24-character field, its value in
// 4-digit hex, then the same value in decimal.
func FormatSymbolTable(symtab *parser.SymbolTable) string {
	all := symtab.All()
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("; symbol table\n")
	for _, name := range names {
		sym := all[name]
		fmt.Fprintf(&b, "%-24s%04X  %d\n", name, sym.Value, sym.Value)
	}
	return b.String()
}
