// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package assembler

import (
	"strings"

	"github.com/lassandro/pdp7asm/pkg/numeric"
	"github.com/lassandro/pdp7asm/pkg/symtab"
	"github.com/lassandro/pdp7asm/pkg/word"
)

func isIdentStart(c byte) bool {
	return c == '_' || c == '.' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// skipSep skips whitespace and commas, which spec.md treats as equivalent
// separators everywhere.
func skipSep(s string) string {
	return strings.TrimLeft(s, " \t,")
}

// atExprEnd reports whether s begins the end of a statement's expression:
// end of line, a trailing comment, or a statement separator.
func atExprEnd(s string) bool {
	return s == "" || s[0] == '"' || s[0] == ';'
}

// scanIdent scans the longest run of IDENT characters ([A-Za-z0-9_.]+) at
// the head of s, requiring the first character to be a valid identifier
// start (letter, underscore, or dot).
func scanIdent(s string) (ident, rest string, ok bool) {
	if s == "" || !isIdentStart(s[0]) {
		return "", s, false
	}
	i := 1
	for i < len(s) && isIdentChar(s[i]) {
		i++
	}
	return s[:i], s[i:], true
}

// syllable evaluates a single syllable at the head of s per spec.md §4.2's
// table, returning the tagged value, the unconsumed remainder, whether a
// syllable was recognised at all, and whether pass two should report the
// value undefined.
func (a *Assembler) syllable(file symtab.FileID, pass int, s string) (val word.Word, rest string, ok, undefined bool) {
	// "<c" - character shifted into the high syllable.
	if len(s) >= 2 && s[0] == '<' {
		return word.Abs(word.Word(s[1]) << 9), s[2:], true, false
	}

	// "c>" - character in the low syllable. Checked before IDENT so that a
	// single letter immediately followed by '>' is always the character
	// form, per spec.md §4.2's stated try-order.
	if len(s) >= 2 && s[1] == '>' {
		return word.Abs(word.Word(s[0])), s[2:], true, false
	}

	// ">c" - the bare alias for "c>" (spec.md §9 Open Question: preserve
	// both forms).
	if len(s) >= 2 && s[0] == '>' {
		return word.Abs(word.Word(s[1])), s[2:], true, false
	}

	// "N f" / "N b" - relative label reference. Tried before a plain
	// integer literal because a bare run of digits is ambiguous with one
	// until the trailing direction letter is seen.
	if len(s) > 0 && isDigit(s[0]) {
		i := 0
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i < len(s) && (s[i] == 'f' || s[i] == 'b') {
			num := s[:i]
			forward := s[i] == 'f'
			rest := s[i+1:]

			dot := a.Sym.Dot()
			loc, found := a.Sym.ResolveRelative(file, num, dot, forward)
			if !found {
				return 0, rest, true, true
			}
			return loc, rest, true, false
		}

		// Plain decimal or octal integer literal.
		n, err := numeric.DecodeInteger(s[:i])
		if err != nil {
			return 0, s, false, false
		}
		return word.Abs(n), s[i:], true, false
	}

	// IDENT - variable, else label, local shadowing global.
	if ident, remainder, ok := scanIdent(s); ok {
		if v, found := a.Sym.GetVar(ident); found {
			return v, remainder, true, false
		}
		if v, found := a.Sym.GetLabel(file, ident); found {
			return v, remainder, true, false
		}
		return 0, remainder, true, true
	}

	return 0, s, false, false
}

// evalExpr evaluates a left-to-right, no-precedence expression at the head
// of s per spec.md §4.2, stopping at ';', '"', or end of line. fatal
// tells the caller to abandon the rest of the whole line: it is set with a
// "?" diagnostic (spec.md §7) when a syllable is not recognised, and with
// no diagnostic when the expression is empty.
func (a *Assembler) evalExpr(file symtab.FileID, pos Pos, pass int, s string) (val word.Word, rest string, diags []Diagnostic, fatal, negative bool) {
	s = skipSep(s)
	if atExprEnd(s) {
		return 0, s, nil, true, false
	}

	syl, remainder, ok, undefined := a.syllable(file, pass, s)
	if !ok {
		return 0, s, []Diagnostic{&SyntaxError{Pos: pos, Message: "unrecognised expression"}}, true, false
	}
	if undefined {
		diags = append(diags, &UndefinedError{Pos: pos, Name: firstToken(s)})
	}
	val = syl
	s = remainder

	for {
		trimmed := skipSep(s)
		if atExprEnd(trimmed) {
			return val, trimmed, diags, false, negative
		}

		op := byte(0)
		if trimmed[0] == '+' || trimmed[0] == '-' {
			op = trimmed[0]
			trimmed = skipSep(trimmed[1:])
		}

		syl, remainder, ok, undefined := a.syllable(file, pass, trimmed)
		if !ok {
			diags = append(diags, &SyntaxError{Pos: pos, Message: "unrecognised expression"})
			return val, trimmed, diags, true, negative
		}
		if undefined {
			diags = append(diags, &UndefinedError{Pos: pos, Name: firstToken(trimmed)})
		}

		switch op {
		case '+':
			val = val.Add(syl)
		case '-':
			result, mismatch, wentNegative := val.SubSigned(syl)
			if mismatch {
				diags = append(diags, &RelocMismatchError{Pos: pos})
			}
			if wentNegative {
				negative = true
			}
			val = result
		default:
			val = val.Or(syl)
		}

		s = remainder
	}
}

// firstToken extracts a short human-readable token from the head of s, for
// use in diagnostic messages.
func firstToken(s string) string {
	if ident, _, ok := scanIdent(s); ok {
		return ident
	}
	i := 0
	for i < len(s) && s[i] != ' ' && s[i] != '\t' && s[i] != ';' && s[i] != '"' {
		i++
	}
	if i == 0 {
		return s
	}
	return s[:i]
}
