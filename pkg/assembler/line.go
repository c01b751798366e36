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

// processLine implements spec.md §4.1's per-line grammar. It never aborts
// the run: a syntax failure discards only the remainder of this one line.
func (a *Assembler) processLine(file symtab.FileID, fname string, lineno int, line string) {
	pos := Pos{File: fname, Line: lineno}

	if a.pass == 2 {
		a.Events = append(a.Events, LineEvent{File: fname, Line: line})
	}

	// Step 1: a directive line.
	if len(line) >= 2 && line[0] == '\t' && line[1] == '.' {
		a.handleDirective(file, pos, line[1:])
		return
	}

	// Step 2: strip leading whitespace.
	rest := strings.TrimLeft(line, " \t")

	for {
		rest = a.consumeLabels(file, pos, rest)

		// Step 4: empty or comment.
		rest = skipSep(rest)
		if atExprEnd(rest) {
			return
		}

		// Step 5: SYMBOL= assignment.
		if ident, remainder, ok := scanIdent(rest); ok {
			after := skipSep(remainder)
			if len(after) > 0 && after[0] == '=' && !(len(after) > 1 && after[1] == '=') {
				val, next, diags, fatal, negative := a.evalExpr(file, pos, a.pass, after[1:])
				a.addDiags(diags)
				if fatal {
					return
				}
				a.assign(pos, ident, val, negative, diagsFlag(diags))

				var done bool
				rest, done = finishStatement(next)
				if done {
					return
				}
				continue
			}
		}

		// Step 6: bare expression, written to memory.
		val, next, diags, fatal, _ := a.evalExpr(file, pos, a.pass, rest)
		a.addDiags(diags)
		if fatal {
			return
		}
		a.writeWord(pos, line, val, diagsFlag(diags))

		var done bool
		rest, done = finishStatement(next)
		if done {
			return
		}
	}
}

// finishStatement implements step 7: consume trailing whitespace and an
// optional ';', reporting whether the line is now exhausted.
func finishStatement(rest string) (next string, done bool) {
	rest = skipSep(rest)
	if atExprEnd(rest) {
		return rest, true
	}
	if rest[0] == ';' {
		rest = rest[1:]
	}
	rest = skipSep(rest)
	if atExprEnd(rest) {
		return rest, true
	}
	return rest, false
}

// scanLabelHead scans the longest run of label characters ([A-Za-z0-9_.]+)
// at the head of s. Unlike scanIdent, a label head may start with a digit
// (spec.md §4.1 step 3's numeric relative labels, e.g. "1:"); the numeric
// vs. alphabetic classification happens afterward, in defineLabel.
func scanLabelHead(s string) (head, rest string, ok bool) {
	if s == "" || !isIdentChar(s[0]) {
		return "", s, false
	}
	i := 1
	for i < len(s) && isIdentChar(s[i]) {
		i++
	}
	return s[:i], s[i:], true
}

// consumeLabels implements step 3: repeatedly consume "IDENT:" at the head
// of rest, defining each as a label at the current location counter.
func (a *Assembler) consumeLabels(file symtab.FileID, pos Pos, rest string) string {
	for {
		candidate := skipSep(rest)
		ident, remainder, ok := scanLabelHead(candidate)
		if !ok || !strings.HasPrefix(remainder, ":") {
			return rest
		}
		rest = remainder[1:]
		a.defineLabel(file, pos, ident)
	}
}

// defineLabel classifies ident as numeric (a relative label), local, or
// global, per spec.md §3-§4.3.
func (a *Assembler) defineLabel(file symtab.FileID, pos Pos, ident string) {
	if numeric.IsDigits(ident) {
		if a.pass == 1 {
			a.Sym.DefineRelative(file, ident, a.Sym.Dot())
		}
		return
	}

	dup := a.Sym.SetLabel(file, ident, a.Sym.Dot())
	if dup {
		a.addDiag(&DuplicateLabelError{Pos: pos, Name: ident})
	}
}

// handleDirective implements the sole recognised directive, ".local NAME"
// (spec.md §4.1 step 1).
func (a *Assembler) handleDirective(file symtab.FileID, pos Pos, s string) {
	fields := strings.Fields(s)
	if len(fields) >= 2 && fields[0] == ".local" {
		a.Sym.DeclareLocal(file, fields[1])
		return
	}
	a.addDiag(&SyntaxError{Pos: pos, Message: "unrecognised directive"})
}

// assign implements step 5's binding of SYMBOL to the evaluated expression.
// The location counter "." is always forced relocatable on assignment: it
// names a position in the loadable image and per spec.md §3 is "a tagged
// word" of that segment regardless of the tag its right-hand side carried
// (spec.md §8 scenario 5, ". = 7; hlt" relocating through "..", pins this
// down where the prose is otherwise silent).
func (a *Assembler) assign(pos Pos, name string, val word.Word, negative bool, flag byte) {
	if name == "." {
		val = word.Rel(val.Mag())
		a.dotBelowBase = negative
	}
	a.Sym.SetVar(name, val)

	if a.pass == 2 {
		a.Events = append(a.Events, AssignEvent{Value: val, Flag: flag})
	}
	if a.Debug != nil {
		a.Debug.Printf("%s: %s = %o", pos, name, val.Mag())
	}
}

// writeWord implements spec.md §4.4's per-statement write sequence: relocate
// both the location and the word through the current relocation base, write
// the cell on pass two, and advance "." by one in both passes.
func (a *Assembler) writeWord(pos Pos, line string, val word.Word, flag byte) {
	dot := a.Sym.Dot()

	if a.pass == 2 {
		if a.dotBelowBase {
			a.addDiag(&BelowBaseError{Pos: pos})
			a.dotBelowBase = false
		} else {
			base := a.Sym.DotDot()
			loc := dot.Relocate(base)
			w := val.Relocate(base)

			a.Mem.Words[loc] = w
			a.Mem.Lines[loc] = line

			a.Events = append(a.Events, WordEvent{Loc: loc, Value: w, Flag: flag})
		}

		if a.Debug != nil {
			a.Debug.Printf("%s: . = %o, word = %o", pos, dot.Mag(), val.Mag())
		}
	}

	a.Sym.SetDot(dot.Add(word.Abs(1)))
}
