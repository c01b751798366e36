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

// Package assembler implements the two-pass PDP-7 assembler driver: the
// line lexer, the expression evaluator, and the pass loop that turns a list
// of source files into a populated Memory image.
package assembler

import (
	"log"

	"github.com/lassandro/pdp7asm/pkg/symtab"
	"github.com/lassandro/pdp7asm/pkg/word"
)

// Source is one input file already split into physical lines (without
// trailing newlines).
type Source struct {
	Name  string
	Lines []string
}

// Memory is the sparse 18-bit PDP-7 memory image populated on pass two,
// alongside the originating source line for each written cell (spec.md
// §3: "each cell holding an 18-bit word and, for listing, the originating
// source line").
type Memory struct {
	Words map[word.Word]word.Word
	Lines map[word.Word]string
}

// NewMemory returns an empty memory image.
func NewMemory() *Memory {
	return &Memory{
		Words: make(map[word.Word]word.Word),
		Lines: make(map[word.Word]string),
	}
}

// Bounds returns the lowest and highest populated locations, and whether
// any cell has been written at all.
func (m *Memory) Bounds() (lo, hi word.Word, ok bool) {
	first := true
	for loc := range m.Words {
		if first {
			lo, hi, first = loc, loc, false
			continue
		}
		if loc < lo {
			lo = loc
		}
		if loc > hi {
			hi = loc
		}
	}
	return lo, hi, !first
}

// LineEvent records a physical source line as it is first seen during pass
// two, for the list emitter.
type LineEvent struct {
	File string
	Line string
}

// AssignEvent records a "name = expr" statement's resulting value during
// pass two, for the list emitter.
type AssignEvent struct {
	Value word.Word
	Flag  byte
}

// WordEvent records a memory-producing statement during pass two, for the
// list emitter.
type WordEvent struct {
	Loc   word.Word
	Value word.Word
	Flag  byte
}

// Assembler owns the full mutable state of one assembly run: the symbol
// tables, the memory image, accumulated diagnostics, and (during pass two)
// the ordered event stream the list emitter renders.
type Assembler struct {
	Sym         *symtab.Table
	Mem         *Memory
	Diagnostics []Diagnostic
	Events      []interface{}

	// Debug, if set, receives a line of tracing for every pass-two
	// memory-producing statement, every assignment (on both passes), and
	// every pass-two diagnostic (spec.md §6's --debug/-d). Label
	// definitions are not traced.
	Debug *log.Logger

	pass         int
	dotBelowBase bool
}

// New returns a fresh Assembler, its variable table preloaded with the
// opcode/syscall seed table (spec.md §6).
func New() *Assembler {
	return &Assembler{
		Sym: symtab.New(),
		Mem: NewMemory(),
	}
}

// Run performs both passes over sources in file-list order (spec.md §4.4,
// §5: "both passes seeing the same order"). Only the location counter is
// rewound between passes; every other table persists (spec.md §3).
func (a *Assembler) Run(sources []Source) {
	a.pass = 1
	a.runPass(sources)

	a.Sym.SetDot(word.Rel(0))
	a.dotBelowBase = false

	a.pass = 2
	a.runPass(sources)
}

// ExitStatus reports the process exit status spec.md §7 mandates: 1 if any
// diagnostic was recorded, else 0.
func (a *Assembler) ExitStatus() int {
	if len(a.Diagnostics) > 0 {
		return 1
	}
	return 0
}

func (a *Assembler) runPass(sources []Source) {
	for i, src := range sources {
		file := symtab.FileID(i)
		for i, line := range src.Lines {
			a.processLine(file, src.Name, i+1, line)
		}
	}
}

func (a *Assembler) addDiag(d Diagnostic) {
	if a.pass != 2 {
		return
	}
	a.Diagnostics = append(a.Diagnostics, d)
	if a.Debug != nil {
		a.Debug.Print(d.Error())
	}
}

func (a *Assembler) addDiags(ds []Diagnostic) {
	for _, d := range ds {
		a.addDiag(d)
	}
}

func diagsFlag(ds []Diagnostic) byte {
	for _, d := range ds {
		if d != nil {
			return d.Flag()
		}
	}
	return ' '
}
