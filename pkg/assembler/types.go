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

import "fmt"

// Pos is a source position: the originating file and its 1-based line
// number, the context every diagnostic and every listing line carries
// (spec.md §7: "FILE:LINE: message").
type Pos struct {
	File string
	Line int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// Diagnostic is a positioned assembler error or warning, carrying the
// one-character listing flag of spec.md §7.
type Diagnostic interface {
	error
	Flag() byte
	Position() Pos
}

// UndefinedError is spec.md §7's "U": an undefined symbol, or an
// unresolvable relative-label reference, encountered on pass two.
type UndefinedError struct {
	Pos  Pos
	Name string
}

func (e *UndefinedError) Position() Pos { return e.Pos }
func (e *UndefinedError) Flag() byte    { return 'U' }
func (e *UndefinedError) Error() string {
	return fmt.Sprintf("%s: undefined symbol '%s'", e.Pos, e.Name)
}

// RelocMismatchError is spec.md §7's "A": subtracting a relocatable value
// from an absolute one.
type RelocMismatchError struct {
	Pos Pos
}

func (e *RelocMismatchError) Position() Pos { return e.Pos }
func (e *RelocMismatchError) Flag() byte    { return 'A' }
func (e *RelocMismatchError) Error() string {
	return fmt.Sprintf("%s: absolute value minus relative", e.Pos)
}

// BelowBaseError is spec.md §7's ".": the location counter underflowed
// below zero from user arithmetic.
type BelowBaseError struct {
	Pos Pos
}

func (e *BelowBaseError) Position() Pos { return e.Pos }
func (e *BelowBaseError) Flag() byte    { return '.' }
func (e *BelowBaseError) Error() string {
	return fmt.Sprintf("%s: location counter below base", e.Pos)
}

// SyntaxError is spec.md §7's "?": the line's head did not match any
// recognised production. The rest of the line is discarded.
type SyntaxError struct {
	Pos     Pos
	Message string
}

func (e *SyntaxError) Position() Pos { return e.Pos }
func (e *SyntaxError) Flag() byte    { return '?' }
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// DuplicateLabelError reports a label redefined with a differing value.
// spec.md §7: "non-fatal", reported on pass two only; the earlier
// definition wins and the run continues. It carries no listing flag of its
// own (it is not one of the four error classes in spec.md §7's taxonomy),
// so Flag reports a blank column.
type DuplicateLabelError struct {
	Pos  Pos
	Name string
}

func (e *DuplicateLabelError) Position() Pos { return e.Pos }
func (e *DuplicateLabelError) Flag() byte    { return ' ' }
func (e *DuplicateLabelError) Error() string {
	return fmt.Sprintf("%s: label '%s' redefined with a different value", e.Pos, e.Name)
}
