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

// Package word implements PDP-7 tagged-word arithmetic: an 18-bit magnitude
// carrying a single relocatable bit above the magnitude's range.
package word

// Word is an 18-bit PDP-7 value with a relocatable tag riding in bit 18.
type Word uint32

const (
	// Mask18 clears everything above the 18-bit magnitude.
	Mask18 Word = 0o777777

	// Reloc is the relocatable tag bit, one above the magnitude range.
	Reloc Word = 0o1000000
)

// Abs returns mag masked to 18 bits, with the relocatable tag cleared.
func Abs(mag Word) Word {
	return mag & Mask18
}

// Rel returns mag masked to 18 bits and tagged relocatable.
func Rel(mag Word) Word {
	return (mag & Mask18) | Reloc
}

// Mag strips the tag, returning the bare 18-bit magnitude.
func (w Word) Mag() Word {
	return w & Mask18
}

// Relocatable reports whether w carries the relocatable tag.
func (w Word) Relocatable() bool {
	return w&Reloc != 0
}

// Tagged reassembles a magnitude with the reloc-ness of w.
func (w Word) Tagged(mag Word) Word {
	if w.Relocatable() {
		return Rel(mag)
	}
	return Abs(mag)
}

// Or computes w|o, magnitude ORed mod 2^18, tag the union of both tags.
func (w Word) Or(o Word) Word {
	mag := (w.Mag() | o.Mag()) & Mask18
	if w.Relocatable() || o.Relocatable() {
		return Rel(mag)
	}
	return Abs(mag)
}

// Add computes w+o, magnitude added mod 2^18, tag the union of both tags.
func (w Word) Add(o Word) Word {
	mag := (w.Mag() + o.Mag()) & Mask18
	if w.Relocatable() || o.Relocatable() {
		return Rel(mag)
	}
	return Abs(mag)
}

// Sub computes w-o, magnitude subtracted mod 2^18. Tag arithmetic follows
// spec: reloc-reloc is absolute, reloc-abs stays reloc, abs-abs is absolute.
// abs-reloc is reported through the absMinusReloc result; Sub itself still
// returns a value so callers that have already reported the error can
// continue assembling the rest of the line.
func (w Word) Sub(o Word) (result Word, absMinusReloc bool) {
	mag := (w.Mag() - o.Mag()) & Mask18
	switch {
	case w.Relocatable() && o.Relocatable():
		return Abs(mag), false
	case w.Relocatable() && !o.Relocatable():
		return Rel(mag), false
	case !w.Relocatable() && o.Relocatable():
		return Abs(mag), true
	default:
		return Abs(mag), false
	}
}

// Relocate materializes w to an absolute address, adding base when w is
// relocatable. The result is masked to 18 bits; overflow wraps silently,
// as spec.md documents for the driver's arithmetic on `.`.
func (w Word) Relocate(base Word) Word {
	if w.Relocatable() {
		return (w.Mag() + base.Mag()) & Mask18
	}
	return w.Mag()
}
