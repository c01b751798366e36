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

package word_test

import (
	"testing"

	"github.com/lassandro/pdp7asm/pkg/word"
)

func TestOrCombinesTags(t *testing.T) {
	got := word.Abs(0o200000).Or(word.Rel(5))
	if !got.Relocatable() {
		t.Fatalf("abs|rel should be relocatable, got %#o", got)
	}
	if got.Mag() != 0o200005 {
		t.Fatalf("want mag 0o200005, got %#o", got.Mag())
	}
}

func TestAddThenSubIsIdentity(t *testing.T) {
	a := word.Rel(0o1234)
	b := word.Abs(0o777)

	sum := a.Add(b)
	back, mismatch := sum.Sub(b)
	if mismatch {
		t.Fatalf("rel-abs should never mismatch")
	}
	if back.Mag() != a.Mag() {
		t.Fatalf("(a+b)-b should equal a mod 2^18, got %#o want %#o", back.Mag(), a.Mag())
	}
	if !back.Relocatable() {
		t.Fatalf("rel+abs-abs should stay relocatable")
	}
}

func TestSubTagRules(t *testing.T) {
	relA, relB := word.Rel(10), word.Rel(3)
	if result, mismatch := relA.Sub(relB); mismatch || result.Relocatable() {
		t.Fatalf("rel-rel should be absolute with no error, got %#o mismatch=%v", result, mismatch)
	}

	absA, absB := word.Abs(10), word.Abs(3)
	if result, mismatch := absA.Sub(absB); mismatch || result.Relocatable() {
		t.Fatalf("abs-abs should be absolute with no error, got %#o mismatch=%v", result, mismatch)
	}

	relC := word.Rel(10)
	if result, mismatch := relC.Sub(absB); mismatch || !result.Relocatable() {
		t.Fatalf("rel-abs should stay relocatable with no error, got %#o mismatch=%v", result, mismatch)
	}

	if _, mismatch := absA.Sub(relB); !mismatch {
		t.Fatalf("abs-rel should report a mismatch")
	}
}

func TestMasking(t *testing.T) {
	w := word.Abs(0o777777 + 1)
	if w.Mag() != 0 {
		t.Fatalf("magnitude should wrap mod 2^18, got %#o", w.Mag())
	}
}

func TestRelocate(t *testing.T) {
	base := word.Abs(0o10000)

	if got := word.Rel(5).Relocate(base); got != 0o10005 {
		t.Fatalf("relocatable value should add base, got %#o", got)
	}
	if got := word.Abs(5).Relocate(base); got != 5 {
		t.Fatalf("absolute value should ignore base, got %#o", got)
	}
}

func TestSubSignedDetectsUnderflow(t *testing.T) {
	_, _, negative := word.Abs(0).SubSigned(word.Abs(5))
	if !negative {
		t.Fatalf("0-5 should be flagged as a negative underflow")
	}

	_, _, negative = word.Abs(5).SubSigned(word.Abs(5))
	if negative {
		t.Fatalf("5-5 should not be flagged negative")
	}
}
