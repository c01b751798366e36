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

package symtab_test

import (
	"testing"

	"github.com/lassandro/pdp7asm/pkg/symtab"
	"github.com/lassandro/pdp7asm/pkg/word"
)

const fileA symtab.FileID = 0
const fileB symtab.FileID = 1

func TestNewSeedsOpcodesAndDots(t *testing.T) {
	tab := symtab.New()

	if v, ok := tab.GetVar("hlt"); !ok || v.Mag() != 0o740040 {
		t.Fatalf("hlt should be seeded from the opcode table, got %#o ok=%v", v, ok)
	}
	if tab.Dot() != word.Rel(0) {
		t.Fatalf("dot should start at relocatable zero, got %#o", tab.Dot())
	}
	if tab.DotDot().Mag() != 0o10000 {
		t.Fatalf("default relocation base should be 0o10000, got %#o", tab.DotDot().Mag())
	}
}

func TestSetDotAndDotDot(t *testing.T) {
	tab := symtab.New()
	tab.SetDot(word.Rel(5))
	if tab.Dot() != word.Rel(5) {
		t.Fatalf("dot should reflect SetDot, got %#o", tab.Dot())
	}
	tab.SetVar("..", word.Abs(0o20000))
	if tab.DotDot().Mag() != 0o20000 {
		t.Fatalf("dotdot should track the .. variable, got %#o", tab.DotDot().Mag())
	}
}

func TestIsLocalNameLeadingL(t *testing.T) {
	tab := symtab.New()
	if !tab.IsLocalName(fileA, "Lfoo") {
		t.Fatalf("names starting with L should be local by default")
	}
	if tab.IsLocalName(fileA, "foo") {
		t.Fatalf("foo should not be local without a .local declaration")
	}
	tab.DeclareLocal(fileA, "foo")
	if !tab.IsLocalName(fileA, "foo") {
		t.Fatalf("foo should become local after .local")
	}
	if tab.IsLocalName(fileB, "foo") {
		t.Fatalf("local declarations should not leak across files")
	}
}

func TestSetLabelGlobalAndLocalScoping(t *testing.T) {
	tab := symtab.New()

	if dup := tab.SetLabel(fileA, "foo", word.Rel(10)); dup {
		t.Fatalf("first definition should not be a duplicate")
	}
	if v, ok := tab.GetLabel(fileB, "foo"); !ok || v != word.Rel(10) {
		t.Fatalf("global labels should be visible from any file, got %#o ok=%v", v, ok)
	}

	tab.DeclareLocal(fileA, "Lbar")
	tab.SetLabel(fileA, "Lbar", word.Rel(20))
	if _, ok := tab.GetLabel(fileB, "Lbar"); ok {
		t.Fatalf("local labels should not be visible from another file")
	}
	if v, ok := tab.GetLabel(fileA, "Lbar"); !ok || v != word.Rel(20) {
		t.Fatalf("local label should resolve within its own file, got %#o ok=%v", v, ok)
	}
}

func TestSetLabelLocalShadowsGlobal(t *testing.T) {
	tab := symtab.New()
	tab.SetLabel(fileA, "Lname", word.Rel(1))
	if v, ok := tab.GetLabel(fileA, "Lname"); !ok || v != word.Rel(1) {
		t.Fatalf("local label should resolve, got %#o ok=%v", v, ok)
	}

	tab.SetLabel(fileB, "name", word.Rel(7))
	tab.DeclareLocal(fileA, "name")
	tab.SetLabel(fileA, "name", word.Rel(2))
	if v, ok := tab.GetLabel(fileA, "name"); !ok || v != word.Rel(2) {
		t.Fatalf("local label should shadow the global one in its own file, got %#o ok=%v", v, ok)
	}
	if v, ok := tab.GetLabel(fileB, "name"); !ok || v != word.Rel(7) {
		t.Fatalf("other files should still see the global label, got %#o ok=%v", v, ok)
	}
}

func TestSetLabelDuplicateDifferentValueDoesNotOverwrite(t *testing.T) {
	tab := symtab.New()
	tab.SetLabel(fileA, "foo", word.Rel(10))

	dup := tab.SetLabel(fileA, "foo", word.Rel(20))
	if !dup {
		t.Fatalf("redefinition with a different value should be reported")
	}
	if v, _ := tab.GetLabel(fileA, "foo"); v != word.Rel(10) {
		t.Fatalf("earlier definition should win, got %#o", v)
	}
}

func TestSetLabelDuplicateSameValueIsNotReported(t *testing.T) {
	tab := symtab.New()
	tab.SetLabel(fileA, "foo", word.Rel(10))
	if dup := tab.SetLabel(fileA, "foo", word.Rel(10)); dup {
		t.Fatalf("redefinition with the same value should not be reported")
	}
}

func TestResolveRelativeNearestForwardAndBackward(t *testing.T) {
	tab := symtab.New()
	tab.DefineRelative(fileA, "1", word.Rel(5))
	tab.DefineRelative(fileA, "1", word.Rel(15))
	tab.DefineRelative(fileA, "1", word.Rel(25))

	loc, ok := tab.ResolveRelative(fileA, "1", word.Rel(10), true)
	if !ok || loc != word.Rel(15) {
		t.Fatalf("1f from dot=10 should resolve to the nearest greater definition 15, got %#o ok=%v", loc, ok)
	}

	loc, ok = tab.ResolveRelative(fileA, "1", word.Rel(20), false)
	if !ok || loc != word.Rel(15) {
		t.Fatalf("1b from dot=20 should resolve to the nearest lesser definition 15, got %#o ok=%v", loc, ok)
	}

	if _, ok := tab.ResolveRelative(fileA, "1", word.Rel(30), true); ok {
		t.Fatalf("1f past every definition should fail to resolve")
	}
}

func TestResolveRelativeUnknownFileOrNumber(t *testing.T) {
	tab := symtab.New()
	if _, ok := tab.ResolveRelative(fileA, "9", word.Rel(0), true); ok {
		t.Fatalf("an undefined numeric label should not resolve")
	}
}

func TestGlobalLabelNamesSortedAndExcludesLocal(t *testing.T) {
	tab := symtab.New()
	tab.SetLabel(fileA, "zeta", word.Rel(1))
	tab.SetLabel(fileA, "alpha", word.Rel(2))
	tab.DeclareLocal(fileA, "hidden")
	tab.SetLabel(fileA, "hidden", word.Rel(3))

	names := tab.GlobalLabelNames()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "zeta" {
		t.Fatalf("want [alpha zeta], got %v", names)
	}
}
