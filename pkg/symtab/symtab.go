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

// Package symtab holds the five symbol tables a PDP-7 assembly run needs:
// the global variable table, the global label table, and, per source file,
// a local label table, a local-name declaration set, and a relative-label
// table. File scoping is by an integer FileID rather than a filename
// string, per spec.md's suggestion of a cleaner keying scheme than a
// driver-global "current file" variable.
package symtab

import (
	"sort"

	"github.com/lassandro/pdp7asm/pkg/opcodes"
	"github.com/lassandro/pdp7asm/pkg/word"
)

// FileID identifies one input source file for the lifetime of a run.
type FileID int

// Table is the full symbol-table state for one assembly run. It is shared
// mutable state across both passes: only the location counter (the "."
// variable, which the driver rewinds through SetDot) is rewound between
// passes.
type Table struct {
	Vars   map[string]word.Word
	Labels map[string]word.Word

	local     map[FileID]map[string]word.Word
	localName map[FileID]map[string]bool
	relative  map[FileID]map[string][]word.Word
}

// New returns a Table preloaded with the opcode/syscall seed table and the
// "." and ".." variables spec.md §6 requires every run to start with.
func New() *Table {
	vars := make(map[string]word.Word, len(opcodes.Seed)+2)
	for name, w := range opcodes.Seed {
		vars[name] = w
	}
	vars["."] = word.Rel(0)
	vars[".."] = opcodes.DotDot

	return &Table{
		Vars:      vars,
		Labels:    make(map[string]word.Word),
		local:     make(map[FileID]map[string]word.Word),
		localName: make(map[FileID]map[string]bool),
		relative:  make(map[FileID]map[string][]word.Word),
	}
}

// SetVar assigns name in the global variable table, silently overwriting any
// prior value (spec.md §3: "may overwrite existing entries silently").
func (t *Table) SetVar(name string, w word.Word) {
	t.Vars[name] = w
}

// GetVar looks up name in the global variable table.
func (t *Table) GetVar(name string) (word.Word, bool) {
	w, ok := t.Vars[name]
	return w, ok
}

// Dot returns the current location counter, stored as the "." variable.
func (t *Table) Dot() word.Word {
	return t.Vars["."]
}

// SetDot updates the location counter variable.
func (t *Table) SetDot(w word.Word) {
	t.Vars["."] = w
}

// DotDot returns the current relocation base, stored as the ".." variable.
func (t *Table) DotDot() word.Word {
	return t.Vars[".."]
}

// IsLocalName reports whether name should be classified local for file per
// spec.md §3: either explicitly declared via .local, or spelled starting
// with the letter L.
func (t *Table) IsLocalName(file FileID, name string) bool {
	if len(name) > 0 && name[0] == 'L' {
		return true
	}
	names := t.localName[file]
	return names != nil && names[name]
}

// DeclareLocal records name as locally scoped for file, per the .local
// directive (spec.md §4.1 step 1).
func (t *Table) DeclareLocal(file FileID, name string) {
	names := t.localName[file]
	if names == nil {
		names = make(map[string]bool)
		t.localName[file] = names
	}
	names[name] = true
}

// SetLabel defines name at loc for file, honoring the local/global split of
// spec.md §3-§4.3. It reports whether this was a redefinition with a value
// different from the one already stored (a non-fatal pass-two diagnostic);
// redefinition with an identical value, or a first definition, reports
// false. A redefinition with a different value does not overwrite the
// earlier entry, matching the original's permissive behaviour.
func (t *Table) SetLabel(file FileID, name string, loc word.Word) (redefinedDifferent bool) {
	if t.IsLocalName(file, name) {
		table := t.local[file]
		if table == nil {
			table = make(map[string]word.Word)
			t.local[file] = table
		}
		if existing, ok := table[name]; ok {
			if existing != loc {
				return true
			}
			return false
		}
		table[name] = loc
		return false
	}

	if existing, ok := t.Labels[name]; ok {
		if existing != loc {
			return true
		}
		return false
	}
	t.Labels[name] = loc
	return false
}

// GetLabel resolves name for file, preferring the file's local entry over
// the global table (spec.md §3: "get_label(name) in file F returns the
// local entry if present, else the global entry").
func (t *Table) GetLabel(file FileID, name string) (word.Word, bool) {
	if table := t.local[file]; table != nil {
		if w, ok := table[name]; ok {
			return w, true
		}
	}
	w, ok := t.Labels[name]
	return w, ok
}

// DefineRelative appends loc to the location list for the numeric label num
// in file. Called during pass one only (spec.md §3: "populated during pass
// one only").
func (t *Table) DefineRelative(file FileID, num string, loc word.Word) {
	table := t.relative[file]
	if table == nil {
		table = make(map[string][]word.Word)
		t.relative[file] = table
	}
	table[num] = append(table[num], loc)
}

// ResolveRelative finds the nearest definition of numeric label num in file
// relative to dot: forward ("f") returns the smallest recorded location
// strictly greater than dot, backward ("b") the largest strictly less than
// dot.
func (t *Table) ResolveRelative(file FileID, num string, dot word.Word, forward bool) (word.Word, bool) {
	locs := t.relative[file][num]
	if len(locs) == 0 {
		return 0, false
	}

	dotMag := dot.Mag()

	if forward {
		best := word.Word(0)
		found := false
		for _, loc := range locs {
			if loc.Mag() > dotMag && (!found || loc.Mag() < best.Mag()) {
				best, found = loc, true
			}
		}
		return best, found
	}

	best := word.Word(0)
	found := false
	for _, loc := range locs {
		if loc.Mag() < dotMag && (!found || loc.Mag() > best.Mag()) {
			best, found = loc, true
		}
	}
	return best, found
}

// GlobalLabelNames returns the global label table's keys sorted ascending,
// for the label dump (spec.md §4.5).
func (t *Table) GlobalLabelNames() []string {
	names := make([]string, 0, len(t.Labels))
	for name := range t.Labels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
