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

// Package emit implements the four PDP-7 assembler output backends
// (a7out, list, ptr, rim) and the label dump they share, all driven off
// the final memory image and symbol tables a completed *assembler.Assembler
// run leaves behind.
package emit

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/lassandro/pdp7asm/pkg/assembler"
	"github.com/lassandro/pdp7asm/pkg/word"
)

// Format names the output encoding, matching spec.md §6's --format values.
type Format string

const (
	FormatA7out Format = "a7out"
	FormatList  Format = "list"
	FormatPtr   Format = "ptr"
	FormatRim   Format = "rim"
)

// tapeFrameFlag marks a paper-tape frame as data (spec.md §6: "high-bit set
// on every frame").
const tapeFrameFlag = 0o200

// tapeHaltFlag additionally marks the RIM trailer's final frame as the
// loader's halt-and-start marker.
const tapeHaltFlag = 0o100

// A7out writes the default listing: one "OOOOOO: WWWWWW\tSRCLINE" line per
// populated memory cell, ascending by location (spec.md §4.5).
func A7out(w io.Writer, mem *assembler.Memory) error {
	locs := sortedLocs(mem)

	bw := bufio.NewWriter(w)
	for _, loc := range locs {
		if _, err := fmt.Fprintf(bw, "%06o: %06o\t%s\n", loc, mem.Words[loc], mem.Lines[loc]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// List renders the interleaved source/listing format: source lines as they
// were first seen, assignment results, memory writes, and finally the
// global label dump (spec.md §4.5).
func List(w io.Writer, events []interface{}, labels *assembler.Assembler) error {
	bw := bufio.NewWriter(w)

	for _, ev := range events {
		switch e := ev.(type) {
		case assembler.LineEvent:
			if _, err := fmt.Fprintf(bw, "\t\t%s\n", e.Line); err != nil {
				return err
			}
		case assembler.AssignEvent:
			if _, err := fmt.Fprintf(bw, "\t%06o %c\n", e.Value.Mag(), e.Flag); err != nil {
				return err
			}
		case assembler.WordEvent:
			if _, err := fmt.Fprintf(bw, "%06o: %06o %c\n", e.Loc, e.Value, e.Flag); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprint(bw, "\nLabels:\n"); err != nil {
		return err
	}
	if err := LabelDump(bw, labels); err != nil {
		return err
	}

	return bw.Flush()
}

// LabelDump writes the shared label dump on its own, for the --namelist
// side-car spec.md §1 describes as "it simply reuses the label dumper".
func LabelDump(w io.Writer, a *assembler.Assembler) error {
	return writeLabelDump(w, a)
}

// Ptr writes the raw paper-tape byte stream: every word from the relocation
// base up to the highest populated location, each split into three 6-bit
// frames with the tape's data-frame bit set (spec.md §4.5, §6).
func Ptr(w io.Writer, mem *assembler.Memory, dotdot word.Word) error {
	bw := bufio.NewWriter(w)
	if err := writeFrames(bw, mem, dotdot); err != nil {
		return err
	}
	return bw.Flush()
}

// Rim writes the ptr frame stream followed by the RIM loader's trailing
// halt-and-start word, whose last frame additionally carries the halt flag
// (spec.md §4.5, §6).
func Rim(w io.Writer, mem *assembler.Memory, dotdot word.Word) error {
	bw := bufio.NewWriter(w)
	if err := writeFrames(bw, mem, dotdot); err != nil {
		return err
	}

	trailer := (word.Word(0o600000) | dotdot.Mag()) & word.Mask18
	frames := wordFrames(trailer)
	frames[2] |= tapeHaltFlag

	for _, f := range frames {
		if err := bw.WriteByte(byte(f)); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// writeFrames emits one 3-frame group per word from dotdot's magnitude up
// to the highest populated location (inclusive), substituting zero for any
// unset cell.
func writeFrames(bw *bufio.Writer, mem *assembler.Memory, dotdot word.Word) error {
	_, hi, ok := mem.Bounds()
	if !ok {
		return nil
	}

	start := dotdot.Mag()
	for loc := start; loc <= hi; loc++ {
		w := mem.Words[loc]
		for _, f := range wordFrames(w) {
			if err := bw.WriteByte(byte(f)); err != nil {
				return err
			}
		}
	}
	return nil
}

// wordFrames splits an 18-bit word into three 6-bit frames, high to low,
// each ORed with the tape's data-frame flag.
func wordFrames(w word.Word) [3]word.Word {
	mag := w.Mag()
	return [3]word.Word{
		((mag >> 12) & 0o77) | tapeFrameFlag,
		((mag >> 6) & 0o77) | tapeFrameFlag,
		(mag & 0o77) | tapeFrameFlag,
	}
}

// writeLabelDump writes the shared label dump: every global label sorted
// ascending by name, relocated through the current "..", each flagged "r"
// when relocatable (spec.md §4.5). Local labels are never dumped.
func writeLabelDump(w io.Writer, a *assembler.Assembler) error {
	names := a.Sym.GlobalLabelNames()
	base := a.Sym.DotDot()

	for _, name := range names {
		v := a.Sym.Labels[name]
		flag := ""
		if v.Relocatable() {
			flag = "r"
		}
		if _, err := fmt.Fprintf(w, "%-8s %07o %s\n", name, v.Relocate(base), flag); err != nil {
			return err
		}
	}
	return nil
}

func sortedLocs(mem *assembler.Memory) []word.Word {
	locs := make([]word.Word, 0, len(mem.Words))
	for loc := range mem.Words {
		locs = append(locs, loc)
	}
	sort.Slice(locs, func(i, j int) bool { return locs[i] < locs[j] })
	return locs
}
