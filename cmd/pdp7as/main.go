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

package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/lassandro/pdp7asm/pkg/assembler"
	"github.com/lassandro/pdp7asm/pkg/emit"
)

var debugvar bool
var formatvar string
var namelistvar bool
var outvar string

const usage = "pdp7as [-d] [-f a7out|list|ptr|rim] [-n] [-o outfile] file..."

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&debugvar, "debug", false, "Enable internal tracing")
	flag.BoolVar(&debugvar, "d", false, "Enable internal tracing (shorthand)")
	flag.StringVar(&formatvar, "format", "a7out", "Output format: a7out, list, ptr, rim")
	flag.StringVar(&formatvar, "f", "a7out", "Output format (shorthand)")
	flag.BoolVar(&namelistvar, "namelist", false, "Additionally write a name-list file")
	flag.BoolVar(&namelistvar, "n", false, "Write a name-list file (shorthand)")
	flag.StringVar(&outvar, "output", "a.out", "Output path")
	flag.StringVar(&outvar, "o", "a.out", "Output path (shorthand)")
	flag.Parse()
}

// loadSources reads each named file into a set of physical lines, opened
// one at a time in argument order (spec.md §5: "both passes seeing the
// same order").
func loadSources(paths []string) ([]assembler.Source, error) {
	sources := make([]assembler.Source, 0, len(paths))

	for _, path := range paths {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}

		var lines []string
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		err = scanner.Err()
		file.Close()

		if err != nil {
			return nil, err
		}

		sources = append(sources, assembler.Source{Name: path, Lines: lines})
	}

	return sources, nil
}

func pdp7as() int {
	paths := flag.Args()
	if len(paths) == 0 {
		log.Println(usage)
		return 1
	}

	sources, err := loadSources(paths)
	if err != nil {
		log.Println(err)
		return 1
	}

	a := assembler.New()
	if debugvar {
		a.Debug = log.New(os.Stderr, "debug: ", 0)
	}

	a.Run(sources)

	for _, d := range a.Diagnostics {
		log.Println(d.Error())
	}

	out, err := os.Create(outvar)
	if err != nil {
		log.Println(err)
		return 1
	}
	defer out.Close()

	switch emit.Format(formatvar) {
	case emit.FormatA7out:
		err = emit.A7out(out, a.Mem)
	case emit.FormatList:
		err = emit.List(out, a.Events, a)
	case emit.FormatPtr:
		err = emit.Ptr(out, a.Mem, a.Sym.DotDot())
	case emit.FormatRim:
		err = emit.Rim(out, a.Mem, a.Sym.DotDot())
	default:
		log.Printf("pdp7as: unrecognised format %q", formatvar)
		return 1
	}
	if err != nil {
		log.Println(err)
		return 1
	}

	if namelistvar {
		if err := writeNamelist(outvar, a); err != nil {
			log.Println(err)
			return 1
		}
	}

	return a.ExitStatus()
}

// writeNamelist writes the side-car name list spec.md §1 describes as
// reusing the label dumper, alongside the primary output file.
func writeNamelist(outPath string, a *assembler.Assembler) error {
	nl, err := os.Create(fmt.Sprintf("%s.nl", outPath))
	if err != nil {
		return err
	}
	defer nl.Close()

	return emit.LabelDump(nl, a)
}

func main() {
	os.Exit(pdp7as())
}
