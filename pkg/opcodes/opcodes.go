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

// Package opcodes holds the immutable PDP-7/first-Unix mnemonic table: the
// syscall numerics and instruction word constants an assembly run seeds its
// global variable table with before reading a single line of source.
package opcodes

import "github.com/lassandro/pdp7asm/pkg/word"

// Seed is the mnemonic -> absolute word table every fresh assembly run
// preloads its variable table with.
var Seed = map[string]word.Word{
	// syscalls
	"save":   1,
	"getuid": 2,
	"open":   3,
	"read":   4,
	"write":  5,
	"creat":  6,
	"seek":   7,
	"tell":   8,
	"close":  9,
	"link":   10,
	"unlink": 11,
	"setuid": 12,
	"rename": 13,
	"exit":   14,
	"time":   15,
	"intrp":  16,
	"chdir":  17,
	"chmod":  18,
	"chown":  19,
	"sysloc": 21,
	"capt":   23,
	"rele":   24,
	"status": 25,
	"smes":   27,
	"rmes":   28,
	"fork":   29,

	// sys/immediate
	"sys": 0o20000,
	"i":   0o20000,

	// memory-reference opcodes
	"dac": 0o40000,
	"jms": 0o100000,
	"dzm": 0o140000,
	"lac": 0o200000,
	"xor": 0o240000,
	"add": 0o300000,
	"tad": 0o340000,
	"xct": 0o400000,
	"isz": 0o440000,
	"and": 0o500000,
	"sad": 0o540000,
	"jmp": 0o600000,

	// EAE instructions
	"eae":    0o640000,
	"osc":    0o640001,
	"omq":    0o640002,
	"cmq":    0o640004,
	"div":    0o640323,
	"norm":   0o640444,
	"lls":    0o640600,
	"clls":   0o641600,
	"als":    0o640700,
	"lrs":    0o640500,
	"ecla":   0o641000,
	"lacs":   0o641001,
	"lacq":   0o641002,
	"abs":    0o644000,
	"divs":   0o644323,
	"clq":    0o650000,
	"frdiv":  0o650323,
	"lmq":    0o652000,
	"mul":    0o653122,
	"idiv":   0o653323,
	"idivs":  0o657323,
	"frdivs": 0o654323,
	"muls":   0o657122,
	"norms":  0o660444,
	"gsm":    0o664000,
	"lrss":   0o660500,
	"llss":   0o660600,
	"alss":   0o660700,

	// operate group
	"opr": 0o740000,
	"nop": 0o740000,
	"cma": 0o740001,
	"cml": 0o740002,
	"oas": 0o740004,
	"ral": 0o740010,
	"rar": 0o740020,
	"hlt": 0o740040,
	"xx":  0o740040,
	"sma": 0o740100,
	"sza": 0o740200,
	"snl": 0o740400,
	"skp": 0o741000,
	"spa": 0o741100,
	"sna": 0o741200,
	"szl": 0o741400,
	"rtl": 0o742010,
	"rtr": 0o742020,
	"cll": 0o744000,
	"stl": 0o744002,
	"rcl": 0o744010,
	"rcr": 0o744020,
	"cla": 0o750000,
	"clc": 0o750001,
	"las": 0o750004,
	"glk": 0o750010,
	"law": 0o760000,
}

// DotDot is the initial value of the relocation base variable "..".
const DotDot word.Word = 0o10000
