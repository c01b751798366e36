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

// Package numeric decodes the integer literal forms of PDP-7 assembly
// source: a leading "0" means octal, anything else means decimal, and the
// result is always masked to an 18-bit word.
package numeric

import (
	"errors"
	"strconv"

	"github.com/lassandro/pdp7asm/pkg/word"
)

// ErrInvalidInteger is returned when a token that looked numeric fails to
// parse as either octal or decimal.
var ErrInvalidInteger = errors.New("invalid integer literal")

// DecodeInteger parses a bare digit string per PDP-7 convention: a leading
// "0" selects octal, anything else decimal. The result is masked to 18
// bits, matching the assembler's silent-wraparound numerics.
func DecodeInteger(s string) (word.Word, error) {
	if s == "" {
		return 0, ErrInvalidInteger
	}

	base := 10
	if s[0] == '0' {
		base = 8
	}

	n, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return 0, ErrInvalidInteger
	}

	return word.Word(n) & word.Mask18, nil
}

// IsDigits reports whether s is composed entirely of ASCII digits, i.e. is a
// candidate for DecodeInteger rather than an identifier or relative-label
// reference.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
