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

package numeric_test

import (
	"testing"

	"github.com/lassandro/pdp7asm/pkg/numeric"
)

func TestDecodeInteger(t *testing.T) {
	tests := []struct {
		Name  string
		Input string
		Want  uint32
	}{
		{"decimal", "42", 42},
		{"octal", "0777", 0o777},
		{"leading zero octal single digit", "0", 0},
		{"decimal at 18-bit boundary", "262143", 0o777777},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			got, err := numeric.DecodeInteger(test.Input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if uint32(got) != test.Want {
				t.Fatalf("want %#o, got %#o", test.Want, got)
			}
		})
	}
}

func TestDecodeIntegerInvalid(t *testing.T) {
	if _, err := numeric.DecodeInteger("089"); err == nil {
		t.Fatalf("089 is not valid octal, expected an error")
	}
	if _, err := numeric.DecodeInteger(""); err == nil {
		t.Fatalf("empty string should error")
	}
}

func TestIsDigits(t *testing.T) {
	if !numeric.IsDigits("123") {
		t.Fatalf("123 should be all digits")
	}
	if numeric.IsDigits("12f") {
		t.Fatalf("12f is not all digits")
	}
	if numeric.IsDigits("") {
		t.Fatalf("empty string is not digits")
	}
}
