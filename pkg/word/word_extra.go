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

package word

// SubSigned is Sub, additionally reporting whether the unmasked difference
// would have gone negative. The driver uses this to detect the location
// counter underflowing below its base (spec.md §4.4's "L would be
// negative").
func (w Word) SubSigned(o Word) (result Word, absMinusReloc, negative bool) {
	raw := int64(w.Mag()) - int64(o.Mag())
	result, absMinusReloc = w.Sub(o)
	return result, absMinusReloc, raw < 0
}
