// This file is part of Limitpatch.
//
// Limitpatch is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Limitpatch is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Limitpatch.  If not, see <https://www.gnu.org/licenses/>.

package patch

import (
	"encoding/binary"
	"fmt"
)

// Width is the number of bytes occupied by a patch value in the target. All
// values are little-endian.
type Width int

// List of valid Width values.
const (
	Width8  Width = 1
	Width16 Width = 2
	Width32 Width = 4
	Width64 Width = 8
)

func (w Width) String() string {
	switch w {
	case Width8:
		return "byte"
	case Width16:
		return "word"
	case Width32:
		return "dword"
	case Width64:
		return "qword"
	}
	return fmt.Sprintf("invalid width (%d)", int(w))
}

// Valid returns true if the width is one of the listed Width values.
func (w Width) Valid() bool {
	switch w {
	case Width8, Width16, Width32, Width64:
		return true
	}
	return false
}

// Fits returns true if value can be represented in the width without loss.
func (w Width) Fits(v uint64) bool {
	if w == Width64 {
		return true
	}
	return v>>(uint(w)*8) == 0
}

// Encode value as a little-endian byte sequence of the width. The value is
// truncated if it does not fit.
func (w Width) Encode(v uint64) []byte {
	b := make([]byte, Width64)
	binary.LittleEndian.PutUint64(b, v)
	return b[:w]
}

// Decode a little-endian byte sequence. The length of the sequence should be
// the same as the width.
func (w Width) Decode(b []byte) uint64 {
	var v [Width64]byte
	copy(v[:], b[:w])
	return binary.LittleEndian.Uint64(v[:])
}
