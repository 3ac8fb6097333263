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

package patch_test

import (
	"errors"

	"github.com/limitpatch/limitpatch/layout"
	"github.com/limitpatch/limitpatch/patch"
)

// a small image with a one byte identity at 0x100 and room for patches below
// it.
func smallProfile(sets ...patch.Set) patch.Profile {
	return patch.Profile{
		Name:       "small",
		IDAddress:  0x100,
		ExpectedID: 0xab,
		IDWidth:    patch.Width8,
		Sets:       sets,
	}
}

func smallImage() []byte {
	b := make([]byte, 0x200)
	b[0x100] = 0xab
	return b
}

func smallLayout() layout.Layout {
	return layout.Compute([]layout.Region{
		{Name: "first", Size: 0x100},
		{Name: "second", Size: 0x40},
	})
}

var errWriteProtect = errors.New("write protected")

// image that cannot be written to and which does not implement the Reserver
// interface.
type readOnly struct {
	data []byte
}

func (r readOnly) ReadAt(p []byte, off int64) (int, error) {
	return copy(p, r.data[off:]), nil
}

func (r readOnly) WriteAt(p []byte, off int64) (int, error) {
	return 0, errWriteProtect
}

// image that does not implement the Reserver interface
type fixed struct {
	data []byte
}

func (f fixed) ReadAt(p []byte, off int64) (int, error) {
	return copy(p, f.data[off:]), nil
}

func (f fixed) WriteAt(p []byte, off int64) (int, error) {
	return copy(f.data[off:], p), nil
}
