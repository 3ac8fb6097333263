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
	"bytes"
	"fmt"
	"io"

	"github.com/limitpatch/limitpatch/curated"
	"github.com/limitpatch/limitpatch/logger"
)

// Status of a patch in an image as found by Check().
type Status int

// List of valid Status values.
const (
	// the original value is in the image. the patch can be applied
	Pending Status = iota

	// the replacement value is in the image. the patch has been applied
	Present

	// neither the original value nor the replacement value is in the image.
	// the patch is not suitable for this image
	Foreign

	// the image could not be read at the address of the patch
	Unreadable
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Present:
		return "present"
	case Foreign:
		return "foreign"
	case Unreadable:
		return "unreadable"
	}
	return fmt.Sprintf("unknown status (%d)", int(s))
}

// Inspection is the status of a single patch.
type Inspection struct {
	Set    string
	Patch  Patch
	Status Status
	Found  []byte
	Err    error
}

func (in Inspection) String() string {
	var mark string
	switch in.Status {
	case Present:
		mark = "+"
	case Pending:
		mark = "?"
	default:
		mark = "!"
	}
	s := fmt.Sprintf("%s %s: 0x%06x %s: % x", mark, in.Set, in.Patch.Address(), in.Status, in.Found)
	if in.Err != nil {
		s = fmt.Sprintf("%s: %v", s, in.Err)
	}
	return s
}

// Check reads every patch in the selected sets of the profile and reports
// whether the patch is pending, present or foreign. Nothing is written.
//
// As with Revert(), relocating patches are resolved using SectionBase.
func (e *Engine) Check(img io.ReaderAt, p Profile) ([]Inspection, error) {
	sets, _ := e.selectSets(p)

	var base uint32
	if relocates(sets) {
		var err error
		base, err = e.configuredBase(p)
		if err != nil {
			return nil, err
		}
	}

	resolved, err := e.resolve(sets, base)
	if err != nil {
		return nil, curated.Errorf("%s: %v", p.Name, err)
	}

	var ins []Inspection
	for i, s := range sets {
		for _, rp := range resolved[i] {
			in := Inspection{
				Set:   s.Name,
				Patch: rp.Patch,
			}

			in.Found, in.Err = read(img, rp.Patch.Address(), rp.Patch.Width())
			switch {
			case in.Err != nil:
				in.Status = Unreadable
				in.Err = curated.Errorf(ReadFailure, rp.Patch.Address(), in.Err)
			case bytes.Equal(in.Found, rp.Original):
				in.Status = Pending
			case bytes.Equal(in.Found, rp.Replacement):
				in.Status = Present
			default:
				in.Status = Foreign
			}

			ins = append(ins, in)
		}
	}

	logger.Logf(logger.Allow, "patch", "%s: checked %d patches", p.Name, len(ins))

	return ins, nil
}
