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
	"io"
	"strings"

	"github.com/limitpatch/limitpatch/curated"
	"github.com/limitpatch/limitpatch/logger"
)

// Identify which of the profiles describes the image. Exactly one profile
// must match. If no profile matches the error will be UnrecognizedImage and if
// more than one profile matches the error will be AmbiguousIdentity.
//
// A profile whose identity cannot be read from the image (because the image
// is too small, for example) does not match. The read error is logged.
func Identify(img io.ReaderAt, profiles []Profile) (Profile, error) {
	var matches []Profile

	for _, p := range profiles {
		w := p.Width()
		b, err := read(img, p.IDAddress, w)
		if err != nil {
			logger.Logf(logger.Allow, "identify", "%s: %v", p.Name, curated.Errorf(ReadFailure, p.IDAddress, err))
			continue
		}

		if bytes.Equal(b, w.Encode(p.ExpectedID)) {
			logger.Logf(logger.Allow, "identify", "%s: identity found at 0x%06x", p.Name, p.IDAddress)
			matches = append(matches, p)
		}
	}

	switch len(matches) {
	case 0:
		return Profile{}, curated.Errorf(UnrecognizedImage)
	case 1:
		return matches[0], nil
	}

	names := make([]string, len(matches))
	for i := range matches {
		names[i] = matches[i].Name
	}
	return Profile{}, curated.Errorf(AmbiguousIdentity, strings.Join(names, ", "))
}
