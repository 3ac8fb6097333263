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

package modalflag

import (
	"fmt"
	"io"
	"strings"
)

// helpWriter collects the usage output of the flag package so that it can be
// amended before being written.
type helpWriter struct {
	buffer strings.Builder
}

// Write implements the io.Writer interface.
func (hw *helpWriter) Write(p []byte) (int, error) {
	return hw.buffer.Write(p)
}

func (hw *helpWriter) help(output io.Writer, path string, subModes []string, additional string) {
	if output == nil {
		return
	}

	lines := strings.Split(hw.buffer.String(), "\n")
	flags := len(lines) > 2

	s := strings.Builder{}

	if !flags && len(subModes) == 0 {
		s.WriteString("No help available")
		if path != "" {
			s.WriteString(fmt.Sprintf(" for %s", path))
		}
		s.WriteString("\n")
		io.WriteString(output, s.String())
		return
	}

	if path != "" {
		s.WriteString(fmt.Sprintf("%s for %s mode\n", lines[0], path))
	} else {
		s.WriteString(lines[0])
		s.WriteString("\n")
	}

	if len(lines) > 1 {
		s.WriteString(strings.Join(lines[1:], "\n"))
	}

	if len(subModes) > 0 {
		if flags {
			s.WriteString("\n")
		}
		s.WriteString(fmt.Sprintf("  available sub-modes: %s\n", strings.Join(subModes, ", ")))
		s.WriteString(fmt.Sprintf("    default: %s\n", subModes[0]))
	}

	if additional != "" {
		s.WriteString("\n")
		s.WriteString(additional)
		s.WriteString("\n")
	}

	io.WriteString(output, s.String())
}
