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

package logger

import (
	"io"
	"strings"
)

// ANSI pens used by the Colorizer.
const (
	penNormal = "\033[0m"
	penRed    = "\033[31m"
	penGreen  = "\033[32m"
	penYellow = "\033[33m"
)

// Colorizer applies basic coloring rules to line oriented output. The colour
// of a line is decided by the line's first character:
//
//	'+' green
//	'!' red
//	'?' yellow
//
// Lines beginning with any other character are written unchanged.
type Colorizer struct {
	out io.Writer
}

// NewColorizer is the preferred method if initialisation for the Colorizer type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{out: out}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (int, error) {
	lines := strings.SplitAfter(string(p), "\n")

	for _, l := range lines {
		if len(l) == 0 {
			continue
		}

		pen := ""
		switch l[0] {
		case '+':
			pen = penGreen
		case '!':
			pen = penRed
		case '?':
			pen = penYellow
		}

		var err error
		if pen == "" {
			_, err = io.WriteString(c.out, l)
		} else {
			// the pen is reset before the newline so that the terminal does
			// not carry the colour into the next line
			body := strings.TrimSuffix(l, "\n")
			s := pen + body + penNormal
			if len(body) < len(l) {
				s += "\n"
			}
			_, err = io.WriteString(c.out, s)
		}
		if err != nil {
			return 0, err
		}
	}

	return len(p), nil
}
