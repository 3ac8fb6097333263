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
	"strconv"
	"strings"
)

// address is a flag.Value for 32 bit addresses. Any base accepted by
// strconv.ParseUint() can be used, so hexadecimal values need the 0x prefix.
type address uint32

func (a *address) String() string {
	return fmt.Sprintf("0x%06x", uint32(*a))
}

func (a *address) Set(s string) error {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return fmt.Errorf("not a 32 bit address: %s", s)
	}
	*a = address(v)
	return nil
}

// list is a flag.Value for a comma separated list of strings. The flag can be
// given more than once and each occurrence extends the list.
type list struct {
	values *[]string
}

func (l list) String() string {
	if l.values == nil {
		return ""
	}
	return strings.Join(*l.values, ",")
}

func (l list) Set(s string) error {
	for _, v := range strings.Split(s, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			*l.values = append(*l.values, v)
		}
	}
	return nil
}
