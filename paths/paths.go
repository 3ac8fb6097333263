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

package paths

import (
	"os"
	"path/filepath"
)

// the base path for all resources. note that we don't use this value directly
// except in the getBasePath() function. that function should be used instead.
const baseResourcePath = ".limitpatch"

// ResourcePath returns the resource string (representing the resource to be
// loaded) prepended with operating system specific details. The directory
// part of the resource is created if it does not already exist.
func ResourcePath(subPth string, file string) (string, error) {
	pth := filepath.Join(getBasePath(), subPth)

	if _, err := os.Stat(pth); err != nil {
		if err := os.MkdirAll(pth, 0700); err != nil {
			return "", err
		}
	}

	return filepath.Join(pth, file), nil
}

// getBasePath() returns baseResourcePath if it exists in the current
// directory. Otherwise, it returns the limitpatch directory in the user's
// configuration directory.
//
// note that we're not checking for the existance of the resource requested by
// the caller, or even the existance of the configuration directory.
func getBasePath() string {
	if _, err := os.Stat(baseResourcePath); err == nil {
		return baseResourcePath
	}

	cfg, err := os.UserConfigDir()
	if err != nil {
		return baseResourcePath
	}
	return filepath.Join(cfg, baseResourcePath[1:])
}
