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

// Package paths contains functions to prepare paths for resource files.
//
// The ResourcePath() function modifies the supplied resource string such
// that it is prepended with the appropriate configuration directory.
//
// The configuration directory is ".limitpatch" if it exists in the current
// working directory. Otherwise it is "limitpatch" in the user's configuration
// directory, as returned by os.UserConfigDir().
package paths
