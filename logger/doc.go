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

// Package logger is the central log for the application. Log entries are made
// with the Log() and Logf() functions with a tag identifying the area of the
// program making the entry. Consecutive identical entries are folded into a
// single entry with a repeat count.
//
// Every log request is accompanied by a Permission. The Allow value is the
// usual choice but Verbosity can be used to control detail that should only be
// logged when requested.
//
// The log is bounded. The oldest entries are discarded as new entries are
// added. The log can be echoed to an io.Writer as it is being made with the
// SetEcho() function.
//
// The Colorizer type is an io.Writer that adds terminal colour to line
// oriented output. It should only be used when IsTerminal() is true for the
// file being written to.
package logger
