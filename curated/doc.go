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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error. The pattern is used to
// differentiate curated errors from one another:
//
//	e := curated.Errorf("verification mismatch at 0x%06x", address)
//
//	if curated.Is(e, "verification mismatch at 0x%06x") {
//		fmt.Println("true")
//	}
//
// Packages that produce curated errors usually export the patterns as
// constants so that callers do not need to repeat the string.
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain. Curated errors also implement the Unwrap() []error
// function so that the standard library errors.Is() function can find plain
// errors (io.EOF for example) wrapped by a curated error.
//
// The Error() function ensures that the error chain is normalised.
// Specifically, that the chain does not contain duplicate adjacent parts. This
// means that it is safe for every layer of a call stack to wrap an error with
// a "context: %v" pattern without the context appearing more than once.
package curated
