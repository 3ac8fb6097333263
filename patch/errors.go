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

// Patterns for curated errors created by the patch package. Use these with
// curated.Is() and curated.Has() to distinguish errors.
const (
	// identification. fatal for the run and returned before any byte of the
	// image is touched
	UnrecognizedImage = "unrecognized image: no profile matches"
	AmbiguousIdentity = "ambiguous identity: %s"

	// relocation. fatal for the run and returned before any byte of the image
	// is touched
	NoSection          = "no extended section base for %s"
	UnknownRegion      = "unknown region %q for patch at 0x%06x"
	RelocationOverflow = "relocation overflow at 0x%06x (%#x)"
	InvalidWidth       = "invalid width for patch at 0x%06x (%d)"

	// per patch failures. these are collected in the Report and never stop
	// the remaining patches from being attempted
	VerificationMismatch = "verification mismatch at 0x%06x: expected % x found % x"
	WriteFailure         = "write failure at 0x%06x: %v"
	ReadFailure          = "read failure at 0x%06x: %v"

	// table validation
	DuplicateIdentity  = "duplicate identity: %s and %s"
	DuplicateProfile   = "duplicate profile name: %s"
	OffsetOutOfRegion  = "offset %#x out of region %q for patch at 0x%06x"
	OverlappingPatches = "overlapping patches in %s: 0x%06x and 0x%06x"
	WidthMismatch      = "width of value does not match patch at 0x%06x"
	InvalidIDWidth     = "invalid identity width for %s"
)
