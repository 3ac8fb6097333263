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
	"errors"
	"io"
)

// Image is the target of the patching process. It might be an executable file
// or the address space of a running process. Addresses in the patch table are
// used as offsets for the ReadAt() and WriteAt() functions without any
// translation.
//
// The patch engine assumes it has exclusive access to the image for the
// duration of a run.
type Image interface {
	io.ReaderAt
	io.WriterAt
}

// Reserver is implemented by images that can make room for the extended
// section themselves.
//
// Reservation() returns the address that Reserve() would return for the size
// without changing the image. Reserve() is called at most once per run with
// the size of the layout and must return the same address.
type Reserver interface {
	Reservation(size uint32) (uint32, error)
	Reserve(size uint32) (uint32, error)
}

// read exactly width bytes from the image at address.
func read(img io.ReaderAt, address uint32, width Width) ([]byte, error) {
	b := make([]byte, width)
	n, err := img.ReadAt(b, int64(address))

	// the io.ReaderAt contract allows io.EOF to be returned with a full read
	if n == len(b) {
		return b, nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return nil, err
}

// write all of data to the image at address.
func write(img io.WriterAt, address uint32, data []byte) error {
	n, err := img.WriteAt(data, int64(address))
	if err != nil {
		return err
	}
	if n != len(data) {
		return io.ErrShortWrite
	}
	return nil
}
