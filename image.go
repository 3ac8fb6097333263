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

package main

import (
	"github.com/limitpatch/limitpatch/curated"
	"github.com/limitpatch/limitpatch/logger"
	"github.com/limitpatch/limitpatch/modalflag"
	"github.com/limitpatch/limitpatch/patch"
	"github.com/limitpatch/limitpatch/target"
)

// flags that decide how the target image is accessed
type imageFlags struct {
	pid       *int
	process   *string
	mmap      *bool
	va        *bool
	imageBase *uint32
}

func addImageFlags(md *modalflag.Modes) imageFlags {
	return imageFlags{
		pid:       md.AddInt("pid", 0, "patch running process with pid"),
		process:   md.AddString("process", "", "patch running process with name"),
		mmap:      md.AddBool("mmap", false, "patch executable file in place using a memory mapping"),
		va:        md.AddBool("va", false, "addresses are virtual addresses translated with the PE section table"),
		imageBase: md.AddAddress("imagebase", 0, "addresses are virtual addresses relative to image base"),
	}
}

// live returns true if the target is a running process.
func (f imageFlags) live() bool {
	return *f.pid != 0 || *f.process != ""
}

// opened is an image with the function that finishes with it. The file field
// is only set if the image was loaded from a file and needs to be saved.
type opened struct {
	img   patch.Image
	file  *target.File
	close func() error
}

// open the image described by the flags. the path argument is ignored for
// live processes.
func (f imageFlags) open(path string) (opened, error) {
	if f.live() {
		return f.attach()
	}

	if path == "" {
		return opened{}, curated.Errorf("executable file required")
	}

	var o opened

	if *f.mmap {
		m, err := target.MapFile(path)
		if err != nil {
			return opened{}, err
		}
		o = opened{img: m, close: m.Close}
	} else {
		fl, err := target.LoadFile(path)
		if err != nil {
			return opened{}, err
		}
		o = opened{img: fl, file: fl, close: func() error { return nil }}
		logger.Logf(logger.Allow, "image", "%s: %d bytes, sha1 %s", path, fl.Len(), fl.Hash())
	}

	switch {
	case *f.va:
		base, sections, err := target.ParsePE(path)
		if err != nil {
			_ = o.close()
			return opened{}, err
		}
		o.img = target.NewTranslated(o.img, base, sections)
		logger.Logf(logger.Allow, "image", "%s: image base 0x%06x, %d sections", path, base, len(sections))
	case *f.imageBase != 0:
		o.img = target.NewFlat(o.img, *f.imageBase)
	}

	return o, nil
}

func (f imageFlags) attach() (opened, error) {
	pid := *f.pid
	if *f.process != "" {
		if pid != 0 {
			return opened{}, curated.Errorf("specify -pid or -process but not both")
		}
		var err error
		pid, err = target.FindProcess(*f.process)
		if err != nil {
			return opened{}, err
		}
	}

	p, err := target.AttachProcess(pid)
	if err != nil {
		return opened{}, err
	}
	return opened{img: p, close: p.Detach}, nil
}
