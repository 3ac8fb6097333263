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
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/limitpatch/limitpatch/curated"
	"github.com/limitpatch/limitpatch/logger"
	"github.com/limitpatch/limitpatch/modalflag"
	"github.com/limitpatch/limitpatch/patch"
	"github.com/limitpatch/limitpatch/target"
)

type patchOp int

// curated error patterns for flag combinations that apply cannot honour
const (
	liveDryRun   = "-dryrun cannot be used with a running process"
	mappedOutput = "-o cannot be used with -mmap"
)

const (
	patchApply patchOp = iota
	patchRevert
)

// apply (or revert) the patches of the identified profile.
func apply(md *modalflag.Modes, tbl patch.Table, op patchOp) error {
	md.NewMode()
	flags := addCommonFlags(md)
	output := md.AddString("o", "", "output file (default is to overwrite the input file)")
	backup := md.AddBool("backup", true, "backup input file before overwriting it")
	dryRun := md.AddBool("dryrun", false, "do not change the executable file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	flags.setLog(md.Output)

	var path string
	if flags.image.live() {
		if *dryRun {
			return curated.Errorf(liveDryRun)
		}
	} else {
		path, err = requireOneArg(md, "executable file")
		if err != nil {
			return err
		}
	}

	// a mapped file is patched in place. a dry run works on a copy of the
	// file in memory instead
	mapped := *flags.image.mmap && !flags.image.live()
	if mapped {
		if *output != "" {
			return curated.Errorf(mappedOutput)
		}
		if *dryRun {
			*flags.image.mmap = false
			mapped = false
			logger.Logf(logger.Allow, "image", "%s: dry run: file loaded into memory instead of mapped", path)
		}
	}

	o, err := flags.image.open(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := o.close(); err != nil {
			logger.Log(logger.Allow, "image", err)
		}
	}()

	prof, err := flags.selectProfile(o.img, tbl)
	if err != nil {
		return err
	}

	// nothing has been written to the mapped file yet so the backup is of the
	// file as it was
	if mapped && *backup {
		b, err := target.BackupFile(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(md.Output, "backup saved to %s\n", b)
	}

	eng := flags.engine(tbl)

	var r patch.Report
	switch op {
	case patchApply:
		r, err = eng.Apply(o.img, prof)
	case patchRevert:
		r, err = eng.Revert(o.img, prof)
	}
	if err != nil {
		return err
	}

	if *flags.yaml {
		err = r.WriteYAML(md.Output)
	} else {
		err = r.WriteText(reportWriter(md))
	}
	if err != nil {
		return err
	}

	if o.file != nil && o.file.Modified() && !*dryRun {
		if err := save(md, o, *output, *backup); err != nil {
			return err
		}
	}

	if !r.Complete() {
		return curated.Errorf(incomplete, r.Operation, len(r.Failures()), len(r.Results))
	}

	return nil
}

// save the patched file. the input file is backed up first if it is going to
// be overwritten.
func save(md *modalflag.Modes, o opened, output string, backup bool) error {
	if output == "" {
		output = o.file.Path()
		if backup {
			b, err := o.file.Backup()
			if err != nil {
				return err
			}
			fmt.Fprintf(md.Output, "backup saved to %s\n", b)
		}
	}

	if err := o.file.Save(output); err != nil {
		return err
	}
	fmt.Fprintf(md.Output, "saved to %s\n", output)

	return nil
}

// verify reports the status of every patch of the identified profile without
// changing anything.
func verify(md *modalflag.Modes, tbl patch.Table) error {
	md.NewMode()
	flags := addCommonFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	flags.setLog(md.Output)

	var path string
	if !flags.image.live() {
		path, err = requireOneArg(md, "executable file")
		if err != nil {
			return err
		}
	}

	o, err := flags.image.open(path)
	if err != nil {
		return err
	}
	defer o.close()

	prof, err := flags.selectProfile(o.img, tbl)
	if err != nil {
		return err
	}

	ins, err := flags.engine(tbl).Check(o.img, prof)
	if err != nil {
		return err
	}

	if *flags.yaml {
		return writeInspectionsYAML(md.Output, prof, ins)
	}

	w := reportWriter(md)
	counts := make(map[patch.Status]int)
	for _, in := range ins {
		fmt.Fprintf(w, "%s\n", in)
		counts[in.Status]++
	}
	fmt.Fprintf(w, "verify %s: %d %s, %d %s, %d %s, %d %s\n", prof.Name,
		counts[patch.Pending], patch.Pending, counts[patch.Present], patch.Present,
		counts[patch.Foreign], patch.Foreign, counts[patch.Unreadable], patch.Unreadable)

	return nil
}

func writeInspectionsYAML(w io.Writer, prof patch.Profile, ins []patch.Inspection) error {
	type inspection struct {
		Set     string `yaml:"set"`
		Address string `yaml:"address"`
		Status  string `yaml:"status"`
		Found   string `yaml:"found,omitempty"`
		Error   string `yaml:"error,omitempty"`
	}

	y := struct {
		Profile string       `yaml:"profile"`
		Patches []inspection `yaml:"patches"`
	}{
		Profile: prof.Name,
	}

	for _, in := range ins {
		yi := inspection{
			Set:     in.Set,
			Address: fmt.Sprintf("0x%06x", in.Patch.Address()),
			Status:  in.Status.String(),
			Found:   fmt.Sprintf("% x", in.Found),
		}
		if in.Err != nil {
			yi.Error = in.Err.Error()
		}
		y.Patches = append(y.Patches, yi)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(y); err != nil {
		return err
	}
	return enc.Close()
}

// identify prints the name of the profile that matches the executable.
func identify(md *modalflag.Modes, tbl patch.Table) error {
	md.NewMode()
	log := md.AddBool("log", false, "echo log to stdout")
	image := addImageFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	if *log {
		logger.SetEcho(md.Output)
	}

	var path string
	if !image.live() {
		path, err = requireOneArg(md, "executable file")
		if err != nil {
			return err
		}
	}

	o, err := image.open(path)
	if err != nil {
		return err
	}
	defer o.close()

	prof, err := patch.Identify(o.img, tbl.Profiles)
	if err != nil {
		return err
	}

	fmt.Fprintln(md.Output, prof.Name)
	return nil
}
