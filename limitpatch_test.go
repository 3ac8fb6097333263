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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xyproto/env/v2"

	"github.com/limitpatch/limitpatch/patch"
	"github.com/limitpatch/limitpatch/table"
	"github.com/limitpatch/limitpatch/test"
)

// sets an environment variable for the duration of the test. the env package
// caches the environment so it is reloaded after the variable is set and again
// after the variable is restored.
func setenv(t *testing.T, name string, value string) {
	t.Helper()
	t.Cleanup(env.Load)
	t.Setenv(name, value)
	env.Load()
}

// writes an executable that looks like the SWBFspy executable as far as the
// enabled patches are concerned. returns the path to the file.
func swbfspyFile(t *testing.T) string {
	t.Helper()

	tbl := table.New()
	p, ok := tbl.Profile("Battlefront SWBFspy")
	test.DemandSuccess(t, ok)

	b := make([]byte, 0x2a0000)
	copy(b[p.IDAddress:], "Applicat")
	for _, s := range p.Sets {
		if s.Disabled {
			continue
		}
		for _, ptc := range s.Patches {
			rp, err := patch.Resolve(ptc, tbl.Layout, 0)
			test.DemandSuccess(t, err)
			copy(b[ptc.Address():], rp.Original)
		}
	}

	pth := filepath.Join(t.TempDir(), "Battlefront.exe")
	test.DemandSuccess(t, os.WriteFile(pth, b, 0644))
	return pth
}

func TestVersionMode(t *testing.T) {
	var out bytes.Buffer
	test.ExpectEquality(t, launch([]string{"version"}, &out), exitOK)
	test.ExpectSuccess(t, strings.HasPrefix(out.String(), "Limitpatch "))
}

func TestLayoutMode(t *testing.T) {
	var out bytes.Buffer
	test.ExpectEquality(t, launch([]string{"layout", "-section", "0x02a00000"}, &out), exitOK)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	test.DemandEquality(t, len(lines), 4)
	test.ExpectSuccess(t, strings.HasPrefix(lines[0], "dlc_missions: 0x000000 - 0x110000"))
	test.ExpectSuccess(t, strings.HasSuffix(lines[1], "[0x2b10000]"))
	test.ExpectEquality(t, lines[3], "total: 0x41e400 bytes")
}

func TestListMode(t *testing.T) {
	var out bytes.Buffer
	test.ExpectEquality(t, launch([]string{"list", "Battlefront SPTest"}, &out), exitOK)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	test.DemandEquality(t, len(lines), 5)
	test.ExpectEquality(t, lines[0], "Battlefront SPTest: identity 0x746163696c707041 (qword) at 0x202164")
	test.ExpectEquality(t, lines[3], "  DLC Mission Limit Extension: 10 patches (disabled)")

	out.Reset()
	test.ExpectEquality(t, launch([]string{"list", "-yaml"}, &out), exitOK)
	test.ExpectSuccess(t, strings.Contains(out.String(), "region: dlc_missions"))

	out.Reset()
	test.ExpectEquality(t, launch([]string{"list", "Battlefront II"}, &out), exitError)
}

func TestBadArguments(t *testing.T) {
	var out bytes.Buffer
	test.ExpectEquality(t, launch([]string{"apply", "-nosuchflag"}, &out), exitError)

	out.Reset()
	test.ExpectEquality(t, launch([]string{"apply"}, &out), exitError)
	test.ExpectEquality(t, out.String(), "* error in APPLY mode: executable file required for APPLY mode\n")

	out.Reset()
	test.ExpectEquality(t, launch([]string{"identify", filepath.Join(t.TempDir(), "missing.exe")}, &out), exitError)
}

func TestIdentifyMode(t *testing.T) {
	pth := swbfspyFile(t)

	var out bytes.Buffer
	test.ExpectEquality(t, launch([]string{"identify", pth}, &out), exitOK)
	test.ExpectEquality(t, out.String(), "Battlefront SWBFspy\n")

	empty := filepath.Join(t.TempDir(), "empty.exe")
	test.DemandSuccess(t, os.WriteFile(empty, make([]byte, 0x1000), 0644))

	out.Reset()
	test.ExpectEquality(t, launch([]string{"identify", empty}, &out), exitError)
	test.ExpectSuccess(t, strings.Contains(out.String(), patch.UnrecognizedImage))
}

func TestApplyMode(t *testing.T) {
	pth := swbfspyFile(t)
	output := filepath.Join(t.TempDir(), "patched.exe")

	// a file cannot reserve the extended section itself
	var out bytes.Buffer
	test.ExpectEquality(t, launch([]string{"apply", "-o", output, pth}, &out), exitError)
	_, err := os.Stat(output)
	test.ExpectFailure(t, err)

	// the duplicated spawn screen patch always fails so the run is incomplete
	out.Reset()
	test.ExpectEquality(t, launch([]string{"-section", "0x02a00000", "-o", output, pth}, &out), exitIncomplete)
	test.ExpectSuccess(t, strings.Contains(out.String(), "saved to "+output))
	test.ExpectSuccess(t, strings.Contains(out.String(), "1 verification_mismatch"))

	b, err := os.ReadFile(output)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, patch.Width32.Decode(b[0x9d550:0x9d554]), 0x02a00000)
	test.ExpectEquality(t, patch.Width32.Decode(b[0x9d57e:0x9d582]), 0x02a03520)
	test.ExpectEquality(t, patch.Width16.Decode(b[0x1a7e47:0x1a7e49]), 0x2740)

	// the input file is unchanged
	b, err = os.ReadFile(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, patch.Width32.Decode(b[0x9d550:0x9d554]), 0x00734328)

	// every patch in the output file is present
	setenv(t, envSection, "0x02a00000")
	out.Reset()
	test.ExpectEquality(t, launch([]string{"verify", output}, &out), exitOK)
	test.ExpectSuccess(t, strings.Contains(out.String(), " 0 pending"))
	test.ExpectSuccess(t, strings.Contains(out.String(), " 0 foreign"))

	// and can be reverted in place
	out.Reset()
	test.ExpectEquality(t, launch([]string{"revert", "-backup=false", output}, &out), exitIncomplete)
	b, err = os.ReadFile(output)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, patch.Width32.Decode(b[0x9d550:0x9d554]), 0x00734328)
}

func TestApplyYAML(t *testing.T) {
	pth := swbfspyFile(t)

	var out bytes.Buffer
	args := []string{"apply", "-yaml", "-dryrun", "-section", "0x02a00000", "-skip", "Spawn Screen Fix", pth}
	test.ExpectEquality(t, launch(args, &out), exitOK)
	test.ExpectSuccess(t, strings.HasPrefix(out.String(), "operation: apply\nprofile: Battlefront SWBFspy\n"))
	test.ExpectSuccess(t, strings.Contains(out.String(), "- Spawn Screen Fix"))

	// nothing was saved
	b, err := os.ReadFile(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, patch.Width32.Decode(b[0x9d550:0x9d554]), 0x00734328)
}

func TestApplyBackup(t *testing.T) {
	pth := swbfspyFile(t)

	// backups are written to the resource directory in the working
	// directory if it exists
	dir := t.TempDir()
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, os.Chdir(dir))
	defer os.Chdir(wd)
	test.DemandSuccess(t, os.Mkdir(".limitpatch", 0700))

	var out bytes.Buffer
	test.ExpectEquality(t, launch([]string{"apply", "-section", "0x02a00000", pth}, &out), exitIncomplete)

	backups, err := filepath.Glob(filepath.Join(dir, ".limitpatch", "backups", "backup_Battlefront_*.exe"))
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(backups), 1)

	b, err := os.ReadFile(backups[0])
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, patch.Width32.Decode(b[0x9d550:0x9d554]), 0x00734328)

	b, err = os.ReadFile(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, patch.Width32.Decode(b[0x9d550:0x9d554]), 0x02a00000)
}

func TestApplyDryRunTargets(t *testing.T) {
	pth := swbfspyFile(t)

	// a dry run of a mapped file does not change the file on disk
	var out bytes.Buffer
	args := []string{"apply", "-mmap", "-dryrun", "-section", "0x02a00000", "-skip", "Spawn Screen Fix", pth}
	test.ExpectEquality(t, launch(args, &out), exitOK)
	test.ExpectFailure(t, strings.Contains(out.String(), "saved to"))

	b, err := os.ReadFile(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, patch.Width32.Decode(b[0x9d550:0x9d554]), 0x00734328)

	// a running process cannot be patched as a dry run. the process is never
	// attached to
	out.Reset()
	test.ExpectEquality(t, launch([]string{"apply", "-dryrun", "-pid", "1"}, &out), exitError)
	test.ExpectSuccess(t, strings.Contains(out.String(), liveDryRun))

	// a mapped file is always patched in place
	out.Reset()
	args = []string{"apply", "-mmap", "-o", filepath.Join(t.TempDir(), "patched.exe"), pth}
	test.ExpectEquality(t, launch(args, &out), exitError)
	test.ExpectSuccess(t, strings.Contains(out.String(), mappedOutput))
}
