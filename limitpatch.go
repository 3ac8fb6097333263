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
	"os"
	"strconv"

	"github.com/xyproto/env/v2"

	"github.com/limitpatch/limitpatch/curated"
	"github.com/limitpatch/limitpatch/logger"
	"github.com/limitpatch/limitpatch/modalflag"
	"github.com/limitpatch/limitpatch/patch"
	"github.com/limitpatch/limitpatch/table"
	"github.com/limitpatch/limitpatch/version"
)

// environment variables that provide defaults for command line flags
const (
	envLog     = "LIMITPATCH_LOG"
	envSection = "LIMITPATCH_SECTION"
	envYAML    = "LIMITPATCH_YAML"
)

// exit codes
const (
	exitOK         = 0
	exitIncomplete = 1
	exitArgs       = 10
	exitError      = 20
)

func main() {
	os.Exit(launch(os.Args[1:], os.Stdout))
}

// launch parses the arguments and runs the selected mode. the return value is
// the exit code for the program.
func launch(args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.AddSubModes("APPLY", "VERIFY", "REVERT", "IDENTIFY", "LIST", "LAYOUT", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitOK
	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitArgs
	}

	// the table is built from constant data. defects are programming errors
	// but are reported rather than causing a panic
	tbl := table.New()
	defects, warnings := tbl.Validate()
	for _, w := range warnings {
		logger.Log(logger.Allow, "table", w)
	}
	if len(defects) > 0 {
		for _, d := range defects {
			fmt.Fprintf(output, "* table defect: %v\n", d)
		}
		return exitError
	}

	switch md.Mode() {
	case "APPLY":
		err = apply(md, tbl, patchApply)
	case "REVERT":
		err = apply(md, tbl, patchRevert)
	case "VERIFY":
		err = verify(md, tbl)
	case "IDENTIFY":
		err = identify(md, tbl)
	case "LIST":
		err = list(md, tbl)
	case "LAYOUT":
		err = showLayout(md, tbl)
	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		if curated.Is(err, incomplete) {
			fmt.Fprintf(output, "* %v\n", err)
			return exitIncomplete
		}
		fmt.Fprintf(output, "* error in %s mode: %v\n", md, err)
		return exitError
	}

	return exitOK
}

// returned by APPLY and REVERT modes when at least one patch failed
const incomplete = "%s incomplete: %d of %d patches failed"

// flags common to every mode that operates on an image
type commonFlags struct {
	log     *bool
	yaml    *bool
	verbose *bool
	profile *string
	section *uint32
	enable  *[]string
	skip    *[]string
	image   imageFlags
}

func addCommonFlags(md *modalflag.Modes) commonFlags {
	return commonFlags{
		log:     md.AddBool("log", env.Bool(envLog), "echo log to stdout"),
		yaml:    md.AddBool("yaml", env.Bool(envYAML), "write report as YAML"),
		verbose: md.AddBool("verbose", false, "log every patch"),
		profile: md.AddString("profile", "", "use named profile instead of identifying the executable"),
		section: md.AddAddress("section", envAddress(envSection), "address of the extended section in the target"),
		enable:  md.AddList("enable", nil, "disabled patch sets to apply (comma separated)"),
		skip:    md.AddList("skip", nil, "patch sets to skip (comma separated)"),
		image:   addImageFlags(md),
	}
}

// envAddress returns the value of the environment variable as an address.
// An unset or invalid value is zero.
func envAddress(name string) uint32 {
	s := env.Str(name)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		logger.Logf(logger.Allow, "limitpatch", "%s: not a 32 bit address: %s", name, s)
		return 0
	}
	return uint32(v)
}

func (f commonFlags) engine(tbl patch.Table) *patch.Engine {
	eng := patch.NewEngine(tbl)
	eng.SectionBase = *f.section
	eng.Enable = *f.enable
	eng.Skip = *f.skip
	eng.Verbose = logger.Verbosity(*f.verbose)
	return eng
}

// setLog echoes the log to the writer if requested.
func (f commonFlags) setLog(w io.Writer) {
	if *f.log {
		logger.SetEcho(w)
	} else {
		logger.SetEcho(nil)
	}
}

// selectProfile returns the profile named by the -profile flag or the profile
// identified by the contents of the image.
func (f commonFlags) selectProfile(img io.ReaderAt, tbl patch.Table) (patch.Profile, error) {
	if *f.profile != "" {
		p, ok := tbl.Profile(*f.profile)
		if !ok {
			return patch.Profile{}, curated.Errorf("no profile named %q", *f.profile)
		}
		return p, nil
	}
	return patch.Identify(img, tbl.Profiles)
}

// reportWriter returns a writer for report lines. Lines are coloured if the
// output is a terminal.
func reportWriter(md *modalflag.Modes) io.Writer {
	if f, ok := md.Output.(*os.File); ok && logger.IsTerminal(f) {
		return logger.NewColorizer(f)
	}
	return md.Output
}

func requireOneArg(md *modalflag.Modes, what string) (string, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return "", curated.Errorf("%s required for %s mode", what, md)
	case 1:
		return md.GetArg(0), nil
	}
	return "", curated.Errorf("too many arguments for %s mode", md)
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()
	revision := md.AddBool("revision", false, "display revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *revision {
		v, r, _ := version.Version()
		fmt.Fprintf(md.Output, "%s %s\n%s\n", version.ApplicationName, v, r)
		return nil
	}

	fmt.Fprintln(md.Output, version.String())
	return nil
}
