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
	"github.com/limitpatch/limitpatch/modalflag"
	"github.com/limitpatch/limitpatch/patch"
)

// list prints the patch table. With no arguments every profile is listed.
// Otherwise only the named profiles are listed.
func list(md *modalflag.Modes, tbl patch.Table) error {
	md.NewMode()
	asYAML := md.AddBool("yaml", false, "write table as YAML")
	patches := md.AddBool("patches", false, "list every patch in every set")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	profiles := tbl.Profiles
	if len(md.RemainingArgs()) > 0 {
		profiles = nil
		for _, n := range md.RemainingArgs() {
			prof, ok := tbl.Profile(n)
			if !ok {
				return curated.Errorf("no profile named %q", n)
			}
			profiles = append(profiles, prof)
		}
	}

	if *asYAML {
		return writeTableYAML(md.Output, profiles)
	}

	for _, prof := range profiles {
		fmt.Fprintf(md.Output, "%s: identity %#x (%s) at 0x%06x\n", prof.Name, prof.ExpectedID, prof.Width(), prof.IDAddress)
		for _, s := range prof.Sets {
			state := "enabled"
			if s.Disabled {
				state = "disabled"
			}
			fmt.Fprintf(md.Output, "  %s: %d patches (%s)\n", s.Name, len(s.Patches), state)
			if *patches {
				for _, ptc := range s.Patches {
					fmt.Fprintf(md.Output, "    %s\n", ptc)
				}
			}
		}
	}

	return nil
}

type yamlPatch struct {
	Address     string `yaml:"address"`
	Width       string `yaml:"width"`
	Original    string `yaml:"original"`
	Replacement string `yaml:"replacement,omitempty"`
	Region      string `yaml:"region,omitempty"`
	Offset      string `yaml:"offset,omitempty"`
	Description string `yaml:"description,omitempty"`
}

type yamlSet struct {
	Name     string      `yaml:"name"`
	Disabled bool        `yaml:"disabled,omitempty"`
	Patches  []yamlPatch `yaml:"patches"`
}

type yamlProfile struct {
	Name       string    `yaml:"name"`
	IDAddress  string    `yaml:"id_address"`
	ExpectedID string    `yaml:"expected_id"`
	Sets       []yamlSet `yaml:"sets"`
}

func writeTableYAML(w io.Writer, profiles []patch.Profile) error {
	var y []yamlProfile

	for _, prof := range profiles {
		yp := yamlProfile{
			Name:       prof.Name,
			IDAddress:  fmt.Sprintf("0x%06x", prof.IDAddress),
			ExpectedID: fmt.Sprintf("%#x", prof.ExpectedID),
		}

		for _, s := range prof.Sets {
			ys := yamlSet{
				Name:     s.Name,
				Disabled: s.Disabled,
				Patches:  make([]yamlPatch, 0, len(s.Patches)),
			}

			for _, ptc := range s.Patches {
				ypt := yamlPatch{
					Address:     fmt.Sprintf("0x%06x", ptc.Address()),
					Width:       ptc.Width().String(),
					Original:    fmt.Sprintf("%#x", ptc.Original()),
					Description: ptc.Description(),
				}
				switch ptc := ptc.(type) {
				case patch.Direct:
					ypt.Replacement = fmt.Sprintf("%#x", ptc.Replacement)
				case patch.Relocating:
					ypt.Region = ptc.Region
					ypt.Offset = fmt.Sprintf("%#x", ptc.Offset)
				}
				ys.Patches = append(ys.Patches, ypt)
			}

			yp.Sets = append(yp.Sets, ys)
		}

		y = append(y, yp)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(y); err != nil {
		return err
	}
	return enc.Close()
}

// showLayout prints the layout of the extended section. If a section address
// is given then the absolute address of each region is also shown.
func showLayout(md *modalflag.Modes, tbl patch.Table) error {
	md.NewMode()
	section := md.AddAddress("section", envAddress(envSection), "address of the extended section in the target")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	for _, a := range tbl.Layout.Allocations() {
		if *section != 0 {
			fmt.Fprintf(md.Output, "%s [0x%06x]\n", a, uint64(*section)+uint64(a.Start))
		} else {
			fmt.Fprintln(md.Output, a)
		}
	}
	fmt.Fprintf(md.Output, "total: %#x bytes\n", tbl.Layout.Size())

	return nil
}
