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
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Outcome of an attempt to apply (or revert) a single patch.
type Outcome int

// List of valid Outcome values.
const (
	Applied Outcome = iota
	Mismatch
	WriteFailed
	ReadFailed
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Mismatch:
		return "verification_mismatch"
	case WriteFailed:
		return "write_failed"
	case ReadFailed:
		return "read_failed"
	}
	return fmt.Sprintf("unknown outcome (%d)", int(o))
}

// Result of an attempt to apply (or revert) a single patch. Every result is
// attributable to a profile, a set and an address.
type Result struct {
	Profile string
	Set     string
	Patch   Patch
	Outcome Outcome

	// the bytes the patch expected to find, the bytes found and the bytes
	// written (or that would have been written)
	Expected []byte
	Found    []byte
	Written  []byte

	// nil if Outcome is Applied
	Err error
}

func (r Result) String() string {
	s := strings.Builder{}
	if r.Outcome == Applied {
		s.WriteString("+ ")
	} else {
		s.WriteString("! ")
	}
	s.WriteString(fmt.Sprintf("%s: %s: 0x%06x %s", r.Profile, r.Set, r.Patch.Address(), r.Outcome))
	if d := r.Patch.Description(); d != "" {
		s.WriteString(fmt.Sprintf(" [%s]", d))
	}
	if r.Err != nil {
		s.WriteString(fmt.Sprintf(": %v", r.Err))
	}
	return s.String()
}

// Operation performed by the engine.
type Operation string

// List of valid Operation values.
const (
	OpApply  Operation = "apply"
	OpRevert Operation = "revert"
)

// Report is the collected results of one run of the engine over one profile.
type Report struct {
	Operation Operation
	Profile   string

	// address of the extended section in the target. zero if the run did
	// not use the extended section
	SectionBase uint32
	Relocated   bool

	// names of sets that were not attempted
	Skipped []string

	Results []Result
}

// Count returns the number of results with the outcome.
func (r Report) Count(o Outcome) int {
	var n int
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// Failures returns every result that is not Applied.
func (r Report) Failures() []Result {
	var f []Result
	for _, res := range r.Results {
		if res.Outcome != Applied {
			f = append(f, res)
		}
	}
	return f
}

// Complete returns true if every attempted patch was applied.
func (r Report) Complete() bool {
	return r.Count(Applied) == len(r.Results)
}

// WriteText writes a human readable version of the report. One line per
// result followed by a summary line.
func (r Report) WriteText(w io.Writer) error {
	b := strings.Builder{}
	for _, res := range r.Results {
		b.WriteString(res.String())
		b.WriteString("\n")
	}
	for _, s := range r.Skipped {
		b.WriteString(fmt.Sprintf("? %s: %s: skipped\n", r.Profile, s))
	}
	if r.Relocated {
		b.WriteString(fmt.Sprintf("extended section at 0x%06x\n", r.SectionBase))
	}
	b.WriteString(fmt.Sprintf("%s %s: %d of %d patches %s", r.Operation, r.Profile,
		r.Count(Applied), len(r.Results), Applied))
	if f := len(r.Results) - r.Count(Applied); f > 0 {
		b.WriteString(fmt.Sprintf(" (%d %s, %d %s, %d %s)",
			r.Count(Mismatch), Mismatch, r.Count(WriteFailed), WriteFailed, r.Count(ReadFailed), ReadFailed))
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

type yamlResult struct {
	Set         string `yaml:"set"`
	Address     string `yaml:"address"`
	Description string `yaml:"description,omitempty"`
	Outcome     string `yaml:"outcome"`
	Expected    string `yaml:"expected"`
	Found       string `yaml:"found,omitempty"`
	Written     string `yaml:"written"`
	Error       string `yaml:"error,omitempty"`
}

type yamlReport struct {
	Operation   string       `yaml:"operation"`
	Profile     string       `yaml:"profile"`
	SectionBase string       `yaml:"section_base,omitempty"`
	Skipped     []string     `yaml:"skipped,omitempty"`
	Applied     int          `yaml:"applied"`
	Attempted   int          `yaml:"attempted"`
	Results     []yamlResult `yaml:"results"`
}

// WriteYAML writes the report as a YAML document.
func (r Report) WriteYAML(w io.Writer) error {
	y := yamlReport{
		Operation: string(r.Operation),
		Profile:   r.Profile,
		Skipped:   r.Skipped,
		Applied:   r.Count(Applied),
		Attempted: len(r.Results),
		Results:   make([]yamlResult, 0, len(r.Results)),
	}
	if r.Relocated {
		y.SectionBase = fmt.Sprintf("0x%06x", r.SectionBase)
	}

	for _, res := range r.Results {
		yr := yamlResult{
			Set:         res.Set,
			Address:     fmt.Sprintf("0x%06x", res.Patch.Address()),
			Description: res.Patch.Description(),
			Outcome:     res.Outcome.String(),
			Expected:    fmt.Sprintf("% x", res.Expected),
			Found:       fmt.Sprintf("% x", res.Found),
			Written:     fmt.Sprintf("% x", res.Written),
		}
		if res.Err != nil {
			yr.Error = res.Err.Error()
		}
		y.Results = append(y.Results, yr)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(y); err != nil {
		return err
	}
	return enc.Close()
}
