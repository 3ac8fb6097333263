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
	"bytes"
	"fmt"

	"github.com/limitpatch/limitpatch/curated"
	"github.com/limitpatch/limitpatch/layout"
	"github.com/limitpatch/limitpatch/logger"
)

// Engine applies the patches of a profile to an image.
//
// The fields of Engine should be set before calling any of the functions and
// not changed afterwards.
type Engine struct {
	Layout layout.Layout

	// the address of the extended section in the target. only used if the
	// image does not implement the Reserver interface
	SectionBase uint32

	// allow SectionBase to be zero. without this a profile with relocating
	// patches will fail with a NoSection error if SectionBase is zero and the
	// image cannot reserve the section itself
	AllowZeroSection bool

	// names of disabled sets to apply
	Enable []string

	// names of sets to skip
	Skip []string

	// log every patch as it is attempted
	Verbose logger.Verbosity
}

// NewEngine is the preferred method of initialisation for the Engine type.
func NewEngine(t Table) *Engine {
	return &Engine{
		Layout: t.Layout,
	}
}

// Run identifies the image from the list of profiles and then applies the
// patches of the matching profile. See Identify() and Apply().
func (e *Engine) Run(img Image, profiles []Profile) (Report, error) {
	p, err := Identify(img, profiles)
	if err != nil {
		return Report{}, err
	}
	return e.Apply(img, p)
}

// Apply every patch in every selected set of the profile to the image, in
// declaration order.
//
// Each patch is verified before it is written: the bytes in the image must be
// the same as the original value of the patch. A patch that fails
// verification is not written. Failures do not prevent the remaining patches
// from being attempted. The result of every patch is collected in the Report.
//
// Patches are not idempotent. Applying a profile to an image that has already
// been patched will result in every patch failing verification.
//
// The returned error is only non-nil if no patch was attempted.
func (e *Engine) Apply(img Image, p Profile) (Report, error) {
	sets, skipped := e.selectSets(p)

	r := Report{
		Operation: OpApply,
		Profile:   p.Name,
		Skipped:   skipped,
		Relocated: relocates(sets),
	}

	if r.Relocated {
		base, err := e.sectionBase(img, p)
		if err != nil {
			return Report{}, err
		}
		r.SectionBase = base
	}

	resolved, err := e.resolve(sets, r.SectionBase)
	if err != nil {
		return Report{}, curated.Errorf("%s: %v", p.Name, err)
	}

	// the image is only extended once every patch has been resolved and if at
	// least one relocating patch can be applied
	if rsv, ok := img.(Reserver); ok && r.Relocated {
		if relocationPending(img, resolved) {
			err := e.reserve(rsv, p, r.SectionBase)
			if err != nil {
				return Report{}, err
			}
		} else {
			logger.Logf(logger.Allow, "patch", "%s: no relocating patch can be applied: extended section not reserved", p.Name)
			r.Relocated = false
			r.SectionBase = 0
		}
	}

	for i, s := range sets {
		logger.Logf(logger.Allow, "patch", "%s: applying %s (%d patches)", p.Name, s.Name, len(s.Patches))
		for _, rp := range resolved[i] {
			r.Results = append(r.Results, e.attempt(img, p, s, rp.Patch, rp.Original, rp.Replacement))
		}
	}

	e.logSummary(r)

	return r, nil
}

// Revert the patches of a profile. This is the reverse of Apply(): the bytes
// in the image must be the same as the replacement value and the original
// value is written.
//
// Revert never reserves an extended section. If the profile contains
// relocating patches then SectionBase must be set to the address that was
// used when the profile was applied.
func (e *Engine) Revert(img Image, p Profile) (Report, error) {
	sets, skipped := e.selectSets(p)

	r := Report{
		Operation: OpRevert,
		Profile:   p.Name,
		Skipped:   skipped,
		Relocated: relocates(sets),
	}

	if r.Relocated {
		base, err := e.configuredBase(p)
		if err != nil {
			return Report{}, err
		}
		r.SectionBase = base
	}

	resolved, err := e.resolve(sets, r.SectionBase)
	if err != nil {
		return Report{}, curated.Errorf("%s: %v", p.Name, err)
	}

	for i, s := range sets {
		logger.Logf(logger.Allow, "patch", "%s: reverting %s (%d patches)", p.Name, s.Name, len(s.Patches))
		for _, rp := range resolved[i] {
			r.Results = append(r.Results, e.attempt(img, p, s, rp.Patch, rp.Replacement, rp.Original))
		}
	}

	e.logSummary(r)

	return r, nil
}

// attempt a single patch. the bytes in the image must equal expect before
// replacement is written.
func (e *Engine) attempt(img Image, p Profile, s Set, ptc Patch, expect []byte, replacement []byte) Result {
	res := Result{
		Profile:  p.Name,
		Set:      s.Name,
		Patch:    ptc,
		Expected: expect,
		Written:  replacement,
	}

	found, err := read(img, ptc.Address(), ptc.Width())
	if err != nil {
		res.Outcome = ReadFailed
		res.Err = curated.Errorf(ReadFailure, ptc.Address(), err)
		logger.Logf(logger.Allow, "patch", "%s: %s: %v", p.Name, s.Name, res.Err)
		return res
	}
	res.Found = found

	if !bytes.Equal(found, expect) {
		res.Outcome = Mismatch
		res.Err = curated.Errorf(VerificationMismatch, ptc.Address(), expect, found)
		logger.Logf(logger.Allow, "patch", "%s: %s: %v", p.Name, s.Name, res.Err)
		return res
	}

	err = write(img, ptc.Address(), replacement)
	if err != nil {
		res.Outcome = WriteFailed
		res.Err = curated.Errorf(WriteFailure, ptc.Address(), err)
		logger.Logf(logger.Allow, "patch", "%s: %s: %v", p.Name, s.Name, res.Err)
		return res
	}

	res.Outcome = Applied
	logger.Logf(e.Verbose, "patch", "%s: %s: 0x%06x: % x -> % x", p.Name, s.Name, ptc.Address(), expect, replacement)

	return res
}

// selectSets returns the sets of the profile that should be attempted and the
// names of those that should not.
func (e *Engine) selectSets(p Profile) ([]Set, []string) {
	for _, l := range [][]string{e.Enable, e.Skip} {
		for _, n := range l {
			if _, ok := p.Set(n); !ok {
				logger.Logf(logger.Allow, "patch", "%s: no set named %q", p.Name, n)
			}
		}
	}

	var sets []Set
	var skipped []string

	for _, s := range p.Sets {
		if contains(e.Skip, s.Name) || (s.Disabled && !contains(e.Enable, s.Name)) {
			skipped = append(skipped, s.Name)
			continue
		}
		sets = append(sets, s)
	}

	return sets, skipped
}

// sectionBase returns the address of the extended section. if the image
// implements the Reserver interface this is the address the image will reserve
// the section at. nothing is reserved by this function.
func (e *Engine) sectionBase(img Image, p Profile) (uint32, error) {
	if r, ok := img.(Reserver); ok {
		base, err := r.Reservation(e.Layout.Size())
		if err != nil {
			return 0, curated.Errorf(NoSection, p.Name+": "+err.Error())
		}
		return base, nil
	}
	return e.configuredBase(p)
}

// reserve the extended section. the reserved address must be the address
// returned by sectionBase() because patches have already been resolved.
func (e *Engine) reserve(r Reserver, p Profile, base uint32) error {
	reserved, err := r.Reserve(e.Layout.Size())
	if err != nil {
		return curated.Errorf(NoSection, p.Name+": "+err.Error())
	}
	if reserved != base {
		return curated.Errorf(NoSection, fmt.Sprintf("%s: reserved at 0x%06x not 0x%06x", p.Name, reserved, base))
	}
	logger.Logf(logger.Allow, "patch", "%s: reserved %#x bytes for extended section at 0x%06x", p.Name, e.Layout.Size(), base)
	return nil
}

// relocationPending returns true if the image contains the original value of
// at least one relocating patch.
func relocationPending(img Image, resolved [][]Resolved) bool {
	for _, l := range resolved {
		for _, rp := range l {
			if _, ok := rp.Patch.(Relocating); !ok {
				continue
			}
			found, err := read(img, rp.Patch.Address(), rp.Patch.Width())
			if err == nil && bytes.Equal(found, rp.Original) {
				return true
			}
		}
	}
	return false
}

func (e *Engine) configuredBase(p Profile) (uint32, error) {
	if e.SectionBase == 0 && !e.AllowZeroSection {
		return 0, curated.Errorf(NoSection, p.Name)
	}
	return e.SectionBase, nil
}

// resolve every patch in the list of sets. resolution happens before anything
// is written so that a defect in the table cannot leave the image half
// patched.
func (e *Engine) resolve(sets []Set, base uint32) ([][]Resolved, error) {
	resolved := make([][]Resolved, len(sets))
	for i, s := range sets {
		resolved[i] = make([]Resolved, 0, len(s.Patches))
		for _, ptc := range s.Patches {
			rp, err := Resolve(ptc, e.Layout, base)
			if err != nil {
				return nil, curated.Errorf("%s: %v", s.Name, err)
			}
			resolved[i] = append(resolved[i], rp)
		}
	}
	return resolved, nil
}

func (e *Engine) logSummary(r Report) {
	logger.Logf(logger.Allow, "patch", "%s: %s: %d of %d patches applied", r.Profile, r.Operation, r.Count(Applied), len(r.Results))
}

func contains(l []string, s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}
