/*
 * cache.go, part of closepairs.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package closepairs

import "math"

// Container keeps the close pairs of a SphereSource up to date. The list
// is computed with the distance grown by twice the slack, and is reused
// as long as no object has moved farther than the slack since. Every pair
// within the distance is then in the list, along with some pairs that are
// up to twice the slack farther apart.
type Container struct {
	src      SphereSource
	finder   *RigidFinder
	tracker  *Tracker
	cell     *PeriodicCell
	distance float64
	slack    float64
	pairs    Pairs
	valid    bool
	rebuilds int
}

// NewContainer returns a Container for src with the distance, slack and
// finder given in O, which may be nil.
func NewContainer(src SphereSource, O *Options) (*Container, error) {
	if src == nil {
		return nil, newConfigError("NewContainer", "nil sphere source")
	}
	if O == nil {
		O = DefaultOptions()
	}
	if err := O.Check(); err != nil {
		return nil, errDecorate(err, "NewContainer")
	}
	if math.IsInf(O.slack, 0) {
		return nil, newConfigError("NewContainer", "slack must be finite")
	}
	f, err := NewRigidFinder(nil, O)
	if err != nil {
		return nil, errDecorate(err, "NewContainer")
	}
	return &Container{src: src, finder: f, tracker: NewTracker(), cell: O.cell.clone(), distance: O.distance, slack: O.slack}, nil
}

func (C *Container) Distance() float64 {
	return C.distance
}

// SetDistance changes the distance and drops the cached pairs.
func (C *Container) SetDistance(d float64) error {
	if err := checkNonNegative("Container.SetDistance", "distance", d); err != nil {
		return err
	}
	C.distance = d
	C.Invalidate()
	return nil
}

func (C *Container) Slack() float64 {
	return C.slack
}

// SetSlack changes the slack and drops the cached pairs.
func (C *Container) SetSlack(s float64) error {
	if err := checkNonNegative("Container.SetSlack", "slack", s); err != nil {
		return err
	}
	if math.IsInf(s, 0) {
		return newConfigError("Container.SetSlack", "slack must be finite")
	}
	C.slack = s
	C.Invalidate()
	return nil
}

// AddFilter appends f to the filters and drops the cached pairs.
func (C *Container) AddFilter(f PairFilter) {
	C.finder.AddFilter(f)
	C.Invalidate()
}

// Finder returns the finder the container uses.
func (C *Container) Finder() *RigidFinder {
	return C.finder
}

// Invalidate drops the cached pairs, so the next query recomputes them.
func (C *Container) Invalidate() {
	C.valid = false
	C.tracker.Invalidate()
}

// RebuildCount returns how many times the pairs have been computed.
func (C *Container) RebuildCount() int {
	return C.rebuilds
}

// ClosePairs returns the cached candidate pairs, recomputing them first if
// something moved farther than the slack. The result is canonical and
// belongs to the caller.
func (C *Container) ClosePairs() (Pairs, error) {
	if C.valid {
		stale, moved := C.tracker.Check(C.src, C.slack)
		if !stale {
			Tracef("container: largest move %g within slack %g, reusing %d pairs", moved, C.slack, len(C.pairs))
			return append(Pairs(nil), C.pairs...), nil
		}
		Diagf("container: largest move %g exceeds slack %g", moved, C.slack)
	}
	if err := C.rebuild(); err != nil {
		Opsf("container: rebuild at %g failed: %v", C.distance+2*C.slack, err)
		return nil, errDecorate(err, "Container.ClosePairs")
	}
	return append(Pairs(nil), C.pairs...), nil
}

// ExactClosePairs is ClosePairs without the pairs whose surfaces are
// currently farther apart than the distance. Distances follow the minimum
// image convention if the options had a periodic cell.
func (C *Container) ExactClosePairs() (Pairs, error) {
	p, err := C.ClosePairs()
	if err != nil {
		return nil, errDecorate(err, "Container.ExactClosePairs")
	}
	out := p[:0]
	for _, v := range p {
		a, oka := C.src.Sphere(v.A)
		b, okb := C.src.Sphere(v.B)
		if !oka || !okb {
			inconsistent("Container.ExactClosePairs", "pair %v refers to a sphere that is not in the source", v)
		}
		if closeDelta(C.cell.delta(a.Center, b.Center), a.Radius+b.Radius+C.distance) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (C *Container) rebuild() error {
	if err := C.finder.SetDistance(C.distance + 2*C.slack); err != nil {
		return err
	}
	p, err := C.finder.ClosePairs(C.src)
	if err != nil {
		return err
	}
	C.pairs = p
	C.tracker.Reset(C.src)
	C.valid = true
	C.rebuilds++
	Diagf("container: rebuild %d found %d pairs within %g", C.rebuilds, len(p), C.distance+2*C.slack)
	return nil
}
