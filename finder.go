/*
 * finder.go, part of closepairs.
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

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// FinderKind selects a Finder variant.
type FinderKind int

const (
	// Quadratic tests every pair. It is exact and is the baseline
	// the other variants are checked against.
	Quadratic FinderKind = iota
	// Grid bins objects by size and hashes each bin on a sparse grid.
	// It is exact, and the default for large sets.
	Grid
	// BoxSweep sorts the object boxes along one axis and sweeps. It
	// reports every pair whose boxes overlap, a superset of the close
	// pairs. It can be compiled out with the noboxsweep build tag.
	BoxSweep
	// NearestNeighbor builds a kd-tree over one set and queries a ball
	// around each object of the other. It reports a superset of the
	// close pairs.
	NearestNeighbor
)

var kindNames = [...]string{"quadratic", "grid", "boxsweep", "nearest"}

func (k FinderKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("FinderKind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseFinderKind returns the FinderKind with the given name.
func ParseFinderKind(s string) (FinderKind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(s, n) {
			return FinderKind(i), nil
		}
	}
	return 0, newConfigError("ParseFinderKind", "unknown finder kind %q", s)
}

// NewFinder returns a Finder of the kind given in O (the default options
// if O is nil), set to the distance in O.
func NewFinder(O *Options) (Finder, error) {
	if O == nil {
		O = DefaultOptions()
	}
	if err := O.Check(); err != nil {
		return nil, errDecorate(err, "NewFinder")
	}
	if O.cell != nil && (O.kind == BoxSweep || O.kind == NearestNeighbor) {
		return nil, newConfigError("NewFinder", "the %s finder does not support periodic boundaries", O.kind)
	}
	var f Finder
	var err error
	switch O.kind {
	case Quadratic:
		f = NewQuadraticFinder(O)
	case Grid:
		f = NewGridFinder(O)
	case BoxSweep:
		f, err = newBoxSweepFinder(O)
	case NearestNeighbor:
		f = NewNearestFinder(O)
	}
	if err != nil {
		return nil, errDecorate(err, "NewFinder")
	}
	return f, nil
}

// DefaultFinder returns the finder best suited for about n objects: a grid
// finder when n reaches the minimum grid size of O, the quadratic finder
// otherwise. O may be nil.
func DefaultFinder(n int, O *Options) Finder {
	if O == nil {
		O = DefaultOptions()
	}
	if n >= O.minGridSize {
		return NewGridFinder(O)
	}
	return NewQuadraticFinder(O)
}

// finderBase keeps the distance for the Finder implementations.
type finderBase struct {
	distance float64
}

func (F *finderBase) Distance() float64 {
	return F.distance
}

func (F *finderBase) SetDistance(d float64) error {
	if err := checkNonNegative("SetDistance", "distance", d); err != nil {
		return err
	}
	F.distance = d
	return nil
}

// spherePairFunc is the sphere part of a Finder.
type spherePairFunc func(a, b []Sphere) (Pairs, error)

// boxPairsBySpheres answers a box query with a sphere finder: each box is
// replaced by its circumscribed sphere, and the candidates are kept if
// the boxes themselves are close. A nil b means a single set query.
// Boxes grown by d in every direction reach d*sqrt(3) away along the
// diagonals, so the spheres are grown to cover that.
func boxPairsBySpheres(caller string, single func([]Sphere) (Pairs, error), bip spherePairFunc, d float64, a, b []r3.Box) ([][2]int, error) {
	if err := checkBoxes(caller, a); err != nil {
		return nil, err
	}
	extra := 0.5 * d * (math.Sqrt(3) - 1)
	if b == nil {
		p, err := single(boxSpheres(a, extra))
		if err != nil {
			return nil, errDecorate(err, caller)
		}
		ret := make([][2]int, 0, len(p))
		for _, v := range p {
			if BoxesClose(a[v.A], a[v.B], d) {
				ret = append(ret, [2]int{v.A, v.B})
			}
		}
		return canonicalIndexPairs(ret, true), nil
	}
	if err := checkBoxes(caller, b); err != nil {
		return nil, err
	}
	sa := boxSpheres(a, extra)
	sb := boxSpheres(b, extra)
	//IDs in b are shifted so they can't collide with those in a.
	for i := range sb {
		sb[i].ID += len(a)
	}
	p, err := bip(sa, sb)
	if err != nil {
		return nil, errDecorate(err, caller)
	}
	ret := make([][2]int, 0, len(p))
	for _, v := range p {
		i, j := v.A, v.B-len(a)
		if BoxesClose(a[i], b[j], d) {
			ret = append(ret, [2]int{i, j})
		}
	}
	return canonicalIndexPairs(ret, false), nil
}
