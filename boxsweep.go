//go:build !noboxsweep

/*
 * boxsweep.go, part of closepairs.
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
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// BoxSweepAvailable is false when the package is built with the
// noboxsweep tag, in which case NewFinder refuses the BoxSweep kind.
const BoxSweepAvailable = true

// BoxSweepFinder projects the object boxes on the X axis, sorts the
// interval ends and sweeps, checking the Y and Z overlap of each pair of
// open intervals. For spheres it reports every pair whose boxes, grown by
// half the distance each, overlap, which is a superset of the close pairs.
type BoxSweepFinder struct {
	finderBase
}

func newBoxSweepFinder(O *Options) (Finder, error) {
	return &BoxSweepFinder{finderBase{distance: O.distance}}, nil
}

// endpoint is one end of the X interval of a box.
type endpoint struct {
	x     float64
	box   int
	side  int
	isMin bool
}

// sweep returns the index pairs of overlapping boxes. With two sides, only
// pairs with one box of each side are reported, as (index in side 0,
// index in side 1).
func sweep(sides ...[]r3.Box) [][2]int {
	var eps []endpoint
	for s, boxes := range sides {
		for i, b := range boxes {
			eps = append(eps, endpoint{b.Min.X, i, s, true}, endpoint{b.Max.X, i, s, false})
		}
	}
	//touching intervals overlap, so opening ends go first on ties.
	sort.Slice(eps, func(i, j int) bool {
		if eps[i].x != eps[j].x {
			return eps[i].x < eps[j].x
		}
		return eps[i].isMin && !eps[j].isMin
	})
	active := make([][]int, len(sides))
	var ret [][2]int
	for _, e := range eps {
		if !e.isMin {
			act := active[e.side]
			for i, id := range act {
				if id == e.box {
					act[i] = act[len(act)-1]
					active[e.side] = act[:len(act)-1]
					break
				}
			}
			continue
		}
		b := sides[e.side][e.box]
		if len(sides) == 1 {
			for _, o := range active[0] {
				if yzOverlap(b, sides[0][o]) {
					ret = append(ret, [2]int{o, e.box})
				}
			}
		} else {
			other := 1 - e.side
			for _, o := range active[other] {
				if !yzOverlap(b, sides[other][o]) {
					continue
				}
				if e.side == 0 {
					ret = append(ret, [2]int{e.box, o})
				} else {
					ret = append(ret, [2]int{o, e.box})
				}
			}
		}
		active[e.side] = append(active[e.side], e.box)
	}
	return ret
}

func yzOverlap(a, b r3.Box) bool {
	return a.Min.Y <= b.Max.Y && b.Min.Y <= a.Max.Y && a.Min.Z <= b.Max.Z && b.Min.Z <= a.Max.Z
}

// grownBoxes returns the boxes of the spheres in s, grown by g.
func grownBoxes(s []Sphere, g float64) []r3.Box {
	ret := make([]r3.Box, len(s))
	for i, v := range s {
		v.Radius += g
		ret[i] = v.Box()
	}
	return ret
}

func (F *BoxSweepFinder) ClosePairs(s []Sphere) (Pairs, error) {
	if err := checkSpheres("BoxSweepFinder.ClosePairs", s); err != nil {
		return nil, err
	}
	idx := sweep(grownBoxes(s, F.distance/2))
	ret := make(Pairs, 0, len(idx))
	for _, p := range idx {
		ret = append(ret, NewPair(s[p[0]].ID, s[p[1]].ID))
	}
	return ret.Canonical(), nil
}

func (F *BoxSweepFinder) BipartiteClosePairs(a, b []Sphere) (Pairs, error) {
	if err := checkSpheres("BoxSweepFinder.BipartiteClosePairs", a); err != nil {
		return nil, err
	}
	if err := checkSpheres("BoxSweepFinder.BipartiteClosePairs", b); err != nil {
		return nil, err
	}
	idx := sweep(grownBoxes(a, F.distance/2), grownBoxes(b, F.distance/2))
	ret := make(Pairs, 0, len(idx))
	for _, p := range idx {
		ret = append(ret, NewPair(a[p[0]].ID, b[p[1]].ID))
	}
	return ret.Canonical(), nil
}

func grow(boxes []r3.Box, g float64) []r3.Box {
	ret := make([]r3.Box, len(boxes))
	d := r3.Vec{X: g, Y: g, Z: g}
	for i, b := range boxes {
		ret[i] = r3.Box{Min: r3.Sub(b.Min, d), Max: r3.Add(b.Max, d)}
	}
	return ret
}

func (F *BoxSweepFinder) BoxClosePairs(boxes []r3.Box) ([][2]int, error) {
	if err := checkBoxes("BoxSweepFinder.BoxClosePairs", boxes); err != nil {
		return nil, err
	}
	var ret [][2]int
	for _, p := range sweep(grow(boxes, F.distance/2)) {
		if BoxesClose(boxes[p[0]], boxes[p[1]], F.distance) {
			ret = append(ret, p)
		}
	}
	return canonicalIndexPairs(ret, true), nil
}

func (F *BoxSweepFinder) BipartiteBoxClosePairs(a, b []r3.Box) ([][2]int, error) {
	if err := checkBoxes("BoxSweepFinder.BipartiteBoxClosePairs", a); err != nil {
		return nil, err
	}
	if err := checkBoxes("BoxSweepFinder.BipartiteBoxClosePairs", b); err != nil {
		return nil, err
	}
	var ret [][2]int
	for _, p := range sweep(grow(a, F.distance/2), grow(b, F.distance/2)) {
		if BoxesClose(a[p[0]], b[p[1]], F.distance) {
			ret = append(ret, p)
		}
	}
	return canonicalIndexPairs(ret, false), nil
}
