/*
 * gridfinder.go, part of closepairs.
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
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// GridFinder is the exact, size-adaptive grid finder. Spheres are split in
// strata by radius, each stratum is hashed on a sparse grid with cells
// large enough that close spheres always sit in neighbouring cells, and
// each pair of strata is matched on a grid sized for the larger of them.
type GridFinder struct {
	finderBase
	minGrid      int
	minCellSide  float64
	stratumFloor float64
	cell         *PeriodicCell
}

// NewGridFinder returns a GridFinder with the parameters in O, which may be nil.
func NewGridFinder(O *Options) *GridFinder {
	if O == nil {
		O = DefaultOptions()
	}
	return &GridFinder{
		finderBase:   finderBase{distance: O.distance},
		minGrid:      O.minGridSize,
		minCellSide:  O.minCellSide,
		stratumFloor: O.stratumFloor,
		cell:         O.cell.clone(),
	}
}

func (G *GridFinder) ClosePairs(s []Sphere) (Pairs, error) {
	if err := checkSpheres("GridFinder.ClosePairs", s); err != nil {
		return nil, err
	}
	if len(s) < 2 {
		return nil, nil
	}
	s = G.wrapped(s)
	bounds := strataBounds(maxRadius(s), G.distance, G.stratumFloor)
	st := stratify(s, nil, bounds, G.minGrid)
	Diagf("grid: %d spheres in %d strata, distance %g", len(s), len(st), G.distance)
	var out Pairs
	for i := range st {
		out = G.within(s, st[i], out)
		for j := 0; j < i; j++ {
			out = G.across(s, st[j].members, st[j].bound, s, st[i].members, st[i].bound, out)
		}
	}
	return out.Canonical(), nil
}

func (G *GridFinder) BipartiteClosePairs(a, b []Sphere) (Pairs, error) {
	if err := checkSpheres("GridFinder.BipartiteClosePairs", a); err != nil {
		return nil, err
	}
	if err := checkSpheres("GridFinder.BipartiteClosePairs", b); err != nil {
		return nil, err
	}
	if len(a) == 0 || len(b) == 0 {
		return nil, nil
	}
	a = G.wrapped(a)
	b = G.wrapped(b)
	bounds := strataBounds(math.Max(maxRadius(a), maxRadius(b)), G.distance, G.stratumFloor)
	sta := stratify(a, nil, bounds, G.minGrid)
	stb := stratify(b, nil, bounds, G.minGrid)
	Diagf("grid: %d+%d spheres in %dx%d strata, distance %g", len(a), len(b), len(sta), len(stb), G.distance)
	var out Pairs
	for _, u := range sta {
		for _, v := range stb {
			out = G.across(a, u.members, u.bound, b, v.members, v.bound, out)
		}
	}
	return out.Canonical(), nil
}

func (G *GridFinder) BoxClosePairs(boxes []r3.Box) ([][2]int, error) {
	return boxPairsBySpheres("GridFinder.BoxClosePairs", G.nonPeriodic().ClosePairs, nil, G.distance, boxes, nil)
}

func (G *GridFinder) BipartiteBoxClosePairs(a, b []r3.Box) ([][2]int, error) {
	if b == nil {
		b = []r3.Box{}
	}
	return boxPairsBySpheres("GridFinder.BipartiteBoxClosePairs", nil, G.nonPeriodic().BipartiteClosePairs, G.distance, a, b)
}

// nonPeriodic returns a copy of G without the periodic boundary, which
// does not apply to boxes.
func (G *GridFinder) nonPeriodic() *GridFinder {
	g := *G
	g.cell = nil
	return &g
}

// wrapped returns s with the centers moved into the periodic cell, if any.
func (G *GridFinder) wrapped(s []Sphere) []Sphere {
	if G.cell == nil {
		return s
	}
	ret := make([]Sphere, len(s))
	for i, v := range s {
		v.Center = G.cell.wrap(v.Center)
		ret[i] = v
	}
	return ret
}

func (G *GridFinder) close(a, b Sphere) bool {
	return closeDelta(G.cell.delta(a.Center, b.Center), a.Radius+b.Radius+G.distance)
}

// side returns the cell side for spheres of radius up to bound. It is
// grown a hair so rounding can't put a touching pair two cells apart.
func (G *GridFinder) side(bound float64) float64 {
	s := math.Max(G.distance+2*bound, G.minCellSide)
	return s + s*1e-9
}

func (G *GridFinder) add(out Pairs, a, b Sphere) Pairs {
	if a.ID != b.ID && G.close(a, b) {
		out = append(out, NewPair(a.ID, b.ID))
	}
	return out
}

// within appends the close pairs inside one stratum.
func (G *GridFinder) within(s []Sphere, st stratum, out Pairs) Pairs {
	m := st.members
	if len(m) < G.minGrid {
		for i := range m {
			for j := i + 1; j < len(m); j++ {
				out = G.add(out, s[m[i]], s[m[j]])
			}
		}
		return out
	}
	g := newSparseGrid(centerBox(s, m), G.side(st.bound), G.cell)
	for _, i := range m {
		g.insertA(s[i].Center, i)
	}
	trace := tracing()
	for _, ci := range g.order {
		ce := g.cells[ci]
		for i := range ce.a {
			for j := i + 1; j < len(ce.a); j++ {
				out = G.add(out, s[ce.a[i]], s[ce.a[j]])
			}
		}
		g.visit(ci, halfOffsets, func(n *cell) {
			for _, i := range ce.a {
				for _, j := range n.a {
					out = G.add(out, s[i], s[j])
				}
			}
		})
		if trace {
			Tracef("grid: cell %v holds %d spheres", ci, len(ce.a))
		}
	}
	Diagf("grid: stratum of bound %g, %d spheres in %d cells of side %g", st.bound, len(m), g.occupied(), g.side[0])
	return out
}

// across appends the close pairs between the spheres of sa indexed by a
// and those of sb indexed by b. The grid is sized for the larger bound.
func (G *GridFinder) across(sa []Sphere, a []int, ba float64, sb []Sphere, b []int, bb float64, out Pairs) Pairs {
	if len(a) == 0 || len(b) == 0 {
		return out
	}
	if len(a) < G.minGrid && len(b) < G.minGrid {
		for _, i := range a {
			for _, j := range b {
				out = G.add(out, sa[i], sb[j])
			}
		}
		return out
	}
	box := joinBoxes(centerBox(sa, a), centerBox(sb, b))
	g := newSparseGrid(box, G.side(math.Max(ba, bb)), G.cell)
	for _, i := range a {
		g.insertA(sa[i].Center, i)
	}
	for _, j := range b {
		g.insertB(sb[j].Center, j)
	}
	for _, ci := range g.order {
		ce := g.cells[ci]
		if len(ce.a) == 0 {
			continue
		}
		g.visit(ci, fullOffsets, func(n *cell) {
			for _, i := range ce.a {
				for _, j := range n.b {
					out = G.add(out, sa[i], sb[j])
				}
			}
		})
	}
	return out
}
