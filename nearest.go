/*
 * nearest.go, part of closepairs.
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
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// NearestFinder stores one set of spheres in a kd-tree over their centers
// and, for each sphere of the other set, collects the centers within the
// largest radius in the tree plus the distance plus the radius of the
// query. It reports a superset of the close pairs.
type NearestFinder struct {
	finderBase
}

// NewNearestFinder returns a NearestFinder with the distance in O, which may be nil.
func NewNearestFinder(O *Options) *NearestFinder {
	if O == nil {
		O = DefaultOptions()
	}
	return &NearestFinder{finderBase{distance: O.distance}}
}

// kdSphere is a sphere as a point of the kd-tree.
type kdSphere struct {
	Sphere
}

func axis(v r3.Vec, d kdtree.Dim) float64 {
	switch d {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	panic("closepairs: kd-tree dimension out of range")
}

func (p kdSphere) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(kdSphere)
	return axis(p.Center, d) - axis(q.Center, d)
}

func (p kdSphere) Dims() int { return 3 }

// Distance returns the squared distance between the centers, as kdtree expects.
func (p kdSphere) Distance(c kdtree.Comparable) float64 {
	q := c.(kdSphere)
	return r3.Norm2(r3.Sub(p.Center, q.Center))
}

type kdSpheres []kdSphere

func (p kdSpheres) Index(i int) kdtree.Comparable { return p[i] }
func (p kdSpheres) Len() int                       { return len(p) }
func (p kdSpheres) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}
func (p kdSpheres) Pivot(d kdtree.Dim) int {
	pl := kdPlane{Dim: d, kdSpheres: p}
	return kdtree.Partition(pl, kdtree.MedianOfMedians(pl))
}

// kdPlane sorts spheres along one dimension.
type kdPlane struct {
	kdtree.Dim
	kdSpheres
}

func (p kdPlane) Less(i, j int) bool {
	return axis(p.kdSpheres[i].Center, p.Dim) < axis(p.kdSpheres[j].Center, p.Dim)
}
func (p kdPlane) Swap(i, j int) { p.kdSpheres[i], p.kdSpheres[j] = p.kdSpheres[j], p.kdSpheres[i] }
func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.kdSpheres = p.kdSpheres[start:end]
	return p
}

func newSphereTree(s []Sphere) *kdtree.Tree {
	pts := make(kdSpheres, len(s))
	for i, v := range s {
		pts[i] = kdSphere{v}
	}
	return kdtree.New(pts, false)
}

// query appends to out the pairs between q and the tree spheres whose
// centers are within reach of the center of q.
func query(t *kdtree.Tree, q Sphere, reach float64, out Pairs) Pairs {
	k := kdtree.NewDistKeeper(reach * reach)
	t.NearestSet(k, kdSphere{q})
	for _, c := range k.Heap {
		if c.Comparable == nil {
			continue
		}
		o := c.Comparable.(kdSphere)
		if o.ID != q.ID {
			out = append(out, NewPair(o.ID, q.ID))
		}
	}
	return out
}

func (F *NearestFinder) ClosePairs(s []Sphere) (Pairs, error) {
	if err := checkSpheres("NearestFinder.ClosePairs", s); err != nil {
		return nil, err
	}
	if len(s) < 2 {
		return nil, nil
	}
	t := newSphereTree(s)
	maxr := maxRadius(s)
	var out Pairs
	for _, q := range s {
		out = query(t, q, maxr+F.distance+q.Radius, out)
	}
	return out.Canonical(), nil
}

func (F *NearestFinder) BipartiteClosePairs(a, b []Sphere) (Pairs, error) {
	if err := checkSpheres("NearestFinder.BipartiteClosePairs", a); err != nil {
		return nil, err
	}
	if err := checkSpheres("NearestFinder.BipartiteClosePairs", b); err != nil {
		return nil, err
	}
	if len(a) == 0 || len(b) == 0 {
		return nil, nil
	}
	t := newSphereTree(a)
	maxr := maxRadius(a)
	var out Pairs
	for _, q := range b {
		out = query(t, q, maxr+F.distance+q.Radius, out)
	}
	return out.Canonical(), nil
}

func (F *NearestFinder) BoxClosePairs(boxes []r3.Box) ([][2]int, error) {
	return boxPairsBySpheres("NearestFinder.BoxClosePairs", F.ClosePairs, nil, F.distance, boxes, nil)
}

func (F *NearestFinder) BipartiteBoxClosePairs(a, b []r3.Box) ([][2]int, error) {
	if b == nil {
		b = []r3.Box{}
	}
	return boxPairsBySpheres("NearestFinder.BipartiteBoxClosePairs", nil, F.BipartiteClosePairs, F.distance, a, b)
}
